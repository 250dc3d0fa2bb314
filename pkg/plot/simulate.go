package plot

import (
	"context"
	"math/rand"
	"time"

	"github.com/raykavin/chartkit/pkg/core"
	"github.com/raykavin/chartkit/pkg/feed"
)

const simulationWindow = 120

// StartSimulation wires a synthetic random-walk stream into the first
// mounted chart when simulation is configured. Useful for exercising
// real-time snapshot replacement without a live source.
func (c *Chart) StartSimulation() {
	if c.simulationInterval <= 0 {
		return
	}

	names := c.Names()
	if len(names) == 0 {
		c.log.Warn("simulation enabled but no chart is mounted")
		return
	}
	name := names[0]

	c.log.Infof("Starting snapshot simulation for chart %s with interval %v", name, c.simulationInterval)

	walk := newRandomWalk(100)
	source := feed.SourceFunc(func(ctx context.Context) ([]core.Point, error) {
		return walk.next(), nil
	})

	stream, err := feed.NewStream(c.log, source,
		feed.WithCadence(c.simulationInterval),
		feed.WithOnUpdate(func(points []core.Point) {
			c.Replace(name, points)
		}),
	)
	if err != nil {
		c.log.WithError(err).Error("failed to start simulation stream")
		return
	}

	stream.Start(context.Background())
}

// randomWalk produces growing snapshots of a bounded random price walk
type randomWalk struct {
	value  float64
	points []core.Point
}

func newRandomWalk(start float64) *randomWalk {
	return &randomWalk{value: start}
}

// next extends the walk by one step and returns a complete replacement
// snapshot, never a view into mutable state
func (w *randomWalk) next() []core.Point {
	w.value += (rand.Float64() - 0.5) * 2.0
	w.points = append(w.points, core.NewTimePoint(time.Now(), w.value))

	if len(w.points) > simulationWindow {
		w.points = w.points[len(w.points)-simulationWindow:]
	}

	snapshot := make([]core.Point, len(w.points))
	copy(snapshot, w.points)
	return snapshot
}
