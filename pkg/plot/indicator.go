package plot

import (
	"fmt"
	"sort"

	"github.com/markcheno/go-talib"
	"github.com/raykavin/chartkit/pkg/core"
	"github.com/raykavin/chartkit/pkg/geometry"
	"github.com/raykavin/chartkit/pkg/scale"
)

// Indicator computes an overlay series drawn on top of line charts
type Indicator interface {
	Name() string
	Warmup() int
	Compute(values []float64) []float64
}

// SMA creates a simple moving average overlay
func SMA(period int) Indicator {
	return &sma{period: period}
}

type sma struct {
	period int
}

func (s *sma) Name() string { return fmt.Sprintf("SMA(%d)", s.period) }

func (s *sma) Warmup() int { return s.period }

func (s *sma) Compute(values []float64) []float64 {
	return talib.Sma(values, s.period)
}

// EMA creates an exponential moving average overlay
func EMA(period int) Indicator {
	return &ema{period: period}
}

type ema struct {
	period int
}

func (e *ema) Name() string { return fmt.Sprintf("EMA(%d)", e.period) }

func (e *ema) Warmup() int { return e.period }

func (e *ema) Compute(values []float64) []float64 {
	return talib.Ema(values, e.period)
}

// appendOverlays adds one polyline per configured indicator, skipping
// indicators whose warmup exceeds the dataset
func (c *Chart) appendOverlays(geom *geometry.Geometry, points []core.Point, m scale.Mapper, progress float64) {
	if len(c.indicators) == 0 {
		return
	}

	ordered := make([]core.Point, len(points))
	copy(ordered, points)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].X < ordered[j].X })

	values := make([]float64, len(ordered))
	for i, p := range ordered {
		values[i] = p.Y
	}

	for _, indicator := range c.indicators {
		warmup := indicator.Warmup()
		if warmup >= len(ordered) {
			c.log.Warnf("skipping %s: needs %d points, have %d", indicator.Name(), warmup, len(ordered))
			continue
		}

		series := indicator.Compute(values)

		line := geometry.Polyline{
			Vertices: make([]geometry.Vec, 0, len(ordered)-warmup),
			PointIDs: make([]int64, 0, len(ordered)-warmup),
		}

		// The first warmup values carry no signal, drop them.
		for i := warmup; i < len(ordered); i++ {
			y := m.NormalizeY(series[i])
			line.Vertices = append(line.Vertices, geometry.Vec{
				X: m.NormalizeX(ordered[i].X),
				Y: 1 + (y-1)*progress,
			})
			line.PointIDs = append(line.PointIDs, ordered[i].ID)
		}

		geom.Polylines = append(geom.Polylines, line)
	}
}
