package scale

import (
	"math"
	"testing"

	"github.com/raykavin/chartkit/pkg/core"
	"github.com/stretchr/testify/assert"
)

func fourPointRange() core.Range {
	return core.ComputeRange([]core.Point{
		core.NewPoint(1, 10),
		core.NewPoint(2, 25),
		core.NewPoint(3, 15),
		core.NewPoint(4, 30),
	})
}

func TestNormalizeYIsFlipped(t *testing.T) {
	m := New(fourPointRange())

	// larger values render upward
	assert.InDelta(t, 0.0, m.NormalizeY(30), 1e-9)
	assert.InDelta(t, 1.0, m.NormalizeY(10), 1e-9)
}

func TestNormalizeX(t *testing.T) {
	m := New(fourPointRange())

	assert.InDelta(t, 0.0, m.NormalizeX(1), 1e-9)
	assert.InDelta(t, 1.0, m.NormalizeX(4), 1e-9)
	assert.InDelta(t, 1.0/3, m.NormalizeX(2), 1e-9)
}

func TestNormalizeDenormalizeIdempotence(t *testing.T) {
	m := New(fourPointRange())

	for _, tt := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.99, 1} {
		assert.InDelta(t, tt, m.NormalizeX(m.DenormalizeX(tt)), 1e-9)
		assert.InDelta(t, tt, m.NormalizeY(m.DenormalizeY(tt)), 1e-9)
	}
}

func TestZeroWidthAxisNeverDividesByZero(t *testing.T) {
	points := []core.Point{
		core.NewPoint(7, 3),
		core.NewPoint(7, 3),
		core.NewPoint(7, 3),
	}

	m := New(core.ComputeRange(points))

	tx := m.NormalizeX(7)
	ty := m.NormalizeY(3)

	assert.False(t, math.IsNaN(tx) || math.IsInf(tx, 0))
	assert.False(t, math.IsNaN(ty) || math.IsInf(ty, 0))
	assert.GreaterOrEqual(t, tx, 0.0)
	assert.LessOrEqual(t, tx, 1.0)
	assert.GreaterOrEqual(t, ty, 0.0)
	assert.LessOrEqual(t, ty, 1.0)
}

func TestToScreen(t *testing.T) {
	m := New(fourPointRange())

	assert.Equal(t, 480.0, m.ToScreen(0.5, 960))

	x, y := m.ScreenPoint(core.NewPoint(4, 30), 960, 540)
	assert.InDelta(t, 960.0, x, 1e-9)
	assert.InDelta(t, 0.0, y, 1e-9)
}

func TestMapperIsStable(t *testing.T) {
	m := New(fourPointRange())

	first := m.NormalizeX(2.5)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, m.NormalizeX(2.5))
	}
}
