package geometry

import (
	"math"
	"testing"

	"github.com/raykavin/chartkit/pkg/core"
	"github.com/raykavin/chartkit/pkg/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pieMapper() scale.Mapper {
	return scale.New(core.SentinelRange())
}

func TestPieSliceBoundaries(t *testing.T) {
	points := []core.Point{
		core.NewPoint(0, 30),
		core.NewPoint(0, 25),
		core.NewPoint(0, 20),
		core.NewPoint(0, 15),
		core.NewPoint(0, 10),
	}

	geom, err := NewPieBuilder().Build(points, pieMapper(), 1)
	require.NoError(t, err)
	require.Len(t, geom.Sectors, 5)

	fractions := []float64{0, 0.30, 0.55, 0.75, 0.90, 1.0}
	for i, s := range geom.Sectors {
		assert.InDelta(t, fractions[i]*2*math.Pi, s.StartAngle, 1e-9)
		assert.InDelta(t, fractions[i+1]*2*math.Pi, s.EndAngle, 1e-9)
	}
}

func TestPieSliceCoverageIsFullCircle(t *testing.T) {
	points := []core.Point{
		core.NewPoint(0, 3.3),
		core.NewPoint(0, 1.7),
		core.NewPoint(0, 8.25),
		core.NewPoint(0, 0.4),
	}

	geom, err := NewPieBuilder().Build(points, pieMapper(), 1)
	require.NoError(t, err)

	var swept float64
	for _, s := range geom.Sectors {
		swept += s.EndAngle - s.StartAngle
	}

	assert.InDelta(t, 2*math.Pi, swept, 1e-9)
	assert.InDelta(t, 2*math.Pi, geom.Sectors[len(geom.Sectors)-1].EndAngle, 1e-9)
}

func TestPieKeepsInputOrder(t *testing.T) {
	// not sorted by value: order defines visual and legend order
	points := []core.Point{
		core.NewPoint(0, 10),
		core.NewPoint(0, 30),
		core.NewPoint(0, 20),
	}

	geom, err := NewPieBuilder().Build(points, pieMapper(), 1)
	require.NoError(t, err)

	for i, p := range points {
		assert.Equal(t, p.ID, geom.Sectors[i].PointID)
	}
}

func TestPieSweepsInWithProgress(t *testing.T) {
	points := []core.Point{
		core.NewPoint(0, 1),
		core.NewPoint(0, 1),
	}

	geom, err := NewPieBuilder().Build(points, pieMapper(), 0.5)
	require.NoError(t, err)

	assert.InDelta(t, math.Pi, geom.Sectors[1].EndAngle, 1e-9)
}

func TestPieRejectsNegativeValues(t *testing.T) {
	points := []core.Point{core.NewPoint(0, 10), core.NewPoint(0, -1)}

	_, err := NewPieBuilder().Build(points, pieMapper(), 1)
	assert.ErrorIs(t, err, core.ErrInvalidData)
}

func TestPieRejectsZeroTotal(t *testing.T) {
	points := []core.Point{core.NewPoint(0, 0), core.NewPoint(0, 0)}

	_, err := NewPieBuilder().Build(points, pieMapper(), 1)
	assert.ErrorIs(t, err, core.ErrInvalidData)
}

func TestDonutCarriesInnerRadius(t *testing.T) {
	points := []core.Point{core.NewPoint(0, 1)}

	geom, err := NewDonutBuilder(0.25).Build(points, pieMapper(), 1)
	require.NoError(t, err)

	assert.Equal(t, 0.25, geom.Sectors[0].InnerRadius)
}

func TestDonutRejectsInvertedRadii(t *testing.T) {
	points := []core.Point{core.NewPoint(0, 1)}

	_, err := NewDonutBuilder(0.6).Build(points, pieMapper(), 1)
	assert.ErrorIs(t, err, core.ErrConfiguration)
}
