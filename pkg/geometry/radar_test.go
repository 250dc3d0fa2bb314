package geometry

import (
	"math"
	"testing"

	"github.com/raykavin/chartkit/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func radarValues(t *testing.T) []core.RadarValue {
	t.Helper()

	var values []core.RadarValue
	for _, entry := range []struct {
		category string
		value    float64
	}{
		{"speed", 100},
		{"range", 50},
		{"comfort", 75},
		{"safety", 25},
	} {
		v, err := core.NewRadarValue(entry.category, entry.value, 100)
		require.NoError(t, err)
		values = append(values, v)
	}
	return values
}

func TestRadarPolygonCloses(t *testing.T) {
	geom, err := RadarBuilder{}.Build(radarValues(t), 1)
	require.NoError(t, err)

	require.Len(t, geom.Regions, 1)
	vertices := geom.Regions[0].Vertices
	require.Len(t, vertices, 5)
	assert.Equal(t, vertices[0], vertices[4])
}

func TestRadarAxisPlacement(t *testing.T) {
	geom, err := RadarBuilder{}.Build(radarValues(t), 1)
	require.NoError(t, err)

	vertices := geom.Regions[0].Vertices

	// first category at full extent points straight up from the center
	assert.InDelta(t, 0.5, vertices[0].X, 1e-9)
	assert.InDelta(t, 0.0, vertices[0].Y, 1e-9)

	// second category (value 50 of 100) points right at half extent
	assert.InDelta(t, 0.75, vertices[1].X, 1e-9)
	assert.InDelta(t, 0.5, vertices[1].Y, 1e-9)
}

func TestRadarScalesWithProgress(t *testing.T) {
	values := radarValues(t)

	full, err := RadarBuilder{}.Build(values, 1)
	require.NoError(t, err)
	half, err := RadarBuilder{}.Build(values, 0.5)
	require.NoError(t, err)

	for i := range values {
		fullDist := math.Hypot(full.Regions[0].Vertices[i].X-0.5, full.Regions[0].Vertices[i].Y-0.5)
		halfDist := math.Hypot(half.Regions[0].Vertices[i].X-0.5, half.Regions[0].Vertices[i].Y-0.5)
		assert.InDelta(t, fullDist*0.5, halfDist, 1e-9)
	}
}

func TestRadarRejectsOverflowByDefault(t *testing.T) {
	v, err := core.NewRadarValue("speed", 120, 100)
	require.NoError(t, err)

	_, err = RadarBuilder{}.Build([]core.RadarValue{v}, 1)
	assert.ErrorIs(t, err, core.ErrInvalidData)
}

func TestRadarClampsOverflowWhenAllowed(t *testing.T) {
	v, err := core.NewRadarValue("speed", 120, 100)
	require.NoError(t, err)

	geom, err := RadarBuilder{AllowOverflow: true}.Build([]core.RadarValue{v}, 1)
	require.NoError(t, err)

	// clamped to the rim, never past it
	assert.InDelta(t, 0.0, geom.Regions[0].Vertices[0].Y, 1e-9)
}

func TestRadarRejectsDuplicateCategory(t *testing.T) {
	a, err := core.NewRadarValue("speed", 10, 100)
	require.NoError(t, err)
	b, err := core.NewRadarValue("speed", 20, 100)
	require.NoError(t, err)

	_, err = RadarBuilder{}.Build([]core.RadarValue{a, b}, 1)
	assert.ErrorIs(t, err, core.ErrInvalidData)
}

func TestRadarRejectsEmptyInput(t *testing.T) {
	_, err := RadarBuilder{}.Build(nil, 1)
	assert.ErrorIs(t, err, core.ErrInvalidData)
}
