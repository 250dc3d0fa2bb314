package geometry

import (
	"math"
	"testing"

	"github.com/raykavin/chartkit/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeatmapGlobalNormalization(t *testing.T) {
	matrix := [][]float64{
		{0, 5},
		{5, 10},
	}

	geom, err := NewHeatmapBuilder().Build(matrix, 1)
	require.NoError(t, err)
	require.Len(t, geom.Cells, 4)

	// identical values share a color even across rows
	assert.Equal(t, geom.Cells[1].Color, geom.Cells[2].Color)

	// extremes hit the ends of the scale
	assert.Equal(t, Viridis(0), geom.Cells[0].Color)
	assert.Equal(t, Viridis(1), geom.Cells[3].Color)
}

func TestHeatmapCellLayout(t *testing.T) {
	matrix := [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	}

	geom, err := NewHeatmapBuilder().Build(matrix, 1)
	require.NoError(t, err)
	require.Len(t, geom.Cells, 6)

	// row-major order, cells tile the unit square at full progress
	last := geom.Cells[5]
	assert.Equal(t, 1, last.Row)
	assert.Equal(t, 2, last.Col)
	assert.InDelta(t, 2.0/3, last.Min.X, 1e-9)
	assert.InDelta(t, 1.0, last.Max.X, 1e-9)
	assert.InDelta(t, 0.5, last.Min.Y, 1e-9)
	assert.InDelta(t, 1.0, last.Max.Y, 1e-9)
}

func TestHeatmapConstantMatrixUsesScaleMidpoint(t *testing.T) {
	matrix := [][]float64{{7, 7}, {7, 7}}

	geom, err := NewHeatmapBuilder().Build(matrix, 1)
	require.NoError(t, err)

	for _, cell := range geom.Cells {
		assert.Equal(t, Viridis(0.5), cell.Color)
	}
}

func TestHeatmapCellsGrowInsideTheirSlots(t *testing.T) {
	matrix := [][]float64{{1, 2}}

	half, err := NewHeatmapBuilder().Build(matrix, 0.5)
	require.NoError(t, err)
	zero, err := NewHeatmapBuilder().Build(matrix, 0)
	require.NoError(t, err)

	// half progress shrinks each cell to half its slot, centered
	cell := half.Cells[0]
	assert.InDelta(t, 0.125, cell.Min.X, 1e-9)
	assert.InDelta(t, 0.375, cell.Max.X, 1e-9)

	// zero progress collapses the cell to its slot center
	collapsed := zero.Cells[0]
	assert.InDelta(t, collapsed.Min.X, collapsed.Max.X, 1e-9)
	assert.InDelta(t, 0.25, collapsed.Min.X, 1e-9)
}

func TestHeatmapRejectsRaggedMatrix(t *testing.T) {
	matrix := [][]float64{
		{1, 2, 3},
		{4, 5},
	}

	_, err := NewHeatmapBuilder().Build(matrix, 1)
	assert.ErrorIs(t, err, core.ErrInvalidData)
}

func TestHeatmapRejectsNonFiniteValues(t *testing.T) {
	_, err := NewHeatmapBuilder().Build([][]float64{{1, math.NaN()}}, 1)
	assert.ErrorIs(t, err, core.ErrInvalidData)

	_, err = NewHeatmapBuilder().Build([][]float64{{math.Inf(1)}}, 1)
	assert.ErrorIs(t, err, core.ErrInvalidData)
}

func TestHeatmapRejectsEmptyMatrix(t *testing.T) {
	_, err := NewHeatmapBuilder().Build(nil, 1)
	assert.ErrorIs(t, err, core.ErrInvalidData)

	_, err = NewHeatmapBuilder().Build([][]float64{{}}, 1)
	assert.ErrorIs(t, err, core.ErrInvalidData)
}

func TestHeatmapRejectsNilScale(t *testing.T) {
	_, err := HeatmapBuilder{}.Build([][]float64{{1}}, 1)
	assert.ErrorIs(t, err, core.ErrConfiguration)
}
