package geometry

import (
	"fmt"
	"math"

	"github.com/raykavin/chartkit/pkg/core"
)

// HeatmapBuilder maps a regular value matrix onto unit-square grid
// cells. Cell color derives from the value normalized against the
// global min/max of the whole matrix, never per-row, so identical
// values always share a color.
type HeatmapBuilder struct {
	Scale ColorScale
}

// NewHeatmapBuilder returns a viridis-colored heatmap builder
func NewHeatmapBuilder() HeatmapBuilder {
	return HeatmapBuilder{Scale: Viridis}
}

// Build turns a row-major matrix into colored cells. Entrance animation
// scales each cell inside its own grid slot.
func (b HeatmapBuilder) Build(matrix [][]float64, progress float64) (*Geometry, error) {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", core.ErrInvalidData)
	}
	if b.Scale == nil {
		return nil, fmt.Errorf("%w: nil color scale", core.ErrConfiguration)
	}

	cols := len(matrix[0])
	min, max := math.Inf(1), math.Inf(-1)
	for r, row := range matrix {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: ragged matrix row %d (%d cells, want %d)",
				core.ErrInvalidData, r, len(row), cols)
		}
		for c, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: non-finite value at (%d,%d)", core.ErrInvalidData, r, c)
			}
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}

	// A constant matrix maps every cell to the middle of the scale.
	width := max - min
	normalize := func(v float64) float64 {
		if width == 0 {
			return 0.5
		}
		return (v - min) / width
	}

	progress = clampProgress(progress)
	rows := len(matrix)
	cellW := 1.0 / float64(cols)
	cellH := 1.0 / float64(rows)
	inset := (1 - progress) / 2

	cells := make([]Cell, 0, rows*cols)
	for r, row := range matrix {
		for c, v := range row {
			x := float64(c) * cellW
			y := float64(r) * cellH
			cells = append(cells, Cell{
				Row:   r,
				Col:   c,
				Min:   Vec{X: x + cellW*inset, Y: y + cellH*inset},
				Max:   Vec{X: x + cellW*(1-inset), Y: y + cellH*(1-inset)},
				Color: b.Scale(normalize(v)),
			})
		}
	}

	return &Geometry{Cells: cells}, nil
}
