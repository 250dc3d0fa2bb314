package geometry

import (
	"fmt"
	"math"

	"github.com/StudioSol/set"
	"github.com/raykavin/chartkit/pkg/core"
)

// RadarBuilder places N categories at equal angular spacing and builds
// a closed polygon whose radial extent per category is value/max.
type RadarBuilder struct {
	// AllowOverflow accepts value > max and clamps the radial extent
	// to the rim instead of rejecting the input
	AllowOverflow bool
}

// Build turns radar entries into a closed polygon around the unit-square
// center. Category i sits at angle 2πi/N from twelve o'clock; the
// polygon closes back to the first vertex.
func (b RadarBuilder) Build(values []core.RadarValue, progress float64) (*Geometry, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: empty radar collection", core.ErrInvalidData)
	}

	categories := set.NewLinkedHashSetString()
	for i, v := range values {
		if v.Max <= 0 {
			return nil, fmt.Errorf("%w: radar max must be positive at index %d", core.ErrInvalidData, i)
		}
		if v.Value > v.Max && !b.AllowOverflow {
			return nil, fmt.Errorf("%w: value %v exceeds max %v for category %q",
				core.ErrInvalidData, v.Value, v.Max, v.Category)
		}
		if categories.InArray(v.Category) {
			return nil, fmt.Errorf("%w: duplicate radar category %q", core.ErrInvalidData, v.Category)
		}
		categories.Add(v.Category)
	}

	progress = clampProgress(progress)

	const center, radius = 0.5, 0.5
	step := 2 * math.Pi / float64(len(values))

	polygon := Region{Vertices: make([]Vec, 0, len(values)+1)}
	for i, v := range values {
		extent := core.Clamp(v.Value/v.Max, 0, 1) * progress
		angle := float64(i) * step

		polygon.Vertices = append(polygon.Vertices, Vec{
			X: center + radius*extent*math.Sin(angle),
			Y: center - radius*extent*math.Cos(angle),
		})
	}
	polygon.Vertices = append(polygon.Vertices, polygon.Vertices[0])

	return &Geometry{Regions: []Region{polygon}}, nil
}
