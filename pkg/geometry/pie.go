package geometry

import (
	"fmt"
	"math"

	"github.com/raykavin/chartkit/pkg/core"
	"github.com/raykavin/chartkit/pkg/scale"
	"github.com/samber/lo"
)

// PieBuilder slices a full revolution proportionally to each point's Y
// value, in input order. Input order is the tie-break: it defines both
// the visual order and the legend order. A positive InnerRadius turns
// the pie into a donut; the cutout is a parameter, never derived from
// data.
type PieBuilder struct {
	InnerRadius float64
	OuterRadius float64
}

// NewPieBuilder returns a full pie occupying the unit square
func NewPieBuilder() PieBuilder {
	return PieBuilder{OuterRadius: 0.5}
}

// NewDonutBuilder returns a donut with the given cutout radius
func NewDonutBuilder(innerRadius float64) PieBuilder {
	return PieBuilder{InnerRadius: innerRadius, OuterRadius: 0.5}
}

// Build implements Builder. The mapper is part of the shared builder
// contract but slice angles depend only on the value proportions.
func (b PieBuilder) Build(points []core.Point, _ scale.Mapper, progress float64) (*Geometry, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: empty point collection", core.ErrInvalidData)
	}
	if b.InnerRadius < 0 || b.OuterRadius <= b.InnerRadius {
		return nil, fmt.Errorf("%w: inner radius %v must be below outer radius %v",
			core.ErrConfiguration, b.InnerRadius, b.OuterRadius)
	}
	if err := core.ValidatePoints(points); err != nil {
		return nil, err
	}

	for i, p := range points {
		if p.Y < 0 {
			return nil, fmt.Errorf("%w: negative slice value %v at index %d", core.ErrInvalidData, p.Y, i)
		}
	}

	total := lo.SumBy(points, func(p core.Point) float64 { return p.Y })
	if total <= 0 {
		return nil, fmt.Errorf("%w: slice values sum to zero", core.ErrInvalidData)
	}

	// Slices sweep in on entrance: the whole revolution scales with
	// progress instead of fading.
	revolution := 2 * math.Pi * clampProgress(progress)

	sectors := make([]Sector, len(points))
	cumulative := 0.0
	for i, p := range points {
		start := cumulative / total * revolution
		cumulative += p.Y
		end := cumulative / total * revolution

		sectors[i] = Sector{
			PointID:     p.ID,
			StartAngle:  start,
			EndAngle:    end,
			InnerRadius: b.InnerRadius,
			OuterRadius: b.OuterRadius,
		}
	}

	return &Geometry{Sectors: sectors}, nil
}
