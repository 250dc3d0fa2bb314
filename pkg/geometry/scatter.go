package geometry

import (
	"fmt"

	"github.com/raykavin/chartkit/pkg/core"
	"github.com/raykavin/chartkit/pkg/scale"
)

// ScatterBuilder places one marker per point. Bubble variants derive
// the radius from the point's Size (or Weight as fallback) through a
// fixed scale, independent of animation except for the entrance
// scale-in.
type ScatterBuilder struct {
	// BaseRadius is the marker radius for points without size data
	BaseRadius float64

	// RadiusScale multiplies the point Size/Weight into a radius
	RadiusScale float64
}

// NewScatterBuilder returns a scatter builder with uniform markers
func NewScatterBuilder() ScatterBuilder {
	return ScatterBuilder{BaseRadius: 0.01}
}

// NewBubbleBuilder returns a scatter builder with size-driven radii
func NewBubbleBuilder(radiusScale float64) ScatterBuilder {
	return ScatterBuilder{BaseRadius: 0.01, RadiusScale: radiusScale}
}

// Build implements Builder
func (b ScatterBuilder) Build(points []core.Point, m scale.Mapper, progress float64) (*Geometry, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: empty point collection", core.ErrInvalidData)
	}
	if b.BaseRadius <= 0 {
		return nil, fmt.Errorf("%w: base radius must be positive", core.ErrConfiguration)
	}
	if err := core.ValidatePoints(points); err != nil {
		return nil, err
	}

	progress = clampProgress(progress)

	markers := make([]Marker, len(points))
	for i, p := range points {
		markers[i] = Marker{
			PointID: p.ID,
			Center: Vec{
				X: m.NormalizeX(p.X),
				Y: m.NormalizeY(p.Y),
			},
			Radius: b.radius(p) * progress,
		}
	}

	return &Geometry{Markers: markers}, nil
}

func (b ScatterBuilder) radius(p core.Point) float64 {
	if b.RadiusScale <= 0 {
		return b.BaseRadius
	}

	size := p.Size
	if size == 0 {
		size = p.Weight
	}
	if size == 0 {
		return b.BaseRadius
	}

	return b.BaseRadius + size*b.RadiusScale
}
