package geometry

import (
	"fmt"

	"github.com/raykavin/chartkit/pkg/core"
	"github.com/raykavin/chartkit/pkg/scale"
)

// DefaultGapFraction is the slot fraction left empty around each bar
const DefaultGapFraction = 0.2

// BarBuilder allocates one slot of width 1/N per point along the
// category axis and grows each bar from the baseline with progress.
type BarBuilder struct {
	// GapFraction is the fraction of each slot left as inset,
	// split evenly on both sides. Zero means touching bars.
	GapFraction float64

	// Horizontal lays slots out along Y and grows bars along X
	Horizontal bool
}

// NewBarBuilder returns a vertical bar builder with the default gap
func NewBarBuilder() BarBuilder {
	return BarBuilder{GapFraction: DefaultGapFraction}
}

// Build implements Builder
func (b BarBuilder) Build(points []core.Point, m scale.Mapper, progress float64) (*Geometry, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: empty point collection", core.ErrInvalidData)
	}
	if b.GapFraction < 0 || b.GapFraction >= 1 {
		return nil, fmt.Errorf("%w: gap fraction %v outside [0,1)", core.ErrConfiguration, b.GapFraction)
	}
	if err := core.ValidatePoints(points); err != nil {
		return nil, err
	}

	progress = clampProgress(progress)

	slot := 1.0 / float64(len(points))
	inset := slot * b.GapFraction / 2

	bars := make([]Bar, len(points))
	for i, p := range points {
		lo := float64(i)*slot + inset
		hi := float64(i+1)*slot - inset

		// Extent from baseline scales linearly with progress.
		y := m.NormalizeY(p.Y)
		top := baselineY + (y-baselineY)*progress

		if b.Horizontal {
			x := 1 - top // flip back so larger values extend rightward
			bars[i] = Bar{
				PointID: p.ID,
				Min:     Vec{X: 0, Y: lo},
				Max:     Vec{X: x, Y: hi},
			}
			continue
		}

		bars[i] = Bar{
			PointID: p.ID,
			Min:     Vec{X: lo, Y: top},
			Max:     Vec{X: hi, Y: baselineY},
		}
	}

	return &Geometry{Bars: bars}, nil
}
