package geometry

import (
	"fmt"
	"sort"

	"github.com/raykavin/chartkit/pkg/core"
	"github.com/raykavin/chartkit/pkg/scale"
)

// baselineY is the normalized bottom of the plot area (Y is flipped by
// the mapper, so 1 is the visual bottom). Entrance animation grows every
// vertex from this baseline rather than fading opacity.
const baselineY = 1.0

// LineBuilder builds an open polyline through points sorted by X
type LineBuilder struct{}

// Build implements Builder
func (LineBuilder) Build(points []core.Point, m scale.Mapper, progress float64) (*Geometry, error) {
	line, err := buildPolyline(points, m, progress)
	if err != nil {
		return nil, err
	}
	return &Geometry{Polylines: []Polyline{line}}, nil
}

// AreaBuilder builds the line polyline closed against the baseline to
// form a fillable region
type AreaBuilder struct{}

// Build implements Builder
func (AreaBuilder) Build(points []core.Point, m scale.Mapper, progress float64) (*Geometry, error) {
	line, err := buildPolyline(points, m, progress)
	if err != nil {
		return nil, err
	}

	region := Region{Vertices: make([]Vec, 0, len(line.Vertices)+2)}
	region.Vertices = append(region.Vertices, line.Vertices...)

	last := line.Vertices[len(line.Vertices)-1]
	first := line.Vertices[0]
	region.Vertices = append(region.Vertices,
		Vec{X: last.X, Y: baselineY},
		Vec{X: first.X, Y: baselineY},
	)

	return &Geometry{
		Polylines: []Polyline{line},
		Regions:   []Region{region},
	}, nil
}

func buildPolyline(points []core.Point, m scale.Mapper, progress float64) (Polyline, error) {
	if len(points) == 0 {
		return Polyline{}, fmt.Errorf("%w: empty point collection", core.ErrInvalidData)
	}
	if err := core.ValidatePoints(points); err != nil {
		return Polyline{}, err
	}

	progress = clampProgress(progress)

	// Stable sort keeps the original order of X ties.
	ordered := make([]core.Point, len(points))
	copy(ordered, points)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].X < ordered[j].X
	})

	line := Polyline{
		Vertices: make([]Vec, len(ordered)),
		PointIDs: make([]int64, len(ordered)),
	}

	for i, p := range ordered {
		y := m.NormalizeY(p.Y)
		line.Vertices[i] = Vec{
			X: m.NormalizeX(p.X),
			Y: baselineY + (y-baselineY)*progress,
		}
		line.PointIDs[i] = p.ID
	}

	return line, nil
}
