// Package geometry turns normalized data points into abstract vector
// primitives, one builder per chart archetype. Builders are pure:
// identical (points, mapper, progress) input always yields identical
// geometry, so snapshots can be tested deterministically. Archetype
// invariants are validated eagerly and rejected with core.ErrInvalidData
// before any geometry is emitted; partial output is never produced.
package geometry

import (
	"github.com/raykavin/chartkit/pkg/core"
	"github.com/raykavin/chartkit/pkg/scale"
)

// Builder is the strategy shared by every point-based archetype.
// Candlestick, heatmap and radar builders consume specialized entities
// and expose their own Build methods with the same (data, progress)
// shape.
type Builder interface {
	Build(points []core.Point, m scale.Mapper, progress float64) (*Geometry, error)
}

// Kind identifies a chart archetype
type Kind string

const (
	KindLine        Kind = "line"
	KindArea        Kind = "area"
	KindBar         Kind = "bar"
	KindPie         Kind = "pie"
	KindDonut       Kind = "donut"
	KindScatter     Kind = "scatter"
	KindBubble      Kind = "bubble"
	KindCandlestick Kind = "candlestick"
	KindHeatmap     Kind = "heatmap"
	KindRadar       Kind = "radar"
)

// Vec is a 2D coordinate in the normalized unit square
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polyline is an open stroke through ordered vertices.
// PointIDs carries the identity of the source point per vertex so the
// interaction layer can resolve tooltip anchors without re-sorting.
type Polyline struct {
	Vertices []Vec   `json:"vertices"`
	PointIDs []int64 `json:"point_ids,omitempty"`
}

// Region is a closed, fillable polygon
type Region struct {
	Vertices []Vec `json:"vertices"`
}

// Bar is an axis-aligned rectangle tied to a source point
type Bar struct {
	PointID int64 `json:"point_id"`
	Min     Vec   `json:"min"`
	Max     Vec   `json:"max"`
}

// Sector is a circular slice around the unit-square center, angles in
// radians measured clockwise from twelve o'clock. InnerRadius > 0 cuts
// the donut hole out.
type Sector struct {
	PointID     int64   `json:"point_id"`
	StartAngle  float64 `json:"start_angle"`
	EndAngle    float64 `json:"end_angle"`
	InnerRadius float64 `json:"inner_radius"`
	OuterRadius float64 `json:"outer_radius"`
}

// Marker is a circular glyph for scatter and bubble charts
type Marker struct {
	PointID int64   `json:"point_id"`
	Center  Vec     `json:"center"`
	Radius  float64 `json:"radius"`
}

// CandleGlyph is one OHLC glyph: a vertical wick segment plus a body
// rectangle. Bullish is derived from close >= open at build time.
type CandleGlyph struct {
	PointID    int64   `json:"point_id"`
	Bullish    bool    `json:"bullish"`
	WickX      float64 `json:"wick_x"`
	WickTop    float64 `json:"wick_top"`
	WickBottom float64 `json:"wick_bottom"`
	Body       Bar     `json:"body"`
}

// Cell is one heatmap grid cell with its resolved color
type Cell struct {
	Row   int  `json:"row"`
	Col   int  `json:"col"`
	Min   Vec  `json:"min"`
	Max   Vec  `json:"max"`
	Color RGB  `json:"color"`
}

// Geometry is the archetype-agnostic output handed to the rendering
// layer. Only the slices relevant to the producing builder are set.
type Geometry struct {
	Polylines []Polyline    `json:"polylines,omitempty"`
	Regions   []Region      `json:"regions,omitempty"`
	Bars      []Bar         `json:"bars,omitempty"`
	Sectors   []Sector      `json:"sectors,omitempty"`
	Markers   []Marker      `json:"markers,omitempty"`
	Candles   []CandleGlyph `json:"candles,omitempty"`
	Cells     []Cell        `json:"cells,omitempty"`
}

func clampProgress(progress float64) float64 {
	return core.Clamp(progress, 0, 1)
}
