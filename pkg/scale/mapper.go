// Package scale maps data-space values into the normalized unit square
// used by every geometry builder. All functions are pure: the same range
// and input always produce the same output, which keeps animation and
// hit-testing deterministic.
package scale

import (
	"github.com/raykavin/chartkit/pkg/core"
)

// Mapper normalizes data-space coordinates against a fixed core.Range.
// Y is flipped so larger values render upward on screen.
//
// Construct ranges with core.ComputeRange: its zero-width expansion is
// what precludes division by zero here.
type Mapper struct {
	rng core.Range
}

// New creates a mapper over the given range
func New(rng core.Range) Mapper {
	return Mapper{rng: rng}
}

// Range returns the range the mapper was built from
func (m Mapper) Range() core.Range { return m.rng }

// NormalizeX maps x into [0,1] across the X axis
func (m Mapper) NormalizeX(x float64) float64 {
	return (x - m.rng.MinX) / m.rng.WidthX()
}

// NormalizeY maps y into [0,1] across the Y axis, flipped so that the
// maximum value maps to 0 (top) and the minimum to 1 (bottom).
func (m Mapper) NormalizeY(y float64) float64 {
	return 1 - (y-m.rng.MinY)/m.rng.WidthY()
}

// NormalizeZ maps a depth value into [0,1]; ranges without Z bounds
// collapse to 0.
func (m Mapper) NormalizeZ(z float64) float64 {
	if !m.rng.HasZ {
		return 0
	}
	return (z - m.rng.MinZ) / (m.rng.MaxZ - m.rng.MinZ)
}

// DenormalizeX is the inverse of NormalizeX over [0,1]
func (m Mapper) DenormalizeX(t float64) float64 {
	return m.rng.MinX + t*m.rng.WidthX()
}

// DenormalizeY is the inverse of NormalizeY over [0,1]
func (m Mapper) DenormalizeY(t float64) float64 {
	return m.rng.MinY + (1-t)*m.rng.WidthY()
}

// ToScreen projects a normalized coordinate onto a pixel extent
func (m Mapper) ToScreen(t, size float64) float64 {
	return t * size
}

// ScreenPoint projects a data point into pixel space
func (m Mapper) ScreenPoint(p core.Point, width, height float64) (x, y float64) {
	return m.ToScreen(m.NormalizeX(p.X), width), m.ToScreen(m.NormalizeY(p.Y), height)
}
