package core

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"
)

var lastPointID int64

// nextPointID generates a unique ID for data points
func nextPointID() int64 {
	return atomic.AddInt64(&lastPointID, 1)
}

// Interval is a closed [Lower, Upper] confidence interval attached to a point
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Point is the canonical chart entity. The ID is assigned once at creation
// and is the only identity used for selection and highlight lookups; the
// numeric content may legitimately repeat across points.
//
// Presentation concerns (effective color, stroke) are resolved outside the
// entity; Color is carried as an opaque token for the rendering boundary.
type Point struct {
	ID         int64     `json:"id"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Z          float64   `json:"z,omitempty"`
	HasZ       bool      `json:"-"`
	Label      string    `json:"label,omitempty"`
	Color      string    `json:"color,omitempty"`
	Size       float64   `json:"size,omitempty"`
	Weight     float64   `json:"weight,omitempty"`
	Category   string    `json:"category,omitempty"`
	Timestamp  time.Time `json:"timestamp,omitempty"`
	Confidence *Interval `json:"confidence,omitempty"`
}

// NewPoint creates a point with a fresh identity
func NewPoint(x, y float64) Point {
	return Point{ID: nextPointID(), X: x, Y: y}
}

// NewTimePoint creates a point whose X is derived from the timestamp epoch
func NewTimePoint(ts time.Time, y float64) Point {
	return Point{
		ID:        nextPointID(),
		X:         float64(ts.Unix()),
		Y:         y,
		Timestamp: ts,
	}
}

// New3DPoint creates a point carrying a depth value for bubble/3D charts
func New3DPoint(x, y, z float64) Point {
	return Point{ID: nextPointID(), X: x, Y: y, Z: z, HasZ: true}
}

// Validate rejects points carrying non-finite coordinates
func (p Point) Validate() error {
	if !isFinite(p.X) || !isFinite(p.Y) {
		return fmt.Errorf("%w: non-finite coordinates (%v, %v)", ErrInvalidData, p.X, p.Y)
	}
	if p.HasZ && !isFinite(p.Z) {
		return fmt.Errorf("%w: non-finite depth %v", ErrInvalidData, p.Z)
	}
	if p.Confidence != nil && p.Confidence.Lower > p.Confidence.Upper {
		return fmt.Errorf("%w: inverted confidence interval [%v, %v]",
			ErrInvalidData, p.Confidence.Lower, p.Confidence.Upper)
	}
	return nil
}

// ValidatePoints rejects the whole collection on the first invalid point
func ValidatePoints(points []Point) error {
	for i, p := range points {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
