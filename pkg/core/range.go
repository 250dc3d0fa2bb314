package core

import "math"

// Range is the inclusive min/max bounding box of a point collection.
// It is derived, never stored: recompute it whenever the owning
// collection changes instead of mutating it in place.
type Range struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
	HasZ       bool
}

// SentinelRange is the fallback for empty collections so downstream
// mappers always have usable, non-degenerate bounds.
func SentinelRange() Range {
	return Range{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}
}

// ComputeRange computes axis bounds for a point collection.
// It never fails: empty input yields the sentinel range and zero-width
// axes are expanded symmetrically so normalization can never divide
// by zero (see expandZeroWidth).
func ComputeRange(points []Point) Range {
	if len(points) == 0 {
		return SentinelRange()
	}

	r := Range{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
		MinZ: math.Inf(1), MaxZ: math.Inf(-1),
	}

	for _, p := range points {
		r.MinX = math.Min(r.MinX, p.X)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxY = math.Max(r.MaxY, p.Y)

		if p.HasZ {
			r.HasZ = true
			r.MinZ = math.Min(r.MinZ, p.Z)
			r.MaxZ = math.Max(r.MaxZ, p.Z)
		}
	}

	if !r.HasZ {
		r.MinZ, r.MaxZ = 0, 0
	}

	return r.expanded()
}

// ComputeCandleRange computes bounds for an OHLC series: X from the
// candle timestamps, Y spanning the full low..high wick extent.
func ComputeCandleRange(candles []Candle) Range {
	if len(candles) == 0 {
		return SentinelRange()
	}

	r := Range{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}

	for _, c := range candles {
		x := float64(c.Timestamp.Unix())
		r.MinX = math.Min(r.MinX, x)
		r.MaxX = math.Max(r.MaxX, x)
		r.MinY = math.Min(r.MinY, c.Low)
		r.MaxY = math.Max(r.MaxY, c.High)
	}

	return r.expanded()
}

// WidthX returns the X axis extent
func (r Range) WidthX() float64 { return r.MaxX - r.MinX }

// WidthY returns the Y axis extent
func (r Range) WidthY() float64 { return r.MaxY - r.MinY }

func (r Range) expanded() Range {
	r.MinX, r.MaxX = expandZeroWidth(r.MinX, r.MaxX)
	r.MinY, r.MaxY = expandZeroWidth(r.MinY, r.MaxY)
	if r.HasZ {
		r.MinZ, r.MaxZ = expandZeroWidth(r.MinZ, r.MaxZ)
	}
	return r
}

// expandZeroWidth widens a degenerate axis symmetrically by
// max(0.5, 1% of magnitude). This is deliberate policy, not an accident:
// every mapper downstream relies on a strictly positive axis width.
func expandZeroWidth(min, max float64) (float64, float64) {
	if min != max {
		return min, max
	}

	eps := math.Max(0.5, math.Abs(min)*0.01)
	return min - eps, max + eps
}
