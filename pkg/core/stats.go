package core

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the read-only aggregates exposed to the accessibility
// layer: it performs no string formatting, callers synthesize their own
// human-readable descriptions from these numbers.
type Summary struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
}

// Summarize aggregates the Y values of a point collection
func Summarize(points []Point) Summary {
	if len(points) == 0 {
		return Summary{}
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Y
	}

	return Summary{
		Count: len(values),
		Total: floats.Sum(values),
		Min:   floats.Min(values),
		Max:   floats.Max(values),
		Mean:  stat.Mean(values, nil),
	}
}
