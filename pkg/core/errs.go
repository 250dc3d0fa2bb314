package core

import "errors"

var (
	// ErrInvalidData marks rejected input: empty required collections,
	// non-finite numbers, OHLC invariant violations, radar bounds.
	ErrInvalidData = errors.New("invalid data")

	// ErrConfiguration marks rejected settings: inverted zoom bounds,
	// non-positive sampling targets or durations.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrRenderBudget is returned when a point collection exceeds the hard
	// render cap even after sampling.
	ErrRenderBudget = errors.New("render budget exceeded")
)
