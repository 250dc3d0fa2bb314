// Package sampling applies the render budget to raw collections before
// they reach range computation and geometry. Downsampling is lossy,
// documented degradation of visual fidelity; it is not lazy loading,
// which defers when data arrives but drops nothing.
package sampling

import (
	"fmt"

	"github.com/raykavin/chartkit/pkg/core"
)

// DefaultMaxPoints is the sampling target applied when the host
// configuration does not supply one
const DefaultMaxPoints = 2000

// HardCap is the absolute per-chart point ceiling. Collections still
// above it after sampling are rejected, which can only happen when the
// configured target itself is unreasonably large.
const HardCap = 50000

// Downsample reduces items to at most maxItems using uniform-stride
// sampling: every ceil(len/maxItems)-th element is kept, and the first
// and last elements are always included. Output is deterministic for
// identical input and maxItems, and the input slice is never mutated.
func Downsample[T any](items []T, maxItems int) ([]T, error) {
	if maxItems <= 0 {
		return nil, fmt.Errorf("%w: sampling target %d must be positive", core.ErrConfiguration, maxItems)
	}

	if len(items) <= maxItems {
		return items, nil
	}

	stride := (len(items) + maxItems - 1) / maxItems

	sampled := make([]T, 0, maxItems+1)
	for i := 0; i < len(items); i += stride {
		sampled = append(sampled, items[i])
	}

	if last := len(items) - 1; last%stride != 0 {
		sampled = append(sampled, items[last])
	}

	return sampled, nil
}

// Policy bundles the sampling target with the hard render cap
type Policy struct {
	MaxPoints int
	Cap       int
}

// DefaultPolicy returns the conventional budget
func DefaultPolicy() Policy {
	return Policy{MaxPoints: DefaultMaxPoints, Cap: HardCap}
}

// Apply downsamples points to the policy target and enforces the hard
// cap afterwards
func (p Policy) Apply(points []core.Point) ([]core.Point, error) {
	sampled, err := Downsample(points, p.MaxPoints)
	if err != nil {
		return nil, err
	}

	if p.Cap > 0 && len(sampled) > p.Cap {
		return nil, fmt.Errorf("%w: %d points remain after sampling, cap is %d",
			core.ErrRenderBudget, len(sampled), p.Cap)
	}

	return sampled, nil
}

// ApplyCandles applies the same budget to an OHLC series
func (p Policy) ApplyCandles(candles []core.Candle) ([]core.Candle, error) {
	sampled, err := Downsample(candles, p.MaxPoints)
	if err != nil {
		return nil, err
	}

	if p.Cap > 0 && len(sampled) > p.Cap {
		return nil, fmt.Errorf("%w: %d candles remain after sampling, cap is %d",
			core.ErrRenderBudget, len(sampled), p.Cap)
	}

	return sampled, nil
}
