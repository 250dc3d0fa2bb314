package core

import (
	"fmt"
	"time"
)

// Candle represents a single OHLC entry of a candlestick series
type Candle struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume,omitempty"`
}

// NewCandle creates a candle and enforces the OHLC ordering invariant:
// low ≤ min(open, close) ≤ max(open, close) ≤ high. Violating input is
// rejected, never clamped.
func NewCandle(ts time.Time, open, high, low, close, volume float64) (Candle, error) {
	for _, v := range []float64{open, high, low, close, volume} {
		if !isFinite(v) {
			return Candle{}, fmt.Errorf("%w: non-finite OHLCV value %v", ErrInvalidData, v)
		}
	}

	bodyLow, bodyHigh := open, close
	if bodyLow > bodyHigh {
		bodyLow, bodyHigh = bodyHigh, bodyLow
	}

	if low > bodyLow || high < bodyHigh {
		return Candle{}, fmt.Errorf(
			"%w: OHLC invariant violated (open=%v high=%v low=%v close=%v)",
			ErrInvalidData, open, high, low, close)
	}

	return Candle{
		ID:        nextPointID(),
		Timestamp: ts,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     close,
		Volume:    volume,
	}, nil
}

// Bullish reports whether the candle closed at or above its open.
// This is derived, never stored, so body coloring stays a pure function.
func (c Candle) Bullish() bool {
	return c.Close >= c.Open
}

// GetTime returns the timestamp of the candle
func (c Candle) GetTime() time.Time { return c.Timestamp }

// RadarValue is one category axis of a radar chart
type RadarValue struct {
	ID       int64   `json:"id"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Max      float64 `json:"max"`
}

// NewRadarValue creates a radar entry. Max must be strictly positive;
// Value > Max is rejected later by the radar builder unless overflow
// rendering is enabled there.
func NewRadarValue(category string, value, max float64) (RadarValue, error) {
	if !isFinite(value) || !isFinite(max) {
		return RadarValue{}, fmt.Errorf("%w: non-finite radar value", ErrInvalidData)
	}
	if max <= 0 {
		return RadarValue{}, fmt.Errorf("%w: radar max must be positive, got %v", ErrInvalidData, max)
	}

	return RadarValue{
		ID:       nextPointID(),
		Category: category,
		Value:    value,
		Max:      max,
	}, nil
}
