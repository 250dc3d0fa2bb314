package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRange(t *testing.T) {
	points := []Point{
		NewPoint(1, 10),
		NewPoint(2, 25),
		NewPoint(3, 15),
		NewPoint(4, 30),
	}

	r := ComputeRange(points)

	assert.Equal(t, 1.0, r.MinX)
	assert.Equal(t, 4.0, r.MaxX)
	assert.Equal(t, 10.0, r.MinY)
	assert.Equal(t, 30.0, r.MaxY)
}

func TestComputeRangeEmptyInputYieldsSentinel(t *testing.T) {
	r := ComputeRange(nil)

	assert.Equal(t, SentinelRange(), r)
	assert.Positive(t, r.WidthX())
	assert.Positive(t, r.WidthY())
}

func TestComputeRangeExpandsZeroWidthAxis(t *testing.T) {
	points := []Point{
		NewPoint(5, 10),
		NewPoint(5, 20),
	}

	r := ComputeRange(points)

	assert.Equal(t, 4.5, r.MinX)
	assert.Equal(t, 5.5, r.MaxX)
	assert.Positive(t, r.WidthX())
}

func TestComputeRangeZeroWidthUsesMagnitudeEpsilon(t *testing.T) {
	// 1% of 1000 beats the 0.5 floor
	points := []Point{NewPoint(1000, 1), NewPoint(1000, 2)}

	r := ComputeRange(points)

	assert.InDelta(t, 990.0, r.MinX, 1e-9)
	assert.InDelta(t, 1010.0, r.MaxX, 1e-9)
}

func TestComputeRangeWithDepth(t *testing.T) {
	points := []Point{
		New3DPoint(0, 0, 2),
		New3DPoint(1, 1, 8),
	}

	r := ComputeRange(points)

	require.True(t, r.HasZ)
	assert.Equal(t, 2.0, r.MinZ)
	assert.Equal(t, 8.0, r.MaxZ)
}

func TestComputeCandleRangeSpansWicks(t *testing.T) {
	base := time.Unix(1700000000, 0)

	c1, err := NewCandle(base, 10, 15, 8, 12, 0)
	require.NoError(t, err)
	c2, err := NewCandle(base.Add(time.Hour), 12, 20, 11, 18, 0)
	require.NoError(t, err)

	r := ComputeCandleRange([]Candle{c1, c2})

	assert.Equal(t, 8.0, r.MinY)
	assert.Equal(t, 20.0, r.MaxY)
	assert.Equal(t, float64(base.Unix()), r.MinX)
}
