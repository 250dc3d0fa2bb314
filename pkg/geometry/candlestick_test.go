package geometry

import (
	"testing"
	"time"

	"github.com/raykavin/chartkit/pkg/core"
	"github.com/raykavin/chartkit/pkg/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCandles(t *testing.T) []core.Candle {
	t.Helper()

	base := time.Unix(1700000000, 0)
	up, err := core.NewCandle(base, 10, 16, 9, 15, 100)
	require.NoError(t, err)
	down, err := core.NewCandle(base.Add(time.Hour), 15, 17, 11, 12, 80)
	require.NoError(t, err)

	return []core.Candle{up, down}
}

func candleMapper(candles []core.Candle) scale.Mapper {
	return scale.New(core.ComputeCandleRange(candles))
}

func TestCandlestickGlyphs(t *testing.T) {
	candles := testCandles(t)
	m := candleMapper(candles)

	geom, err := NewCandlestickBuilder().Build(candles, m, 1)
	require.NoError(t, err)
	require.Len(t, geom.Candles, 2)

	up, down := geom.Candles[0], geom.Candles[1]

	assert.True(t, up.Bullish)
	assert.False(t, down.Bullish)

	// wick spans [low, high]; first candle touches the global extremes
	assert.InDelta(t, 1.0, up.WickBottom, 1e-9) // low=9 is the range minimum
	assert.InDelta(t, m.NormalizeY(16), up.WickTop, 1e-9)

	// body spans [open, close] inside the wick
	assert.InDelta(t, m.NormalizeY(15), up.Body.Min.Y, 1e-9)
	assert.InDelta(t, m.NormalizeY(10), up.Body.Max.Y, 1e-9)
	assert.LessOrEqual(t, up.WickTop, up.Body.Min.Y)
	assert.GreaterOrEqual(t, up.WickBottom, up.Body.Max.Y)
}

func TestCandlestickScalesAboutWickMidpoint(t *testing.T) {
	candles := testCandles(t)
	m := candleMapper(candles)

	full, err := NewCandlestickBuilder().Build(candles, m, 1)
	require.NoError(t, err)
	half, err := NewCandlestickBuilder().Build(candles, m, 0.5)
	require.NoError(t, err)
	zero, err := NewCandlestickBuilder().Build(candles, m, 0)
	require.NoError(t, err)

	for i := range candles {
		mid := (full.Candles[i].WickTop + full.Candles[i].WickBottom) / 2

		// at zero progress the glyph collapses to its midpoint
		assert.InDelta(t, mid, zero.Candles[i].WickTop, 1e-9)
		assert.InDelta(t, mid, zero.Candles[i].WickBottom, 1e-9)

		fullSpan := full.Candles[i].WickBottom - full.Candles[i].WickTop
		halfSpan := half.Candles[i].WickBottom - half.Candles[i].WickTop
		assert.InDelta(t, fullSpan*0.5, halfSpan, 1e-9)

		// midpoint itself never moves
		halfMid := (half.Candles[i].WickTop + half.Candles[i].WickBottom) / 2
		assert.InDelta(t, mid, halfMid, 1e-9)
	}
}

func TestCandlestickRejectsInvalidCandle(t *testing.T) {
	candles := testCandles(t)

	// corrupt a copy after construction to bypass NewCandle
	candles[1].Low = candles[1].Close + 1

	_, err := NewCandlestickBuilder().Build(candles, candleMapper(candles), 1)
	assert.ErrorIs(t, err, core.ErrInvalidData)
}

func TestCandlestickRejectsBadBodyFraction(t *testing.T) {
	candles := testCandles(t)

	_, err := CandlestickBuilder{BodyFraction: 0}.Build(candles, candleMapper(candles), 1)
	assert.ErrorIs(t, err, core.ErrConfiguration)

	_, err = CandlestickBuilder{BodyFraction: 1.5}.Build(candles, candleMapper(candles), 1)
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestCandlestickRejectsEmptyInput(t *testing.T) {
	_, err := NewCandlestickBuilder().Build(nil, scale.New(core.SentinelRange()), 1)
	assert.ErrorIs(t, err, core.ErrInvalidData)
}
