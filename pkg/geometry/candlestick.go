package geometry

import (
	"fmt"

	"github.com/raykavin/chartkit/pkg/core"
	"github.com/raykavin/chartkit/pkg/scale"
)

// CandlestickBuilder emits one OHLC glyph per candle: a wick spanning
// [low, high] and a body spanning [open, close]. The bullish flag is a
// two-valued function of close >= open, derived at build time and not
// configurable per candle.
type CandlestickBuilder struct {
	// BodyFraction is the share of each candle slot occupied by the
	// body rectangle
	BodyFraction float64
}

// NewCandlestickBuilder returns a builder with the conventional body width
func NewCandlestickBuilder() CandlestickBuilder {
	return CandlestickBuilder{BodyFraction: 0.6}
}

// Build turns an OHLC series into candle glyphs. Entrance animation
// scales each glyph's vertical extent about its own midpoint, so the
// open/close relation stays readable during the reveal.
func (b CandlestickBuilder) Build(candles []core.Candle, m scale.Mapper, progress float64) (*Geometry, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("%w: empty candle collection", core.ErrInvalidData)
	}
	if b.BodyFraction <= 0 || b.BodyFraction > 1 {
		return nil, fmt.Errorf("%w: body fraction %v outside (0,1]", core.ErrConfiguration, b.BodyFraction)
	}

	for i, c := range candles {
		if _, err := core.NewCandle(c.Timestamp, c.Open, c.High, c.Low, c.Close, c.Volume); err != nil {
			return nil, fmt.Errorf("candle %d: %w", i, err)
		}
	}

	progress = clampProgress(progress)

	slot := 1.0 / float64(len(candles))
	halfBody := slot * b.BodyFraction / 2

	glyphs := make([]CandleGlyph, len(candles))
	for i, c := range candles {
		x := m.NormalizeX(float64(c.Timestamp.Unix()))

		wickTop := m.NormalizeY(c.High)
		wickBottom := m.NormalizeY(c.Low)
		bodyTop := m.NormalizeY(c.Close)
		bodyBottom := m.NormalizeY(c.Open)
		if bodyTop > bodyBottom {
			bodyTop, bodyBottom = bodyBottom, bodyTop
		}

		mid := (wickTop + wickBottom) / 2
		scaleAbout := func(y float64) float64 { return mid + (y-mid)*progress }

		glyphs[i] = CandleGlyph{
			PointID:    c.ID,
			Bullish:    c.Bullish(),
			WickX:      x,
			WickTop:    scaleAbout(wickTop),
			WickBottom: scaleAbout(wickBottom),
			Body: Bar{
				PointID: c.ID,
				Min:     Vec{X: x - halfBody, Y: scaleAbout(bodyTop)},
				Max:     Vec{X: x + halfBody, Y: scaleAbout(bodyBottom)},
			},
		}
	}

	return &Geometry{Candles: glyphs}, nil
}
