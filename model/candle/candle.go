package candle

// Candle is one parsed OHLC row. Values are taken from the source as-is;
// High/Low are not checked against Open/Close.
type Candle struct {
	DisplayTime string // short "H:MM" label, or the raw timestamp
	Open        float64
	High        float64
	Low         float64
	Close       float64
	Timestamp   string // raw timestamp column
}

// Bullish reports whether the candle closed at or above its open.
func (c Candle) Bullish() bool {
	return c.Close >= c.Open
}

// BodyTop returns the upper edge of the open/close body.
func (c Candle) BodyTop() float64 {
	if c.Close > c.Open {
		return c.Close
	}
	return c.Open
}

// BodyBottom returns the lower edge of the open/close body.
func (c Candle) BodyBottom() float64 {
	if c.Close < c.Open {
		return c.Close
	}
	return c.Open
}

// PriceRange returns the lowest low and highest high across candles.
// ok is false for an empty slice.
func PriceRange(candles []Candle) (lo, hi float64, ok bool) {
	if len(candles) == 0 {
		return 0, 0, false
	}
	lo, hi = candles[0].Low, candles[0].High
	for _, c := range candles[1:] {
		if c.Low < lo {
			lo = c.Low
		}
		if c.High > hi {
			hi = c.High
		}
	}
	return lo, hi, true
}
