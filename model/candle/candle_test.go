package candle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBody(t *testing.T) {
	tests := []struct {
		name        string
		c           Candle
		bullish     bool
		top, bottom float64
	}{
		{"up", Candle{Open: 10, Close: 12}, true, 12, 10},
		{"down", Candle{Open: 12, Close: 10}, false, 12, 10},
		{"doji", Candle{Open: 11, Close: 11}, true, 11, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.bullish, tt.c.Bullish())
			assert.Equal(t, tt.top, tt.c.BodyTop())
			assert.Equal(t, tt.bottom, tt.c.BodyBottom())
		})
	}
}

func TestPriceRange(t *testing.T) {
	_, _, ok := PriceRange(nil)
	assert.False(t, ok)

	lo, hi, ok := PriceRange([]Candle{
		{High: 12, Low: 9},
		{High: 15, Low: 11},
		{High: 13, Low: 8},
	})
	assert.True(t, ok)
	assert.Equal(t, 8.0, lo)
	assert.Equal(t, 15.0, hi)
}
