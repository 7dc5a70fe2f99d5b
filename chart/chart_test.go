package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yitech/candlesleek/model/candle"
	"github.com/yitech/candlesleek/viewport"
)

func series(n int) []candle.Candle {
	out := make([]candle.Candle, n)
	for i := range out {
		base := 100 + float64(i)
		out[i] = candle.Candle{Open: base, High: base + 2, Low: base - 1, Close: base + 1}
	}
	return out
}

// 1000x600 with default padding: plot 850x480 at (90,60).
func testGeometry() Geometry {
	return NewGeometry(1000, 600, 1)
}

func TestMapper_Widths(t *testing.T) {
	m := NewMapper(series(10), viewport.New(), testGeometry())

	assert.InDelta(t, 85*0.7, m.CandleWidth(), 1e-9)
	assert.InDelta(t, 85*0.3, m.Spacing(), 1e-9)
	assert.InDelta(t, 85, m.Slot(), 1e-9)

	// many candles hit the floors
	m = NewMapper(series(5000), viewport.New(), testGeometry())
	assert.Equal(t, 2.0, m.CandleWidth())
	assert.Equal(t, 3.0, m.Spacing())
}

func TestMapper_PriceRange(t *testing.T) {
	candles := series(3) // low 99, high 104
	vp := viewport.New()
	m := NewMapper(candles, vp, testGeometry())
	lo, hi := m.PriceRange()
	assert.InDelta(t, 99-0.5, lo, 1e-9)
	assert.InDelta(t, 104+0.5, hi, 1e-9)

	vp.PriceScale = 5
	m = NewMapper(candles, vp, testGeometry())
	lo, hi = m.PriceRange()
	assert.InDelta(t, 99-0.1, lo, 1e-9)
	assert.InDelta(t, 104+0.1, hi, 1e-9)
}

func TestMapper_FlatSeries(t *testing.T) {
	flat := []candle.Candle{{Open: 5, High: 5, Low: 5, Close: 5}}
	m := NewMapper(flat, viewport.New(), testGeometry())
	lo, hi := m.PriceRange()
	assert.Less(t, lo, 5.0)
	assert.Greater(t, hi, 5.0)
	assert.InDelta(t, 5, m.YToPrice(m.PriceToY(5)), 1e-9)
}

func TestMapper_PriceRoundTrip(t *testing.T) {
	vp := viewport.New()
	vp.PriceScale = 3.3
	m := NewMapper(series(40), vp, testGeometry())
	lo, hi := m.PriceRange()

	for i := 0; i <= 100; i++ {
		p := lo + (hi-lo)*float64(i)/100
		assert.InDelta(t, p, m.YToPrice(m.PriceToY(p)), 1e-9)
	}

	plot := testGeometry().PlotRect()
	assert.InDelta(t, plot.Y, m.PriceToY(hi), 1e-9)
	assert.InDelta(t, plot.Bottom(), m.PriceToY(lo), 1e-9)
	assert.Less(t, m.PriceToY(hi-1), m.PriceToY(lo+1))
}

func TestMapper_IndexToX(t *testing.T) {
	vp := viewport.New()
	vp.OffsetX = -30
	m := NewMapper(series(10), vp, testGeometry())

	assert.InDelta(t, 90-30, m.IndexToX(0), 1e-9)
	assert.InDelta(t, 90-30+3*85, m.IndexToX(3), 1e-9)
	assert.InDelta(t, m.IndexToX(3)+m.CandleWidth()/2, m.CenterX(3), 1e-9)
}

func TestMapper_VisibleRange(t *testing.T) {
	tests := []struct {
		name      string
		offset    float64
		scale     float64
		wantOK    bool
		wantFirst int
		wantLast  int
	}{
		{name: "default shows all", offset: 0, scale: 1, wantOK: true, wantFirst: 0, wantLast: 9},
		{name: "zoomed in", offset: 0, scale: 4, wantOK: true, wantFirst: 0, wantLast: 2},
		{name: "panned right past data", offset: 5000, scale: 1, wantOK: false},
		{name: "panned left past data", offset: -5000, scale: 1, wantOK: false},
		{name: "panned half way", offset: -425, scale: 1, wantOK: true, wantFirst: 5, wantLast: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := viewport.New()
			vp.OffsetX = tt.offset
			vp.Scale = tt.scale
			m := NewMapper(series(10), vp, testGeometry())

			first, last, ok := m.VisibleRange()
			require.Equal(t, tt.wantOK, ok)
			for i := 0; i < m.Count(); i++ {
				assert.Equal(t, ok && i >= first && i <= last, m.Visible(i), "index %d", i)
			}
			if ok {
				assert.Equal(t, tt.wantFirst, first)
				assert.Equal(t, tt.wantLast, last)
			}
		})
	}
}

func TestMapper_LabelStride(t *testing.T) {
	stride := func(n int, scale float64) int {
		vp := viewport.New()
		vp.Scale = scale
		return NewMapper(series(n), vp, testGeometry()).LabelStride()
	}

	// 240 candles: slot 5.48 at scale 1 (spacing floor), gap 70.8
	assert.Equal(t, 13, stride(240, 1))
	assert.Equal(t, 7, stride(240, 3))
	assert.Equal(t, 3, stride(240, 9))
	assert.Equal(t, 1, stride(3, 1))
	assert.Equal(t, 3, stride(3, 0.1))
}

func TestHoveredIndex(t *testing.T) {
	m := NewMapper(series(10), viewport.New(), testGeometry())
	half := m.Slot() / 2

	_, ok := HoveredIndex(nil, m)
	assert.False(t, ok)

	for i := 0; i < 10; i++ {
		got, ok := HoveredIndex(&Pointer{X: m.CenterX(i), Y: 300}, m)
		require.True(t, ok)
		assert.Equal(t, i, got)

		got, ok = HoveredIndex(&Pointer{X: m.CenterX(i) + half*0.99, Y: 300}, m)
		require.True(t, ok)
		assert.Equal(t, i, got)
	}

	// exactly half a slot away belongs to neither neighbour
	_, ok = HoveredIndex(&Pointer{X: m.CenterX(4) + half, Y: 300}, m)
	assert.False(t, ok)

	// beyond the last candle
	_, ok = HoveredIndex(&Pointer{X: m.CenterX(9) + half + 1, Y: 300}, m)
	assert.False(t, ok)
	_, ok = HoveredIndex(&Pointer{X: m.CenterX(0) - half - 1, Y: 300}, m)
	assert.False(t, ok)
}

func TestHoveredIndex_CulledCandle(t *testing.T) {
	vp := viewport.New()
	vp.OffsetX = -2 * 85 // candle 0 sits entirely in the left padding
	m := NewMapper(series(10), vp, testGeometry())
	require.False(t, m.Visible(0))

	_, ok := HoveredIndex(&Pointer{X: m.CenterX(0), Y: 300}, m)
	assert.False(t, ok)
}

func TestPriceAt(t *testing.T) {
	m := NewMapper(series(10), viewport.New(), testGeometry())

	_, ok := PriceAt(nil, m)
	assert.False(t, ok)
	_, ok = PriceAt(&Pointer{X: 500, Y: 59}, m)
	assert.False(t, ok)
	_, ok = PriceAt(&Pointer{X: 500, Y: 541}, m)
	assert.False(t, ok)

	hiPrice, ok := PriceAt(&Pointer{X: 500, Y: 60}, m)
	require.True(t, ok)
	_, hi := m.PriceRange()
	assert.InDelta(t, hi, hiPrice, 1e-9)

	p, ok := PriceAt(&Pointer{X: 10, Y: 300}, m)
	require.True(t, ok)
	assert.InDelta(t, m.YToPrice(300), p, 1e-12)
}

func TestGeometry(t *testing.T) {
	g := testGeometry()
	assert.Equal(t, Rect{X: 90, Y: 60, W: 850, H: 480}, g.PlotRect())
	assert.True(t, g.OverPriceAxis(89))
	assert.False(t, g.OverPriceAxis(90))
	assert.Equal(t, 1.0, Geometry{}.Ratio())
	assert.Equal(t, 2.0, NewGeometry(1, 1, 2).Ratio())
}
