package chart

import (
	"math"

	"github.com/yitech/candlesleek/model/candle"
	"github.com/yitech/candlesleek/viewport"
)

const (
	minCandleWidth = 2
	minSpacing     = 3

	bodyShare    = 0.7
	spacingShare = 0.3

	// headroom is the fraction of the price range added above and below
	// before the price scale is applied.
	headroom = 0.1

	// labelsPerPlot is the target number of time labels across the plot
	// at the default zoom.
	labelsPerPlot = 12
)

// Mapper converts between (index, price) and surface coordinates for a
// single frame. Build a new one whenever data, viewport or geometry change.
type Mapper struct {
	geom    Geometry
	offsetX float64
	count   int

	candleWidth float64
	spacing     float64

	minPrice float64
	maxPrice float64
}

// NewMapper derives the frame's mapping. candles must not be empty.
//
// The price range spans every candle, not just the visible ones, so the
// vertical scale does not jump while panning.
func NewMapper(candles []candle.Candle, vp viewport.State, g Geometry) Mapper {
	lo, hi, _ := candle.PriceRange(candles)
	if hi == lo {
		lo, hi = lo-1, hi+1
	}
	pad := (hi - lo) * headroom / vp.PriceScale

	count := len(candles)
	base := g.PlotRect().W / float64(max(count, 1))

	return Mapper{
		geom:        g,
		offsetX:     vp.OffsetX,
		count:       count,
		candleWidth: math.Max(minCandleWidth, base*vp.Scale*bodyShare),
		spacing:     math.Max(minSpacing, base*vp.Scale*spacingShare),
		minPrice:    lo - pad,
		maxPrice:    hi + pad,
	}
}

// Geometry returns the geometry the mapper was built with.
func (m Mapper) Geometry() Geometry { return m.geom }

// Count returns the number of candles.
func (m Mapper) Count() int { return m.count }

// CandleWidth is the body width in logical pixels.
func (m Mapper) CandleWidth() float64 { return m.candleWidth }

// Spacing is the gap between neighbouring bodies.
func (m Mapper) Spacing() float64 { return m.spacing }

// Slot is the horizontal distance between consecutive candles.
func (m Mapper) Slot() float64 { return m.candleWidth + m.spacing }

// PriceRange returns the padded price range mapped onto the plot height.
func (m Mapper) PriceRange() (lo, hi float64) { return m.minPrice, m.maxPrice }

// IndexToX returns the left edge of candle i's body.
func (m Mapper) IndexToX(i int) float64 {
	return m.geom.Padding.Left + m.offsetX + float64(i)*m.Slot()
}

// CenterX returns the x coordinate of candle i's wick.
func (m Mapper) CenterX(i int) float64 {
	return m.IndexToX(i) + m.candleWidth/2
}

// PriceToY maps a price onto the plot; higher prices get smaller y.
func (m Mapper) PriceToY(p float64) float64 {
	plot := m.geom.PlotRect()
	return plot.Y + plot.H*(1-(p-m.minPrice)/(m.maxPrice-m.minPrice))
}

// YToPrice is the inverse of PriceToY.
func (m Mapper) YToPrice(y float64) float64 {
	plot := m.geom.PlotRect()
	return m.minPrice + (1-(y-plot.Y)/plot.H)*(m.maxPrice-m.minPrice)
}

// Visible reports whether any part of candle i's body can land inside the
// horizontal plot bounds.
func (m Mapper) Visible(i int) bool {
	x := m.IndexToX(i)
	return x+m.candleWidth >= m.geom.Padding.Left && x <= m.geom.Width-m.geom.Padding.Right
}

// VisibleRange returns the inclusive index range of visible candles.
func (m Mapper) VisibleRange() (first, last int, ok bool) {
	if m.count == 0 {
		return 0, 0, false
	}
	slot := m.Slot()
	base := m.geom.Padding.Left + m.offsetX

	first = int(math.Ceil((m.geom.Padding.Left - m.candleWidth - base) / slot))
	last = int(math.Floor((m.geom.Width - m.geom.Padding.Right - base) / slot))
	first = max(first, 0)
	last = min(last, m.count-1)

	// settle rounding at the edges against the exact predicate
	for first > 0 && m.Visible(first-1) {
		first--
	}
	for first <= last && !m.Visible(first) {
		first++
	}
	for last < m.count-1 && m.Visible(last+1) {
		last++
	}
	for last >= first && !m.Visible(last) {
		last--
	}
	if first > last {
		return 0, 0, false
	}
	return first, last, true
}

// LabelStride returns how many candles separate consecutive time labels.
// It keeps labels at least a twelfth of the plot width apart, so they get
// denser as the horizontal scale grows.
func (m Mapper) LabelStride() int {
	gap := m.geom.PlotRect().W / labelsPerPlot
	if gap <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(gap/m.Slot())))
}
