// Package render paints a candlestick chart frame onto a Surface.
//
// Render is stateless: it reads the candles, viewport, pointer and geometry
// and writes only to the surface, so identical inputs always produce
// identical output.
package render

import (
	"math"
	"strconv"

	"github.com/yitech/candlesleek/chart"
	"github.com/yitech/candlesleek/model/candle"
	"github.com/yitech/candlesleek/viewport"
)

// Render draws one frame. With no candles, or a surface too small to hold
// a plot, only the background is painted.
func Render(s Surface, candles []candle.Candle, vp viewport.State, p *chart.Pointer, g chart.Geometry, th Theme) {
	s.Reset(g.Width, g.Height, g.Ratio())
	s.FillRect(0, 0, g.Width, g.Height, th.Palette.Background)

	plot := g.PlotRect()
	if len(candles) == 0 || plot.Empty() {
		return
	}

	d := &drawer{
		s:     s,
		m:     chart.NewMapper(candles, vp, g),
		plot:  plot,
		ratio: g.Ratio(),
		pal:   th.Palette,
		met:   th.Metrics,
	}

	hovered, isHovered := chart.HoveredIndex(p, d.m)

	d.grid()
	d.priceLabels()
	d.candles(candles)
	if isHovered {
		d.hoverLine(hovered)
	}
	d.timeLabels(candles)
	d.axes()
	if price, ok := chart.PriceAt(p, d.m); ok {
		d.priceCrosshair(p.Y, price)
	}
	if isHovered {
		d.tooltip(candles[hovered])
	}
}

type drawer struct {
	s     Surface
	m     chart.Mapper
	plot  chart.Rect
	ratio float64
	pal   Palette
	met   Metrics
}

// ── layers ────────────────────────────────────────────────────────────────────

func (d *drawer) grid() {
	st := Stroke{Color: d.pal.Grid, Width: d.met.GridWidth}
	for i := 0; i <= d.bands(); i++ {
		y := d.crisp(d.gridY(i), st.Width)
		d.s.StrokeLine(d.plot.X, y, d.plot.Right(), y, st)
	}
}

func (d *drawer) priceLabels() {
	lo, hi := d.m.PriceRange()
	n := d.bands()
	x := d.plot.X - d.met.PriceLabelGap
	for i := 0; i <= n; i++ {
		price := hi - (hi-lo)*float64(i)/float64(n)
		d.s.FillText(formatPrice(price), x, d.gridY(i), d.met.LabelFont, AlignRight, d.pal.Label)
	}
}

func (d *drawer) candles(candles []candle.Candle) {
	first, last, ok := d.m.VisibleRange()
	if !ok {
		return
	}
	w := d.m.CandleWidth()
	for i := first; i <= last; i++ {
		c := candles[i]
		color := d.pal.Bearish
		if c.Bullish() {
			color = d.pal.Bullish
		}

		x := d.m.IndexToX(i)
		cx := d.crisp(d.m.CenterX(i), d.met.WickWidth)
		d.s.StrokeLine(cx, d.m.PriceToY(c.High), cx, d.m.PriceToY(c.Low),
			Stroke{Color: color, Width: d.met.WickWidth})

		top := d.m.PriceToY(c.BodyTop())
		h := math.Max(d.met.MinBodyHeight, d.m.PriceToY(c.BodyBottom())-top)
		d.fillRect(x, top, w, h, color)
	}
}

func (d *drawer) hoverLine(i int) {
	st := d.crosshairStroke()
	x := d.crisp(d.m.CenterX(i), st.Width)
	d.s.StrokeLine(x, d.plot.Y, x, d.plot.Bottom(), st)
}

func (d *drawer) timeLabels(candles []candle.Candle) {
	first, last, ok := d.m.VisibleRange()
	if !ok {
		return
	}
	stride := d.m.LabelStride()
	y := d.plot.Bottom() + d.met.TimeLabelOffset
	// start at the first multiple of stride so labels stay pinned to the
	// same candles while panning
	for i := (first + stride - 1) / stride * stride; i <= last; i += stride {
		x := d.m.CenterX(i)
		if x < d.plot.X || x > d.plot.Right() {
			continue
		}
		d.s.FillText(candles[i].DisplayTime, x, y, d.met.LabelFont, AlignCenter, d.pal.Label)
	}
}

func (d *drawer) axes() {
	st := Stroke{Color: d.pal.Axis, Width: d.met.AxisWidth}
	x := d.crisp(d.plot.X, st.Width)
	y := d.crisp(d.plot.Bottom(), st.Width)
	d.s.StrokeLine(x, d.plot.Y, x, y, st)
	d.s.StrokeLine(x, y, d.plot.Right(), y, st)
}

func (d *drawer) priceCrosshair(py, price float64) {
	st := d.crosshairStroke()
	y := d.crisp(py, st.Width)
	d.s.StrokeLine(d.plot.X, y, d.plot.Right(), y, st)

	bw, bh := d.met.BadgeWidth, d.met.BadgeHeight
	d.fillRect(d.plot.X-bw-d.met.BadgeGap, py-bh/2, bw, bh, d.pal.Badge)
	d.s.FillText(formatPrice(price), d.plot.X-d.met.BadgeInset, py, d.met.BadgeFont, AlignRight, d.pal.BadgeText)
}

func (d *drawer) tooltip(c candle.Candle) {
	bx := d.plot.X + d.met.TooltipMargin
	by := d.plot.Y + d.met.TooltipMargin
	d.fillRect(bx, by, d.met.TooltipWidth, d.met.TooltipHeight, d.pal.Tooltip)

	closeColor := d.pal.Bearish
	if c.Bullish() {
		closeColor = d.pal.Bullish
	}
	fields := []struct {
		label string
		value float64
		color Color
	}{
		{"O", c.Open, d.pal.TooltipText},
		{"H", c.High, d.pal.TooltipText},
		{"L", c.Low, d.pal.TooltipText},
		{"C", c.Close, closeColor},
	}

	x := bx + d.met.TooltipInset
	for _, f := range fields {
		d.s.FillText(f.label+": "+formatPrice(f.value), x, by+d.met.TooltipRow1, d.met.TooltipFont, AlignLeft, f.color)
		x += d.met.TooltipColumn
	}
	d.s.FillText(c.Timestamp, bx+d.met.TooltipInset, by+d.met.TooltipRow2, d.met.TimestampFont, AlignLeft, d.pal.Timestamp)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (d *drawer) bands() int {
	return max(1, d.met.GridBands)
}

func (d *drawer) gridY(i int) float64 {
	return d.plot.Y + d.plot.H*float64(i)/float64(d.bands())
}

func (d *drawer) crosshairStroke() Stroke {
	return Stroke{Color: d.pal.Crosshair, Width: d.met.CrosshairWidth, Dash: d.met.CrosshairDash}
}

// crisp snaps a line coordinate so the stroke covers whole device pixels:
// odd device widths are centred on a pixel, even widths on a pixel edge.
func (d *drawer) crisp(v, width float64) float64 {
	dw := int(math.Round(width * d.ratio))
	if dw%2 == 1 {
		return (math.Floor(v*d.ratio) + 0.5) / d.ratio
	}
	return math.Round(v*d.ratio) / d.ratio
}

// fillRect snaps rectangle edges to device pixel boundaries.
func (d *drawer) fillRect(x, y, w, h float64, c Color) {
	x0 := math.Round(x*d.ratio) / d.ratio
	y0 := math.Round(y*d.ratio) / d.ratio
	x1 := math.Round((x+w)*d.ratio) / d.ratio
	y1 := math.Round((y+h)*d.ratio) / d.ratio
	px := 1 / d.ratio
	d.s.FillRect(x0, y0, math.Max(px, x1-x0), math.Max(px, y1-y0), c)
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}
