package chart

import "math"

// HoveredIndex returns the candle whose slot contains the pointer: the
// pointer must be strictly within half a slot of the candle centre, and the
// candle must be visible. At most one candle can match.
func HoveredIndex(p *Pointer, m Mapper) (int, bool) {
	if p == nil || m.count == 0 {
		return 0, false
	}
	slot := m.Slot()
	i := int(math.Round((p.X - m.CenterX(0)) / slot))
	if i < 0 || i >= m.count {
		return 0, false
	}
	if math.Abs(p.X-m.CenterX(i)) >= slot/2 || !m.Visible(i) {
		return 0, false
	}
	return i, true
}

// PriceAt returns the price under the pointer when it is within the plot's
// vertical extent.
func PriceAt(p *Pointer, m Mapper) (float64, bool) {
	if p == nil {
		return 0, false
	}
	plot := m.geom.PlotRect()
	if p.Y < plot.Y || p.Y > plot.Bottom() {
		return 0, false
	}
	return m.YToPrice(p.Y), true
}
