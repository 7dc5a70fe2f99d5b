// Package chart maps candle indices and prices onto drawing-surface
// coordinates and back. Everything here is pure and is rebuilt every frame.
package chart

// Padding is the space reserved around the plot for axes and labels.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// DefaultPadding suits pixel surfaces at roughly 13px label text.
var DefaultPadding = Padding{Top: 60, Right: 60, Bottom: 60, Left: 90}

// Geometry describes the drawing surface for one frame, in logical pixels.
type Geometry struct {
	Width, Height float64
	// PixelRatio is the backing-store scale factor (device pixels per
	// logical pixel). Values <= 0 are treated as 1.
	PixelRatio float64
	Padding    Padding
}

// NewGeometry returns a geometry with DefaultPadding.
func NewGeometry(width, height, pixelRatio float64) Geometry {
	return Geometry{Width: width, Height: height, PixelRatio: pixelRatio, Padding: DefaultPadding}
}

// Ratio returns the effective pixel ratio.
func (g Geometry) Ratio() float64 {
	if g.PixelRatio <= 0 {
		return 1
	}
	return g.PixelRatio
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// PlotRect is the area inside the padding where candles are drawn.
func (g Geometry) PlotRect() Rect {
	return Rect{
		X: g.Padding.Left,
		Y: g.Padding.Top,
		W: g.Width - g.Padding.Left - g.Padding.Right,
		H: g.Height - g.Padding.Top - g.Padding.Bottom,
	}
}

// OverPriceAxis reports whether x falls in the left padding that holds the
// price labels. Hosts use it to route wheel zoom to the price scale.
func (g Geometry) OverPriceAxis(x float64) bool {
	return x < g.Padding.Left
}

// Pointer is the last known pointer position in surface-local logical
// pixels. A nil *Pointer means the pointer is outside the surface.
type Pointer struct {
	X, Y float64
}
