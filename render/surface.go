package render

// Color is a "#rrggbb" hex string. Surfaces convert it to their own color
// representation.
type Color string

// Align is the horizontal anchor of a text run.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Font selects text size (logical pixels) and weight.
type Font struct {
	Size float64 `yaml:"size"`
	Bold bool    `yaml:"bold"`
}

// Stroke describes a line. Width is in logical pixels; a non-empty Dash
// alternates on/off lengths, also in logical pixels.
type Stroke struct {
	Color Color
	Width float64
	Dash  []float64
}

// Surface is a 2D drawing target addressed in logical pixels. Surfaces map
// logical pixels to their backing store using the ratio given to Reset.
type Surface interface {
	// Reset sizes the backing store to width*pixelRatio by
	// height*pixelRatio and clears it.
	Reset(width, height, pixelRatio float64)
	FillRect(x, y, w, h float64, c Color)
	StrokeLine(x0, y0, x1, y1 float64, st Stroke)
	// FillText draws text whose vertical middle sits at y; x is the left,
	// centre or right edge depending on align.
	FillText(text string, x, y float64, f Font, align Align, c Color)
}
