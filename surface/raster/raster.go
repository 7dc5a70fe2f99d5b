// Package raster is a render.Surface that draws into an RGBA image with
// fogleman/gg. Logical coordinates are multiplied by the pixel ratio and
// fonts are rasterised at the device size, so text and 1px lines stay sharp
// on high-density backing stores.
package raster

import (
	"image"
	"image/color"
	"io"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"

	"github.com/yitech/candlesleek/render"
)

var (
	fontsOnce sync.Once
	regular   *truetype.Font
	bold      *truetype.Font
	fontsErr  error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regular, fontsErr = truetype.Parse(gomono.TTF); fontsErr != nil {
			return
		}
		bold, fontsErr = truetype.Parse(gomonobold.TTF)
	})
	return fontsErr
}

type faceKey struct {
	size float64
	bold bool
}

// Surface is an in-memory raster canvas. It is not safe for concurrent use.
type Surface struct {
	dc     *gg.Context
	ratio  float64
	faces  map[faceKey]font.Face
	colors map[render.Color]color.Color
}

// New returns a 1x1 surface; Reset sizes it.
func New() *Surface {
	s := &Surface{
		faces:  make(map[faceKey]font.Face),
		colors: make(map[render.Color]color.Color),
	}
	s.Reset(1, 1, 1)
	return s
}

func (s *Surface) Reset(width, height, pixelRatio float64) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	if pixelRatio != s.ratio {
		s.faces = make(map[faceKey]font.Face)
	}
	s.ratio = pixelRatio
	w := max(1, int(math.Ceil(width*pixelRatio)))
	h := max(1, int(math.Ceil(height*pixelRatio)))
	s.dc = gg.NewContext(w, h)
}

func (s *Surface) FillRect(x, y, w, h float64, c render.Color) {
	r := s.ratio
	s.dc.DrawRectangle(x*r, y*r, w*r, h*r)
	s.dc.SetColor(s.color(c))
	s.dc.Fill()
}

func (s *Surface) StrokeLine(x0, y0, x1, y1 float64, st render.Stroke) {
	r := s.ratio
	dash := make([]float64, len(st.Dash))
	for i, v := range st.Dash {
		dash[i] = v * r
	}
	s.dc.SetDash(dash...)
	s.dc.SetLineWidth(st.Width * r)
	s.dc.SetLineCapButt()
	s.dc.SetColor(s.color(st.Color))
	s.dc.DrawLine(x0*r, y0*r, x1*r, y1*r)
	s.dc.Stroke()
	s.dc.SetDash()
}

func (s *Surface) FillText(text string, x, y float64, f render.Font, align render.Align, c render.Color) {
	face := s.face(f)
	if face == nil {
		return
	}
	var ax float64
	switch align {
	case render.AlignCenter:
		ax = 0.5
	case render.AlignRight:
		ax = 1
	}
	s.dc.SetFontFace(face)
	s.dc.SetColor(s.color(c))
	s.dc.DrawStringAnchored(text, x*s.ratio, y*s.ratio, ax, 0.35)
}

// Image returns the backing image at device resolution.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// EncodePNG writes the backing image as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

func (s *Surface) face(f render.Font) font.Face {
	if err := loadFonts(); err != nil {
		return nil
	}
	key := faceKey{size: f.Size * s.ratio, bold: f.Bold}
	if face, ok := s.faces[key]; ok {
		return face
	}
	ttf := regular
	if f.Bold {
		ttf = bold
	}
	face := truetype.NewFace(ttf, &truetype.Options{Size: key.size, DPI: 72, Hinting: font.HintingFull})
	s.faces[key] = face
	return face
}

// color parses a hex palette entry; unparsable values draw black.
func (s *Surface) color(c render.Color) color.Color {
	if v, ok := s.colors[c]; ok {
		return v
	}
	var out color.Color = color.Black
	if v, err := colorful.Hex(string(c)); err == nil {
		out = v
	}
	s.colors[c] = out
	return out
}
