package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yitech/candlesleek/chart"
	"github.com/yitech/candlesleek/model/candle"
	"github.com/yitech/candlesleek/render"
	"github.com/yitech/candlesleek/viewport"
)

func sample() []candle.Candle {
	return []candle.Candle{
		{DisplayTime: "9:15", Open: 10, High: 12, Low: 9, Close: 11, Timestamp: "2025-01-01T09:15:00"},
		{DisplayTime: "9:16", Open: 11, High: 13, Low: 10, Close: 10.5, Timestamp: "2025-01-01T09:16:00"},
		{DisplayTime: "9:17", Open: 10.5, High: 11, Low: 8, Close: 9, Timestamp: "2025-01-01T09:17:00"},
	}
}

func TestResetUsesPixelRatio(t *testing.T) {
	s := New()
	s.Reset(300, 200, 2)
	b := s.Image().Bounds()
	assert.Equal(t, 600, b.Dx())
	assert.Equal(t, 400, b.Dy())

	s.Reset(10.2, 10, 1.5)
	assert.Equal(t, 16, s.Image().Bounds().Dx())
}

func TestFillRect(t *testing.T) {
	s := New()
	s.Reset(10, 10, 2)
	s.FillRect(0, 0, 10, 10, "#000000")
	s.FillRect(2, 2, 3, 3, "#ff0000")

	r, g, b, _ := s.Image().At(5, 5).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)

	r, _, _, _ = s.Image().At(11, 11).RGBA()
	assert.Zero(t, r)
}

func TestBadColorDrawsBlack(t *testing.T) {
	s := New()
	assert.Equal(t, color.Black, s.color("not-a-color"))
}

func TestRenderIsPixelIdentical(t *testing.T) {
	g := chart.NewGeometry(640, 400, 2)
	p := &chart.Pointer{X: 300, Y: 200}
	vp := viewport.New()
	vp.Scale = 1.3

	var outs [2][]byte
	for i := range outs {
		s := New()
		render.Render(s, sample(), vp, p, g, render.DefaultTheme())
		var buf bytes.Buffer
		require.NoError(t, s.EncodePNG(&buf))
		outs[i] = buf.Bytes()
	}
	assert.Equal(t, outs[0], outs[1])

	img, err := png.Decode(bytes.NewReader(outs[0]))
	require.NoError(t, err)
	assert.Equal(t, 1280, img.Bounds().Dx())
	assert.Equal(t, 800, img.Bounds().Dy())
}

func TestRenderPaintsBackground(t *testing.T) {
	s := New()
	render.Render(s, sample(), viewport.New(), nil, chart.NewGeometry(400, 300, 1), render.DefaultTheme())

	// top-left corner is padding, so it keeps the background color
	r, g, b, _ := s.Image().At(1, 1).RGBA()
	assert.Equal(t, uint32(0x0a0a), r)
	assert.Equal(t, uint32(0x0a0a), g)
	assert.Equal(t, uint32(0x0a0a), b)
}
