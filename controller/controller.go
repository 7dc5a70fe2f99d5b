// Package controller turns host input events into viewport and pointer
// changes and owns the loaded candles.
//
// A Controller is meant to be driven from a single goroutine (the host's
// event loop). Every mutation is followed by one call to the change hook so
// the host can redraw; Frame hands the renderer a consistent copy.
package controller

import (
	"github.com/yitech/candlesleek/chart"
	"github.com/yitech/candlesleek/model/candle"
	"github.com/yitech/candlesleek/parser"
	"github.com/yitech/candlesleek/render"
	"github.com/yitech/candlesleek/viewport"
)

// Frame is everything one render needs.
type Frame struct {
	Candles  []candle.Candle
	View     viewport.State
	Pointer  *chart.Pointer
	Geometry chart.Geometry
}

// Controller is the only writer of the viewport and pointer state.
type Controller struct {
	candles  []candle.Candle
	view     viewport.State
	pointer  *chart.Pointer
	geom     chart.Geometry
	onChange func()
}

// New returns a controller with no data. onChange may be nil.
func New(g chart.Geometry, onChange func()) *Controller {
	return &Controller{
		view:     viewport.New(),
		geom:     g,
		onChange: onChange,
	}
}

// Load parses text and, on success, replaces the data and resets the view.
// On failure the previous data stays in place.
func (c *Controller) Load(text string) error {
	candles, err := parser.Parse(text)
	if err != nil {
		return err
	}
	c.replace(candles)
	return nil
}

// LoadFile is Load for a file on disk.
func (c *Controller) LoadFile(path string) error {
	candles, err := parser.LoadFile(path)
	if err != nil {
		return err
	}
	c.replace(candles)
	return nil
}

// Set replaces the data with candles already parsed elsewhere, for hosts
// that parse off their event loop. An empty slice clears the controller.
func (c *Controller) Set(candles []candle.Candle) {
	if len(candles) == 0 {
		c.Clear()
		return
	}
	c.replace(candles)
}

// Clear drops the data, pointer and any drag in progress.
func (c *Controller) Clear() {
	c.candles = nil
	c.pointer = nil
	c.view = viewport.New()
	c.changed()
}

// HasData reports whether candles are loaded.
func (c *Controller) HasData() bool {
	return len(c.candles) > 0
}

// Len returns the number of loaded candles.
func (c *Controller) Len() int {
	return len(c.candles)
}

// View returns a copy of the viewport.
func (c *Controller) View() viewport.State {
	return c.view
}

// Geometry returns the current surface geometry.
func (c *Controller) Geometry() chart.Geometry {
	return c.geom
}

// PointerDown starts a drag at x.
func (c *Controller) PointerDown(x, y float64) {
	if !c.HasData() {
		return
	}
	c.pointer = &chart.Pointer{X: x, Y: y}
	c.view.BeginDrag(x)
	c.changed()
}

// PointerMove records the pointer and pans when a drag is active.
func (c *Controller) PointerMove(x, y float64) {
	if !c.HasData() {
		return
	}
	c.pointer = &chart.Pointer{X: x, Y: y}
	if c.view.Dragging() {
		c.view.UpdateDrag(x)
	}
	c.changed()
}

// PointerUp ends a drag.
func (c *Controller) PointerUp() {
	if !c.HasData() {
		return
	}
	c.view.EndDrag()
	c.changed()
}

// PointerLeave ends a drag and forgets the pointer, so a release outside
// the surface cannot leave the view stuck in a drag.
func (c *Controller) PointerLeave() {
	if !c.HasData() {
		return
	}
	c.view.EndDrag()
	c.pointer = nil
	c.changed()
}

// Wheel zooms the price scale when x is over the price axis and the time
// scale otherwise. Positive deltaY zooms out. It returns true when the host
// should suppress its default scroll handling.
func (c *Controller) Wheel(x, deltaY float64) bool {
	if !c.HasData() {
		return false
	}
	switch {
	case deltaY > 0:
		c.ZoomAt(x, viewport.ZoomOut)
	case deltaY < 0:
		c.ZoomAt(x, viewport.ZoomIn)
	}
	return true
}

// ZoomAt applies one zoom step on the axis under x.
func (c *Controller) ZoomAt(x float64, dir viewport.Direction) {
	if !c.HasData() {
		return
	}
	axis := viewport.AxisTime
	if c.geom.OverPriceAxis(x) {
		axis = viewport.AxisPrice
	}
	c.view.Zoom(dir, axis)
	c.changed()
}

// Pan shifts the view by dx logical pixels.
func (c *Controller) Pan(dx float64) {
	if !c.HasData() {
		return
	}
	c.view.Pan(dx)
	c.changed()
}

// ResetView restores the neutral viewport without touching the data.
func (c *Controller) ResetView() {
	if !c.HasData() {
		return
	}
	c.view = viewport.New()
	c.changed()
}

// Resize adopts a new surface size, keeping padding and pixel ratio.
func (c *Controller) Resize(width, height float64) {
	c.geom.Width, c.geom.Height = width, height
	c.changed()
}

// SetGeometry replaces the whole surface geometry.
func (c *Controller) SetGeometry(g chart.Geometry) {
	c.geom = g
	c.changed()
}

// Hovered returns the candle under the pointer, if any.
func (c *Controller) Hovered() (candle.Candle, bool) {
	if !c.HasData() || c.geom.PlotRect().Empty() {
		return candle.Candle{}, false
	}
	i, ok := chart.HoveredIndex(c.pointer, chart.NewMapper(c.candles, c.view, c.geom))
	if !ok {
		return candle.Candle{}, false
	}
	return c.candles[i], true
}

// Frame returns a snapshot safe to render while the controller moves on.
// The candle slice is shared; it is never modified after a load.
func (c *Controller) Frame() Frame {
	f := Frame{
		Candles:  c.candles,
		View:     c.view,
		Geometry: c.geom,
	}
	if c.pointer != nil {
		p := *c.pointer
		f.Pointer = &p
	}
	return f
}

// Render draws the current frame onto s. Without data nothing is drawn.
func (c *Controller) Render(s render.Surface, th render.Theme) {
	if !c.HasData() {
		return
	}
	f := c.Frame()
	render.Render(s, f.Candles, f.View, f.Pointer, f.Geometry, th)
}

func (c *Controller) replace(candles []candle.Candle) {
	c.candles = candles
	c.view = viewport.New()
	c.changed()
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
