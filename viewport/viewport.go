// Package viewport holds the pan/zoom transform between candle space and
// the drawing surface, plus the bookkeeping for an in-progress drag.
package viewport

// Zoom bounds and step factors shared by both axes.
const (
	MinScale = 0.1
	MaxScale = 10

	zoomInFactor  = 1.1
	zoomOutFactor = 0.9
)

// Direction is the sense of a zoom step.
type Direction int

const (
	ZoomIn Direction = iota
	ZoomOut
)

// Axis selects which scale a zoom step applies to.
type Axis int

const (
	AxisTime  Axis = iota // horizontal, candle width
	AxisPrice             // vertical, price headroom
)

// DragAnchor records where a drag started.
type DragAnchor struct {
	PointerX           float64
	OffsetXAtDragStart float64
}

// State is the mutable viewport. The zero value is not usable; start from New.
type State struct {
	OffsetX    float64
	Scale      float64
	PriceScale float64

	drag *DragAnchor
}

// New returns the neutral view: no pan, both scales at 1, idle.
func New() State {
	return State{Scale: 1, PriceScale: 1}
}

// Dragging reports whether a drag gesture is active.
func (s *State) Dragging() bool {
	return s.drag != nil
}

// Anchor returns the active drag anchor, if any.
func (s *State) Anchor() (DragAnchor, bool) {
	if s.drag == nil {
		return DragAnchor{}, false
	}
	return *s.drag, true
}

// BeginDrag anchors a drag at pointerX. A second call restarts the gesture
// from the current offset.
func (s *State) BeginDrag(pointerX float64) {
	s.drag = &DragAnchor{PointerX: pointerX, OffsetXAtDragStart: s.OffsetX}
}

// UpdateDrag moves the view by the pointer distance from the anchor.
// It does nothing when no drag is active. Panning is not clamped to the
// data extent; candles pushed off screen are culled at render time.
func (s *State) UpdateDrag(pointerX float64) {
	if s.drag == nil {
		return
	}
	s.OffsetX = s.drag.OffsetXAtDragStart + (pointerX - s.drag.PointerX)
}

// EndDrag finishes the gesture. Safe to call when idle.
func (s *State) EndDrag() {
	s.drag = nil
}

// Pan shifts the view by dx logical pixels outside of a drag gesture.
func (s *State) Pan(dx float64) {
	s.OffsetX += dx
	if s.drag != nil {
		a := *s.drag
		a.OffsetXAtDragStart += dx
		s.drag = &a
	}
}

// Zoom applies one step to the chosen axis and clamps the result.
func (s *State) Zoom(dir Direction, axis Axis) {
	factor := zoomInFactor
	if dir == ZoomOut {
		factor = zoomOutFactor
	}
	switch axis {
	case AxisPrice:
		s.PriceScale = clampScale(s.PriceScale * factor)
	default:
		s.Scale = clampScale(s.Scale * factor)
	}
}

func clampScale(v float64) float64 {
	return min(MaxScale, max(MinScale, v))
}
