package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	s := New()
	assert.Equal(t, 0.0, s.OffsetX)
	assert.Equal(t, 1.0, s.Scale)
	assert.Equal(t, 1.0, s.PriceScale)
	assert.False(t, s.Dragging())
}

func TestDrag(t *testing.T) {
	s := New()
	s.OffsetX = 40

	s.UpdateDrag(500) // idle: ignored
	assert.Equal(t, 40.0, s.OffsetX)

	s.BeginDrag(100)
	assert.True(t, s.Dragging())
	anchor, ok := s.Anchor()
	assert.True(t, ok)
	assert.Equal(t, DragAnchor{PointerX: 100, OffsetXAtDragStart: 40}, anchor)

	s.UpdateDrag(160)
	assert.Equal(t, 100.0, s.OffsetX)
	s.UpdateDrag(-900)
	assert.Equal(t, -960.0, s.OffsetX)

	// returning to the anchor restores the starting offset
	s.UpdateDrag(100)
	assert.Equal(t, 40.0, s.OffsetX)

	s.EndDrag()
	assert.False(t, s.Dragging())
	s.EndDrag()
	assert.False(t, s.Dragging())
}

func TestDragReversible(t *testing.T) {
	s := New()
	s.BeginDrag(10)
	s.UpdateDrag(37.5)
	before := s.OffsetX
	s.UpdateDrag(-250)
	s.UpdateDrag(37.5)
	assert.Equal(t, before, s.OffsetX)
}

func TestZoomClamps(t *testing.T) {
	tests := []struct {
		name  string
		dir   Direction
		axis  Axis
		steps int
	}{
		{name: "time in", dir: ZoomIn, axis: AxisTime, steps: 200},
		{name: "time out", dir: ZoomOut, axis: AxisTime, steps: 200},
		{name: "price in", dir: ZoomIn, axis: AxisPrice, steps: 200},
		{name: "price out", dir: ZoomOut, axis: AxisPrice, steps: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			for i := 0; i < tt.steps; i++ {
				s.Zoom(tt.dir, tt.axis)
				assert.GreaterOrEqual(t, s.Scale, MinScale)
				assert.LessOrEqual(t, s.Scale, float64(MaxScale))
				assert.GreaterOrEqual(t, s.PriceScale, MinScale)
				assert.LessOrEqual(t, s.PriceScale, float64(MaxScale))
			}
			want := float64(MaxScale)
			if tt.dir == ZoomOut {
				want = MinScale
			}
			if tt.axis == AxisTime {
				assert.Equal(t, want, s.Scale)
				assert.Equal(t, 1.0, s.PriceScale)
			} else {
				assert.Equal(t, want, s.PriceScale)
				assert.Equal(t, 1.0, s.Scale)
			}
		})
	}
}

func TestZoomSingleStep(t *testing.T) {
	s := New()
	s.Zoom(ZoomIn, AxisTime)
	assert.InDelta(t, 1.1, s.Scale, 1e-12)
	s.Zoom(ZoomOut, AxisPrice)
	assert.InDelta(t, 0.9, s.PriceScale, 1e-12)
}

func TestPanDuringDrag(t *testing.T) {
	s := New()
	s.BeginDrag(0)
	s.Pan(25)
	assert.Equal(t, 25.0, s.OffsetX)
	s.UpdateDrag(10)
	assert.Equal(t, 35.0, s.OffsetX)
}
