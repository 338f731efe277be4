package drag

import "math"

// DefaultActivationDistance is how far, in cells, the pointer must travel
// after a press before the press becomes a drag.
const DefaultActivationDistance = 2

// PointerSensor turns press/move/release into drag lifecycle steps. A press
// that never travels the activation distance stays a click.
type PointerSensor struct {
	Activation int

	pressed bool
	active  bool
	id      ID
	origin  Point
	rect    Rect
	last    Point
}

// NewPointerSensor creates a sensor with the given activation distance; a
// non-positive distance uses the default.
func NewPointerSensor(activation int) *PointerSensor {
	if activation <= 0 {
		activation = DefaultActivationDistance
	}
	return &PointerSensor{Activation: activation}
}

// Press records a pointer-down on the draggable id whose box is rect.
func (s *PointerSensor) Press(id ID, rect Rect, at Point) {
	s.pressed = true
	s.active = false
	s.id = id
	s.origin = at
	s.last = at
	s.rect = rect
}

// Move reports the pointer's new position. activated is true exactly once,
// on the move that crosses the activation distance; the caller should begin
// the drag for ID() then.
func (s *PointerSensor) Move(at Point) (activated bool) {
	if !s.pressed {
		return false
	}
	s.last = at
	if s.active {
		return false
	}
	dx := float64(at.X - s.origin.X)
	dy := float64(at.Y - s.origin.Y)
	if math.Hypot(dx, dy) < float64(s.Activation) {
		return false
	}
	s.active = true
	return true
}

// Release ends the gesture. wasDrag is false for plain clicks.
func (s *PointerSensor) Release(at Point) (wasDrag bool) {
	if !s.pressed {
		return false
	}
	s.last = at
	wasDrag = s.active
	s.Reset()
	return wasDrag
}

// Reset forgets any pressed or active gesture
func (s *PointerSensor) Reset() {
	s.pressed = false
	s.active = false
	s.id = ""
}

// ID returns the pressed element
func (s *PointerSensor) ID() ID {
	return s.id
}

// Pressed reports whether the pointer is down on a draggable
func (s *PointerSensor) Pressed() bool {
	return s.pressed
}

// Dragging reports whether the press has become a drag
func (s *PointerSensor) Dragging() bool {
	return s.active
}

// DraggedRect is the pressed element's box moved along with the pointer.
func (s *PointerSensor) DraggedRect() Rect {
	return s.rect.Translate(s.last.X-s.origin.X, s.last.Y-s.origin.Y)
}
