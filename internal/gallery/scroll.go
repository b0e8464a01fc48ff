package gallery

import "github.com/go-gl/mathgl/mgl32"

// Input sensitivities, in scroll units per browser pixel.
const (
	WheelSensitivity = 0.005
	DragSensitivity  = 0.02
)

// ScrollState is the interaction offset along the gallery axis.
// Target is where input wants the camera; Current is where it is.
type ScrollState struct {
	Target  float32
	Current float32
	Min     float32
	Max     float32
}

// NewScrollState returns a state bounded to [-slack, maxScroll+slack].
func NewScrollState(maxScroll, slack float32) *ScrollState {
	return &ScrollState{Min: -slack, Max: maxScroll + slack}
}

// Clamp pulls Target back into bounds.
func (s *ScrollState) Clamp() {
	s.Target = mgl32.Clamp(s.Target, s.Min, s.Max)
}

// Locker reports whether scroll input is currently suspended.
type Locker interface {
	Inspecting() bool
}

// ScrollController turns wheel and drag input into a bounded target offset.
// It ignores input while its Locker reports an inspection in progress.
type ScrollController struct {
	State   *ScrollState
	Pointer *PointerState
	Lock    Locker

	WheelSensitivity float32
	DragSensitivity  float32
}

// NewScrollController creates a controller with the standard sensitivities.
func NewScrollController(state *ScrollState, pointer *PointerState, lock Locker) *ScrollController {
	if pointer == nil {
		pointer = &PointerState{}
	}
	return &ScrollController{
		State:            state,
		Pointer:          pointer,
		Lock:             lock,
		WheelSensitivity: WheelSensitivity,
		DragSensitivity:  DragSensitivity,
	}
}

func (c *ScrollController) locked() bool {
	return c.Lock != nil && c.Lock.Inspecting()
}

// ApplyWheel adds deltaY (browser wheel units) to the target.
// Returns false when input is locked.
func (c *ScrollController) ApplyWheel(deltaY float32) bool {
	if c.locked() {
		return false
	}
	c.State.Target += deltaY * c.WheelSensitivity
	c.State.Clamp()
	return true
}

// BeginDrag starts a horizontal drag at pixel x. Drags cannot begin while
// locked.
func (c *ScrollController) BeginDrag(x float32) {
	c.Pointer.DragOriginX = x
	c.Pointer.Dragging = !c.locked()
}

// MoveDrag moves the drag to pixel x. Dragging left scrolls forward.
func (c *ScrollController) MoveDrag(x float32) bool {
	if c.locked() || !c.Pointer.Dragging {
		return false
	}
	deltaX := x - c.Pointer.DragOriginX
	c.State.Target -= deltaX * c.DragSensitivity
	c.State.Clamp()
	c.Pointer.DragOriginX = x
	return true
}

// EndDrag finishes a drag.
func (c *ScrollController) EndDrag() {
	c.Pointer.Dragging = false
}
