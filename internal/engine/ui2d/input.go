package ui2d

// InputState holds the pointer state the overlay reads each frame.
type InputState struct {
	MouseX float32
	MouseY float32

	MouseLeftDown bool

	// Edges computed by Update.
	MouseLeftPressed  bool
	MouseLeftReleased bool

	// MouseLeftClicked is set by the event pump for a completed click and
	// cleared by the first widget that consumes it.
	MouseLeftClicked bool

	prevMouseLeft bool
}

// Update prepares input state for a new frame.
// Call this at the start of each frame after updating raw input values.
func (i *InputState) Update() {
	i.MouseLeftPressed = i.MouseLeftDown && !i.prevMouseLeft
	i.MouseLeftReleased = !i.MouseLeftDown && i.prevMouseLeft
	i.prevMouseLeft = i.MouseLeftDown
}

// EndFrame clears per-frame input state.
func (i *InputState) EndFrame() {
	i.MouseLeftClicked = false
}

// IsMouseInRect checks if the mouse is within a rectangle.
func (i *InputState) IsMouseInRect(x, y, w, h float32) bool {
	return i.MouseX >= x && i.MouseX < x+w &&
		i.MouseY >= y && i.MouseY < y+h
}

// Hit reports whether the pointer is over r and whether a pending click
// landed on it. A click is consumed so only one widget receives it.
func (i *InputState) Hit(r Rect) (hovered, clicked bool) {
	hovered = r.Contains(i.MouseX, i.MouseY)
	if hovered && i.MouseLeftClicked {
		i.MouseLeftClicked = false
		clicked = true
	}
	return hovered, clicked
}

// Rect is a simple rectangle struct.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d float32) Rect {
	return Rect{r.X + d, r.Y + d, max(r.W-2*d, 0), max(r.H-2*d, 0)}
}
