package gallery

// PointerState is the last known pointer position in normalized
// coordinates ([-1, 1] on both axes, Y up), plus the drag that is in
// progress, if any.
type PointerState struct {
	X, Y   float32
	Inside bool // false until the pointer has been seen

	Dragging bool
	// DragOriginX is the pixel x the current drag measures from. It
	// follows the finger so each move applies only its own delta.
	DragOriginX float32
}

// Set records a normalized position.
func (p *PointerState) Set(x, y float32) {
	p.X, p.Y = x, y
	p.Inside = true
}

// Leave marks the pointer as outside the window.
func (p *PointerState) Leave() {
	p.Inside = false
}
