package gallery

// DefaultBreakpoint is the logical width below which the narrow (mobile)
// presets apply.
const DefaultBreakpoint = 768

// Viewport holds the logical window size and derived projection parameters.
type Viewport struct {
	Width      float32
	Height     float32
	Breakpoint float32
}

// NewViewport creates a viewport with the default breakpoint.
func NewViewport(width, height float32) *Viewport {
	return &Viewport{Width: width, Height: height, Breakpoint: DefaultBreakpoint}
}

// Resize records a new logical size.
func (v *Viewport) Resize(width, height float32) {
	v.Width = width
	v.Height = height
}

// Aspect returns width/height, or 1 for a degenerate viewport.
func (v *Viewport) Aspect() float32 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return v.Width / v.Height
}

// Narrow reports whether the mobile presets apply.
func (v *Viewport) Narrow() bool {
	return v.Width < v.Breakpoint
}

// NDC converts logical pixel coordinates to normalized coordinates in
// [-1, 1] with Y up.
func (v *Viewport) NDC(px, py float32) (x, y float32) {
	if v.Width <= 0 || v.Height <= 0 {
		return 0, 0
	}
	return px/v.Width*2 - 1, -(py/v.Height)*2 + 1
}
