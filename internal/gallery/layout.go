package gallery

import "github.com/go-gl/mathgl/mgl32"

// LinearLayout places items along +X at a fixed gap.
type LinearLayout struct {
	Gap   float32
	BaseY float32
}

// Position returns the rest position of the item at index, shifted by its
// catalog offset.
func (l LinearLayout) Position(index int, offset mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(index)*l.Gap + offset[0],
		l.BaseY + offset[1],
		offset[2],
	}
}

// MaxScroll returns the scroll offset of the last item. Empty catalogs
// scroll nowhere.
func (l LinearLayout) MaxScroll(count int) float32 {
	if count < 1 {
		return 0
	}
	return float32(count-1) * l.Gap
}
