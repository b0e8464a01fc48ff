package gallery

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/showroom/internal/engine/scene"
)

// Stat is one labeled value shown in the detail overlay.
type Stat struct {
	Label string
	Value string
}

// Spec describes one catalog entry before it is placed.
type Spec struct {
	Name        string
	Path        string
	Description string
	Stats       []Stat
	Scale       float32
	Rotation    mgl32.Vec3 // Added to the category base rotation
	Offset      mgl32.Vec3 // Added to the layout position
}

// Item is one gallery entry. Its identity is its catalog index, assigned
// before loading starts; Node stays nil until the asset arrives.
type Item struct {
	ID          int
	Name        string
	Path        string
	Description string
	Stats       []Stat

	BasePosition mgl32.Vec3
	BaseRotation mgl32.Vec3
	Scale        float32

	Node *scene.Node
	Err  error
}

// Loaded reports whether the item's geometry is attached.
func (it *Item) Loaded() bool {
	return it.Node != nil
}

// Details returns the overlay content for the item.
func (it *Item) Details() Details {
	return Details{Title: it.Name, Description: it.Description, Stats: it.Stats}
}

// Details is what the overlay shows for an inspected item.
type Details struct {
	Title       string
	Description string
	Stats       []Stat
}

// Stat returns stat i, or a blank stat when the catalog has fewer.
func (d Details) Stat(i int) Stat {
	if i < 0 || i >= len(d.Stats) {
		return Stat{}
	}
	return d.Stats[i]
}
