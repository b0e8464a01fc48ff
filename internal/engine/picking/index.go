package picking

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is triangle geometry in its own local space.
type Mesh interface {
	LocalBounds() AABB
	TriangleCount() int
	Triangle(i int) (a, b, c mgl32.Vec3)
}

// Placement supplies the current local-to-world matrix of a mesh.
type Placement interface {
	World() mgl32.Mat4
}

// Hit describes the nearest intersection found by Pick.
type Hit struct {
	ItemID      int
	PrimitiveID uint32
	Distance    float32 // World-space distance from the ray origin
	Point       mgl32.Vec3
}

type entry struct {
	itemID int
	mesh   Mesh
	at     Placement
}

// Index maps pickable primitives back to the item that owns them.
// Entries are registered when an item's geometry is attached, so picking
// never has to walk the scene graph to find the owner of a struck mesh.
type Index struct {
	entries map[uint32]entry
	byItem  map[int][]uint32
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		entries: make(map[uint32]entry),
		byItem:  make(map[int][]uint32),
	}
}

// Add registers one primitive as belonging to itemID. Re-adding a primitive
// id replaces its previous owner.
func (x *Index) Add(itemID int, primID uint32, mesh Mesh, at Placement) {
	if old, ok := x.entries[primID]; ok {
		x.dropFromItem(old.itemID, primID)
	}
	x.entries[primID] = entry{itemID: itemID, mesh: mesh, at: at}
	x.byItem[itemID] = append(x.byItem[itemID], primID)
}

// Remove forgets every primitive of itemID.
func (x *Index) Remove(itemID int) {
	for _, id := range x.byItem[itemID] {
		delete(x.entries, id)
	}
	delete(x.byItem, itemID)
}

// Clear forgets everything.
func (x *Index) Clear() {
	clear(x.entries)
	clear(x.byItem)
}

// ItemOf returns the owner of a primitive.
func (x *Index) ItemOf(primID uint32) (int, bool) {
	e, ok := x.entries[primID]
	return e.itemID, ok
}

// Len returns the number of registered primitives.
func (x *Index) Len() int {
	return len(x.entries)
}

// Items returns how many distinct items have registered primitives.
func (x *Index) Items() int {
	return len(x.byItem)
}

// Pick casts a world-space ray against every registered primitive and returns
// the nearest hit resolved to its owning item. Equal distances resolve to the
// lower primitive id.
func (x *Index) Pick(ray Ray) (Hit, bool) {
	best := Hit{Distance: float32(gomath.MaxFloat32)}
	found := false

	for id, e := range x.entries {
		world := e.at.World()
		if world.Det() == 0 {
			continue // Collapsed (zero scale) geometry cannot be hit
		}

		// Cheap reject against the world box first.
		if _, ok := ray.IntersectAABB(e.mesh.LocalBounds().Transform(world)); !ok {
			continue
		}

		local := ray.Transform(world.Inv())
		n := e.mesh.TriangleCount()
		for i := 0; i < n; i++ {
			a, b, c := e.mesh.Triangle(i)
			t, ok := local.IntersectTriangle(a, b, c)
			if !ok {
				continue
			}
			// Ray parameters survive the affine map; scale by the world
			// direction length to report a distance.
			dist := t * ray.Direction.Len()
			if dist < best.Distance || (dist == best.Distance && id < best.PrimitiveID) {
				best = Hit{
					ItemID:      e.itemID,
					PrimitiveID: id,
					Distance:    dist,
					Point:       ray.At(t),
				}
				found = true
			}
		}
	}

	return best, found
}

func (x *Index) dropFromItem(itemID int, primID uint32) {
	ids := x.byItem[itemID]
	for i, id := range ids {
		if id == primID {
			x.byItem[itemID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(x.byItem[itemID]) == 0 {
		delete(x.byItem, itemID)
	}
}
