package picking

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// quad is a 2x2 square in the XY plane facing +Z, centered on the origin.
type quad struct{}

func (quad) LocalBounds() AABB { return NewAABB(-1, -1, 0, 1, 1, 0) }
func (quad) TriangleCount() int { return 2 }
func (quad) Triangle(i int) (a, b, c mgl32.Vec3) {
	if i == 0 {
		return mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, -1, 0}, mgl32.Vec3{1, 1, 0}
	}
	return mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, 1, 0}, mgl32.Vec3{-1, 1, 0}
}

type fixed mgl32.Mat4

func (f fixed) World() mgl32.Mat4 { return mgl32.Mat4(f) }

func at(x, y, z, scale float32) fixed {
	return fixed(mgl32.Translate3D(x, y, z).Mul4(mgl32.Scale3D(scale, scale, scale)))
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestIntersectAABB(t *testing.T) {
	box := NewAABB(1, 1, 1, -1, -1, -1) // swapped corners are normalized

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"straight on", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}}, true, 4},
		{"from inside", Ray{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}}, true, 1},
		{"miss", Ray{mgl32.Vec3{3, 0, 5}, mgl32.Vec3{0, 0, -1}}, false, 0},
		{"behind", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}}, false, 0},
		{"parallel outside", Ray{mgl32.Vec3{0, 2, 5}, mgl32.Vec3{1, 0, 0}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectAABB(box)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && !near(got, tt.wantT) {
				t.Errorf("t = %f, want %f", got, tt.wantT)
			}
		})
	}
}

func TestIntersectTriangle(t *testing.T) {
	a, b, c := mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, -1, 0}, mgl32.Vec3{0, 1, 0}

	tests := []struct {
		name string
		ray  Ray
		hit  bool
		t    float32
	}{
		{"front face", Ray{mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, -1}}, true, 3},
		{"back face", Ray{mgl32.Vec3{0, 0, -2}, mgl32.Vec3{0, 0, 1}}, true, 2},
		{"outside edge", Ray{mgl32.Vec3{0.9, 0.9, 3}, mgl32.Vec3{0, 0, -1}}, false, 0},
		{"parallel", Ray{mgl32.Vec3{0, 0, 3}, mgl32.Vec3{1, 0, 0}}, false, 0},
		{"behind origin", Ray{mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, 1}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectTriangle(a, b, c)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && !near(got, tt.t) {
				t.Errorf("t = %f, want %f", got, tt.t)
			}
		})
	}
}

func TestAABBTransform(t *testing.T) {
	box := NewAABB(-1, -1, -1, 1, 1, 1)
	m := mgl32.Translate3D(10, 0, 0).Mul4(mgl32.HomogRotate3DY(math.Pi / 4)).Mul4(mgl32.Scale3D(2, 2, 2))
	out := box.Transform(m)

	if !near(out.Center()[0], 10) {
		t.Errorf("center x = %f, want 10", out.Center()[0])
	}
	// A rotated cube of side 4 spans 4*sqrt(2) on X.
	if w := out.Max[0] - out.Min[0]; !near(w, 4*float32(math.Sqrt2)) {
		t.Errorf("width = %f", w)
	}
	if !EmptyAABB().Transform(m).Empty() {
		t.Error("empty box should stay empty")
	}
}

func TestRayFromNDCCenter(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(75), 16.0/9.0, 0.1, 100)
	inv := proj.Mul4(view).Inv()

	r := RayFromNDC(0, 0, inv)
	if !r.Direction.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-4) {
		t.Errorf("direction = %v, want (0,0,-1)", r.Direction)
	}
	if !near(r.Origin[2], 4.9) {
		t.Errorf("origin z = %f, want near plane at 4.9", r.Origin[2])
	}

	// Screen center maps to the same ray.
	s := ScreenToRay(640, 360, 1280, 720, inv)
	if !s.Direction.ApproxEqualThreshold(r.Direction, 1e-4) {
		t.Errorf("screen ray %v differs from ndc ray %v", s.Direction, r.Direction)
	}
}

func TestIndexPickNearest(t *testing.T) {
	idx := NewIndex()
	idx.Add(1, 10, quad{}, at(0, 0, 0, 1))
	idx.Add(2, 20, quad{}, at(0, 0, 2, 1)) // in front of item 1

	hit, ok := idx.Pick(Ray{mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, -1}})
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.ItemID != 2 || hit.PrimitiveID != 20 {
		t.Errorf("hit item %d prim %d, want item 2 prim 20", hit.ItemID, hit.PrimitiveID)
	}
	if !near(hit.Distance, 8) {
		t.Errorf("distance = %f, want 8", hit.Distance)
	}
	if !hit.Point.ApproxEqualThreshold(mgl32.Vec3{0, 0, 2}, 1e-4) {
		t.Errorf("point = %v", hit.Point)
	}
}

func TestIndexPickScaledPlacement(t *testing.T) {
	idx := NewIndex()
	idx.Add(7, 1, quad{}, at(12, 0, 0, 3))

	// x=14 lies outside the unit quad but inside it once scaled by 3.
	hit, ok := idx.Pick(Ray{mgl32.Vec3{14, 0, 6}, mgl32.Vec3{0, 0, -1}})
	if !ok || hit.ItemID != 7 {
		t.Fatalf("expected item 7, got %+v ok=%v", hit, ok)
	}
	if !near(hit.Distance, 6) {
		t.Errorf("distance = %f, want 6 in world units", hit.Distance)
	}
}

func TestIndexMissAndRemove(t *testing.T) {
	idx := NewIndex()
	idx.Add(1, 1, quad{}, at(0, 0, 0, 1))
	idx.Add(1, 2, quad{}, at(6, 0, 0, 1))
	idx.Add(2, 3, quad{}, at(12, 0, 0, 1))

	if _, ok := idx.Pick(Ray{mgl32.Vec3{3, 0, 5}, mgl32.Vec3{0, 0, -1}}); ok {
		t.Error("ray between items should miss")
	}
	if got, ok := idx.ItemOf(2); !ok || got != 1 {
		t.Errorf("ItemOf(2) = %d, %v", got, ok)
	}

	idx.Remove(1)
	if idx.Len() != 1 || idx.Items() != 1 {
		t.Errorf("after remove: %d prims, %d items", idx.Len(), idx.Items())
	}
	if _, ok := idx.Pick(Ray{mgl32.Vec3{6, 0, 5}, mgl32.Vec3{0, 0, -1}}); ok {
		t.Error("removed item still pickable")
	}

	idx.Clear()
	if idx.Len() != 0 {
		t.Error("clear left entries")
	}
}

func TestIndexReAddMovesOwner(t *testing.T) {
	idx := NewIndex()
	idx.Add(1, 5, quad{}, at(0, 0, 0, 1))
	idx.Add(2, 5, quad{}, at(0, 0, 0, 1))

	if got, _ := idx.ItemOf(5); got != 2 {
		t.Errorf("owner = %d, want 2", got)
	}
	if idx.Items() != 1 {
		t.Errorf("items = %d, want 1", idx.Items())
	}
}

func TestIndexSkipsCollapsedPlacement(t *testing.T) {
	idx := NewIndex()
	idx.Add(1, 1, quad{}, at(0, 0, 0, 0))
	if _, ok := idx.Pick(Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}}); ok {
		t.Error("zero-scale geometry should not be hit")
	}
}
