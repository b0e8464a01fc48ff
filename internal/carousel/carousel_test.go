package carousel

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/tween"
)

func near(a, b, eps float32) bool {
	return gomath.Abs(float64(a-b)) < float64(eps)
}

func quadNode(name string) *scene.Node {
	p := scene.NewPrimitive([]mgl32.Vec3{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}}, []uint32{0, 1, 2, 0, 2, 3})
	n := scene.NewNode(name)
	n.Mesh = &scene.Mesh{Primitives: []*scene.Primitive{p}}
	return n
}

type fixture struct {
	c   *Carousel
	cam *camera.Perspective
	tw  *tween.Engine
}

func newFixture(t *testing.T, models bool) fixture {
	t.Helper()
	cam := camera.NewPerspective(75, 16.0/9.0, 1, 2000)
	orbit := camera.OrbitFrom(mgl32.Vec3{0, 150, 150}, mgl32.Vec3{})
	tw := tween.NewEngine()
	specs := []Spec{
		{Name: "Comics", Target: "comics", Scale: 1},
		{Name: "Cars", Target: "cars", Scale: 1},
		{Name: "Cassettes", Target: "cassettes", Scale: 1},
	}
	c := New(DefaultConfig(), specs, cam, orbit, tw, nil)
	if models {
		for i := range c.Portals {
			if err := c.AttachModel(i, quadNode("model")); err != nil {
				t.Fatal(err)
			}
		}
	}
	return fixture{c: c, cam: cam, tw: tw}
}

func (f fixture) frames(n int) {
	for i := 0; i < n; i++ {
		f.tw.Update(1.0 / 60)
		f.c.Step(1.0 / 60)
	}
}

func (f fixture) activate(t *testing.T) {
	t.Helper()
	if !f.c.Start() {
		t.Fatal("start refused")
	}
	f.tw.Update(f.c.cfg.StartDuration)
	if f.c.Phase() != Active {
		t.Fatalf("phase = %v after the intro", f.c.Phase())
	}
}

func TestPlacement(t *testing.T) {
	tests := []struct {
		i     int
		pos   mgl32.Vec3
		angle float32
	}{
		{0, mgl32.Vec3{5, 0, 0}, 0},
		{1, mgl32.Vec3{-2.5, 0, 4.330127}, 2 * gomath.Pi / 3},
		{2, mgl32.Vec3{-2.5, 0, -4.330127}, 4 * gomath.Pi / 3},
	}
	for _, tt := range tests {
		pos, angle, yaw := Placement(tt.i, 3, 5)
		if !pos.ApproxEqualThreshold(tt.pos, 1e-4) {
			t.Errorf("portal %d at %v, want %v", tt.i, pos, tt.pos)
		}
		if !near(angle, tt.angle, 1e-5) || !near(yaw, -tt.angle-gomath.Pi/2, 1e-5) {
			t.Errorf("portal %d angle %f yaw %f", tt.i, angle, yaw)
		}
	}
}

func TestIdleOrbit(t *testing.T) {
	f := newFixture(t, false)
	if !f.cam.Position.ApproxEqualThreshold(mgl32.Vec3{0, 150, 150}, 1e-2) {
		t.Errorf("camera starts at %v", f.cam.Position)
	}
	if !near(f.cam.Rotation[0], -gomath.Pi/4, 1e-4) {
		t.Errorf("camera pitch = %f, want -pi/4", f.cam.Rotation[0])
	}

	f.c.Orbit.HandleDrag(100, 0)
	f.frames(120)
	if f.cam.Position[0] == 0 {
		t.Error("dragging the orbit should move the camera")
	}
	if f.c.HandleWheel(100) {
		t.Error("wheel must be ignored before start")
	}
}

func TestStartFlight(t *testing.T) {
	f := newFixture(t, false)
	f.c.Orbit.HandleDrag(2000, 0) // swing the yaw far around
	f.frames(200)

	if !f.c.Start() {
		t.Fatal("start refused")
	}
	if f.c.Start() {
		t.Error("second start accepted")
	}
	if f.c.Orbit.Enabled {
		t.Error("orbit stays enabled during the flight")
	}
	f.tw.Update(2)
	f.c.Step(0)
	if f.c.Phase() != Starting {
		t.Fatalf("phase = %v midway", f.c.Phase())
	}
	if f.c.HandleWheel(100) {
		t.Error("wheel must be ignored during the flight")
	}

	f.tw.Update(2)
	if f.c.Phase() != Active {
		t.Fatalf("phase = %v after 4s", f.c.Phase())
	}
	if !f.cam.Position.ApproxEqualThreshold(mgl32.Vec3{0, 2, 12}, 1e-4) {
		t.Errorf("camera = %v, want (0, 2, 12)", f.cam.Position)
	}
	if !f.cam.Rotation.ApproxEqualThreshold(mgl32.Vec3{}, 1e-5) {
		t.Errorf("rotation = %v, want zero", f.cam.Rotation)
	}
}

func TestWheelSpinsRing(t *testing.T) {
	f := newFixture(t, false)
	f.activate(t)

	if !f.c.HandleWheel(500) {
		t.Fatal("wheel refused while active")
	}
	if !near(f.c.SpinTarget(), 1, 1e-6) {
		t.Errorf("target = %f, want 1", f.c.SpinTarget())
	}
	f.frames(300)
	if !near(f.c.Angle(), 1, 1e-3) {
		t.Errorf("angle = %f, want 1", f.c.Angle())
	}
	if f.c.Group.Rotation[1] != f.c.Angle() {
		t.Error("ring rotation not applied to the group")
	}
}

func TestNearestPortalIsHighlighted(t *testing.T) {
	f := newFixture(t, true)
	f.activate(t)
	f.frames(60)

	// Portal 1 sits at z = 4.33, the closest to a camera at z = 12.
	if f.c.Active() != 1 {
		t.Fatalf("active = %d, want 1", f.c.Active())
	}
	if s := f.c.Portal(1).Model.Scale; !near(s[0], 1.5, 1e-5) {
		t.Errorf("active scale = %v, want 1.5", s)
	}
	if r := f.c.Portal(1).Model.Rotation[1]; r != 0 {
		t.Errorf("active yaw = %f, want 0", r)
	}
	if r := f.c.Portal(0).Model.Rotation[1]; !near(r, 0.6, 1e-3) {
		t.Errorf("inactive portal spun %f, want 0.6", r)
	}

	// Spin portal 0 to the front.
	f.c.HandleWheel(-gomath.Pi / 2 / 0.002)
	f.frames(300)
	if f.c.Active() != 0 {
		t.Fatalf("active = %d after spin, want 0", f.c.Active())
	}
	if s := f.c.Portal(1).Model.Scale; !near(s[0], 1, 1e-5) {
		t.Errorf("previous portal scale = %v, want 1", s)
	}
}

func TestLateModelActivates(t *testing.T) {
	f := newFixture(t, false)
	f.activate(t)
	f.frames(1)
	if f.c.Active() != 1 {
		t.Fatalf("active = %d", f.c.Active())
	}
	if err := f.c.AttachModel(1, quadNode("late")); err != nil {
		t.Fatal(err)
	}
	f.frames(60)
	if s := f.c.Portal(1).Model.Scale; !near(s[0], 1.5, 1e-5) {
		t.Errorf("late active scale = %v", s)
	}
}

func TestLabelsFaceFront(t *testing.T) {
	f := newFixture(t, false)
	for i := range f.c.Portals {
		if err := f.c.AttachLabel(i, quadNode("label"), 1); err != nil {
			t.Fatal(err)
		}
	}
	f.activate(t)
	f.c.HandleWheel(700)
	f.frames(45) // mid-spin

	for _, p := range f.c.Portals {
		facing := p.Label.World().Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
		if !facing.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-4) {
			t.Errorf("%s label faces %v", p.Name, facing)
		}
		if p.Label.Position[1] != 2 {
			t.Errorf("%s label height = %f", p.Name, p.Label.Position[1])
		}
		if !p.Label.Mesh.Primitives[0].Material.DoubleSided {
			t.Errorf("%s label is single sided", p.Name)
		}
	}
}

func TestClickNavigates(t *testing.T) {
	f := newFixture(t, true)

	var went string
	f.c.OnNavigate = func(target string) { went = target }

	if f.c.Click() {
		t.Error("click accepted before start")
	}
	f.activate(t)
	f.frames(60)

	center := f.c.Portal(1).Model.WorldPosition()
	ndc, ok := f.cam.Project(center)
	if !ok {
		t.Fatal("portal behind the camera")
	}
	f.c.PointerMove(ndc[0], ndc[1])
	f.frames(1)
	if f.c.Hovered() != 1 {
		t.Fatalf("hovered = %d, want 1", f.c.Hovered())
	}

	z := f.cam.Position[2]
	if !f.c.Click() {
		t.Fatal("click on portal refused")
	}
	if f.c.Phase() != Leaving {
		t.Errorf("phase = %v", f.c.Phase())
	}
	if f.c.Click() {
		t.Error("second click accepted while leaving")
	}

	f.tw.Update(0.5)
	if went != "" {
		t.Error("navigated before the dolly finished")
	}
	f.tw.Update(0.5)
	if went != "cars" {
		t.Errorf("navigated to %q, want cars", went)
	}
	if !near(f.cam.Position[2], z-4, 1e-4) {
		t.Errorf("camera z = %f, want %f", f.cam.Position[2], z-4)
	}
}

func TestClickOnEmptySpace(t *testing.T) {
	f := newFixture(t, true)
	f.activate(t)
	f.frames(1)

	f.c.PointerMove(0.95, 0.95)
	if f.c.Click() {
		t.Error("click on sky accepted")
	}
	f.c.PointerLeave()
	if f.c.Hovered() != -1 {
		t.Error("hover survives pointer leave")
	}
}

func TestAttachErrors(t *testing.T) {
	f := newFixture(t, false)
	if err := f.c.AttachModel(5, quadNode("x")); err == nil {
		t.Error("unknown portal accepted")
	}
	if err := f.c.AttachModel(0, nil); err == nil {
		t.Error("nil model accepted")
	}
	if err := f.c.AttachModel(0, quadNode("a")); err != nil {
		t.Fatal(err)
	}
	if err := f.c.AttachModel(0, quadNode("b")); err == nil {
		t.Error("second model accepted")
	}
	if err := f.c.AttachLabel(9, quadNode("l"), 1); err == nil {
		t.Error("unknown label portal accepted")
	}
	m := f.c.Portal(0).Model
	if m.Position[1] != -1 || m.Scale[0] != 1 {
		t.Errorf("model pose = %v / %v", m.Position, m.Scale)
	}
}

func TestWrapPi(t *testing.T) {
	tests := []struct{ in, want float32 }{
		{0, 0},
		{1, 1},
		{gomath.Pi + 0.5, -gomath.Pi + 0.5},
		{-gomath.Pi - 0.5, gomath.Pi - 0.5},
		{4 * gomath.Pi, 0},
	}
	for _, tt := range tests {
		if got := wrapPi(tt.in); !near(got, tt.want, 1e-4) {
			t.Errorf("wrapPi(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}
