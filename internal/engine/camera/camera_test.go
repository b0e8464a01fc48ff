package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestPerspectiveProjectCenter(t *testing.T) {
	c := NewPerspective(75, 16.0/9.0, 0.1, 100)
	c.SetPosition(12, 0, 6)

	ndc, ok := c.Project(mgl32.Vec3{12, 0, 0})
	if !ok {
		t.Fatal("point in front of camera reported behind")
	}
	if !near(ndc[0], 0) || !near(ndc[1], 0) {
		t.Errorf("ndc = %v, want screen center", ndc)
	}

	if _, ok := c.Project(mgl32.Vec3{12, 0, 10}); ok {
		t.Error("point behind camera should not project")
	}
}

func TestPerspectiveRayRoundTrip(t *testing.T) {
	c := NewPerspective(75, 1.5, 0.1, 100)
	c.SetPosition(3, 1.5, 5)
	c.Rotation = mgl32.Vec3{-0.2, 0.3, 0}

	target := mgl32.Vec3{4, 0.5, -2}
	ndc, ok := c.Project(target)
	if !ok {
		t.Fatal("target not visible")
	}

	ray := c.RayAt(ndc[0], ndc[1])
	// The ray must pass through the target.
	toTarget := target.Sub(ray.Origin)
	along := toTarget.Dot(ray.Direction)
	closest := ray.At(along)
	if d := closest.Sub(target).Len(); d > 1e-2 {
		t.Errorf("ray misses target by %f", d)
	}
}

func TestPerspectiveRotation(t *testing.T) {
	c := NewPerspective(75, 1, 1, 2000)
	if f := c.Forward(); !f.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("default forward = %v", f)
	}

	c.Rotation[0] = -math.Pi / 4
	f := c.Forward()
	if !near(f[1], -float32(math.Sqrt2)/2) || !near(f[2], -float32(math.Sqrt2)/2) {
		t.Errorf("pitched forward = %v, want looking down 45deg", f)
	}

	c.Rotation = mgl32.Vec3{0, math.Pi / 2, 0}
	if f := c.Forward(); !f.ApproxEqualThreshold(mgl32.Vec3{-1, 0, 0}, 1e-5) {
		t.Errorf("yawed forward = %v, want -X", f)
	}
}

func TestSetAspect(t *testing.T) {
	c := NewPerspective(75, 0, 0.1, 100)
	if c.Aspect != 1 {
		t.Errorf("zero aspect should default to 1, got %f", c.Aspect)
	}
	c.SetAspect(1280, 720)
	if !near(c.Aspect, 1280.0/720.0) {
		t.Errorf("aspect = %f", c.Aspect)
	}
	c.SetAspect(0, 720)
	if !near(c.Aspect, 1280.0/720.0) {
		t.Error("invalid size should keep aspect")
	}
}

func TestOrbitFromMatchesEye(t *testing.T) {
	eye := mgl32.Vec3{0, 150, 150}
	o := OrbitFrom(eye, mgl32.Vec3{})

	if !o.Position().ApproxEqualThreshold(eye, 1e-2) {
		t.Errorf("orbit position %v, want %v", o.Position(), eye)
	}
	if !near(o.RotationX, math.Pi/4) {
		t.Errorf("pitch = %f, want pi/4", o.RotationX)
	}

	p := NewPerspective(75, 1, 1, 2000)
	o.Apply(p)
	if !near(p.Rotation[0], -math.Pi/4) {
		t.Errorf("applied pitch = %f, want -pi/4", p.Rotation[0])
	}
	// Looking from the eye straight at the center.
	ndc, ok := p.Project(mgl32.Vec3{})
	if !ok || !near(ndc[0], 0) || !near(ndc[1], 0) {
		t.Errorf("center projects to %v (ok=%v)", ndc, ok)
	}
}

func TestOrbitDamping(t *testing.T) {
	o := NewOrbitCamera()
	o.Damping = 0.5
	start := o.RotationY

	o.HandleDrag(-100, 0) // yaw +0.5
	o.Update()
	if !near(o.RotationY-start, 0.25) {
		t.Errorf("first update moved %f, want 0.25", o.RotationY-start)
	}
	for i := 0; i < 60; i++ {
		o.Update()
	}
	if !near(o.RotationY-start, 0.5) {
		t.Errorf("total = %f, want 0.5", o.RotationY-start)
	}
}

func TestOrbitClamps(t *testing.T) {
	o := NewOrbitCamera()
	o.Damping = 0

	o.HandleDrag(0, 10000)
	if o.RotationX != o.MaxPitch {
		t.Errorf("pitch = %f, want clamp %f", o.RotationX, o.MaxPitch)
	}
	o.HandleZoom(100)
	if o.Distance != o.MinDistance {
		t.Errorf("distance = %f, want min %f", o.Distance, o.MinDistance)
	}

	o.Enabled = false
	d := o.Distance
	o.HandleZoom(-1)
	if o.Distance != d {
		t.Error("disabled camera should ignore zoom")
	}
}
