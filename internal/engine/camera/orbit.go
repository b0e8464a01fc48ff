package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center mgl32.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle above the center, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Damping is the fraction of pending motion applied per update.
	// Zero applies input immediately.
	Damping float32

	Enabled bool

	pendingYaw   float32
	pendingPitch float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        200.0,
		RotationX:       0.5,
		RotationY:       0.0,
		MinDistance:     10.0,
		MaxDistance:     500.0,
		MinPitch:        0.05,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		Damping:         0.05,
		Enabled:         true,
	}
}

// OrbitFrom returns an orbit camera that reproduces a camera at eye looking
// at center.
func OrbitFrom(eye, center mgl32.Vec3) *OrbitCamera {
	c := NewOrbitCamera()
	c.Center = center
	off := eye.Sub(center)
	c.Distance = off.Len()
	if c.Distance > 0 {
		c.RotationX = float32(gomath.Asin(float64(off[1] / c.Distance)))
		c.RotationY = float32(gomath.Atan2(float64(off[0]), float64(off[2])))
	}
	c.MaxDistance = max(c.MaxDistance, c.Distance)
	return c
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	cosX := float32(gomath.Cos(float64(c.RotationX)))
	return c.Center.Add(mgl32.Vec3{
		c.Distance * cosX * float32(gomath.Sin(float64(c.RotationY))),
		c.Distance * float32(gomath.Sin(float64(c.RotationX))),
		c.Distance * cosX * float32(gomath.Cos(float64(c.RotationY))),
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// HandleDrag queues rotation from a mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	if !c.Enabled {
		return
	}
	c.pendingYaw -= deltaX * c.DragSensitivity
	c.pendingPitch += deltaY * c.DragSensitivity
	if c.Damping <= 0 {
		c.Update()
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	if !c.Enabled {
		return
	}
	c.Distance = mgl32.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// Update applies a damped share of the queued rotation. Call once per frame.
func (c *OrbitCamera) Update() {
	k := c.Damping
	if k <= 0 || k > 1 {
		k = 1
	}
	c.RotationY += c.pendingYaw * k
	c.RotationX = mgl32.Clamp(c.RotationX+c.pendingPitch*k, c.MinPitch, c.MaxPitch)
	c.pendingYaw *= 1 - k
	c.pendingPitch *= 1 - k
}

// Apply writes the orbit pose into a perspective camera.
func (c *OrbitCamera) Apply(p *Perspective) {
	p.Position = c.Position()
	p.Rotation = mgl32.Vec3{-c.RotationX, c.RotationY, 0}
}
