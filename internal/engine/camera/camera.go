// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/showroom/internal/engine/picking"
)

// Perspective is a free camera placed by position and Euler rotation.
// Rotation is applied yaw (Y) first, then pitch (X), then roll (Z); with zero
// rotation the camera looks down -Z.
type Perspective struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // Radians: pitch, yaw, roll

	FOV    float32 // Vertical field of view, degrees
	Aspect float32
	Near   float32
	Far    float32
}

// NewPerspective creates a camera at the origin.
func NewPerspective(fov, aspect, near, far float32) *Perspective {
	if aspect <= 0 {
		aspect = 1
	}
	return &Perspective{FOV: fov, Aspect: aspect, Near: near, Far: far}
}

// SetPosition moves the camera.
func (c *Perspective) SetPosition(x, y, z float32) {
	c.Position = mgl32.Vec3{x, y, z}
}

// SetAspect updates the aspect ratio after a resize.
func (c *Perspective) SetAspect(width, height float32) {
	if width > 0 && height > 0 {
		c.Aspect = width / height
	}
}

// World returns the camera-to-world matrix.
func (c *Perspective) World() mgl32.Mat4 {
	return mgl32.Translate3D(c.Position[0], c.Position[1], c.Position[2]).
		Mul4(mgl32.HomogRotate3DY(c.Rotation[1])).
		Mul4(mgl32.HomogRotate3DX(c.Rotation[0])).
		Mul4(mgl32.HomogRotate3DZ(c.Rotation[2]))
}

// ViewMatrix returns the world-to-camera matrix.
func (c *Perspective) ViewMatrix() mgl32.Mat4 {
	return c.World().Inv()
}

// ProjectionMatrix returns the perspective projection.
func (c *Perspective) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Perspective) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// RayAt casts a world ray through a normalized pointer position ([-1, 1], Y up).
func (c *Perspective) RayAt(ndcX, ndcY float32) picking.Ray {
	return picking.RayFromNDC(ndcX, ndcY, c.ViewProjection().Inv())
}

// Project maps a world point to normalized device coordinates.
// ok is false for points behind the camera.
func (c *Perspective) Project(world mgl32.Vec3) (ndc mgl32.Vec3, ok bool) {
	clip := c.ViewProjection().Mul4x1(world.Vec4(1))
	if clip[3] <= 0 {
		return mgl32.Vec3{}, false
	}
	return clip.Vec3().Mul(1 / clip[3]), true
}

// Forward returns the unit view direction.
func (c *Perspective) Forward() mgl32.Vec3 {
	return mgl32.TransformNormal(mgl32.Vec3{0, 0, -1}, c.World()).Normalize()
}

// DistanceTo returns the distance from the camera to p.
func (c *Perspective) DistanceTo(p mgl32.Vec3) float32 {
	return c.Position.Sub(p).Len()
}
