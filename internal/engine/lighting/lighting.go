// Package lighting provides light definitions for scene rendering.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ambient is uniform light that reaches every surface.
type Ambient struct {
	Color     mgl32.Vec3 // RGB color (0-1 range)
	Intensity float32
}

// Radiance returns color scaled by intensity.
func (a Ambient) Radiance() mgl32.Vec3 {
	return a.Color.Mul(a.Intensity)
}

// Directional is a light infinitely far away, shining from Position toward
// Target like a sun.
type Directional struct {
	Position  mgl32.Vec3
	Target    mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

// Radiance returns color scaled by intensity.
func (d Directional) Radiance() mgl32.Vec3 {
	return d.Color.Mul(d.Intensity)
}

// Direction returns the normalized vector pointing from the surface toward
// the light. A degenerate light points straight down onto the scene.
func (d Directional) Direction() mgl32.Vec3 {
	dir := d.Position.Sub(d.Target)
	if dir.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return dir.Normalize()
}

// White is full-intensity white light color.
var White = mgl32.Vec3{1, 1, 1}

// SunDirection converts longitude/latitude angles in degrees to a light
// direction vector. Longitude is rotation around Y, latitude is elevation
// from the horizon.
func SunDirection(longitude, latitude float32) mgl32.Vec3 {
	lonRad := float64(longitude) * math.Pi / 180.0
	latRad := float64(latitude) * math.Pi / 180.0

	return mgl32.Vec3{
		float32(math.Cos(latRad) * math.Sin(lonRad)),
		float32(math.Sin(latRad)),
		float32(math.Cos(latRad) * math.Cos(lonRad)),
	}
}
