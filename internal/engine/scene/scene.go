package scene

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/showroom/internal/engine/lighting"
)

// Fog is linear distance fog.
type Fog struct {
	Color mgl32.Vec3
	Near  float32
	Far   float32
}

// Enabled reports whether the fog range is usable.
func (f Fog) Enabled() bool {
	return f.Far > f.Near
}

// CubeFaces are the six environment faces in +X, -X, +Y, -Y, +Z, -Z order,
// all square and the same size.
type CubeFaces struct {
	Faces [6]*image.RGBA
	Size  int

	// Texture is the renderer's cube map handle.
	Texture uint32
}

// Scene is everything the renderer draws for one page.
type Scene struct {
	Background mgl32.Vec3
	Fog        Fog

	// Environment is the reflection source; nil means no reflections.
	Environment *CubeFaces
	// EnvironmentBackground draws the environment as the backdrop
	// instead of the flat background color.
	EnvironmentBackground bool
	EnvIntensity          float32

	Ambient     lighting.Ambient
	Directional lighting.Directional

	Root *Node
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		Root:         NewNode("root"),
		EnvIntensity: 1,
		Ambient:      lighting.Ambient{Color: lighting.White, Intensity: 1},
		Directional: lighting.Directional{
			Position:  mgl32.Vec3{0, 1, 0},
			Color:     lighting.White,
			Intensity: 1,
		},
	}
}

// Add attaches a node to the root.
func (s *Scene) Add(n *Node) {
	s.Root.Add(n)
}
