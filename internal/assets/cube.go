package assets

import (
	"context"
	"fmt"
	"image"

	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/texture"
)

// MaxCubeSize caps the edge length of environment faces.
const MaxCubeSize = 2048

// LoadCubeFaces decodes six faces in +X, -X, +Y, -Y, +Z, -Z order and
// scales them to one square power-of-two size.
func (l *Loader) LoadCubeFaces(paths []string) (*scene.CubeFaces, error) {
	if len(paths) != 6 {
		return nil, fmt.Errorf("cube map needs 6 faces, got %d", len(paths))
	}

	var imgs [6]image.Image
	size := 0
	for i, p := range paths {
		data, err := l.Read(p)
		if err != nil {
			return nil, err
		}
		img, err := texture.Decode(p, data)
		if err != nil {
			return nil, err
		}
		imgs[i] = img
		b := img.Bounds()
		size = max(size, b.Dx(), b.Dy())
	}
	size = texture.PowerOfTwo(size, MaxCubeSize)

	cube := &scene.CubeFaces{Size: size}
	for i, img := range imgs {
		cube.Faces[i] = texture.Resize(img, size, size)
	}
	return cube, nil
}

// CubeResult is a finished environment load.
type CubeResult struct {
	Cube *scene.CubeFaces
	Err  error
}

// StartCube loads the faces in the background. The channel receives exactly
// one result, or none when ctx is cancelled first.
func (l *Loader) StartCube(ctx context.Context, paths []string) <-chan CubeResult {
	out := make(chan CubeResult, 1)
	go func() {
		defer close(out)
		if ctx.Err() != nil {
			return
		}
		cube, err := l.LoadCubeFaces(paths)
		out <- CubeResult{Cube: cube, Err: err}
	}()
	return out
}
