package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/showroom/internal/engine/scene"
)

// vertexFloats is the interleaved layout: position(3) normal(3) uv(2).
const vertexFloats = 8

// interleave packs a primitive's attributes for a single VBO. Missing
// normals or UVs are written as zero.
func interleave(p *scene.Primitive) []float32 {
	out := make([]float32, 0, len(p.Positions)*vertexFloats)
	for i, pos := range p.Positions {
		out = append(out, pos[0], pos[1], pos[2])
		if i < len(p.Normals) {
			n := p.Normals[i]
			out = append(out, n[0], n[1], n[2])
		} else {
			out = append(out, 0, 0, 0)
		}
		if i < len(p.UVs) {
			uv := p.UVs[i]
			out = append(out, uv[0], uv[1])
		} else {
			out = append(out, 0, 0)
		}
	}
	return out
}

// normalMatrix is the inverse transpose of the model's upper 3x3. A
// singular matrix (zero scale) falls back to the plain 3x3.
func normalMatrix(model mgl32.Mat4) mgl32.Mat3 {
	m := model.Mat3()
	if m.Det() == 0 {
		return m
	}
	return m.Inv().Transpose()
}

// skyboxMatrix keeps only the view rotation so the box stays centered on
// the camera.
func skyboxMatrix(view, proj mgl32.Mat4) mgl32.Mat4 {
	rot := view.Mat3().Mat4()
	return proj.Mul4(rot)
}

func skyboxVertices() []float32 {
	// Two triangles per face of a unit cube.
	corners := [8]mgl32.Vec3{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	faces := [6][4]int{
		{1, 5, 6, 2}, // +X
		{4, 0, 3, 7}, // -X
		{3, 2, 6, 7}, // +Y
		{4, 5, 1, 0}, // -Y
		{5, 4, 7, 6}, // +Z
		{0, 1, 2, 3}, // -Z
	}
	out := make([]float32, 0, 36*3)
	for _, f := range faces {
		for _, i := range [6]int{f[0], f[1], f[2], f[0], f[2], f[3]} {
			c := corners[i]
			out = append(out, c[0], c[1], c[2])
		}
	}
	return out
}
