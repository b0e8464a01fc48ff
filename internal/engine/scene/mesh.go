package scene

import (
	"image"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/showroom/internal/engine/picking"
)

var primitiveIDs atomic.Uint32

// NextPrimitiveID returns a process-wide unique primitive id. Safe to call
// from loader goroutines.
func NextPrimitiveID() uint32 {
	return primitiveIDs.Add(1)
}

// Mesh groups the primitives drawn by one node.
type Mesh struct {
	Name       string
	Primitives []*Primitive
}

// Material describes the surface of a primitive.
type Material struct {
	Name        string
	BaseColor   mgl32.Vec4
	BaseImage   image.Image // Decoded base color texture, nil if untextured
	Metallic    float32
	Roughness   float32
	DoubleSided bool
	// EnvIntensity scales environment reflections.
	EnvIntensity float32
}

// DefaultMaterial returns an opaque white material.
func DefaultMaterial() *Material {
	return &Material{
		BaseColor:    mgl32.Vec4{1, 1, 1, 1},
		Metallic:     1,
		Roughness:    1,
		EnvIntensity: 1,
	}
}

// GPU holds renderer handles for an uploaded primitive.
type GPU struct {
	VAO, VBO, EBO uint32
	Texture       uint32
	Count         int32
}

// Primitive is an indexed triangle list in its node's local space.
type Primitive struct {
	ID        uint32
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
	Bounds    picking.AABB
	Material  *Material

	// GPU is filled by the renderer on first draw.
	GPU *GPU
}

// NewPrimitive builds a primitive and computes its bounds. Missing indices
// mean a plain triangle list.
func NewPrimitive(positions []mgl32.Vec3, indices []uint32) *Primitive {
	if indices == nil {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	p := &Primitive{
		ID:        NextPrimitiveID(),
		Positions: positions,
		Indices:   indices,
		Material:  DefaultMaterial(),
	}
	p.Bounds = picking.EmptyAABB()
	for _, v := range positions {
		p.Bounds = p.Bounds.Extend(v)
	}
	return p
}

// LocalBounds implements picking.Mesh.
func (p *Primitive) LocalBounds() picking.AABB {
	return p.Bounds
}

// TriangleCount implements picking.Mesh.
func (p *Primitive) TriangleCount() int {
	return len(p.Indices) / 3
}

// Triangle implements picking.Mesh.
func (p *Primitive) Triangle(i int) (a, b, c mgl32.Vec3) {
	return p.Positions[p.Indices[i*3]], p.Positions[p.Indices[i*3+1]], p.Positions[p.Indices[i*3+2]]
}

// EnsureNormals fills flat per-vertex normals when the asset has none.
func (p *Primitive) EnsureNormals() {
	if len(p.Normals) == len(p.Positions) {
		return
	}
	p.Normals = make([]mgl32.Vec3, len(p.Positions))
	for i := 0; i+2 < len(p.Indices); i += 3 {
		ia, ib, ic := p.Indices[i], p.Indices[i+1], p.Indices[i+2]
		a, b, c := p.Positions[ia], p.Positions[ib], p.Positions[ic]
		n := b.Sub(a).Cross(c.Sub(a))
		p.Normals[ia] = p.Normals[ia].Add(n)
		p.Normals[ib] = p.Normals[ib].Add(n)
		p.Normals[ic] = p.Normals[ic].Add(n)
	}
	for i, n := range p.Normals {
		if n.Len() > 0 {
			p.Normals[i] = n.Normalize()
		} else {
			p.Normals[i] = mgl32.Vec3{0, 1, 0}
		}
	}
}
