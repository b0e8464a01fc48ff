package assets

import (
	"encoding/base64"
	"fmt"
	"image"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/texture"
)

// DecodeGLTF opens a .gltf or .glb file and converts its default scene into
// a node tree. Each glTF node keeps its transform as the scene node's base
// matrix, so the returned root can be positioned freely.
func DecodeGLTF(path string) (*scene.Node, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}
	d := &gltfDecoder{
		doc:       doc,
		dir:       filepath.Dir(path),
		materials: make(map[int]*scene.Material),
		images:    make(map[int]image.Image),
	}
	return d.scene(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

type gltfDecoder struct {
	doc *gltf.Document
	dir string

	materials map[int]*scene.Material
	images    map[int]image.Image
}

func (d *gltfDecoder) scene(name string) (*scene.Node, error) {
	root := scene.NewNode(name)

	var roots []int
	switch {
	case d.doc.Scene != nil && *d.doc.Scene < len(d.doc.Scenes):
		roots = d.doc.Scenes[*d.doc.Scene].Nodes
	case len(d.doc.Scenes) > 0:
		roots = d.doc.Scenes[0].Nodes
	default:
		// No scene: every node that is nobody's child is a root.
		child := make(map[int]bool)
		for _, n := range d.doc.Nodes {
			for _, c := range n.Children {
				child[c] = true
			}
		}
		for i := range d.doc.Nodes {
			if !child[i] {
				roots = append(roots, i)
			}
		}
	}

	for _, idx := range roots {
		n, err := d.node(idx, 0)
		if err != nil {
			return nil, err
		}
		root.Add(n)
	}
	return root, nil
}

// maxDepth bounds recursion on malformed files with cyclic children.
const maxDepth = 64

func (d *gltfDecoder) node(idx, depth int) (*scene.Node, error) {
	if idx < 0 || idx >= len(d.doc.Nodes) {
		return nil, fmt.Errorf("node %d out of range", idx)
	}
	if depth > maxDepth {
		return nil, fmt.Errorf("node hierarchy deeper than %d", maxDepth)
	}
	src := d.doc.Nodes[idx]

	n := scene.NewNode(src.Name)
	n.Base = nodeMatrix(src)

	if src.Mesh != nil {
		m, err := d.mesh(*src.Mesh)
		if err != nil {
			return nil, err
		}
		n.Mesh = m
	}
	for _, c := range src.Children {
		child, err := d.node(c, depth+1)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

// nodeMatrix returns the node's local transform: its matrix when one is
// given, otherwise T * R * S.
func nodeMatrix(n *gltf.Node) mgl32.Mat4 {
	var m mgl32.Mat4
	for i, v := range n.MatrixOrDefault() {
		m[i] = float32(v)
	}
	if m != mgl32.Ident4() {
		return m
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

// mesh decodes a fresh copy per referencing node: primitive ids must be
// unique in the pick index, so instanced meshes are not shared.
func (d *gltfDecoder) mesh(idx int) (*scene.Mesh, error) {
	if idx < 0 || idx >= len(d.doc.Meshes) {
		return nil, fmt.Errorf("mesh %d out of range", idx)
	}
	src := d.doc.Meshes[idx]
	m := &scene.Mesh{Name: src.Name}

	for i, p := range src.Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			// Points and lines are not drawn or picked.
			continue
		}
		prim, err := d.primitive(p)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", src.Name, i, err)
		}
		if prim != nil {
			m.Primitives = append(m.Primitives, prim)
		}
	}
	return m, nil
}

func (d *gltfDecoder) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(d.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return d.doc.Accessors[idx], nil
}

func (d *gltfDecoder) primitive(p *gltf.Primitive) (*scene.Primitive, error) {
	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	acc, err := d.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	raw, err := modeler.ReadPosition(d.doc, acc, nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	positions := make([]mgl32.Vec3, len(raw))
	for i, v := range raw {
		positions[i] = mgl32.Vec3(v)
	}

	var indices []uint32
	if p.Indices != nil {
		acc, err := d.accessor(*p.Indices)
		if err != nil {
			return nil, err
		}
		indices, err = modeler.ReadIndices(d.doc, acc, nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		for _, ix := range indices {
			if int(ix) >= len(positions) {
				return nil, fmt.Errorf("index %d out of range (%d vertices)", ix, len(positions))
			}
		}
	}

	prim := scene.NewPrimitive(positions, indices)

	if idx, ok := p.Attributes[gltf.NORMAL]; ok {
		acc, err := d.accessor(idx)
		if err != nil {
			return nil, err
		}
		normals, err := modeler.ReadNormal(d.doc, acc, nil)
		if err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
		if len(normals) == len(positions) {
			prim.Normals = make([]mgl32.Vec3, len(normals))
			for i, v := range normals {
				prim.Normals[i] = mgl32.Vec3(v)
			}
		}
	}
	prim.EnsureNormals()

	if idx, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		acc, err := d.accessor(idx)
		if err != nil {
			return nil, err
		}
		uvs, err := modeler.ReadTextureCoord(d.doc, acc, nil)
		if err != nil {
			return nil, fmt.Errorf("uvs: %w", err)
		}
		if len(uvs) == len(positions) {
			prim.UVs = make([]mgl32.Vec2, len(uvs))
			for i, v := range uvs {
				prim.UVs[i] = mgl32.Vec2(v)
			}
		}
	}

	if p.Material != nil {
		mat, err := d.material(*p.Material)
		if err != nil {
			return nil, err
		}
		prim.Material = mat
	}
	return prim, nil
}

func (d *gltfDecoder) material(idx int) (*scene.Material, error) {
	if m, ok := d.materials[idx]; ok {
		return m, nil
	}
	if idx < 0 || idx >= len(d.doc.Materials) {
		return nil, fmt.Errorf("material %d out of range", idx)
	}
	src := d.doc.Materials[idx]

	m := scene.DefaultMaterial()
	m.Name = src.Name
	m.DoubleSided = src.DoubleSided
	if pbr := src.PBRMetallicRoughness; pbr != nil {
		c := pbr.BaseColorFactorOrDefault()
		m.BaseColor = mgl32.Vec4{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
		m.Metallic = float32(pbr.MetallicFactorOrDefault())
		m.Roughness = float32(pbr.RoughnessFactorOrDefault())
		if pbr.BaseColorTexture != nil {
			img, err := d.texture(pbr.BaseColorTexture.Index)
			if err != nil {
				return nil, fmt.Errorf("material %q: %w", src.Name, err)
			}
			m.BaseImage = img
		}
	}
	d.materials[idx] = m
	return m, nil
}

func (d *gltfDecoder) texture(idx int) (image.Image, error) {
	if idx < 0 || idx >= len(d.doc.Textures) {
		return nil, fmt.Errorf("texture %d out of range", idx)
	}
	src := d.doc.Textures[idx].Source
	if src == nil {
		return nil, nil
	}
	if img, ok := d.images[*src]; ok {
		return img, nil
	}
	if *src < 0 || *src >= len(d.doc.Images) {
		return nil, fmt.Errorf("image %d out of range", *src)
	}
	im := d.doc.Images[*src]

	name, data, err := d.imageData(im)
	if err != nil {
		return nil, fmt.Errorf("image %d: %w", *src, err)
	}
	img, err := texture.Decode(name, data)
	if err != nil {
		return nil, err
	}
	d.images[*src] = img
	return img, nil
}

// imageData returns the encoded bytes of an image from its buffer view,
// data URI or file next to the glTF.
func (d *gltfDecoder) imageData(im *gltf.Image) (string, []byte, error) {
	switch {
	case im.BufferView != nil:
		bv := *im.BufferView
		if bv < 0 || bv >= len(d.doc.BufferViews) {
			return "", nil, fmt.Errorf("buffer view %d out of range", bv)
		}
		view := d.doc.BufferViews[bv]
		if view.Buffer < 0 || view.Buffer >= len(d.doc.Buffers) {
			return "", nil, fmt.Errorf("buffer %d out of range", view.Buffer)
		}
		buf := d.doc.Buffers[view.Buffer].Data
		end := view.ByteOffset + view.ByteLength
		if view.ByteOffset < 0 || end > len(buf) {
			return "", nil, fmt.Errorf("buffer view %d exceeds buffer", bv)
		}
		return im.Name, buf[view.ByteOffset:end], nil
	case strings.HasPrefix(im.URI, "data:"):
		data, err := decodeDataURI(im.URI)
		return im.Name, data, err
	case im.URI != "":
		rel, err := url.PathUnescape(im.URI)
		if err != nil {
			rel = im.URI
		}
		data, err := os.ReadFile(filepath.Join(d.dir, filepath.FromSlash(rel)))
		return rel, data, err
	default:
		return "", nil, fmt.Errorf("image has no source")
	}
}

func decodeDataURI(uri string) ([]byte, error) {
	_, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.Contains(uri[:len(uri)-len(payload)], ";base64") {
		return nil, fmt.Errorf("unsupported data URI")
	}
	return base64.StdEncoding.DecodeString(payload)
}
