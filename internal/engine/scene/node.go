// Package scene holds the scene graph: nodes, mesh primitives, materials,
// lights and environment. It has no GL dependency; the renderer uploads
// primitives lazily and stores its handles on them.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/showroom/internal/engine/picking"
)

// Node is one transform in the scene graph.
//
// The local matrix is T * Rx * Ry * Rz * S * Base: Position, Rotation
// (Euler radians, XYZ order) and Scale are driven by animation while Base
// keeps the transform authored in the asset.
type Node struct {
	Name     string
	Parent   *Node
	Children []*Node

	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	Base     mgl32.Mat4

	Mesh    *Mesh
	Visible bool
}

// NewNode creates a visible node with identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:    name,
		Scale:   mgl32.Vec3{1, 1, 1},
		Base:    mgl32.Ident4(),
		Visible: true,
	}
}

// Add attaches child under n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.Parent != nil {
		child.Parent.Remove(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Remove detaches child from n. Unknown children are ignored.
func (n *Node) Remove(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// SetScale sets a uniform scale.
func (n *Node) SetScale(s float32) {
	n.Scale = mgl32.Vec3{s, s, s}
}

// Local returns the node's transform relative to its parent.
func (n *Node) Local() mgl32.Mat4 {
	return mgl32.Translate3D(n.Position[0], n.Position[1], n.Position[2]).
		Mul4(mgl32.HomogRotate3DX(n.Rotation[0])).
		Mul4(mgl32.HomogRotate3DY(n.Rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(n.Rotation[2])).
		Mul4(mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])).
		Mul4(n.Base)
}

// World returns the node's transform in world space.
func (n *Node) World() mgl32.Mat4 {
	m := n.Local()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.Local().Mul4(m)
	}
	return m
}

// WorldPosition returns the world-space origin of the node.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.World().Col(3).Vec3()
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips that node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Primitives calls fn for every primitive in the subtree together with the
// node that places it.
func (n *Node) Primitives(fn func(owner *Node, p *Primitive)) {
	n.Walk(func(node *Node) bool {
		if node.Mesh != nil {
			for _, p := range node.Mesh.Primitives {
				fn(node, p)
			}
		}
		return true
	})
}

// Bounds returns the world-space box of every primitive in the subtree.
func (n *Node) Bounds() picking.AABB {
	box := picking.EmptyAABB()
	n.Primitives(func(owner *Node, p *Primitive) {
		box = box.Union(p.Bounds.Transform(owner.World()))
	})
	return box
}

// Find returns the first node in the subtree with the given name.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if found != nil {
			return false
		}
		if node.Name == name {
			found = node
			return false
		}
		return true
	})
	return found
}
