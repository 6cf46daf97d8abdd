package scene

import (
	"space-demos/internal/geom"
)

// Kind says how a node is drawn.
type Kind int

const (
	KindGroup Kind = iota
	KindMesh
	KindPoints
	KindLine
	KindDirectionalLight
	KindAmbientLight
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindMesh:
		return "mesh"
	case KindPoints:
		return "points"
	case KindLine:
		return "line"
	case KindDirectionalLight:
		return "directional-light"
	case KindAmbientLight:
		return "ambient-light"
	}
	return "unknown"
}

// Drawable reports whether nodes of this kind put geometry on screen.
func (k Kind) Drawable() bool {
	return k == KindMesh || k == KindPoints || k == KindLine
}

// Light is the emitter data of a light node. A directional light shines from the node's
// world position toward the origin.
type Light struct {
	Color     Color
	Intensity float32
}

// Node is one element of the scene graph. Transforms are local to the parent and applied as
// translate * rotate * scale. Geometry may be shared between nodes.
type Node struct {
	Name     string
	Kind     Kind
	Geometry *geom.Geometry
	Material *Material
	Light    *Light

	Position geom.Vec3
	Rotation geom.Quat
	Scale    geom.Vec3
	Visible  bool

	parent   *Node
	children []*Node
}

func newNode(name string, kind Kind) *Node {
	return &Node{
		Name:     name,
		Kind:     kind,
		Rotation: geom.Identity,
		Scale:    geom.V3(1, 1, 1),
		Visible:  true,
	}
}

// NewGroup returns an empty transform node.
func NewGroup(name string) *Node {
	return newNode(name, KindGroup)
}

// NewMesh returns a triangle mesh node.
func NewMesh(name string, g *geom.Geometry, m *Material) *Node {
	n := newNode(name, KindMesh)
	n.Geometry, n.Material = g, m
	return n
}

// NewPoints returns a node drawing one point per vertex of g.
func NewPoints(name string, g *geom.Geometry, m *Material) *Node {
	n := newNode(name, KindPoints)
	n.Geometry, n.Material = g, m
	return n
}

// NewLine returns a node drawing a polyline through the vertices of g in order.
func NewLine(name string, g *geom.Geometry, m *Material) *Node {
	n := newNode(name, KindLine)
	n.Geometry, n.Material = g, m
	return n
}

// NewDirectionalLight returns a light at position shining toward the origin.
func NewDirectionalLight(name string, c Color, intensity float32, position geom.Vec3) *Node {
	n := newNode(name, KindDirectionalLight)
	n.Light = &Light{Color: c, Intensity: intensity}
	n.Position = position
	return n
}

// NewAmbientLight returns a light that lights every surface equally.
func NewAmbientLight(name string, c Color, intensity float32) *Node {
	n := newNode(name, KindAmbientLight)
	n.Light = &Light{Color: c, Intensity: intensity}
	return n
}

// Add attaches children to n, detaching them from any previous parent.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

// Remove detaches child from n. It is a no-op if child is not a direct child.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Children returns the direct children in insertion order.
func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) Parent() *Node {
	return n.parent
}

// RotateOnAxis rotates n by angle radians about axis in its own local space.
func (n *Node) RotateOnAxis(axis geom.Vec3, angle float32) {
	n.Rotation = n.Rotation.Mul(geom.QuatFromAxisAngle(axis, angle)).Normalize()
}

func (n *Node) RotateX(angle float32) { n.RotateOnAxis(geom.V3(1, 0, 0), angle) }
func (n *Node) RotateY(angle float32) { n.RotateOnAxis(geom.V3(0, 1, 0), angle) }
func (n *Node) RotateZ(angle float32) { n.RotateOnAxis(geom.V3(0, 0, 1), angle) }

// SetScalar sets a uniform scale.
func (n *Node) SetScalar(s float32) {
	n.Scale = geom.V3(s, s, s)
}

// LocalMatrix returns the transform relative to the parent.
func (n *Node) LocalMatrix() geom.Mat4 {
	return geom.Compose(n.Position, n.Rotation, n.Scale)
}

// WorldMatrix returns the transform from local to world space.
func (n *Node) WorldMatrix() geom.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() geom.Vec3 {
	return n.WorldMatrix().TransformPoint(geom.Vec3{})
}

// Traverse calls fn for n and every descendant, depth first, parents before children.
// Returning false from fn skips that node's subtree.
func (n *Node) Traverse(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Traverse(fn)
	}
}
