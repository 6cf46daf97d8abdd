// Package scene is a renderer-independent scene graph: nodes with local transforms,
// materials, lights, fog and a camera. Renderers walk it every frame; nothing here touches
// the GPU, so scenes can be built and animated in tests.
package scene

import (
	"space-demos/internal/geom"
)

// Fog fades drawables to Color between Near and Far (view-space depth), linearly in the
// smoothstep sense.
type Fog struct {
	Color     Color
	Near, Far float32
}

// Factor returns how much of the fog color replaces a fragment at depth, in [0,1].
func (f Fog) Factor(depth float32) float32 {
	if f.Far <= f.Near {
		if depth >= f.Far {
			return 1
		}
		return 0
	}
	x := (depth - f.Near) / (f.Far - f.Near)
	x = max(0, min(1, x))
	return x * x * (3 - 2*x)
}

// Apply blends c toward the fog color at depth.
func (f Fog) Apply(c Color, depth float32) Color {
	k := f.Factor(depth)
	return Color{
		R: c.R + (f.Color.R-c.R)*k,
		G: c.G + (f.Color.G-c.G)*k,
		B: c.B + (f.Color.B-c.B)*k,
	}
}

// Camera is a perspective camera. FovY is the vertical field of view in degrees.
type Camera struct {
	Position geom.Vec3
	Target   geom.Vec3
	Up       geom.Vec3
	FovY     float32
	Near     float32
	Far      float32
}

// NewCamera returns a camera at position looking at the origin with +Y up.
func NewCamera(fovY, near, far float32, position geom.Vec3) Camera {
	return Camera{
		Position: position,
		Up:       geom.V3(0, 1, 0),
		FovY:     fovY,
		Near:     near,
		Far:      far,
	}
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target geom.Vec3) {
	c.Target = target
}

// Forward returns the unit view direction.
func (c Camera) Forward() geom.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// Scene is the root of a scene graph.
type Scene struct {
	Root       *Node
	Fog        *Fog
	Background Color
}

// New returns an empty scene with a black background and no fog.
func New() *Scene {
	return &Scene{Root: NewGroup("scene")}
}

// Add attaches top-level nodes.
func (s *Scene) Add(nodes ...*Node) {
	s.Root.Add(nodes...)
}

// Children returns the top-level nodes.
func (s *Scene) Children() []*Node {
	return s.Root.Children()
}

// Traverse visits every visible node below the root. Invisible nodes hide their subtree.
func (s *Scene) Traverse(fn func(*Node)) {
	for _, c := range s.Root.Children() {
		c.Traverse(func(n *Node) bool {
			if !n.Visible {
				return false
			}
			fn(n)
			return true
		})
	}
}

// Count returns the number of visible nodes of kind.
func (s *Scene) Count(kind Kind) int {
	var n int
	s.Traverse(func(node *Node) {
		if node.Kind == kind {
			n++
		}
	})
	return n
}

// Drawables returns the visible mesh, point and line nodes in traversal order.
func (s *Scene) Drawables() []*Node {
	var out []*Node
	s.Traverse(func(n *Node) {
		if n.Kind.Drawable() {
			out = append(out, n)
		}
	})
	return out
}

// Find returns the first node named name, or nil.
func (s *Scene) Find(name string) *Node {
	var found *Node
	s.Root.Traverse(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// Drawer draws a scene from a camera. Implementations own all GPU state.
type Drawer interface {
	Draw(s *Scene, cam Camera)
}
