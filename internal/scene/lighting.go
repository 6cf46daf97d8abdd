package scene

import "space-demos/internal/geom"

// DirectionalLight is a resolved directional light: Direction points from the surface toward
// the light and Color is already scaled by intensity.
type DirectionalLight struct {
	Direction geom.Vec3
	Color     Color
}

// Lighting is everything a lit shader needs for one frame.
type Lighting struct {
	Ambient     Color
	Directional []DirectionalLight
}

// Lighting sums the visible ambient lights and resolves directional lights from their world
// positions. A directional light sitting at the origin shines straight down.
func (s *Scene) Lighting() Lighting {
	var l Lighting
	s.Traverse(func(n *Node) {
		if n.Light == nil {
			return
		}
		c := n.Light.Color
		k := n.Light.Intensity
		switch n.Kind {
		case KindAmbientLight:
			l.Ambient.R += c.R * k
			l.Ambient.G += c.G * k
			l.Ambient.B += c.B * k
		case KindDirectionalLight:
			dir := n.WorldPosition()
			if dir.Length() == 0 {
				dir = geom.V3(0, 1, 0)
			}
			l.Directional = append(l.Directional, DirectionalLight{
				Direction: dir.Normalize(),
				Color:     Color{R: c.R * k, G: c.G * k, B: c.B * k},
			})
		}
	})
	return l
}

// Blended reports whether the material draws over what is behind it rather than replacing it.
func (m *Material) Blended() bool {
	return m.Transparent || m.Blending != BlendNormal
}

// RenderList returns the drawables in draw order: opaque nodes first, then blended ones,
// each group in traversal order.
func (s *Scene) RenderList() []*Node {
	var opaque, blended []*Node
	for _, n := range s.Drawables() {
		if n.Material != nil && n.Material.Blended() {
			blended = append(blended, n)
			continue
		}
		opaque = append(opaque, n)
	}
	return append(opaque, blended...)
}
