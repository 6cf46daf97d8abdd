// Package geom holds the vector math and the vertex-buffer generators the demos draw:
// icosphere, UV sphere, swept tube and polylines.
package geom

import "fmt"

// Geometry is a CPU-side vertex buffer set. Positions, Normals and Colors hold 3 floats per
// vertex, UVs hold 2. Indices is optional; when nil every 3 vertices form a triangle.
// Colors may only be replaced through SetColors so renderers can notice the change.
type Geometry struct {
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint32

	colors        []float32
	colorsVersion uint64
}

// VertexCount returns the number of vertices (Positions / 3).
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// Colors returns the current per-vertex RGB buffer and its version. Version 0 means no colors were ever set.
func (g *Geometry) Colors() ([]float32, uint64) {
	return g.colors, g.colorsVersion
}

// SetColors replaces the per-vertex RGB buffer. It must hold exactly VertexCount()*3 values.
func (g *Geometry) SetColors(colors []float32) error {
	if want := g.VertexCount() * 3; len(colors) != want {
		return fmt.Errorf("color buffer has %d values, geometry needs %d", len(colors), want)
	}
	g.colors = colors
	g.colorsVersion++
	return nil
}

// Validate checks that every attribute buffer matches the vertex count and indices are in range.
func (g *Geometry) Validate() error {
	if len(g.Positions)%3 != 0 {
		return fmt.Errorf("positions length %d is not a multiple of 3", len(g.Positions))
	}
	n := g.VertexCount()
	if g.Normals != nil && len(g.Normals) != n*3 {
		return fmt.Errorf("normals length %d, want %d", len(g.Normals), n*3)
	}
	if g.UVs != nil && len(g.UVs) != n*2 {
		return fmt.Errorf("uvs length %d, want %d", len(g.UVs), n*2)
	}
	if g.colors != nil && len(g.colors) != n*3 {
		return fmt.Errorf("colors length %d, want %d", len(g.colors), n*3)
	}
	for i, idx := range g.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d at %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}

// TriangleCount returns the number of triangles drawn.
func (g *Geometry) TriangleCount() int {
	if g.Indices != nil {
		return len(g.Indices) / 3
	}
	return g.VertexCount() / 3
}

// Vertex returns the position of vertex i.
func (g *Geometry) Vertex(i int) Vec3 {
	return Vec3{g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]}
}

// FlipWinding reverses the winding order of every triangle, so back-face culling keeps the
// inside of a closed mesh. Normals are left pointing outward.
func (g *Geometry) FlipWinding() {
	if g.Indices != nil {
		for i := 0; i+2 < len(g.Indices); i += 3 {
			g.Indices[i+1], g.Indices[i+2] = g.Indices[i+2], g.Indices[i+1]
		}
		return
	}
	for v := 0; v+2 < g.VertexCount(); v += 3 {
		swapVertex(g.Positions, 3, v+1, v+2)
		swapVertex(g.Normals, 3, v+1, v+2)
		swapVertex(g.UVs, 2, v+1, v+2)
		swapVertex(g.colors, 3, v+1, v+2)
	}
}

func swapVertex(buf []float32, stride, a, b int) {
	if buf == nil {
		return
	}
	for k := 0; k < stride; k++ {
		buf[a*stride+k], buf[b*stride+k] = buf[b*stride+k], buf[a*stride+k]
	}
}

// NonIndexed returns a copy with indices expanded into a flat triangle list.
// Returns g itself when it is already non-indexed.
func (g *Geometry) NonIndexed() *Geometry {
	if g.Indices == nil {
		return g
	}
	out := &Geometry{
		Positions: expand(g.Positions, g.Indices, 3),
		Normals:   expand(g.Normals, g.Indices, 3),
		UVs:       expand(g.UVs, g.Indices, 2),
	}
	if g.colors != nil {
		out.colors = expand(g.colors, g.Indices, 3)
		out.colorsVersion = 1
	}
	return out
}

func expand(buf []float32, indices []uint32, stride int) []float32 {
	if buf == nil {
		return nil
	}
	out := make([]float32, 0, len(indices)*stride)
	for _, idx := range indices {
		out = append(out, buf[int(idx)*stride:int(idx)*stride+stride]...)
	}
	return out
}

// FromPoints returns a position-only geometry with one vertex per point, for lines and point clouds.
func FromPoints(points []Vec3) *Geometry {
	pos := make([]float32, 0, len(points)*3)
	for _, p := range points {
		pos = append(pos, p.X, p.Y, p.Z)
	}
	return &Geometry{Positions: pos}
}
