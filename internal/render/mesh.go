package render

import (
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"space-demos/internal/geom"
)

// colorBuffer is the vbo slot raylib uses for vertex colors.
const colorBuffer = 3

// maxIndexedVertices is the largest vertex count raylib's 16-bit index buffer can address.
const maxIndexedVertices = 1 << 16

// gpuMesh is a geometry uploaded to the GPU. The vertex slices stay owned by Go and pinned
// for as long as the mesh lives, since raylib keeps pointers to them.
type gpuMesh struct {
	mesh          rl.Mesh
	pinner        runtime.Pinner
	positions     []float32
	normals       []float32
	uvs           []float32
	indices       []uint16
	colors        []uint8
	colorsVersion uint64
}

// uploadMesh copies g into GPU buffers. withColors forces a (white) color buffer even when g
// has none yet, so later color updates can go through UpdateMeshBuffer.
func uploadMesh(g *geom.Geometry, withColors bool) *gpuMesh {
	_, version := g.Colors()
	if g.Indices != nil && g.VertexCount() > maxIndexedVertices {
		g = g.NonIndexed()
	}
	m := &gpuMesh{positions: g.Positions, normals: g.Normals, uvs: g.UVs}
	m.mesh.VertexCount = int32(g.VertexCount())
	m.mesh.TriangleCount = int32(g.TriangleCount())

	if len(m.positions) > 0 {
		m.mesh.Vertices = &m.positions[0]
		m.pinner.Pin(m.mesh.Vertices)
	}
	if len(m.normals) > 0 {
		m.mesh.Normals = &m.normals[0]
		m.pinner.Pin(m.mesh.Normals)
	}
	if len(m.uvs) > 0 {
		m.mesh.Texcoords = &m.uvs[0]
		m.pinner.Pin(m.mesh.Texcoords)
	}
	if len(g.Indices) > 0 {
		m.indices = make([]uint16, len(g.Indices))
		for i, idx := range g.Indices {
			m.indices[i] = uint16(idx)
		}
		m.mesh.Indices = &m.indices[0]
		m.pinner.Pin(m.mesh.Indices)
	}

	colors, _ := g.Colors()
	if (withColors || colors != nil) && g.VertexCount() > 0 {
		m.colors = make([]uint8, g.VertexCount()*4)
		for i := range m.colors {
			m.colors[i] = 255
		}
		if colors != nil {
			packColors(m.colors, colors)
		}
		m.colorsVersion = version
		m.mesh.Colors = &m.colors[0]
		m.pinner.Pin(m.mesh.Colors)
	}

	rl.UploadMesh(&m.mesh, m.colors != nil)
	return m
}

// packColors converts RGB floats in [0,1] into the RGBA bytes raylib expects. Alpha bytes
// are left as they are.
func packColors(dst []uint8, src []float32) {
	for v := 0; v*3+2 < len(src) && v*4+3 < len(dst); v++ {
		dst[v*4] = unit8(src[v*3])
		dst[v*4+1] = unit8(src[v*3+1])
		dst[v*4+2] = unit8(src[v*3+2])
	}
}

func unit8(f float32) uint8 {
	return uint8(max(0, min(1, f))*255 + 0.5)
}

// syncColors re-uploads the color buffer when g's colors changed since the last upload.
func (m *gpuMesh) syncColors(g *geom.Geometry) {
	if m.colors == nil {
		return
	}
	colors, version := g.Colors()
	if version == m.colorsVersion || colors == nil {
		return
	}
	if g.Indices != nil && len(m.indices) == 0 {
		// Uploaded de-indexed: expand the colors the same way.
		colors = expandColors(colors, g.Indices)
	}
	packColors(m.colors, colors)
	m.colorsVersion = version
	rl.UpdateMeshBuffer(m.mesh, colorBuffer, m.colors, 0)
}

func expandColors(colors []float32, indices []uint32) []float32 {
	out := make([]float32, 0, len(indices)*3)
	for _, idx := range indices {
		out = append(out, colors[idx*3:idx*3+3]...)
	}
	return out
}

func (m *gpuMesh) unload() {
	rl.UnloadMesh(&m.mesh)
	m.pinner.Unpin()
}
