// Package render draws scene graphs with raylib. GPU resources are created lazily on first
// draw, after the window and GL context exist, and refreshed when the scene's geometry
// colors or texture images change.
package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"space-demos/internal/geom"
	"space-demos/internal/logger"
	"space-demos/internal/scene"
)

// shininess is the specular exponent for lit surfaces.
const shininess = 30

// Renderer implements scene.Drawer. It must only be used on the thread that owns the window.
type Renderer struct {
	log      *logger.Logger
	meshes   map[*geom.Geometry]*gpuMesh
	textures *textureCache
	programs map[scene.Shading]*program
}

// New returns a renderer with nothing uploaded yet.
func New(log *logger.Logger) *Renderer {
	return &Renderer{
		log:    log,
		meshes: make(map[*geom.Geometry]*gpuMesh),
	}
}

// ensure loads shaders and fallback textures on first use.
func (r *Renderer) ensure() {
	if r.programs != nil {
		return
	}
	r.textures = newTextureCache()
	r.programs = map[scene.Shading]*program{
		scene.ShadingStandard:   loadProgram("standard", surfaceVS, standardFS, r.log),
		scene.ShadingBasic:      loadProgram("basic", surfaceVS, basicFS, r.log),
		scene.ShadingAtmosphere: loadProgram("atmosphere", atmosphereVS, atmosphereFS, r.log),
	}
}

// Draw clears to the scene background and draws every visible node from cam: opaque nodes
// first, then blended ones.
func (r *Renderer) Draw(s *scene.Scene, cam scene.Camera) {
	r.ensure()
	rl.ClearBackground(toColor(s.Background, 1))

	lighting := s.Lighting()
	rl.SetClipPlanes(float64(cam.Near), float64(cam.Far))
	rl.BeginMode3D(toCamera(cam))
	for _, n := range s.RenderList() {
		switch n.Kind {
		case scene.KindMesh:
			r.drawMesh(n, s.Fog, cam, lighting)
		case scene.KindLine:
			r.drawLine(n, s.Fog, cam)
		case scene.KindPoints:
			r.drawPoints(n, s.Fog, cam)
		}
	}
	rl.EndMode3D()
}

func (r *Renderer) mesh(n *scene.Node) *gpuMesh {
	m, ok := r.meshes[n.Geometry]
	if !ok {
		m = uploadMesh(n.Geometry, n.Material.VertexColors)
		r.meshes[n.Geometry] = m
	}
	m.syncColors(n.Geometry)
	return m
}

func (r *Renderer) drawMesh(n *scene.Node, fog *scene.Fog, cam scene.Camera, lighting scene.Lighting) {
	mat := n.Material
	if mat == nil || n.Geometry == nil || n.Geometry.VertexCount() == 0 {
		return
	}
	gm := r.mesh(n)
	p := r.programs[mat.Shading]

	mtl := p.mtl
	rl.SetMaterialTexture(&mtl, rl.MapAlbedo, r.textures.get(mat.Map))
	rl.SetMaterialTexture(&mtl, rl.MapMetalness, r.textures.get(mat.SpecularMap))
	rl.SetMaterialTexture(&mtl, rl.MapNormal, r.textures.get(mat.BumpMap))
	mtl.GetMap(rl.MapAlbedo).Color = toColor(mat.Color, 1)

	r.setUniforms(p, mat, fog, cam, lighting)

	if mat.Side == scene.DoubleSide {
		rl.DisableBackfaceCulling()
		defer rl.EnableBackfaceCulling()
	}
	if mat.Wireframe {
		rl.EnableWireMode()
		defer rl.DisableWireMode()
	}
	if mat.Blended() {
		rl.BeginBlendMode(blendMode(mat.Blending))
		defer rl.EndBlendMode()
	}
	rl.DrawMesh(gm.mesh, mtl, toMatrix(n.WorldMatrix()))
}

// setUniforms uploads per-draw state. Programs ignore names they do not declare.
func (r *Renderer) setUniforms(p *program, mat *scene.Material, fog *scene.Fog, cam scene.Camera, lighting scene.Lighting) {
	if !p.valid() {
		return
	}
	p.setVec3("viewPos", cam.Position.Array())
	p.setVec3("ambient", colorArray(lighting.Ambient))
	if len(lighting.Directional) > 0 {
		// Only the first directional light is shaded.
		sun := lighting.Directional[0]
		p.setFlag("hasLight", true)
		p.setVec3("lightDir", sun.Direction.Array())
		p.setVec3("lightColor", colorArray(sun.Color))
	} else {
		p.setFlag("hasLight", false)
	}
	p.setFlag("hasSpecular", mat.SpecularMap != nil && mat.SpecularMap.Ready())
	p.setFlag("hasBump", mat.BumpMap != nil && mat.BumpMap.Ready())
	p.setFloat("bumpScale", mat.BumpScale)
	p.setFloat("shininess", shininess)
	p.setFloat("opacity", mat.Opacity)
	p.setFlag("useVertexColor", mat.VertexColors)

	useFog := fog != nil && mat.Fog
	p.setFlag("hasFog", useFog)
	if useFog {
		p.setVec3("fogColor", colorArray(fog.Color))
		p.setFloat("fogNear", fog.Near)
		p.setFloat("fogFar", fog.Far)
	}
}

// drawLine draws the polyline segment by segment, fogging each on the CPU by the depth of its
// midpoint.
func (r *Renderer) drawLine(n *scene.Node, fog *scene.Fog, cam scene.Camera) {
	g := n.Geometry
	if g == nil || g.VertexCount() < 2 {
		return
	}
	world := n.WorldMatrix()
	forward := cam.Forward()
	prev := world.TransformPoint(g.Vertex(0))
	for i := 1; i < g.VertexCount(); i++ {
		cur := world.TransformPoint(g.Vertex(i))
		c := n.Material.Color
		if fog != nil && n.Material.Fog {
			mid := prev.Add(cur).Scale(0.5)
			c = fog.Apply(c, mid.Sub(cam.Position).Dot(forward))
		}
		rl.DrawLine3D(toVector(prev), toVector(cur), toColor(c, n.Material.Opacity))
		prev = cur
	}
}

func (r *Renderer) drawPoints(n *scene.Node, fog *scene.Fog, cam scene.Camera) {
	g := n.Geometry
	if g == nil {
		return
	}
	world := n.WorldMatrix()
	forward := cam.Forward()
	for i := 0; i < g.VertexCount(); i++ {
		p := world.TransformPoint(g.Vertex(i))
		c := n.Material.Color
		if fog != nil && n.Material.Fog {
			c = fog.Apply(c, p.Sub(cam.Position).Dot(forward))
		}
		rl.DrawPoint3D(toVector(p), toColor(c, n.Material.Opacity))
	}
}

// Close releases every GPU resource the renderer created.
func (r *Renderer) Close() {
	for g, m := range r.meshes {
		m.unload()
		delete(r.meshes, g)
	}
	if r.programs == nil {
		return
	}
	for _, p := range r.programs {
		p.unload()
	}
	r.textures.unload()
	r.programs = nil
}

func blendMode(b scene.Blending) rl.BlendMode {
	if b == scene.BlendAdditive {
		return rl.BlendAdditive
	}
	return rl.BlendAlpha
}

func toCamera(c scene.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector(c.Position),
		Target:     toVector(c.Target),
		Up:         toVector(c.Up),
		Fovy:       c.FovY,
		Projection: rl.CameraPerspective,
	}
}

func toVector(v geom.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X, v.Y, v.Z)
}

func toColor(c scene.Color, alpha float32) rl.Color {
	return rl.NewColor(unit8(c.R), unit8(c.G), unit8(c.B), unit8(alpha))
}

func colorArray(c scene.Color) [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// toMatrix maps a column-major geom.Mat4 onto raylib's named elements.
func toMatrix(m geom.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}
