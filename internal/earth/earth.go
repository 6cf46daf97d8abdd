// Package earth builds and animates the rotating earth: a tilted group of four coincident
// spheres (surface, night lights, clouds, atmosphere) in front of a star field.
package earth

import (
	"math/rand/v2"
	"time"

	"github.com/chewxy/math32"

	"space-demos/internal/config"
	"space-demos/internal/controls"
	"space-demos/internal/geom"
	"space-demos/internal/scene"
	"space-demos/internal/stars"
	"space-demos/internal/updatequeue"
)

const (
	atmosphereRadius   = 1.1
	atmosphereSegments = 32
)

// Textures starts loading images into texture slots. Loads complete asynchronously.
type Textures interface {
	Load(tex *scene.Texture, name string)
	LoadWithAlpha(tex *scene.Texture, colorName, alphaName string)
}

// Earth is the earth scene plus everything needed to animate it. It implements the frame
// loop's Advance.
type Earth struct {
	Scene  *scene.Scene
	Camera scene.Camera

	Group      *scene.Node
	Surface    *scene.Node
	Lights     *scene.Node
	Clouds     *scene.Node
	Atmosphere *scene.Node
	Stars      *scene.Node
	Sun        *scene.Node

	Controls *controls.Orbit
	// Input, Drawer and Queue are optional; nil skips that step of Advance.
	Input  controls.Input
	Drawer scene.Drawer
	Queue  *updatequeue.Queue
	// ViewportHeight scales pointer drags; set it to the canvas height in pixels.
	ViewportHeight float32

	rotationSpeed float32
	cloudSpeed    float32
}

// Build assembles the scene. rng seeds the star field; textures may be nil, in which case
// materials stay untextured.
func Build(cfg config.Earth, rng *rand.Rand, textures Textures) *Earth {
	e := &Earth{
		Scene:         scene.New(),
		rotationSpeed: cfg.RotationSpeed,
		cloudSpeed:    cfg.CloudSpeed,
	}

	e.Group = scene.NewGroup("earth")
	e.Group.RotateZ(-cfg.TiltDegrees * math32.Pi / 180)

	sphere := geom.Icosahedron(1, cfg.Detail)

	surface := scene.NewMaterial("surface", scene.ShadingStandard)
	surface.Map = scene.NewTexture("diffuse")
	surface.SpecularMap = scene.NewTexture("specular")
	surface.BumpMap = scene.NewTexture("bump")
	surface.BumpScale = cfg.BumpScale
	e.Surface = scene.NewMesh("surface", sphere, surface)

	lights := scene.NewMaterial("night-lights", scene.ShadingBasic)
	lights.Map = scene.NewTexture("lights")
	lights.Blending = scene.BlendAdditive
	e.Lights = scene.NewMesh("night-lights", sphere, lights)

	clouds := scene.NewMaterial("clouds", scene.ShadingStandard)
	clouds.Map = scene.NewTexture("clouds")
	clouds.Transparent = true
	clouds.Opacity = cfg.CloudOpacity
	clouds.Blending = scene.BlendAdditive
	e.Clouds = scene.NewMesh("clouds", sphere, clouds)
	e.Clouds.SetScalar(cfg.CloudScale)

	e.Atmosphere = newAtmosphere()

	e.Group.Add(e.Surface, e.Lights, e.Clouds, e.Atmosphere)

	starMat := scene.NewMaterial("stars", scene.ShadingBasic)
	starMat.Fog = false
	e.Stars = scene.NewPoints("stars", geom.FromPoints(stars.Generate(rng, cfg.Stars.Count, cfg.Stars.Radius)), starMat)

	lp := cfg.LightPosition
	e.Sun = scene.NewDirectionalLight("sun", scene.White, 1, geom.V3(lp[0], lp[1], lp[2]))

	e.Scene.Add(e.Group, e.Stars, e.Sun)

	c := cfg.Camera
	e.Camera = scene.NewCamera(c.FovY, c.Near, c.Far, geom.V3(c.Position[0], c.Position[1], c.Position[2]))
	e.Controls = controls.NewOrbit(geom.Vec3{})
	e.Controls.EnableDamping = cfg.Damping > 0
	e.Controls.DampingFactor = cfg.Damping

	if textures != nil {
		t := cfg.Textures
		textures.Load(surface.Map, t.Diffuse)
		textures.Load(surface.SpecularMap, t.Specular)
		textures.Load(surface.BumpMap, t.Bump)
		textures.Load(lights.Map, t.Lights)
		textures.LoadWithAlpha(clouds.Map, t.Clouds, t.CloudAlpha)
	}
	return e
}

// newAtmosphere returns the glow shell: a slightly larger sphere drawn from the inside only,
// so the rim shows around the planet's silhouette.
func newAtmosphere() *scene.Node {
	g := geom.Sphere(atmosphereRadius, atmosphereSegments, atmosphereSegments)
	g.FlipWinding()
	m := scene.NewMaterial("atmosphere", scene.ShadingAtmosphere)
	m.Color = scene.Color{R: 0.3, G: 0.6, B: 1.0}
	m.Blending = scene.BlendAdditive
	m.Side = scene.BackSide
	m.Transparent = true
	return scene.NewMesh("atmosphere", g, m)
}

// Step applies one frame of rotation: the whole group turns about its tilted axis and the
// clouds drift at their own rate on top.
func (e *Earth) Step() {
	e.Group.RotateY(e.rotationSpeed)
	e.Clouds.RotateY(e.cloudSpeed)
}

// Advance runs one frame: apply queued updates, rotate, draw, then move the camera.
// Rotation is per frame, not per unit time.
func (e *Earth) Advance(elapsed time.Duration) {
	if e.Queue != nil {
		e.Queue.Drain()
	}
	e.Step()
	if e.Drawer != nil {
		e.Drawer.Draw(e.Scene, e.Camera)
	}
	if e.Input != nil {
		e.Controls.Apply(e.Input.Poll(), e.Camera, e.ViewportHeight)
	}
	e.Controls.Update(&e.Camera)
}
