package earth

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"space-demos/internal/config"
	"space-demos/internal/controls"
	"space-demos/internal/geom"
	"space-demos/internal/scene"
	"space-demos/internal/updatequeue"
)

type loadCall struct {
	tex   *scene.Texture
	names []string
}

type fakeTextures struct {
	calls []loadCall
}

func (f *fakeTextures) Load(tex *scene.Texture, name string) {
	f.calls = append(f.calls, loadCall{tex, []string{name}})
}

func (f *fakeTextures) LoadWithAlpha(tex *scene.Texture, colorName, alphaName string) {
	f.calls = append(f.calls, loadCall{tex, []string{colorName, alphaName}})
}

type recordingDrawer struct {
	draws    int
	rotation []geom.Quat
}

func (d *recordingDrawer) Draw(s *scene.Scene, cam scene.Camera) {
	d.draws++
	d.rotation = append(d.rotation, s.Find("earth").Rotation)
}

type scriptedInput struct {
	frames []controls.Pointer
}

func (s *scriptedInput) Poll() controls.Pointer {
	if len(s.frames) == 0 {
		return controls.Pointer{}
	}
	p := s.frames[0]
	s.frames = s.frames[1:]
	return p
}

func build(t *testing.T) (*Earth, *fakeTextures) {
	t.Helper()
	cfg := config.Default().Earth
	cfg.Detail = 2
	tex := &fakeTextures{}
	return Build(cfg, rand.New(rand.NewPCG(1, 2)), tex), tex
}

func quatInDelta(t *testing.T, want, got geom.Quat) {
	t.Helper()
	// q and -q are the same rotation.
	if want.W*got.W+want.X*got.X+want.Y*got.Y+want.Z*got.Z < 0 {
		got = geom.Quat{X: -got.X, Y: -got.Y, Z: -got.Z, W: -got.W}
	}
	assert.InDelta(t, want.X, got.X, 1e-4)
	assert.InDelta(t, want.Y, got.Y, 1e-4)
	assert.InDelta(t, want.Z, got.Z, 1e-4)
	assert.InDelta(t, want.W, got.W, 1e-4)
}

func TestBuildSceneShape(t *testing.T) {
	e, _ := build(t)

	children := e.Scene.Children()
	require.Len(t, children, 3)
	assert.Same(t, e.Group, children[0])
	assert.Same(t, e.Stars, children[1])
	assert.Same(t, e.Sun, children[2])

	assert.Equal(t, []*scene.Node{e.Surface, e.Lights, e.Clouds, e.Atmosphere}, e.Group.Children())
	assert.Len(t, e.Scene.Drawables(), 5)
	assert.Equal(t, 4, e.Scene.Count(scene.KindMesh))
	assert.Equal(t, 1, e.Scene.Count(scene.KindPoints))
	assert.Equal(t, 1, e.Scene.Count(scene.KindDirectionalLight))
	assert.Nil(t, e.Scene.Fog)
}

func TestLayersShareGeometry(t *testing.T) {
	e, _ := build(t)
	assert.Same(t, e.Surface.Geometry, e.Lights.Geometry)
	assert.Same(t, e.Surface.Geometry, e.Clouds.Geometry)
	assert.NotSame(t, e.Surface.Geometry, e.Atmosphere.Geometry)
	for _, n := range e.Scene.Drawables() {
		require.NoError(t, n.Geometry.Validate(), n.Name)
	}

	assert.Equal(t, geom.V3(1.003, 1.003, 1.003), e.Clouds.Scale)
	assert.Equal(t, scene.BlendAdditive, e.Lights.Material.Blending)
	assert.Equal(t, scene.ShadingBasic, e.Lights.Material.Shading)
	assert.Equal(t, scene.BlendAdditive, e.Clouds.Material.Blending)
	assert.InDelta(t, 0.8, e.Clouds.Material.Opacity, 1e-6)
	assert.Equal(t, scene.BackSide, e.Atmosphere.Material.Side)
	assert.Equal(t, scene.ShadingAtmosphere, e.Atmosphere.Material.Shading)
	assert.InDelta(t, 0.04, e.Surface.Material.BumpScale, 1e-6)
}

func TestStarField(t *testing.T) {
	e, _ := build(t)
	g := e.Stars.Geometry
	require.Equal(t, 300, g.VertexCount())
	for i := 0; i < g.VertexCount(); i++ {
		assert.InDelta(t, 1000, g.Vertex(i).Length(), 0.05)
	}
}

func TestSunPlacement(t *testing.T) {
	e, _ := build(t)
	assert.Equal(t, geom.V3(-2, 0.5, 1.5), e.Sun.Position)
	require.NotNil(t, e.Sun.Light)
	assert.Equal(t, scene.White, e.Sun.Light.Color)
}

func TestTexturesRequested(t *testing.T) {
	e, tex := build(t)
	require.Len(t, tex.calls, 5)
	assert.Same(t, e.Surface.Material.Map, tex.calls[0].tex)
	assert.Equal(t, []string{"00_earthmap1k.jpg"}, tex.calls[0].names)
	assert.Same(t, e.Surface.Material.SpecularMap, tex.calls[1].tex)
	assert.Same(t, e.Surface.Material.BumpMap, tex.calls[2].tex)
	assert.Same(t, e.Lights.Material.Map, tex.calls[3].tex)
	assert.Same(t, e.Clouds.Material.Map, tex.calls[4].tex)
	assert.Equal(t, []string{"04_earthcloudmap.jpg", "05_earthcloudmaptrans.jpg"}, tex.calls[4].names)
}

func TestBuildWithoutTextures(t *testing.T) {
	cfg := config.Default().Earth
	cfg.Detail = 1
	e := Build(cfg, rand.New(rand.NewPCG(3, 4)), nil)
	assert.False(t, e.Surface.Material.Map.Ready())
}

func TestInitialTilt(t *testing.T) {
	e, _ := build(t)
	tilt := -23.4 * math32.Pi / 180
	quatInDelta(t, geom.QuatFromAxisAngle(geom.V3(0, 0, 1), tilt), e.Group.Rotation)
	axis := e.Group.Rotation.Rotate(geom.V3(0, 1, 0))
	assert.InDelta(t, math32.Sin(-tilt), axis.X, 1e-5)
	assert.InDelta(t, math32.Cos(tilt), axis.Y, 1e-5)
}

func TestRotationRates(t *testing.T) {
	e, _ := build(t)
	start := e.Group.Rotation
	const frames = 500
	for i := 0; i < frames; i++ {
		e.Step()
	}
	quatInDelta(t, start.Mul(geom.QuatFromAxisAngle(geom.V3(0, 1, 0), frames*0.001)), e.Group.Rotation)
	quatInDelta(t, geom.QuatFromAxisAngle(geom.V3(0, 1, 0), frames*0.0005), e.Clouds.Rotation)

	// The spin axis stays the tilted one.
	axis := e.Group.Rotation.Rotate(geom.V3(0, 1, 0))
	tilted := start.Rotate(geom.V3(0, 1, 0))
	assert.InDelta(t, 0, axis.Distance(tilted), 1e-4)
}

func TestAdvanceOrder(t *testing.T) {
	e, _ := build(t)
	d := &recordingDrawer{}
	q := updatequeue.New()
	e.Drawer, e.Queue = d, q

	var drained bool
	q.Push(func() { drained = true })
	start := e.Group.Rotation
	e.Advance(16 * time.Millisecond)

	assert.True(t, drained)
	require.Equal(t, 1, d.draws)
	// Drawn after the first rotation step.
	quatInDelta(t, start.Mul(geom.QuatFromAxisAngle(geom.V3(0, 1, 0), 0.001)), d.rotation[0])
}

func TestAdvanceRotatesPerFrameNotPerTime(t *testing.T) {
	a, _ := build(t)
	b, _ := build(t)
	a.Advance(time.Millisecond)
	b.Advance(time.Second)
	quatInDelta(t, a.Group.Rotation, b.Group.Rotation)
}

func TestAdvanceMovesCameraWithDamping(t *testing.T) {
	e, _ := build(t)
	e.ViewportHeight = 600
	e.Input = &scriptedInput{frames: []controls.Pointer{{Rotate: true, DX: 60}}}
	start := e.Camera.Position

	e.Advance(16 * time.Millisecond)
	first := start.Distance(e.Camera.Position)
	assert.Greater(t, first, float32(0))

	// Keeps coasting without further input.
	prev := e.Camera.Position
	e.Advance(16 * time.Millisecond)
	assert.Greater(t, prev.Distance(e.Camera.Position), float32(0))
	assert.InDelta(t, 5, e.Camera.Position.Length(), 1e-3)
	assert.Equal(t, geom.Vec3{}, e.Camera.Target)
}
