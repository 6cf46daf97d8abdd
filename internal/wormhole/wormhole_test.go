package wormhole

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"space-demos/internal/config"
	"space-demos/internal/geom"
	"space-demos/internal/scene"
	"space-demos/internal/updatequeue"
)

func TestCycleFraction(t *testing.T) {
	const loop = 20 * time.Second
	for _, tc := range []struct {
		elapsed time.Duration
		want    float64
	}{
		{0, 0},
		{10 * time.Second, 0.25},
		{20 * time.Second, 0.5},
		{40 * time.Second, 0},
		{50 * time.Second, 0.25},
		{80 * time.Second, 0},
	} {
		assert.InDelta(t, tc.want, CycleFraction(tc.elapsed, loop, 0.5), 1e-12, tc.elapsed.String())
	}
	assert.Less(t, CycleFraction(40*time.Second-time.Millisecond, loop, 0.5), 1.0)
	assert.Greater(t, CycleFraction(40*time.Second-time.Millisecond, loop, 0.5), 0.9999)
	assert.Zero(t, CycleFraction(time.Second, 0, 0.5))
}

func TestLookAheadWraps(t *testing.T) {
	assert.InDelta(t, 0, LookAheadFraction(0.99, 0.01), 1e-12)
	assert.InDelta(t, 0.51, LookAheadFraction(0.5, 0.01), 1e-12)
	assert.InDelta(t, 0.005, LookAheadFraction(0.995, 0.01), 1e-12)
}

func TestLookAheadStaysInRange(t *testing.T) {
	assert.InDelta(t, 0.99, LookAheadFraction(0, -0.01), 1e-12)
	assert.InDelta(t, 0.25, LookAheadFraction(0.5, -1.25), 1e-12)
	assert.InDelta(t, 0.5, LookAheadFraction(0.25, 3.25), 1e-12)
	for _, ahead := range []float64{-0.01, -1, 1, 2.5} {
		for _, t1 := range []float64{0, 0.3, 0.999} {
			got := LookAheadFraction(t1, ahead)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 1.0)
		}
	}
}

func TestOutOfRangeSettingsDoNotPanic(t *testing.T) {
	cfg := config.Default().Wormhole
	cfg.LookAhead = -0.01
	cfg.LinePoints = 0
	var w *Wormhole
	require.NotPanics(t, func() { w = Build(cfg) })
	assert.Equal(t, 2, w.Line.Geometry.VertexCount())
	require.NotPanics(t, func() { w.UpdateCamera(0) })
	require.NotPanics(t, func() { w.UpdateCamera(39 * time.Second) })
}

func TestColorBufferStrideFour(t *testing.T) {
	b := NewColorBuffer(10, 4)
	require.Equal(t, 30, b.Len())
	for i := range b.values {
		b.values[i] = -1
	}
	b.Tick(rand.New(rand.NewPCG(7, 7)))

	require.Equal(t, 30, b.Len())
	for i, v := range b.values {
		if i%4 == 3 {
			assert.Equal(t, float32(-1), v, "channel %d is never written", i)
			continue
		}
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}

	before := b.Snapshot()
	b.Tick(rand.New(rand.NewPCG(8, 8)))
	for i := 3; i < b.Len(); i += 4 {
		assert.Equal(t, before[i], b.values[i])
	}
}

func TestColorBufferStrideThreeFillsAll(t *testing.T) {
	b := NewColorBuffer(7, 3)
	for i := range b.values {
		b.values[i] = -1
	}
	b.Tick(rand.New(rand.NewPCG(1, 1)))
	for _, v := range b.values {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}
	assert.Equal(t, 3, NewColorBuffer(1, 0).Stride())
}

func TestColorBufferDeterministic(t *testing.T) {
	a, b := NewColorBuffer(20, 4), NewColorBuffer(20, 4)
	a.Tick(rand.New(rand.NewPCG(5, 6)))
	b.Tick(rand.New(rand.NewPCG(5, 6)))
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestSnapshotIsACopy(t *testing.T) {
	b := NewColorBuffer(2, 3)
	snap := b.Snapshot()
	b.Tick(rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, make([]float32, 6), snap)
}

func TestBuildSceneShape(t *testing.T) {
	cfg := config.Default().Wormhole
	w := Build(cfg)

	children := w.Scene.Children()
	require.Len(t, children, 3)
	assert.Equal(t, []*scene.Node{w.Line, w.Tube}, w.Scene.Drawables())
	assert.Equal(t, 1, w.Scene.Count(scene.KindAmbientLight))
	assert.Equal(t, scene.KindLine, w.Line.Kind)
	assert.Equal(t, scene.KindMesh, w.Tube.Kind)

	require.NotNil(t, w.Scene.Fog)
	assert.Equal(t, scene.Black, w.Scene.Fog.Color)
	assert.Equal(t, float32(1), w.Scene.Fog.Near)
	assert.Equal(t, float32(4), w.Scene.Fog.Far)

	assert.Equal(t, 101, w.Line.Geometry.VertexCount())
	assert.Equal(t, scene.Hex(0x123123), w.Line.Material.Color)

	m := w.Tube.Material
	assert.True(t, m.Wireframe)
	assert.True(t, m.VertexColors)
	assert.Equal(t, scene.DoubleSide, m.Side)

	g := w.Tube.Geometry
	assert.Equal(t, 223*17, g.VertexCount())
	require.NoError(t, g.Validate())
	colors, version := g.Colors()
	assert.Len(t, colors, g.VertexCount()*3)
	assert.Equal(t, uint64(1), version)
}

func TestCenterlineFollowsPath(t *testing.T) {
	w := Build(config.Default().Wormhole)
	first := w.Line.Geometry.Vertex(0)
	last := w.Line.Geometry.Vertex(100)
	assert.InDelta(t, 0, first.Distance(controlPoints[0]), 1e-4)
	// The control loop closes on itself.
	assert.InDelta(t, 0, first.Distance(last), 1e-4)

	// And heads the same way on both sides of the seam, so the tube has no crease there.
	start, end := w.Path.TangentAt(0), w.Path.TangentAt(1)
	assert.InDelta(t, 1, start.Dot(end), 1e-3)
	assert.Greater(t, w.Path.TangentAt(0.999).Dot(w.Path.TangentAt(0.001)), float32(0.98))
}

func TestCameraIsStateless(t *testing.T) {
	w := Build(config.Default().Wormhole)

	w.UpdateCamera(0)
	assert.Equal(t, w.Path.PointAt(0), w.Camera.Position)
	assert.Equal(t, w.Path.PointAt(0.01), w.Camera.Target)
	atZero := w.Camera

	w.UpdateCamera(13 * time.Second)
	assert.NotEqual(t, atZero.Position, w.Camera.Position)

	w.UpdateCamera(40 * time.Second)
	assert.Equal(t, atZero, w.Camera)
}

func TestCameraLooksAheadAcrossWrap(t *testing.T) {
	w := Build(config.Default().Wormhole)
	// t1 = 0.995 at 39.8s; the target wraps to 0.005.
	w.UpdateCamera(39800 * time.Millisecond)
	want := w.Path.PointAt(float32(LookAheadFraction(0.995, 0.01)))
	assert.InDelta(t, 0, want.Distance(w.Camera.Target), 1e-3)
}

type recordingDrawer struct {
	cams []scene.Camera
}

func (d *recordingDrawer) Draw(_ *scene.Scene, cam scene.Camera) {
	d.cams = append(d.cams, cam)
}

func TestTickColorsGoesThroughQueue(t *testing.T) {
	w := Build(config.Default().Wormhole)
	w.Queue = updatequeue.New()
	d := &recordingDrawer{}
	w.Drawer = d

	w.TickColors(rand.New(rand.NewPCG(3, 3)))
	_, version := w.Tube.Geometry.Colors()
	assert.Equal(t, uint64(1), version, "not applied before the frame drains")

	w.Advance(time.Second)
	colors, version := w.Tube.Geometry.Colors()
	assert.Equal(t, uint64(2), version)
	assert.Equal(t, w.Colors().Snapshot(), colors)
	require.Len(t, d.cams, 1)
	assert.Equal(t, w.Camera, d.cams[0])
}

func TestTickColorsWithoutQueue(t *testing.T) {
	w := Build(config.Default().Wormhole)
	w.TickColors(rand.New(rand.NewPCG(9, 9)))
	_, version := w.Tube.Geometry.Colors()
	assert.Equal(t, uint64(2), version)
}

func TestColorCycleStopsOnCancel(t *testing.T) {
	cfg := config.Default().Wormhole
	cfg.ColorInterval = 5 * time.Millisecond
	w := Build(cfg)
	w.Queue = updatequeue.New()

	ctx, cancel := context.WithCancel(context.Background())
	done := w.StartColorCycle(ctx, rand.New(rand.NewPCG(1, 1)))
	require.Eventually(t, func() bool { return w.Queue.Len() >= 2 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("color cycle did not stop")
	}

	n := w.Queue.Drain()
	_, version := w.Tube.Geometry.Colors()
	assert.Equal(t, uint64(1+n), version)
	assert.Zero(t, w.Queue.Len())
}

func TestControlPointsCopy(t *testing.T) {
	pts := ControlPoints()
	pts[0] = geom.Vec3{}
	assert.NotEqual(t, geom.Vec3{}, controlPoints[0])
}
