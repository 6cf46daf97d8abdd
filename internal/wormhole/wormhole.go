// Package wormhole builds the tube flythrough: a wireframe tube swept along a looping spline
// with a centerline, flickering vertex colors, and a camera that rides the spline.
package wormhole

import (
	"context"
	"math/rand/v2"
	"time"

	"space-demos/internal/config"
	"space-demos/internal/curve"
	"space-demos/internal/geom"
	"space-demos/internal/logger"
	"space-demos/internal/scene"
	"space-demos/internal/updatequeue"
)

// Wormhole is the flythrough scene and its animation state.
type Wormhole struct {
	Scene  *scene.Scene
	Camera scene.Camera
	Path   *curve.CatmullRom

	Line    *scene.Node
	Tube    *scene.Node
	Ambient *scene.Node

	// Drawer and Queue are optional; nil skips that step of Advance.
	Drawer scene.Drawer
	Queue  *updatequeue.Queue
	Log    *logger.Logger

	cfg    config.Wormhole
	colors *ColorBuffer
}

// Build assembles the scene from cfg.
func Build(cfg config.Wormhole) *Wormhole {
	w := &Wormhole{
		Scene: scene.New(),
		Path:  NewPath(),
		cfg:   cfg,
	}

	lineMat := scene.NewMaterial("centerline", scene.ShadingBasic)
	lineMat.Color = scene.Hex(cfg.LineColor)
	w.Line = scene.NewLine("centerline", geom.FromPoints(w.Path.Points(cfg.LinePoints)), lineMat)

	tubeGeo := geom.Tube(w.Path, cfg.TubularSegments, cfg.Radius, cfg.RadialSegments, true)
	w.colors = NewColorBuffer(tubeGeo.VertexCount(), cfg.ColorStride)
	// Starts black until the first tick.
	_ = tubeGeo.SetColors(w.colors.Snapshot())

	tubeMat := scene.NewMaterial("tube", scene.ShadingStandard)
	tubeMat.Side = scene.DoubleSide
	tubeMat.VertexColors = true
	tubeMat.Wireframe = true
	w.Tube = scene.NewMesh("tube", tubeGeo, tubeMat)

	w.Ambient = scene.NewAmbientLight("ambient", scene.White, 1)

	w.Scene.Add(w.Line, w.Tube, w.Ambient)
	w.Scene.Fog = &scene.Fog{Color: scene.Hex(cfg.Fog.Color), Near: cfg.Fog.Near, Far: cfg.Fog.Far}

	c := cfg.Camera
	w.Camera = scene.NewCamera(c.FovY, c.Near, c.Far, geom.V3(c.Position[0], c.Position[1], c.Position[2]))
	return w
}

// Colors returns the ticker's color buffer.
func (w *Wormhole) Colors() *ColorBuffer {
	return w.colors
}

// UpdateCamera places the camera for elapsed time since start.
func (w *Wormhole) UpdateCamera(elapsed time.Duration) {
	t1 := CycleFraction(elapsed, w.cfg.LoopTime, w.cfg.TimeScale)
	PlaceCamera(&w.Camera, w.Path, t1, w.cfg.LookAhead)
}

// Advance runs one frame: apply queued updates, move the camera, draw.
func (w *Wormhole) Advance(elapsed time.Duration) {
	if w.Queue != nil {
		w.Queue.Drain()
	}
	w.UpdateCamera(elapsed)
	if w.Drawer != nil {
		w.Drawer.Draw(w.Scene, w.Camera)
	}
}

// TickColors regenerates the color buffer and schedules the copy onto the tube through the
// queue. Without a queue the copy is applied immediately, which is only safe on the frame
// thread.
func (w *Wormhole) TickColors(rng *rand.Rand) {
	w.colors.Tick(rng)
	snap := w.colors.Snapshot()
	apply := func() {
		if err := w.Tube.Geometry.SetColors(snap); err != nil && w.Log != nil {
			w.Log.Logf("tube colors: %v", err)
		}
	}
	if w.Queue == nil {
		apply()
		return
	}
	w.Queue.Push(apply)
}

// StartColorCycle ticks colors every ColorInterval on a new goroutine until ctx is done. The
// returned channel closes when the goroutine exits. Only the goroutine touches the buffer
// while it runs.
func (w *Wormhole) StartColorCycle(ctx context.Context, rng *rand.Rand) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(w.cfg.ColorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.TickColors(rng)
			}
		}
	}()
	return done
}
