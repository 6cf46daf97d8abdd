// Command wormhole flies a camera through a glowing wireframe tube that loops forever.
package main

import (
	"context"
	"math/rand/v2"
	"os"

	"space-demos/internal/app"
	"space-demos/internal/debug"
	"space-demos/internal/graphics"
	"space-demos/internal/postfx"
	"space-demos/internal/postfx/bloom"
	"space-demos/internal/render"
	"space-demos/internal/updatequeue"
	"space-demos/internal/wormhole"
)

func main() {
	opts, err := app.ParseFlags("wormhole", os.Args[1:], os.LookupEnv, os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	cfg, log, err := app.Start("wormhole", opts)
	if err != nil {
		app.Fatal(log, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setup := func(width, height int32) ([]graphics.Scheduler, func(), error) {
		w := wormhole.Build(cfg.Wormhole)
		renderer := render.New(log)
		b := cfg.Wormhole.Bloom
		composer := postfx.NewComposer(renderer, bloom.Params{Threshold: b.Threshold, Strength: b.Strength, Radius: b.Radius}, log)
		w.Drawer = composer
		w.Queue = updatequeue.New()
		w.Log = log

		seed := app.Seed(cfg.Wormhole.ColorSeed)
		done := w.StartColorCycle(ctx, rand.New(rand.NewPCG(seed, seed>>1|1)))
		log.Logf("wormhole ready at %dx%d, %d tube vertices, color seed %d",
			width, height, w.Tube.Geometry.VertexCount(), seed)

		overlay := debug.New(cfg.Debug, log)
		teardown := func() {
			cancel()
			<-done
			overlay.Close()
			composer.Close()
			renderer.Close()
		}
		return []graphics.Scheduler{w, overlay}, teardown, nil
	}
	if err := graphics.Run(cfg.Window, setup); err != nil {
		app.Fatal(log, err)
	}
	log.Logf("wormhole closed")
}
