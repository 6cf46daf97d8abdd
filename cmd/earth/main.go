// Command earth shows the rotating earth with clouds, night lights and an atmosphere glow.
// Drag to orbit, right-drag to pan, scroll to zoom.
package main

import (
	"context"
	"math/rand/v2"
	"os"

	"space-demos/internal/app"
	"space-demos/internal/assets"
	"space-demos/internal/debug"
	"space-demos/internal/earth"
	"space-demos/internal/graphics"
	"space-demos/internal/render"
	"space-demos/internal/updatequeue"
)

func main() {
	opts, err := app.ParseFlags("earth", os.Args[1:], os.LookupEnv, os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	cfg, log, err := app.Start("earth", opts)
	if err != nil {
		app.Fatal(log, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if missing := assets.Missing(cfg.Earth.AssetsDir, cfg.Earth.Textures.Names()); len(missing) > 0 {
		log.Logf("missing textures %v, run fetch-textures", missing)
	}

	setup := func(width, height int32) ([]graphics.Scheduler, func(), error) {
		queue := updatequeue.New()
		loader := assets.NewLoader(ctx, queue, log, cfg.Earth.AssetsDir)
		seed := app.Seed(cfg.Earth.Stars.Seed)
		e := earth.Build(cfg.Earth, rand.New(rand.NewPCG(seed, seed>>1|1)), loader)

		renderer := render.New(log)
		e.Drawer = renderer
		e.Queue = queue
		e.Input = graphics.Mouse{}
		e.ViewportHeight = float32(height)
		log.Logf("earth ready at %dx%d, star seed %d", width, height, seed)

		overlay := debug.New(cfg.Debug, log)
		teardown := func() {
			cancel()
			loader.Wait()
			overlay.Close()
			renderer.Close()
		}
		return []graphics.Scheduler{e, overlay}, teardown, nil
	}
	if err := graphics.Run(cfg.Window, setup); err != nil {
		app.Fatal(log, err)
	}
	log.Logf("earth closed")
}
