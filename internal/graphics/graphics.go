// Package graphics owns the window and the frame loop.
package graphics

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"space-demos/internal/config"
	"space-demos/internal/controls"
)

// Scheduler is advanced once per frame, in order, between BeginDrawing and EndDrawing.
// elapsed is the time since the loop started.
type Scheduler interface {
	Advance(elapsed time.Duration)
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(elapsed time.Duration)

// Advance calls f.
func (f SchedulerFunc) Advance(elapsed time.Duration) { f(elapsed) }

// Setup builds the frame's schedulers once the window (and GL context) exists. width and
// height are the canvas size in pixels. The returned teardown, if not nil, runs after the
// last frame while the GL context is still current.
type Setup func(width, height int32) (schedulers []Scheduler, teardown func(), err error)

// Run opens the window, calls setup, and runs the frame loop until the window is closed.
// A zero width or height uses the primary monitor's size. ESC closes the window.
func Run(cfg config.Window, setup Setup) error {
	var flags uint32
	if cfg.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	if cfg.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(cfg.Width, cfg.Height, cfg.Title)
	defer rl.CloseWindow()
	if cfg.TargetFPS > 0 {
		rl.SetTargetFPS(cfg.TargetFPS)
	}

	schedulers, teardown, err := setup(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	if teardown != nil {
		defer teardown()
	}
	if err != nil {
		return err
	}

	start := time.Now()
	for !rl.WindowShouldClose() {
		elapsed := time.Since(start)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		for _, s := range schedulers {
			s.Advance(elapsed)
		}
		rl.EndDrawing()
	}
	return nil
}

// Mouse reads orbit input from the mouse: left drag rotates, right drag pans, the wheel
// zooms.
type Mouse struct{}

// Poll implements controls.Input.
func (Mouse) Poll() controls.Pointer {
	d := rl.GetMouseDelta()
	return controls.Pointer{
		Rotate: rl.IsMouseButtonDown(rl.MouseButtonLeft),
		Pan:    rl.IsMouseButtonDown(rl.MouseButtonRight),
		DX:     d.X,
		DY:     d.Y,
		Wheel:  rl.GetMouseWheelMove(),
	}
}
