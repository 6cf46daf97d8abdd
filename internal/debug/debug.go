// Package debug draws optional overlays (FPS, heap, last log line) on top of a demo.
package debug

import (
	"fmt"
	"runtime"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"space-demos/internal/config"
	"space-demos/internal/fonts"
	"space-demos/internal/logger"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Overlay holds runtime debugging features. All overlays are off by default.
type Overlay struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowLog      bool

	log         *logger.Logger
	font        rl.Font
	frameCount  uint32
	lastFPSText string
	lastMemText string
	memStats    runtime.MemStats
}

// New returns an overlay configured from cfg. The font, if any, is loaded here, so call it
// after the window exists.
func New(cfg config.Debug, log *logger.Logger) *Overlay {
	d := &Overlay{
		ShowFPS:      cfg.ShowFPS,
		ShowMemAlloc: cfg.ShowMemAlloc,
		ShowLog:      cfg.ShowLog,
		log:          log,
	}
	if cfg.Font != "" && d.Enabled() {
		d.loadFont(cfg.Font, cfg.FontDir)
	}
	return d
}

// Enabled reports whether any overlay is on.
func (d *Overlay) Enabled() bool {
	return d.ShowFPS || d.ShowMemAlloc || d.ShowLog
}

func (d *Overlay) loadFont(name, dir string) {
	path, err := fonts.Find(name, dir)
	if err != nil {
		d.logf("debug font %q: %v", name, err)
		return
	}
	f := rl.LoadFontEx(path, fontSize*2, nil)
	if !rl.IsFontValid(f) {
		d.logf("debug font %s: failed to load", path)
		return
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	d.font = f
}

// Advance draws the overlays; it is the last scheduler of a frame.
func (d *Overlay) Advance(time.Duration) {
	d.Draw()
}

// Draw renders the enabled overlays: FPS and heap top-right, the last log line bottom-left.
// Text is only recomputed every updateInterval frames to limit allocations.
func (d *Overlay) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	screenW := float32(rl.GetScreenWidth())
	y := float32(padding)

	if d.ShowFPS {
		if update || d.lastFPSText == "" {
			d.lastFPSText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.text(d.lastFPSText, screenW-d.measure(d.lastFPSText)-padding, y, rl.Green)
		y += lineHeight
	}

	if d.ShowMemAlloc {
		if update || d.lastMemText == "" {
			runtime.ReadMemStats(&d.memStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024))
		}
		d.text(d.lastMemText, screenW-d.measure(d.lastMemText)-padding, y, rl.Green)
	}

	if d.ShowLog && d.log != nil {
		if last := d.log.Last(); last != "" {
			d.text(last, padding, float32(rl.GetScreenHeight())-lineHeight-padding, rl.LightGray)
		}
	}
}

func (d *Overlay) measure(s string) float32 {
	if d.font.Texture.ID != 0 {
		return rl.MeasureTextEx(d.font, s, fontSize, 1).X
	}
	return float32(rl.MeasureText(s, fontSize))
}

func (d *Overlay) text(s string, x, y float32, c rl.Color) {
	if d.font.Texture.ID != 0 {
		rl.DrawTextEx(d.font, s, rl.NewVector2(x, y), fontSize, 1, c)
		return
	}
	rl.DrawText(s, int32(x), int32(y), fontSize, c)
}

func (d *Overlay) logf(format string, args ...any) {
	if d.log != nil {
		d.log.Logf(format, args...)
	}
}

// Close unloads the overlay font.
func (d *Overlay) Close() {
	if d.font.Texture.ID != 0 {
		rl.UnloadFont(d.font)
		d.font = rl.Font{}
	}
}
