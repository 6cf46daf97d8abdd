package wormhole

import (
	"math"
	"time"

	"space-demos/internal/geom"
	"space-demos/internal/scene"
)

// CycleFraction maps elapsed time onto [0,1): elapsed is scaled by scale, then wrapped by
// loop. With scale 0.5 and a 20s loop one lap takes 40s of wall time.
func CycleFraction(elapsed, loop time.Duration, scale float64) float64 {
	if loop <= 0 {
		return 0
	}
	ms := float64(elapsed) / float64(time.Millisecond) * scale
	period := float64(loop) / float64(time.Millisecond)
	t := math.Mod(ms, period) / period
	if t < 0 {
		t++
	}
	return t
}

// LookAheadFraction returns the fraction ahead of t1, wrapped into [0,1).
func LookAheadFraction(t1, ahead float64) float64 {
	t := math.Mod(t1+ahead, 1)
	if t < 0 {
		t++
	}
	if t >= 1 || math.IsNaN(t) {
		return 0
	}
	return t
}

// PathSampler is a curve addressed by arc-length fraction.
type PathSampler interface {
	PointAt(u float32) geom.Vec3
}

// PlaceCamera puts cam on the path at fraction t1, looking toward t1+ahead. It depends only
// on its arguments, so the same elapsed time always yields the same view.
func PlaceCamera(cam *scene.Camera, path PathSampler, t1, ahead float64) {
	cam.Position = path.PointAt(float32(t1))
	cam.LookAt(path.PointAt(float32(LookAheadFraction(t1, ahead))))
}
