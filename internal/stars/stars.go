// Package stars scatters background stars on a sphere.
package stars

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"space-demos/internal/geom"
)

// Generate returns count points uniformly distributed on the sphere of the given radius
// around the origin. Azimuth is uniform in [0, 2π); the polar angle is acos of a uniform
// value in [-1, 1], which gives equal density per unit area instead of bunching at the poles.
// A negative count yields no points.
func Generate(rng *rand.Rand, count int, radius float32) []geom.Vec3 {
	if count <= 0 {
		return nil
	}
	out := make([]geom.Vec3, count)
	for i := range out {
		theta := rng.Float32() * 2 * math32.Pi
		phi := math32.Acos(rng.Float32()*2 - 1)
		out[i] = geom.Vec3{
			X: radius * math32.Sin(phi) * math32.Cos(theta),
			Y: radius * math32.Sin(phi) * math32.Sin(theta),
			Z: radius * math32.Cos(phi),
		}
	}
	return out
}

// PolarAngle returns the angle between p and the +Z axis, the axis Generate measures φ from.
func PolarAngle(p geom.Vec3) float32 {
	l := p.Length()
	if l == 0 {
		return 0
	}
	return math32.Acos(max(-1, min(1, p.Z/l)))
}
