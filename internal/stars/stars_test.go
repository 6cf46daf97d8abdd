package stars

import (
	"math/rand/v2"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRadius(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, count := range []int{0, 1, 300, 5000} {
		pts := Generate(rng, count, 1000)
		require.Len(t, pts, count)
		for _, p := range pts {
			require.InDelta(t, 1000, p.Length(), 1e-2)
		}
	}
	assert.Empty(t, Generate(rng, -3, 1000))
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(rand.New(rand.NewPCG(7, 7)), 50, 10)
	b := Generate(rand.New(rand.NewPCG(7, 7)), 50, 10)
	assert.Equal(t, a, b)
}

// With acos(2U-1) sampling, cos(φ) is uniform on [-1, 1], so the polar angle histogram
// follows sin(φ): the bands next to the poles are sparse and the equator band is densest.
// Uniform-angle sampling would fill every band equally.
func TestPolarAngleDistribution(t *testing.T) {
	const (
		n     = 200000
		bands = 10
	)
	rng := rand.New(rand.NewPCG(42, 99))
	var hist [bands]int
	for _, p := range Generate(rng, n, 1000) {
		b := int(PolarAngle(p) / math32.Pi * bands)
		hist[min(b, bands-1)]++
	}

	for b := 0; b < bands; b++ {
		lo := float32(b) * math32.Pi / bands
		hi := float32(b+1) * math32.Pi / bands
		want := (math32.Cos(lo) - math32.Cos(hi)) / 2 * n
		assert.InEpsilon(t, want, float32(hist[b]), 0.05, "band %d", b)
	}

	// A uniform-angle sampler would put n/bands in the polar bands.
	assert.Less(t, hist[0], n/bands/3)
	assert.Less(t, hist[bands-1], n/bands/3)
	assert.Greater(t, hist[bands/2], n/bands)
}

func TestPolarAngleAxis(t *testing.T) {
	pts := Generate(rand.New(rand.NewPCG(3, 4)), 1000, 5)
	var cosSum float64
	for _, p := range pts {
		cosSum += float64(math32.Cos(PolarAngle(p)))
	}
	// cos(φ) averages to zero over the sphere.
	assert.InDelta(t, 0, cosSum/1000, 0.08)
}
