// Package bloom holds the numbers behind the glow pass: blur kernels, mip sizes and the
// per-mip composite factors. It has no GPU dependencies.
package bloom

import "github.com/chewxy/math32"

// Mips is the number of blur levels.
const Mips = 5

// SmoothWidth is how far above the threshold the bright pass ramps from black to full.
const SmoothWidth = 0.01

var (
	kernelRadii = [Mips]int{3, 5, 7, 9, 11}
	baseFactors = [Mips]float32{1.0, 0.8, 0.6, 0.4, 0.2}
)

// Params are the glow settings. Radius in [0,1] shifts weight from the sharp mips toward the
// wide ones.
type Params struct {
	Threshold float32
	Strength  float32
	Radius    float32
}

// KernelRadius returns the blur tap count for mip i.
func KernelRadius(i int) int {
	return kernelRadii[i]
}

// Kernel returns one-sided Gaussian weights w[0..radius-1] with sigma = radius, normalized
// so that w[0] + 2*sum(w[1:]) == 1.
func Kernel(radius int) []float32 {
	if radius < 1 {
		return []float32{1}
	}
	sigma := float32(radius)
	w := make([]float32, radius)
	var sum float32
	for i := range w {
		x := float32(i)
		w[i] = 0.39894 * math32.Exp(-0.5*x*x/(sigma*sigma)) / sigma
		if i == 0 {
			sum += w[i]
		} else {
			sum += 2 * w[i]
		}
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

// Factors returns the composite weight of each mip: strength * mix(f, 1.2-f, radius).
func Factors(p Params) [Mips]float32 {
	var out [Mips]float32
	for i, f := range baseFactors {
		out[i] = p.Strength * (f + (1.2-f-f)*p.Radius)
	}
	return out
}

// MipSizes returns the render target size of each mip: half the canvas, then halving again
// per level, never below 1x1.
func MipSizes(width, height int32) [Mips][2]int32 {
	var out [Mips][2]int32
	w := math32.Round(float32(width) / 2)
	h := math32.Round(float32(height) / 2)
	for i := range out {
		out[i] = [2]int32{max(1, int32(w)), max(1, int32(h))}
		w = math32.Round(w / 2)
		h = math32.Round(h / 2)
	}
	return out
}

// TexelSteps returns the horizontal and vertical blur offsets for a mip of the given size.
// Both passes step by one texel of that mip, whatever size the pass reads from.
func TexelSteps(size [2]int32) (horizontal, vertical [2]float32) {
	w, h := max(size[0], 1), max(size[1], 1)
	return [2]float32{1 / float32(w), 0}, [2]float32{0, 1 / float32(h)}
}

// Luminance is the relative luminance of a linear RGB color.
func Luminance(r, g, b float32) float32 {
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// BrightWeight is how much of a pixel with luminance lum passes the bright filter.
func BrightWeight(lum, threshold float32) float32 {
	x := (lum - threshold) / SmoothWidth
	x = max(0, min(1, x))
	return x * x * (3 - 2*x)
}
