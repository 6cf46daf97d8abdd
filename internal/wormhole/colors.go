package wormhole

import (
	"math/rand/v2"
)

// ColorBuffer is the tube's per-vertex RGB buffer as the color ticker sees it. Each Tick
// writes three random channels, then advances by stride. A stride of 4 leaves every fourth
// channel at its previous value, which is how the effect has always looked; 3 fills the
// whole buffer.
type ColorBuffer struct {
	values []float32
	stride int
}

// NewColorBuffer returns a zeroed buffer for vertexCount vertices. Strides below 3 are
// raised to 3.
func NewColorBuffer(vertexCount, stride int) *ColorBuffer {
	return &ColorBuffer{
		values: make([]float32, vertexCount*3),
		stride: max(stride, 3),
	}
}

// Tick rewrites the buffer with uniform values in [0,1).
func (b *ColorBuffer) Tick(rng *rand.Rand) {
	n := len(b.values)
	for i := 0; i < n; i += b.stride {
		for c := i; c < i+3 && c < n; c++ {
			b.values[c] = rng.Float32()
		}
	}
}

// Snapshot returns a copy of the buffer that later ticks will not change.
func (b *ColorBuffer) Snapshot() []float32 {
	return append([]float32(nil), b.values...)
}

// Len returns the number of channels.
func (b *ColorBuffer) Len() int {
	return len(b.values)
}

// Stride returns the step between writes.
func (b *ColorBuffer) Stride() int {
	return b.stride
}
