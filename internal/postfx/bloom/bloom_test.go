package bloom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKernelNormalized(t *testing.T) {
	for i := 0; i < Mips; i++ {
		r := KernelRadius(i)
		w := Kernel(r)
		require.Len(t, w, r)
		sum := w[0]
		for _, v := range w[1:] {
			sum += 2 * v
		}
		assert.InDelta(t, 1, sum, 1e-5)
		for j := 1; j < len(w); j++ {
			assert.Less(t, w[j], w[j-1], "weights fall off from the center")
		}
	}
	assert.Equal(t, []float32{1}, Kernel(0))
}

func TestFactors(t *testing.T) {
	f := Factors(Params{Strength: 5.5, Radius: 0})
	assert.InDeltaSlice(t, []float32{5.5, 4.4, 3.3, 2.2, 1.1}, f[:], 1e-5)

	f = Factors(Params{Strength: 1, Radius: 1})
	assert.InDeltaSlice(t, []float32{0.2, 0.4, 0.6, 0.8, 1.0}, f[:], 1e-5)
}

func TestMipSizes(t *testing.T) {
	s := MipSizes(1920, 1080)
	assert.Equal(t, [2]int32{960, 540}, s[0])
	assert.Equal(t, [2]int32{480, 270}, s[1])
	assert.Equal(t, [2]int32{240, 135}, s[2])
	assert.Equal(t, [2]int32{120, 68}, s[3])
	assert.Equal(t, [2]int32{60, 34}, s[4])

	tiny := MipSizes(2, 2)
	assert.Equal(t, [2]int32{1, 1}, tiny[4])
}

func TestBrightWeight(t *testing.T) {
	assert.Zero(t, BrightWeight(0.004, 0.005))
	assert.Equal(t, float32(1), BrightWeight(0.1, 0.005))
	assert.InDelta(t, 0.5, BrightWeight(0.01, 0.005), 1e-5)
	assert.InDelta(t, 1, Luminance(1, 1, 1), 1e-6)
}

func TestTexelStepsUseTheMipItself(t *testing.T) {
	sizes := MipSizes(1920, 1080)
	h, v := TexelSteps(sizes[1])
	assert.Equal(t, [2]float32{1.0 / 480, 0}, h)
	assert.Equal(t, [2]float32{0, 1.0 / 270}, v)

	h, v = TexelSteps([2]int32{0, 0})
	assert.Equal(t, [2]float32{1, 0}, h)
	assert.Equal(t, [2]float32{0, 1}, v)
}
