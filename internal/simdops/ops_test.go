package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// tapCount matches the size of the combined late-reverb kernel.
const tapCount = 96

func TestFor_Float64(t *testing.T) {
	ops := For[float64]()
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{0.5, -1, 2, 0, 1}

	assert.InDelta(t, 0.5-2+6+0+5, ops.DotProductUnsafe(a, b), 1e-12)

	dst := make([]float64, len(a))
	ops.Scale(dst, a, 0.2)
	for i := range a {
		assert.InDelta(t, a[i]*0.2, dst[i], 1e-12, "dst[%d]", i)
	}
}

func TestFor_Float32(t *testing.T) {
	ops := For[float32]()
	a := []float32{1, -1, 1, -1}
	b := []float32{0.25, 0.25, 0.5, 0.5}

	assert.InDelta(t, 0.0, float64(ops.DotProductUnsafe(a, b)), 1e-6)
}

func TestFloat64Ops_SameInstance(t *testing.T) {
	assert.Same(t, Float64Ops(), For[float64]())
}

// BenchmarkGatheredDot measures the gathered multiply-accumulate used per output sample.
func BenchmarkGatheredDot(b *testing.B) {
	ops := For[float64]()
	gathered := make([]float64, tapCount)
	gains := make([]float64, tapCount)
	for i := range gathered {
		gathered[i] = float64(i) * 0.01
		gains[i] = float64(i%2*2-1) * 0.5
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = ops.DotProductUnsafe(gathered, gains)
	}
}

// BenchmarkScalarDot is the pure Go baseline for BenchmarkGatheredDot.
func BenchmarkScalarDot(b *testing.B) {
	gathered := make([]float64, tapCount)
	gains := make([]float64, tapCount)
	for i := range gathered {
		gathered[i] = float64(i) * 0.01
		gains[i] = float64(i%2*2-1) * 0.5
	}

	b.ReportAllocs()
	for b.Loop() {
		var sum float64
		for i := range gathered {
			sum += gathered[i] * gains[i]
		}
		_ = sum
	}
}
