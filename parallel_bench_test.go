package velvet

import (
	"testing"
)

// BenchmarkApplyLateReverbMultiSequential benchmarks sequential multi-channel processing.
func BenchmarkApplyLateReverbMultiSequential(b *testing.B) {
	benchmarkApplyLateReverbMulti(b, false)
}

// BenchmarkApplyLateReverbMultiParallel benchmarks parallel multi-channel processing.
func BenchmarkApplyLateReverbMultiParallel(b *testing.B) {
	benchmarkApplyLateReverbMulti(b, true)
}

func benchmarkApplyLateReverbMulti(b *testing.B, parallel bool) {
	b.Helper()

	const (
		channels   = 2      // Stereo
		numSamples = RateCD // 1 second of audio
	)

	input := make([][]float64, channels)
	for ch := range channels {
		input[ch] = make([]float64, numSamples)
		for i := range numSamples {
			input[ch][i] = 0.1 * float64(i) / float64(numSamples) // Simple ramp
		}
	}

	b.ReportAllocs()

	for b.Loop() {
		_, err := ApplyLateReverbMulti(input, DefaultReverbConfig(), 0, parallel, WithSeed(1))
		if err != nil {
			b.Fatalf("ApplyLateReverbMulti failed: %v", err)
		}
	}
}

// BenchmarkLateReverbProcess measures steady-state mono throughput.
func BenchmarkLateReverbProcess(b *testing.B) {
	r, err := NewLateReverb(DefaultReverbConfig(), WithSeed(1))
	if err != nil {
		b.Fatalf("Failed to create reverb: %v", err)
	}
	input := make([]float64, 4096)
	for i := range input {
		input[i] = 0.01
	}

	b.ReportAllocs()

	for b.Loop() {
		if _, err := r.Process(input); err != nil {
			b.Fatalf("Process failed: %v", err)
		}
	}
}

// BenchmarkTextureRender measures texture output throughput with the reference tap count.
func BenchmarkTextureRender(b *testing.B) {
	source := sine(RateCD, RateCD, 220, 0.1)
	tex, err := NewTexture(source, DefaultTextureConfig(RateCD), WithSeed(1))
	if err != nil {
		b.Fatalf("Failed to create texture: %v", err)
	}

	b.ReportAllocs()

	for b.Loop() {
		if _, err := tex.Render(4096); err != nil {
			b.Fatalf("Render failed: %v", err)
		}
	}
}
