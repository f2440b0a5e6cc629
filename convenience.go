package velvet

import (
	"fmt"
	"sync"

	resampling "github.com/tphakala/go-audio-resampler"
	"github.com/tphakala/go-velvet-noise/internal/mathutil"
)

// DBToLinear converts a gain in decibels to an amplitude factor.
func DBToLinear(db float64) float64 {
	return mathutil.DBToLinear(db)
}

// ApplyLateReverb is a convenience function for one-shot mono reverberation
// with the reference configuration at 44.1 kHz. tail samples of silence are
// appended so the reverb can decay.
func ApplyLateReverb(input []float64, tail int, opts ...Option) ([]float64, error) {
	r, err := NewLateReverb(DefaultReverbConfig(), opts...)
	if err != nil {
		return nil, err
	}
	return r.Render(input, tail)
}

// ApplyLateReverbMulti reverberates each channel with its own LateReverb.
// Every channel gets an independently drawn kernel. When parallel is true,
// channels are processed concurrently.
func ApplyLateReverbMulti(channels [][]float64, config ReverbConfig, tail int, parallel bool, opts ...Option) ([][]float64, error) {
	seeds := newSeeder(opts)
	reverbs := make([]*LateReverb, len(channels))
	for ch := range channels {
		r, err := NewLateReverb(config, seeds.next())
		if err != nil {
			return nil, err
		}
		reverbs[ch] = r
	}

	output := make([][]float64, len(channels))

	if !parallel || len(channels) <= 1 {
		for ch := range channels {
			result, err := reverbs[ch].Render(channels[ch], tail)
			if err != nil {
				return nil, fmt.Errorf("channel %d: %w", ch, err)
			}
			output[ch] = result
		}
		return output, nil
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(channels))

	for ch := range channels {
		wg.Add(1)
		go func(channel int) {
			defer wg.Done()

			result, err := reverbs[channel].Render(channels[channel], tail)
			if err != nil {
				errChan <- fmt.Errorf("channel %d: %w", channel, err)
				return
			}
			output[channel] = result
		}(ch)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	return output, nil
}

// ApplyLateReverbResampled reverberates audio at any sample rate with the
// reference configuration by resampling to 44.1 kHz and back.
func ApplyLateReverbResampled(input []float64, sampleRate, tail int, opts ...Option) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}
	if sampleRate == RateCD {
		return ApplyLateReverb(input, tail, opts...)
	}

	atCD, err := ResampleToCD(input, sampleRate)
	if err != nil {
		return nil, err
	}
	cdTail := scaleSamples(tail, sampleRate, RateCD)

	wet, err := ApplyLateReverb(atCD, cdTail, opts...)
	if err != nil {
		return nil, err
	}
	return resampling.ResampleMono(wet, RateCD, float64(sampleRate), resampling.QualityHigh)
}

// ResampleToCD converts mono audio at sampleRate to 44.1 kHz.
func ResampleToCD(input []float64, sampleRate int) ([]float64, error) {
	out, err := resampling.ResampleMono(input, float64(sampleRate), RateCD, resampling.QualityHigh)
	if err != nil {
		return nil, fmt.Errorf("failed to resample %d Hz to %d Hz: %w", sampleRate, RateCD, err)
	}
	return out, nil
}

// RenderTexture is a convenience function producing n samples of endless
// texture from source with the reference 32-tap configuration. Output reaching
// full scale fails with ErrOutputRange.
func RenderTexture(source []float64, sampleRate, n int, opts ...Option) ([]float64, error) {
	t, err := NewTexture(source, DefaultTextureConfig(sampleRate), opts...)
	if err != nil {
		return nil, err
	}
	return t.Render(n)
}
