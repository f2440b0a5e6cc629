package main

import (
	"fmt"
	"math"
	"sync"

	resampling "github.com/tphakala/go-audio-resampler"
	velvet "github.com/tphakala/go-velvet-noise"
	"github.com/tphakala/go-velvet-noise/internal/wavio"
)

const defaultTailSeconds = velvet.DefaultTailSeconds

// settings holds the command-line options.
type settings struct {
	tailSeconds float64
	gain        float64
	ceiling     float64
	seed        uint64
	bitDepth    int
	nativeRate  bool
	parallel    bool
}

// options returns the generator options implied by s.
func (s settings) options() []velvet.Option {
	if s.seed == 0 {
		return nil
	}
	return []velvet.Option{velvet.WithSeed(s.seed)}
}

// outputBitDepth resolves the -bits flag against the input depth.
func outputBitDepth(requested, input int) (int, error) {
	depth := requested
	if depth == 0 {
		depth = input
	}
	if _, err := wavio.MaxValue(depth); err != nil {
		return 0, err
	}
	return depth, nil
}

// plan describes how a file at a given rate is reverberated.
type plan struct {
	config    velvet.ReverbConfig
	reference int
	rate      int
	resample  bool
}

// newPlan builds the reverb configuration for audio at sampleRate.
func newPlan(sampleRate int, s settings) (*plan, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	if s.tailSeconds < 0 {
		return nil, fmt.Errorf("tail must be non-negative, got %g", s.tailSeconds)
	}

	cfg := velvet.DefaultReverbConfig()
	cfg.OutputGain = s.gain
	if s.ceiling > 0 {
		cfg.OutputCeiling = s.ceiling
	} else {
		cfg.OutputCeiling = math.Inf(1)
	}

	p := &plan{reference: cfg.SampleRate, rate: sampleRate}
	switch {
	case sampleRate == cfg.SampleRate:
	case s.nativeRate:
		scaled, err := cfg.AtSampleRate(sampleRate)
		if err != nil {
			return nil, err
		}
		cfg = scaled
	default:
		p.resample = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p.config = cfg
	return p, nil
}

// tailSamples converts the tail length to samples at the processing rate.
func (p *plan) tailSamples(seconds float64) int {
	return int(math.Round(seconds * float64(p.config.SampleRate)))
}

// apply reverberates every channel, resampling around the reverb when needed.
func (p *plan) apply(channels [][]float64, s settings) ([][]float64, error) {
	work := channels
	if p.resample {
		var err error
		work, err = resampleChannels(channels, p.rate, p.config.SampleRate, s.parallel)
		if err != nil {
			return nil, err
		}
	}

	wet, err := velvet.ApplyLateReverbMulti(work, p.config, p.tailSamples(s.tailSeconds), s.parallel, s.options()...)
	if err != nil {
		return nil, err
	}

	if !p.resample {
		return wet, nil
	}
	out, err := resampleChannels(wet, p.config.SampleRate, p.rate, s.parallel)
	if err != nil {
		return nil, err
	}
	// Resampling can overshoot the peaks the reverb already checked.
	if err := checkCeiling(out, p.config.OutputCeiling); err != nil {
		return nil, err
	}
	return out, nil
}

// checkCeiling reports the first sample at or above ceiling.
func checkCeiling(channels [][]float64, ceiling float64) error {
	for ch, samples := range channels {
		for i, y := range samples {
			if math.IsNaN(y) || math.Abs(y) >= ceiling {
				return fmt.Errorf("%w: channel %d sample %d has magnitude %v after resampling, ceiling %v",
					velvet.ErrOutputRange, ch, i, math.Abs(y), ceiling)
			}
		}
	}
	return nil
}

// resampleChannels converts each channel from one rate to another.
func resampleChannels(channels [][]float64, fromRate, toRate int, parallel bool) ([][]float64, error) {
	if parallel && len(channels) > 1 {
		return resampleParallel(channels, fromRate, toRate)
	}
	return resampleSequential(channels, fromRate, toRate)
}

// resampleParallel processes channels concurrently.
func resampleParallel(channels [][]float64, fromRate, toRate int) ([][]float64, error) {
	resampled := make([][]float64, len(channels))
	var wg sync.WaitGroup
	var processErr error
	var errMu sync.Mutex

	for ch := range channels {
		wg.Add(1)
		go func(channel int) {
			defer wg.Done()
			out, err := resampling.ResampleMono(channels[channel], float64(fromRate), float64(toRate), resampling.QualityHigh)
			if err != nil {
				errMu.Lock()
				if processErr == nil {
					processErr = fmt.Errorf("resampling failed on channel %d: %w", channel, err)
				}
				errMu.Unlock()
				return
			}
			resampled[channel] = out
		}(ch)
	}
	wg.Wait()

	if processErr != nil {
		return nil, processErr
	}
	return resampled, nil
}

// resampleSequential processes channels one by one.
func resampleSequential(channels [][]float64, fromRate, toRate int) ([][]float64, error) {
	resampled := make([][]float64, len(channels))
	for ch := range channels {
		out, err := resampling.ResampleMono(channels[ch], float64(fromRate), float64(toRate), resampling.QualityHigh)
		if err != nil {
			return nil, fmt.Errorf("resampling failed on channel %d: %w", ch, err)
		}
		resampled[ch] = out
	}
	return resampled, nil
}
