package main

import (
	"fmt"

	velvet "github.com/tphakala/go-velvet-noise"
	"github.com/tphakala/go-velvet-noise/internal/analysis"
	"github.com/tphakala/go-velvet-noise/internal/diffusion"
	"github.com/tphakala/go-velvet-noise/internal/mathutil"
)

// generatorReport holds spacing statistics of one location generator.
type generatorReport struct {
	name    string
	stats   analysis.SpacingStats
	density float64
}

// measureGenerators draws n impulses from OVN and ARN and summarizes them.
func measureGenerators(density, sampleRate int, delta float64, n int, opts ...velvet.Option) ([]generatorReport, error) {
	ovn, err := velvet.NewOVN(density, sampleRate, opts...)
	if err != nil {
		return nil, err
	}
	arn, err := velvet.NewARN(float64(density), float64(sampleRate), delta, opts...)
	if err != nil {
		return nil, err
	}

	streams := []struct {
		name   string
		stream velvet.LocationStream
	}{
		{"OVN", ovn},
		{fmt.Sprintf("ARN(%.2f)", delta), arn},
	}

	reports := make([]generatorReport, 0, len(streams))
	for _, s := range streams {
		indices := velvet.Take(s.stream, n)
		stats, err := analysis.Describe(indices)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		limit := indices[len(indices)-1] + 1
		reports = append(reports, generatorReport{
			name:    s.name,
			stats:   stats,
			density: analysis.Density(indices, limit, sampleRate),
		})
	}
	return reports, nil
}

// skewReport holds the observed mean sign for one skew probability.
type skewReport struct {
	p    float64
	mean float64
}

// measureSkews draws n signs for each probability in ps.
func measureSkews(ps []float64, n int, opts ...velvet.Option) ([]skewReport, error) {
	reports := make([]skewReport, len(ps))
	for i, p := range ps {
		c, err := velvet.NewChoice(p, opts...)
		if err != nil {
			return nil, err
		}
		reports[i] = skewReport{p: p, mean: analysis.Mean(velvet.TakeSigns(c, n))}
	}
	return reports, nil
}

// cascadeReport describes the impulse response of an allpass cascade.
type cascadeReport struct {
	stages     int
	totalDelay int
	energy     float64
	minDB      float64
	maxDB      float64
}

// measureCascade renders n samples of the cascade impulse response.
func measureCascade(configs []diffusion.StageConfig, n int) (*cascadeReport, error) {
	if n < 1 {
		return nil, fmt.Errorf("response length must be positive, got %d", n)
	}
	cascade, err := diffusion.NewCascade[float64](configs)
	if err != nil {
		return nil, err
	}

	response := make([]float64, n)
	response[0] = 1
	cascade.Process(response, response)

	minDB, maxDB := analysis.RangeDB(analysis.MagnitudeResponse(response, n))
	return &cascadeReport{
		stages:     cascade.Len(),
		totalDelay: cascade.TotalDelay(),
		energy:     analysis.Energy(response),
		minDB:      minDB,
		maxDB:      maxDB,
	}, nil
}

// segmentReport describes one late reverb kernel segment.
type segmentReport struct {
	start   int
	end     int
	density int
	gainDB  float64
	taps    int
}

// reverbReport describes a late reverb kernel and its pipeline.
type reverbReport struct {
	segments []segmentReport
	taps     int
	stages   []velvet.StageInfo
	memory   int64
}

// measureReverb builds a late reverb and counts the taps in every segment.
func measureReverb(cfg velvet.ReverbConfig, opts ...velvet.Option) (*reverbReport, error) {
	r, err := velvet.NewLateReverb(cfg, opts...)
	if err != nil {
		return nil, err
	}
	kernel := r.Kernel()

	segments := make([]segmentReport, cfg.Segments())
	for i := range segments {
		segments[i] = segmentReport{
			start:   cfg.Boundaries[i],
			end:     cfg.Boundaries[i+1],
			density: cfg.SegmentDensity(i),
			gainDB:  mathutil.LinearToDB(cfg.SegmentGain(i)),
		}
	}
	for _, tap := range kernel {
		for i := range segments {
			if tap.Index >= segments[i].start && tap.Index < segments[i].end {
				segments[i].taps++
				break
			}
		}
	}

	return &reverbReport{
		segments: segments,
		taps:     len(kernel),
		stages:   r.Stages(),
		memory:   r.GetMemoryUsage(),
	}, nil
}
