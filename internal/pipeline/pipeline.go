// Package pipeline chains per-sample processing stages. The late reverb runs
// its sparse convolution and allpass diffusion as one pipeline.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-velvet-noise/internal/simdops"
)

// ErrNoStages is returned when a pipeline is built without stages.
var ErrNoStages = errors.New("pipeline has no stages")

// Stage represents a single processing stage in the pipeline.
type Stage[F simdops.Float] interface {
	// ProcessSample consumes one input sample and returns one output sample.
	ProcessSample(x F) F

	// GetFilterLength returns the number of past samples the stage depends on.
	GetFilterLength() int

	// GetMemoryUsage returns approximate memory usage in bytes.
	GetMemoryUsage() int64

	// GetSIMDInfo returns SIMD optimization info (empty if none).
	GetSIMDInfo() string
}

// Pipeline runs stages in series, one sample at a time.
type Pipeline[F simdops.Float] struct {
	stages []Stage[F]
}

// New builds a pipeline from stages in processing order.
func New[F simdops.Float](stages ...Stage[F]) (*Pipeline[F], error) {
	if len(stages) == 0 {
		return nil, ErrNoStages
	}
	for i, s := range stages {
		if s == nil {
			return nil, fmt.Errorf("stage %d is nil", i)
		}
	}
	return &Pipeline[F]{stages: append([]Stage[F](nil), stages...)}, nil
}

// ProcessSample passes x through every stage.
func (p *Pipeline[F]) ProcessSample(x F) F {
	for _, s := range p.stages {
		x = s.ProcessSample(x)
	}
	return x
}

// Process runs src through the pipeline into dst and returns the number of
// samples written. dst may alias src.
func (p *Pipeline[F]) Process(dst, src []F) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = p.ProcessSample(src[i])
	}
	return n
}

// GetStages returns the pipeline stages.
func (p *Pipeline[F]) GetStages() []Stage[F] {
	return p.stages
}

// GetMemoryUsage returns the summed memory usage of all stages.
func (p *Pipeline[F]) GetMemoryUsage() int64 {
	var total int64
	for _, s := range p.stages {
		total += s.GetMemoryUsage()
	}
	return total
}
