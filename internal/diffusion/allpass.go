// Package diffusion implements the allpass filters that decorrelate the
// convolved reverb signal before it leaves the pipeline.
package diffusion

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-velvet-noise/internal/delay"
	"github.com/tphakala/go-velvet-noise/internal/simdops"
)

// ErrInvalidStage is returned for a stage configuration that cannot run stably.
var ErrInvalidStage = errors.New("invalid allpass stage")

// StageConfig describes one allpass stage.
type StageConfig struct {
	Delay    int     // Delay line length in samples (>= 1)
	Feedback float64 // Feedback coefficient g, |g| < 1
}

// Validate checks the stage parameters.
func (c StageConfig) Validate() error {
	if c.Delay < 1 {
		return fmt.Errorf("%w: delay must be >= 1, got %d", ErrInvalidStage, c.Delay)
	}
	if math.IsNaN(c.Feedback) || math.Abs(c.Feedback) >= maxStableFeedback {
		return fmt.Errorf("%w: feedback must satisfy |g| < 1, got %v", ErrInvalidStage, c.Feedback)
	}
	return nil
}

// DefaultStages returns the reference seven-stage cascade configuration.
func DefaultStages() []StageConfig {
	stages := make([]StageConfig, len(DefaultDelays))
	for i, d := range DefaultDelays {
		stages[i] = StageConfig{Delay: d, Feedback: DefaultFeedback}
	}
	return stages
}

// Stage is a single Schroeder allpass section, H(z) = (g + z^-D) / (1 + g z^-D).
type Stage[F simdops.Float] struct {
	line *delay.Buffer[F]
	g    F
}

// NewStage creates a stage with a silent delay line.
func NewStage[F simdops.Float](cfg StageConfig) (*Stage[F], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	line, err := delay.New[F](cfg.Delay)
	if err != nil {
		return nil, err
	}
	return &Stage[F]{line: line, g: F(cfg.Feedback)}, nil
}

// Process filters one sample.
func (s *Stage[F]) Process(x F) F {
	delayed := s.line.Oldest()
	feedback := x - s.g*delayed
	s.line.Push(feedback)
	return delayed + s.g*feedback
}

// Delay returns the stage delay length in samples.
func (s *Stage[F]) Delay() int {
	return s.line.Capacity()
}

// Cascade runs allpass stages in series.
type Cascade[F simdops.Float] struct {
	stages []*Stage[F]
}

// NewCascade builds the stages in the given order.
func NewCascade[F simdops.Float](configs []StageConfig) (*Cascade[F], error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("%w: cascade needs at least one stage", ErrInvalidStage)
	}
	c := &Cascade[F]{stages: make([]*Stage[F], 0, len(configs))}
	for i, cfg := range configs {
		stage, err := NewStage[F](cfg)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
		c.stages = append(c.stages, stage)
	}
	return c, nil
}

// ProcessSample passes one sample through every stage.
func (c *Cascade[F]) ProcessSample(x F) F {
	for _, s := range c.stages {
		x = s.Process(x)
	}
	return x
}

// Process filters src into dst sample by sample and returns the number of
// samples written. dst may alias src.
func (c *Cascade[F]) Process(dst, src []F) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = c.ProcessSample(src[i])
	}
	return n
}

// TotalDelay returns the summed delay length of all stages.
func (c *Cascade[F]) TotalDelay() int {
	total := 0
	for _, s := range c.stages {
		total += s.Delay()
	}
	return total
}

// Len returns the number of stages.
func (c *Cascade[F]) Len() int {
	return len(c.stages)
}
