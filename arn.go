package velvet

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ARN generates additive random noise impulse locations. Each impulse follows
// the previous one by 1 + tdm1*(1-delta) + 2*delta*tdm1*u samples, u uniform
// in [0, 1), so delta sets how far the spacing strays from the mean.
type ARN struct {
	tdm1   float64
	delta  float64
	mPrev  float64
	jitter distuv.Uniform
}

// NewARN creates an ARN location stream. delta must lie in [0, 1]; 0 yields a
// perfectly periodic sequence.
func NewARN(density, sampleRate, delta float64, opts ...Option) (*ARN, error) {
	if err := validateRates(density, sampleRate); err != nil {
		return nil, err
	}
	if math.IsNaN(delta) || delta < 0 || delta > 1 {
		return nil, fmt.Errorf("%w: delta must be in [0, 1], got %v", ErrInvalidConfig, delta)
	}
	o := applyOptions(opts)
	return &ARN{
		tdm1:   sampleRate/density - 1,
		delta:  delta,
		jitter: distuv.Uniform{Min: 0, Max: 1, Src: o.src},
	}, nil
}

// Next advances the running position and returns its floor.
func (g *ARN) Next() int {
	v := g.mPrev + 1 + g.tdm1*(1-g.delta) + 2*g.delta*g.tdm1*g.jitter.Rand()
	g.mPrev = v
	return int(v)
}

// MeanSpacing returns the expected distance between impulses, sampleRate / density.
func (g *ARN) MeanSpacing() float64 {
	return g.tdm1 + 1
}
