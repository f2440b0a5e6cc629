package velvet

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// Choice draws impulse signs: +1 with probability p, otherwise -1.
type Choice struct {
	trial distuv.Bernoulli
}

// NewChoice creates a crushed sign stream with skew p in the open interval
// (0, 1). The long-run mean of the signs is 2p - 1.
func NewChoice(p float64, opts ...Option) (*Choice, error) {
	if !(p > 0 && p < 1) {
		return nil, fmt.Errorf("%w: skew must be in (0, 1), got %v", ErrInvalidConfig, p)
	}
	o := applyOptions(opts)
	return &Choice{trial: distuv.Bernoulli{P: p, Src: o.src}}, nil
}

// NewClassicChoice creates a symmetric sign stream.
func NewClassicChoice(opts ...Option) *Choice {
	o := applyOptions(opts)
	return &Choice{trial: distuv.Bernoulli{P: ClassicSkew, Src: o.src}}
}

// Next returns +1.0 or -1.0.
func (c *Choice) Next() float64 {
	if c.trial.Rand() == 1 {
		return 1
	}
	return -1
}

// Skew returns the probability of a positive sign.
func (c *Choice) Skew() float64 {
	return c.trial.P
}
