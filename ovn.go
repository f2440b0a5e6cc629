package velvet

import (
	"fmt"
	"math/rand/v2"
)

// OVN generates original velvet noise impulse locations: one impulse at a
// uniformly random offset inside each consecutive grid cell of GridSize samples.
type OVN struct {
	density    int
	sampleRate int
	td         int
	m          int
	rng        *rand.Rand
}

// NewOVN creates an OVN location stream with density impulses per second.
func NewOVN(density, sampleRate int, opts ...Option) (*OVN, error) {
	if err := validateRates(float64(density), float64(sampleRate)); err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	return &OVN{
		density:    density,
		sampleRate: sampleRate,
		td:         sampleRate / density,
		rng:        rand.New(o.src),
	}, nil
}

// Next returns m*td + jitter with jitter uniform in [0, td).
func (g *OVN) Next() int {
	v := g.m*g.td + g.rng.IntN(g.td)
	g.m++
	return v
}

// GridSize returns the grid cell length td = floor(sampleRate / density).
func (g *OVN) GridSize() int {
	return g.td
}

// Density returns the configured impulses per second.
func (g *OVN) Density() int {
	return g.density
}

// validateRates checks the density and sample rate shared by both generators.
func validateRates(density, sampleRate float64) error {
	switch {
	case !(density > 0):
		return fmt.Errorf("%w: density must be positive, got %v", ErrInvalidConfig, density)
	case !(sampleRate > 0):
		return fmt.Errorf("%w: sample rate must be positive, got %v", ErrInvalidConfig, sampleRate)
	case density > sampleRate:
		return fmt.Errorf("%w: density %v exceeds sample rate %v", ErrInvalidConfig, density, sampleRate)
	}
	return nil
}
