package velvet

import "fmt"

// VelvetNoise is a sample-by-sample velvet noise signal: the drawn sign at
// every impulse location and 0 elsewhere.
type VelvetNoise struct {
	locs  LocationStream
	signs SignStream
	n     int
	next  int
}

// NewVelvetNoiseFrom builds a signal from any location and sign stream pair.
func NewVelvetNoiseFrom(locs LocationStream, signs SignStream) (*VelvetNoise, error) {
	if locs == nil || signs == nil {
		return nil, fmt.Errorf("%w: location and sign streams are required", ErrInvalidConfig)
	}
	return &VelvetNoise{locs: locs, signs: signs, next: locs.Next()}, nil
}

// NewVelvetNoise creates classic velvet noise from an OVN stream and
// symmetric signs.
func NewVelvetNoise(density, sampleRate int, opts ...Option) (*VelvetNoise, error) {
	seeds := newSeeder(opts)
	locs, err := NewOVN(density, sampleRate, seeds.next())
	if err != nil {
		return nil, err
	}
	return NewVelvetNoiseFrom(locs, NewClassicChoice(seeds.next()))
}

// NewCrushedVelvetNoise creates OVN-located velvet noise whose signs are
// positive with probability crush.
func NewCrushedVelvetNoise(density, sampleRate int, crush float64, opts ...Option) (*VelvetNoise, error) {
	seeds := newSeeder(opts)
	locs, err := NewOVN(density, sampleRate, seeds.next())
	if err != nil {
		return nil, err
	}
	signs, err := NewChoice(crush, seeds.next())
	if err != nil {
		return nil, err
	}
	return NewVelvetNoiseFrom(locs, signs)
}

// NewCrushedAdditiveVelvetNoise creates ARN-located velvet noise whose signs
// are positive with probability crush.
func NewCrushedAdditiveVelvetNoise(density, sampleRate, delta, crush float64, opts ...Option) (*VelvetNoise, error) {
	seeds := newSeeder(opts)
	locs, err := NewARN(density, sampleRate, delta, seeds.next())
	if err != nil {
		return nil, err
	}
	signs, err := NewChoice(crush, seeds.next())
	if err != nil {
		return nil, err
	}
	return NewVelvetNoiseFrom(locs, signs)
}

// Next returns the next sample.
func (v *VelvetNoise) Next() float64 {
	out := 0.0
	if v.n == v.next {
		out = v.signs.Next()
		v.next = v.locs.Next()
	}
	v.n++
	return out
}

// Fill writes consecutive samples into dst.
func (v *VelvetNoise) Fill(dst []float64) {
	for i := range dst {
		dst[i] = v.Next()
	}
}
