package velvet

import "math/rand/v2"

// seedStream is the PCG stream selector paired with a WithSeed seed.
const seedStream = 0x5ca1ab1e

// Option configures the randomness of a generator or processor.
type Option func(*options)

type options struct {
	src rand.Source
}

// WithSeed makes the generator deterministic for the given seed.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.src = rand.NewPCG(seed, seedStream)
	}
}

// WithSource draws all randomness from src. The source must not be shared
// with another generator.
func WithSource(src rand.Source) Option {
	return func(o *options) {
		if src != nil {
			o.src = src
		}
	}
}

// applyOptions resolves opts, falling back to a freshly seeded PCG source.
func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.src == nil {
		o.src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return o
}

// seeder hands out independent child seeds for composite processors.
type seeder struct {
	rng *rand.Rand
}

func newSeeder(opts []Option) seeder {
	return seeder{rng: rand.New(applyOptions(opts).src)}
}

func (s seeder) next() Option {
	return WithSeed(s.rng.Uint64())
}
