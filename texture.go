package velvet

import (
	"fmt"
	"slices"

	"github.com/tphakala/go-velvet-noise/internal/engine"
	"github.com/tphakala/go-velvet-noise/internal/mathutil"
)

// TextureConfig holds endless texture configuration.
type TextureConfig struct {
	// SampleRate is the rate of the source in Hz.
	SampleRate int

	// Taps is the target number of simultaneous taps over the source.
	Taps int

	// Gain scales every output sample.
	Gain float64

	// OutputCeiling is the exclusive bound on output magnitude. Reaching it
	// fails rendering with ErrOutputRange. Use math.Inf(1) to disable.
	OutputCeiling float64
}

// DefaultTextureConfig returns the reference 32-tap texture for sampleRate.
func DefaultTextureConfig(sampleRate int) TextureConfig {
	return TextureConfig{
		SampleRate:    sampleRate,
		Taps:          defaultTextureTaps,
		Gain:          defaultTextureGain,
		OutputCeiling: defaultOutputCeiling,
	}
}

// Validate checks if the configuration is valid.
func (c *TextureConfig) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}
	if c.Taps < 1 {
		return fmt.Errorf("%w: taps must be at least 1", ErrInvalidConfig)
	}
	if !mathutil.IsFinite(c.Gain) {
		return fmt.Errorf("%w: gain must be finite", ErrInvalidConfig)
	}
	return validateCeiling(c.OutputCeiling)
}

// Density returns the impulse density that places about Taps impulses over
// a source of sourceLen samples, clamped to [1, SampleRate].
func (c *TextureConfig) Density(sourceLen int) int {
	if sourceLen <= 0 {
		return 1
	}
	d := c.Taps * c.SampleRate / sourceLen
	return min(max(d, 1), c.SampleRate)
}

// Texture renders an endless, evolving signal from a short source by
// convolving it with velvet noise taps that walk through the source and are
// replaced with fresh random signs as they fall off its end.
type Texture struct {
	engine   *engine.TapEngine[float64]
	density  int
	ceiling  float64
	rendered int
}

// NewTexture seeds the taps with one velvet kernel over the whole source.
// The source is copied.
func NewTexture(source []float64, config TextureConfig, opts ...Option) (*Texture, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if len(source) == 0 {
		return nil, fmt.Errorf("%w: source is empty", ErrInvalidConfig)
	}

	seeds := newSeeder(opts)
	density := config.Density(len(source))
	locs, err := NewOVN(density, config.SampleRate, seeds.next())
	if err != nil {
		return nil, err
	}
	initial, err := Render(locs, NewClassicChoice(seeds.next()), 0, len(source), 1)
	if err != nil {
		return nil, err
	}
	if len(initial) == 0 {
		return nil, fmt.Errorf("%w: source of %d samples is too short for a %d-sample tap grid",
			ErrInvalidConfig, len(source), config.SampleRate/density)
	}

	taps, err := engine.NewTapSet[float64](initial.Indices(), initial.Gains(), len(source))
	if err != nil {
		return nil, err
	}
	regen := NewClassicChoice(seeds.next())
	eng, err := engine.NewTapEngine(slices.Clone(source), taps, regen.Next, config.Gain)
	if err != nil {
		return nil, err
	}
	return &Texture{engine: eng, density: density, ceiling: config.OutputCeiling}, nil
}

// Next returns the next output sample. A sample reaching the output ceiling
// is reported as ErrOutputRange with its index; the taps still advance.
func (t *Texture) Next() (float64, error) {
	y := t.engine.Step()
	idx := t.rendered
	t.rendered++
	if err := checkCeiling(y, t.ceiling, idx); err != nil {
		return 0, err
	}
	return y, nil
}

// Render returns the next n output samples.
func (t *Texture) Render(n int) ([]float64, error) {
	if n <= 0 {
		return nil, nil
	}
	out := make([]float64, n)
	t.engine.Render(out)

	start := t.rendered
	t.rendered += n
	for i, y := range out {
		if err := checkCeiling(y, t.ceiling, start+i); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Rendered returns the number of samples rendered so far.
func (t *Texture) Rendered() int {
	return t.rendered
}

// Taps returns a snapshot of the live taps as (position, gain) pairs in slot order.
func (t *Texture) Taps() []Tap {
	set := t.engine.Taps()
	out := make([]Tap, set.Len())
	for i := range out {
		out[i].Index, out[i].Gain = set.Tap(i)
	}
	return out
}

// Len returns the number of live taps. It never changes.
func (t *Texture) Len() int {
	return t.engine.Taps().Len()
}

// Density returns the impulse density used to seed the taps.
func (t *Texture) Density() int {
	return t.density
}
