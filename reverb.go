package velvet

import (
	"fmt"
	"math"
	"slices"

	"github.com/tphakala/go-velvet-noise/internal/diffusion"
	"github.com/tphakala/go-velvet-noise/internal/engine"
	"github.com/tphakala/go-velvet-noise/internal/mathutil"
	"github.com/tphakala/go-velvet-noise/internal/pipeline"
	"github.com/tphakala/go-velvet-noise/internal/simdops"
)

// AllpassStage configures one section of the diffusion cascade.
type AllpassStage = diffusion.StageConfig

// ReverbConfig holds late reverb configuration.
type ReverbConfig struct {
	// SampleRate is the rate of the processed audio in Hz.
	SampleRate int

	// Boundaries split the kernel into segments; segment i covers
	// [Boundaries[i], Boundaries[i+1]). Must be strictly increasing.
	Boundaries []int

	// MaxDensity is the impulse density of the first segment. Each later
	// segment is thinner by (MaxDensity-MinDensity)/segments.
	MaxDensity int
	MinDensity int

	// MaxGainDB is the level of the first segment before FirstStageBoostDB.
	// Later segments fall by (MaxGainDB-MinGainDB)/segments dB each.
	MaxGainDB         float64
	MinGainDB         float64
	FirstStageBoostDB float64

	// DelayCapacity is the input history length. It must exceed every kernel index.
	DelayCapacity int

	// Diffusion lists the allpass sections applied after the convolution.
	Diffusion []AllpassStage

	// OutputGain scales every output sample.
	OutputGain float64

	// OutputCeiling is the exclusive bound on output magnitude. Reaching it
	// fails processing with ErrOutputRange. Use math.Inf(1) to disable.
	OutputCeiling float64
}

// DefaultReverbConfig returns the reference late reverb at 44.1 kHz.
func DefaultReverbConfig() ReverbConfig {
	return ReverbConfig{
		SampleRate:        RateCD,
		Boundaries:        slices.Clone(DefaultBoundaries),
		MaxDensity:        defaultMaxDensity,
		MinDensity:        defaultMinDensity,
		MaxGainDB:         defaultMaxGainDB,
		MinGainDB:         defaultMinGainDB,
		FirstStageBoostDB: defaultFirstStageBoostDB,
		DelayCapacity:     DefaultDelayCapacity,
		Diffusion:         diffusion.DefaultStages(),
		OutputGain:        defaultOutputGain,
		OutputCeiling:     defaultOutputCeiling,
	}
}

// Validate checks if the configuration is valid.
func (c *ReverbConfig) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}

	if len(c.Boundaries) < 2 {
		return fmt.Errorf("%w: at least two boundaries are required", ErrInvalidConfig)
	}
	if c.Boundaries[0] < 0 {
		return fmt.Errorf("%w: boundaries must be non-negative", ErrInvalidConfig)
	}
	for i := 1; i < len(c.Boundaries); i++ {
		if c.Boundaries[i] <= c.Boundaries[i-1] {
			return fmt.Errorf("%w: boundaries must be strictly increasing at %d", ErrInvalidConfig, i)
		}
	}
	if c.SampleRate != RateCD && slices.Equal(c.Boundaries, DefaultBoundaries) {
		return fmt.Errorf("%w: default boundaries are defined at %d Hz, got %d Hz; use AtSampleRate",
			ErrInvalidConfig, RateCD, c.SampleRate)
	}

	if c.DelayCapacity < c.Boundaries[len(c.Boundaries)-1] {
		return fmt.Errorf("%w: delay capacity %d is smaller than the kernel span %d",
			ErrInvalidConfig, c.DelayCapacity, c.Boundaries[len(c.Boundaries)-1])
	}

	if c.MinDensity <= 0 || c.MaxDensity < c.MinDensity {
		return fmt.Errorf("%w: densities must satisfy 0 < min <= max", ErrInvalidConfig)
	}
	if c.MaxDensity > c.SampleRate {
		return fmt.Errorf("%w: density %d exceeds sample rate %d", ErrInvalidConfig, c.MaxDensity, c.SampleRate)
	}

	for _, v := range []float64{c.MaxGainDB, c.MinGainDB, c.FirstStageBoostDB, c.OutputGain} {
		if !mathutil.IsFinite(v) {
			return fmt.Errorf("%w: gains must be finite", ErrInvalidConfig)
		}
	}
	if err := validateCeiling(c.OutputCeiling); err != nil {
		return err
	}

	if len(c.Diffusion) == 0 {
		return fmt.Errorf("%w: at least one allpass stage is required", ErrInvalidConfig)
	}
	for i, s := range c.Diffusion {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%w: allpass stage %d: %w", ErrInvalidConfig, i, err)
		}
	}

	return nil
}

// Segments returns the number of kernel segments.
func (c *ReverbConfig) Segments() int {
	return len(c.Boundaries) - 1
}

// SegmentDensity returns the impulse density of segment i.
func (c *ReverbConfig) SegmentDensity(i int) int {
	step := (c.MaxDensity - c.MinDensity) / c.Segments()
	return c.MaxDensity - i*step
}

// SegmentGain returns the linear gain of segment i.
func (c *ReverbConfig) SegmentGain(i int) float64 {
	if i == 0 {
		return mathutil.DBToLinear(c.MaxGainDB + c.FirstStageBoostDB)
	}
	step := (c.MaxGainDB - c.MinGainDB) / float64(c.Segments())
	return mathutil.DBToLinear(c.MaxGainDB - float64(i)*step)
}

// AtSampleRate returns a copy with every sample-count parameter (boundaries,
// delay capacity and allpass delays) scaled from c.SampleRate to rate.
func (c ReverbConfig) AtSampleRate(rate int) (ReverbConfig, error) {
	if c.SampleRate <= 0 || rate <= 0 {
		return ReverbConfig{}, fmt.Errorf("%w: sample rates must be positive", ErrInvalidConfig)
	}
	boundaries, err := ScaleBoundaries(c.Boundaries, c.SampleRate, rate)
	if err != nil {
		return ReverbConfig{}, err
	}

	out := c
	out.SampleRate = rate
	out.Boundaries = boundaries
	out.DelayCapacity = scaleSamples(c.DelayCapacity, c.SampleRate, rate)
	out.Diffusion = make([]AllpassStage, len(c.Diffusion))
	for i, s := range c.Diffusion {
		s.Delay = max(1, scaleSamples(s.Delay, c.SampleRate, rate))
		out.Diffusion[i] = s
	}
	return out, nil
}

// ScaleBoundaries converts boundary sample indices from one sample rate to
// another, rounding to the nearest sample.
func ScaleBoundaries(boundaries []int, fromRate, toRate int) ([]int, error) {
	if fromRate <= 0 || toRate <= 0 {
		return nil, fmt.Errorf("%w: sample rates must be positive", ErrInvalidConfig)
	}
	out := make([]int, len(boundaries))
	for i, b := range boundaries {
		out[i] = scaleSamples(b, fromRate, toRate)
		if i > 0 && out[i] <= out[i-1] {
			return nil, fmt.Errorf("%w: boundaries collapse at %d Hz", ErrInvalidConfig, toRate)
		}
	}
	return out, nil
}

func scaleSamples(n, fromRate, toRate int) int {
	return int(math.Round(float64(n) * float64(toRate) / float64(fromRate)))
}

// StageInfo describes one stage of a processing pipeline.
type StageInfo struct {
	FilterLength int
	MemoryUsage  int64
	SIMDInfo     string
}

// LateReverb is the velvet noise late reverberator: a segmented sparse
// velvet kernel convolved with the input, followed by allpass diffusion.
// It holds single-channel state and is not safe for concurrent use.
type LateReverb struct {
	config    ReverbConfig
	kernel    Kernel
	pipe      *pipeline.Pipeline[float64]
	ops       *simdops.Ops[float64]
	processed int
}

// NewLateReverb renders the kernel segments and builds the processing pipeline.
func NewLateReverb(config ReverbConfig, opts ...Option) (*LateReverb, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	seeds := newSeeder(opts)
	segments := make([]Kernel, config.Segments())
	for i := range segments {
		locs, err := NewOVN(config.SegmentDensity(i), config.SampleRate, seeds.next())
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		segments[i], err = Render(locs, NewClassicChoice(seeds.next()),
			config.Boundaries[i], config.Boundaries[i+1], config.SegmentGain(i))
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
	}

	kernel, err := Concat(segments...)
	if err != nil {
		return nil, err
	}
	if err := kernel.CheckBounds(config.DelayCapacity); err != nil {
		return nil, err
	}

	fir, err := engine.NewSparseFIR[float64](kernel.Indices(), kernel.Gains(), config.DelayCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to build convolution: %w", err)
	}
	cascade, err := engine.NewCascadeStage[float64](config.Diffusion)
	if err != nil {
		return nil, fmt.Errorf("failed to build diffusion: %w", err)
	}
	pipe, err := pipeline.New[float64](fir, cascade)
	if err != nil {
		return nil, err
	}

	config.Boundaries = slices.Clone(config.Boundaries)
	config.Diffusion = slices.Clone(config.Diffusion)
	return &LateReverb{
		config: config,
		kernel: kernel,
		pipe:   pipe,
		ops:    simdops.Float64Ops(),
	}, nil
}

// ProcessSample processes one input sample.
func (r *LateReverb) ProcessSample(x float64) (float64, error) {
	y := r.pipe.ProcessSample(x) * r.config.OutputGain
	idx := r.processed
	r.processed++
	if err := r.checkOutput(y, idx); err != nil {
		return 0, err
	}
	return y, nil
}

// Process processes a block of mono samples. State carries over between calls.
func (r *LateReverb) Process(input []float64) ([]float64, error) {
	output := make([]float64, len(input))
	r.pipe.Process(output, input)
	r.ops.Scale(output, output, r.config.OutputGain)

	start := r.processed
	r.processed += len(output)
	for i, y := range output {
		if err := r.checkOutput(y, start+i); err != nil {
			return nil, err
		}
	}
	return output, nil
}

// ProcessFloat32 is like Process but for float32 samples. Processing runs in float64.
func (r *LateReverb) ProcessFloat32(input []float32) ([]float32, error) {
	input64 := make([]float64, len(input))
	for i, v := range input {
		input64[i] = float64(v)
	}

	output64, err := r.Process(input64)
	if err != nil {
		return nil, err
	}

	output32 := make([]float32, len(output64))
	for i, v := range output64 {
		output32[i] = float32(v)
	}
	return output32, nil
}

// Render processes input followed by tail samples of silence.
func (r *LateReverb) Render(input []float64, tail int) ([]float64, error) {
	if tail < 0 {
		return nil, fmt.Errorf("%w: tail must be non-negative, got %d", ErrInvalidConfig, tail)
	}
	padded := make([]float64, len(input)+tail)
	copy(padded, input)
	return r.Process(padded)
}

func (r *LateReverb) checkOutput(y float64, idx int) error {
	return checkCeiling(y, r.config.OutputCeiling, idx)
}

// Kernel returns a copy of the combined sparse kernel.
func (r *LateReverb) Kernel() Kernel {
	return slices.Clone(r.kernel)
}

// Config returns the configuration the reverb was built with.
func (r *LateReverb) Config() ReverbConfig {
	return r.config
}

// Processed returns the number of samples processed so far.
func (r *LateReverb) Processed() int {
	return r.processed
}

// Stages describes the convolution and diffusion stages in processing order.
func (r *LateReverb) Stages() []StageInfo {
	stages := r.pipe.GetStages()
	out := make([]StageInfo, len(stages))
	for i, s := range stages {
		out[i] = StageInfo{
			FilterLength: s.GetFilterLength(),
			MemoryUsage:  s.GetMemoryUsage(),
			SIMDInfo:     s.GetSIMDInfo(),
		}
	}
	return out
}

// GetMemoryUsage returns approximate memory usage in bytes.
func (r *LateReverb) GetMemoryUsage() int64 {
	return r.pipe.GetMemoryUsage()
}
