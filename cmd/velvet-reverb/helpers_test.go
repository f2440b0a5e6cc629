package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	velvet "github.com/tphakala/go-velvet-noise"
	"github.com/tphakala/go-velvet-noise/internal/wavio"
)

func defaultSettings() settings {
	return settings{
		tailSeconds: 0.5,
		gain:        defaultGain,
		ceiling:     defaultCeiling,
		seed:        7,
		parallel:    true,
	}
}

func impulseChannels(channels, n int) [][]float64 {
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, n)
		out[ch][0] = 0.5
	}
	return out
}

func TestOutputBitDepth(t *testing.T) {
	depth, err := outputBitDepth(0, 24)
	require.NoError(t, err)
	assert.Equal(t, 24, depth)

	depth, err = outputBitDepth(16, 24)
	require.NoError(t, err)
	assert.Equal(t, 16, depth)

	_, err = outputBitDepth(12, 24)
	require.ErrorIs(t, err, wavio.ErrUnsupportedBitDepth)
}

func TestNewPlan_ReferenceRate(t *testing.T) {
	p, err := newPlan(velvet.RateCD, defaultSettings())
	require.NoError(t, err)
	assert.False(t, p.resample)
	assert.Equal(t, velvet.RateCD, p.config.SampleRate)
	assert.InDelta(t, defaultGain, p.config.OutputGain, 0)
	assert.Equal(t, 22050, p.tailSamples(0.5))
}

func TestNewPlan_ResamplesByDefault(t *testing.T) {
	p, err := newPlan(48000, defaultSettings())
	require.NoError(t, err)
	assert.True(t, p.resample)
	assert.Equal(t, velvet.RateCD, p.config.SampleRate)
}

func TestNewPlan_NativeRate(t *testing.T) {
	s := defaultSettings()
	s.nativeRate = true

	p, err := newPlan(88200, s)
	require.NoError(t, err)
	assert.False(t, p.resample)
	assert.Equal(t, 88200, p.config.SampleRate)
	assert.Equal(t, 2*velvet.DefaultBoundaries[1], p.config.Boundaries[1])
}

func TestNewPlan_CeilingDisabled(t *testing.T) {
	s := defaultSettings()
	s.ceiling = 0

	p, err := newPlan(velvet.RateCD, s)
	require.NoError(t, err)
	assert.True(t, math.IsInf(p.config.OutputCeiling, 1))
}

func TestNewPlan_Invalid(t *testing.T) {
	_, err := newPlan(0, defaultSettings())
	require.Error(t, err)

	s := defaultSettings()
	s.tailSeconds = -1
	_, err = newPlan(velvet.RateCD, s)
	require.Error(t, err)

	s = defaultSettings()
	s.gain = math.NaN()
	_, err = newPlan(velvet.RateCD, s)
	require.ErrorIs(t, err, velvet.ErrInvalidConfig)
}

func TestPlanApply_ReferenceRate(t *testing.T) {
	const n = 1000
	s := defaultSettings()
	s.tailSeconds = 0.1

	p, err := newPlan(velvet.RateCD, s)
	require.NoError(t, err)

	wet, err := p.apply(impulseChannels(2, n), s)
	require.NoError(t, err)
	require.Len(t, wet, 2)
	for ch := range wet {
		assert.Len(t, wet[ch], n+p.tailSamples(s.tailSeconds))
	}
	assert.NotEqual(t, wet[0], wet[1], "channels should get independent kernels")
}

func TestPlanApply_Deterministic(t *testing.T) {
	s := defaultSettings()
	s.tailSeconds = 0.05

	p, err := newPlan(velvet.RateCD, s)
	require.NoError(t, err)

	a, err := p.apply(impulseChannels(1, 500), s)
	require.NoError(t, err)
	b, err := p.apply(impulseChannels(1, 500), s)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPlanApply_Resampled(t *testing.T) {
	const n = 4800
	s := defaultSettings()
	s.tailSeconds = 0.1
	s.parallel = false

	p, err := newPlan(48000, s)
	require.NoError(t, err)

	wet, err := p.apply(impulseChannels(1, n), s)
	require.NoError(t, err)
	require.Len(t, wet, 1)

	expected := float64(n) + 0.1*48000
	assert.InDelta(t, expected, float64(len(wet[0])), 0.1*expected)
}

func TestResampleChannels_ParallelMatchesSequential(t *testing.T) {
	channels := impulseChannels(3, 2000)

	par, err := resampleChannels(channels, 44100, 48000, true)
	require.NoError(t, err)
	seq, err := resampleChannels(channels, 44100, 48000, false)
	require.NoError(t, err)

	require.Len(t, par, 3)
	for ch := range par {
		assert.Equal(t, seq[ch], par[ch])
	}
}

func TestCheckCeiling(t *testing.T) {
	channels := [][]float64{{0.1, -0.2}, {0.3, -1.02, 0.4}}

	err := checkCeiling(channels, 1)
	require.ErrorIs(t, err, velvet.ErrOutputRange)
	assert.Contains(t, err.Error(), "channel 1 sample 1")

	require.NoError(t, checkCeiling(channels, 1.5))
	require.NoError(t, checkCeiling(channels, math.Inf(1)))
	require.ErrorIs(t, checkCeiling([][]float64{{math.NaN()}}, math.Inf(1)), velvet.ErrOutputRange)
}

func TestPlanApply_ResampledCeiling(t *testing.T) {
	s := defaultSettings()
	s.tailSeconds = 0.1
	s.ceiling = 1e-6

	p, err := newPlan(48000, s)
	require.NoError(t, err)
	require.True(t, p.resample)

	_, err = p.apply(impulseChannels(1, 4800), s)
	require.ErrorIs(t, err, velvet.ErrOutputRange)
}

func TestReverbWAV(t *testing.T) {
	tmpDir := t.TempDir()
	inPath := filepath.Join(tmpDir, "dry.wav")
	outPath := filepath.Join(tmpDir, "wet.wav")

	in := &wavio.Audio{SampleRate: velvet.RateCD, BitDepth: wavio.BitDepth16, Channels: impulseChannels(2, 2000)}
	require.NoError(t, wavio.Write(inPath, in))

	s := defaultSettings()
	s.tailSeconds = 0.1
	s.bitDepth = wavio.BitDepth24

	stats, err := reverbWAV(inPath, outPath, s, false)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.channels)
	assert.Equal(t, 24, stats.bitDepth)
	assert.Equal(t, 2000, stats.inputSamples)
	assert.Equal(t, 2000+4410, stats.outputSamples)

	out, err := wavio.Read(outPath)
	require.NoError(t, err)
	assert.Equal(t, velvet.RateCD, out.SampleRate)
	assert.Equal(t, 24, out.BitDepth)
	assert.Equal(t, 2000+4410, out.Frames())
}
