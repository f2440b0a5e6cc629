package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	velvet "github.com/tphakala/go-velvet-noise"
	"github.com/tphakala/go-velvet-noise/internal/diffusion"
	"github.com/tphakala/go-velvet-noise/internal/testutil"
)

func TestMeasureGenerators(t *testing.T) {
	reports, err := measureGenerators(defaultDensity, defaultSampleRate, defaultDelta, 5000, velvet.WithSeed(1))
	require.NoError(t, err)
	require.Len(t, reports, 2)

	for _, r := range reports {
		t.Run(r.name, func(t *testing.T) {
			assert.Equal(t, 5000, r.stats.Count)
			testutil.AssertRelativeError(t, 48, r.stats.MeanSpacing, 0.02)
			testutil.AssertRelativeError(t, defaultDensity, r.density, 0.02)
		})
	}

	// OVN spacing never exceeds two grid cells
	assert.LessOrEqual(t, reports[0].stats.MaxSpacing, 2*48.0)
}

func TestMeasureGenerators_Invalid(t *testing.T) {
	_, err := measureGenerators(0, defaultSampleRate, defaultDelta, 100)
	require.ErrorIs(t, err, velvet.ErrInvalidConfig)

	_, err = measureGenerators(defaultDensity, defaultSampleRate, defaultDelta, 1)
	require.Error(t, err)
}

func TestMeasureSkews(t *testing.T) {
	reports, err := measureSkews([]float64{0.1, velvet.ClassicSkew, 0.9}, 20000, velvet.WithSeed(2))
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.InDelta(t, -0.8, reports[0].mean, 0.05)
	assert.InDelta(t, 0.0, reports[1].mean, 0.05)
	assert.InDelta(t, 0.8, reports[2].mean, 0.05)

	_, err = measureSkews([]float64{1}, 10)
	require.ErrorIs(t, err, velvet.ErrInvalidConfig)
}

func TestMeasureCascade(t *testing.T) {
	report, err := measureCascade(diffusion.DefaultStages(), defaultResponseLength)
	require.NoError(t, err)

	assert.Equal(t, 7, report.stages)
	assert.InDelta(t, 1.0, report.energy, 1e-6)
	assert.InDelta(t, 0.0, report.minDB, testutil.DBTolerance)
	assert.InDelta(t, 0.0, report.maxDB, testutil.DBTolerance)

	_, err = measureCascade(diffusion.DefaultStages(), 0)
	require.Error(t, err)
	_, err = measureCascade(nil, 16)
	require.Error(t, err)
}

func TestMeasureReverb(t *testing.T) {
	cfg := velvet.DefaultReverbConfig()
	report, err := measureReverb(cfg, velvet.WithSeed(3))
	require.NoError(t, err)

	require.Len(t, report.segments, cfg.Segments())
	total := 0
	for _, seg := range report.segments {
		total += seg.taps
	}
	assert.Equal(t, report.taps, total, "every tap belongs to exactly one segment")

	assert.InDelta(t, 3.0, report.segments[0].gainDB, 1e-9)
	assert.InDelta(t, -1.5, report.segments[1].gainDB, 1e-9)
	assert.Equal(t, 100, report.segments[0].density)

	require.Len(t, report.stages, 2)
	assert.Equal(t, cfg.DelayCapacity, report.stages[0].FilterLength)
	assert.Positive(t, report.memory)
}
