// Package analysis measures impulse sequences and rendered signals. It backs
// the statistical tests and the velvet-analyze command.
package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/tphakala/go-velvet-noise/internal/mathutil"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrTooShort is returned when a sequence has too few elements to measure.
var ErrTooShort = errors.New("analysis: sequence too short")

// minSpacingIndices is the number of indices needed to form one spacing.
const minSpacingIndices = 2

// Spacings returns the differences between consecutive indices.
func Spacings(indices []int) []float64 {
	if len(indices) < minSpacingIndices {
		return nil
	}
	out := make([]float64, len(indices)-1)
	for i := range out {
		out[i] = float64(indices[i+1] - indices[i])
	}
	return out
}

// Spread returns the difference between the largest and the smallest spacing.
func Spread(indices []int) (float64, error) {
	d := Spacings(indices)
	if len(d) == 0 {
		return 0, ErrTooShort
	}
	return floats.Max(d) - floats.Min(d), nil
}

// Density returns the number of indices below limit per second of signal.
func Density(indices []int, limit, sampleRate int) float64 {
	if limit <= 0 || sampleRate <= 0 {
		return 0
	}
	count := 0
	for _, idx := range indices {
		if idx >= limit {
			break
		}
		count++
	}
	return float64(count) * float64(sampleRate) / float64(limit)
}

// SpacingStats summarizes an impulse location sequence.
type SpacingStats struct {
	Count       int     // Number of indices
	MeanSpacing float64 // Average distance between impulses in samples
	StdDev      float64 // Standard deviation of the spacing
	MinSpacing  float64
	MaxSpacing  float64
}

// Spread returns MaxSpacing - MinSpacing.
func (s SpacingStats) Spread() float64 {
	return s.MaxSpacing - s.MinSpacing
}

// Describe computes spacing statistics for indices.
func Describe(indices []int) (SpacingStats, error) {
	d := Spacings(indices)
	if len(d) == 0 {
		return SpacingStats{}, ErrTooShort
	}
	mean, std := stat.MeanStdDev(d, nil)
	return SpacingStats{
		Count:       len(indices),
		MeanSpacing: mean,
		StdDev:      std,
		MinSpacing:  floats.Min(d),
		MaxSpacing:  floats.Max(d),
	}, nil
}

// Mean returns the arithmetic mean of x, or 0 for an empty slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// Peak returns the largest absolute sample value.
func Peak(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Max(floats.Max(x), -floats.Min(x))
}

// Energy returns the sum of squared samples.
func Energy(x []float64) float64 {
	return floats.Dot(x, x)
}

// RMS returns the root mean square of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(Energy(x) / float64(len(x)))
}

// MagnitudeResponse returns |H(k)| for k in [0, size/2] of an impulse response
// truncated or zero-padded to size samples.
func MagnitudeResponse(impulse []float64, size int) []float64 {
	if size <= 0 {
		return nil
	}
	seq := make([]float64, size)
	copy(seq, impulse)

	fft := fourier.NewFFT(size)
	coeffs := fft.Coefficients(nil, seq)

	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = cmplx.Abs(c)
	}
	return mags
}

// RangeDB returns the minimum and maximum of mags in decibels.
func RangeDB(mags []float64) (minDB, maxDB float64) {
	if len(mags) == 0 {
		return 0, 0
	}
	return mathutil.LinearToDB(floats.Min(mags)), mathutil.LinearToDB(floats.Max(mags))
}
