package velvet

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-velvet-noise/internal/delay"
)

// LocationStream produces impulse sample indices. Successive values are
// strictly increasing and the stream never ends; callers truncate it.
type LocationStream interface {
	// Next returns the next impulse index.
	Next() int
}

// SignStream produces impulse signs, each exactly +1.0 or -1.0.
type SignStream interface {
	// Next returns the next sign.
	Next() float64
}

// Common errors returned by the generators and processors.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid velvet noise configuration")

	// ErrOutOfRange indicates an index that does not address a stored sample.
	ErrOutOfRange = delay.ErrOutOfRange

	// ErrOutputRange indicates a rendered sample reached the output ceiling.
	ErrOutputRange = errors.New("output sample out of range")

	// ErrNotMonotonic indicates a location stream yielded a non-increasing index.
	ErrNotMonotonic = errors.New("impulse locations not strictly increasing")
)

// Take returns the next n indices of s.
func Take(s LocationStream, n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		out[i] = s.Next()
	}
	return out
}

// TakeWhileBelow returns indices of s until one reaches limit. The index that
// reaches limit is consumed and discarded.
func TakeWhileBelow(s LocationStream, limit int) []int {
	var out []int
	for {
		idx := s.Next()
		if idx >= limit {
			return out
		}
		out = append(out, idx)
	}
}

// TakeSigns returns the next n signs of s.
func TakeSigns(s SignStream, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Next()
	}
	return out
}

// validateCeiling checks an exclusive output ceiling.
func validateCeiling(ceiling float64) error {
	if math.IsNaN(ceiling) || ceiling <= 0 {
		return fmt.Errorf("%w: output ceiling must be positive", ErrInvalidConfig)
	}
	return nil
}

// checkCeiling reports sample idx with value y as ErrOutputRange when its
// magnitude reaches ceiling.
func checkCeiling(y, ceiling float64, idx int) error {
	if math.IsNaN(y) || math.Abs(y) >= ceiling {
		return fmt.Errorf("%w: sample %d has magnitude %v, ceiling %v",
			ErrOutputRange, idx, math.Abs(y), ceiling)
	}
	return nil
}
