package velvet

import (
	"fmt"

	"github.com/tphakala/go-velvet-noise/internal/mathutil"
)

// Tap is one non-zero coefficient of a sparse impulse response.
type Tap struct {
	Index int
	Gain  float64
}

// Kernel is a sparse impulse response ordered by strictly increasing index.
// Indices not present hold zero.
type Kernel []Tap

// Render pairs locations with signs over [minIndex, maxIndex) and scales
// every sign by gain. Locations below minIndex are skipped; rendering stops
// at the first location that reaches maxIndex. One sign is drawn per location,
// skipped or not.
func Render(locs LocationStream, signs SignStream, minIndex, maxIndex int, gain float64) (Kernel, error) {
	switch {
	case locs == nil || signs == nil:
		return nil, fmt.Errorf("%w: location and sign streams are required", ErrInvalidConfig)
	case minIndex < 0 || maxIndex < minIndex:
		return nil, fmt.Errorf("%w: invalid kernel range [%d, %d)", ErrInvalidConfig, minIndex, maxIndex)
	case !mathutil.IsFinite(gain):
		return nil, fmt.Errorf("%w: kernel gain must be finite, got %v", ErrInvalidConfig, gain)
	}

	var k Kernel
	prev, first := 0, true
	for {
		idx := locs.Next()
		if !first && idx <= prev {
			return nil, fmt.Errorf("%w: index %d follows %d", ErrNotMonotonic, idx, prev)
		}
		prev, first = idx, false
		sign := signs.Next()

		if idx >= maxIndex {
			return k, nil
		}
		if idx < minIndex {
			continue
		}
		k = append(k, Tap{Index: idx, Gain: gain * sign})
	}
}

// Concat joins kernels covering adjoining, disjoint ranges in order.
func Concat(kernels ...Kernel) (Kernel, error) {
	total := 0
	for _, k := range kernels {
		total += len(k)
	}
	out := make(Kernel, 0, total)
	for i, k := range kernels {
		if err := k.Validate(); err != nil {
			return nil, fmt.Errorf("kernel %d: %w", i, err)
		}
		if len(k) > 0 && len(out) > 0 && k[0].Index <= out[len(out)-1].Index {
			return nil, fmt.Errorf("%w: kernel %d starts at %d, overlapping index %d",
				ErrNotMonotonic, i, k[0].Index, out[len(out)-1].Index)
		}
		out = append(out, k...)
	}
	return out, nil
}

// Validate checks ordering, sign of indices and gain finiteness.
func (k Kernel) Validate() error {
	for i, tap := range k {
		if tap.Index < 0 {
			return fmt.Errorf("%w: negative index %d", ErrOutOfRange, tap.Index)
		}
		if i > 0 && tap.Index <= k[i-1].Index {
			return fmt.Errorf("%w: index %d follows %d", ErrNotMonotonic, tap.Index, k[i-1].Index)
		}
		if !mathutil.IsFinite(tap.Gain) {
			return fmt.Errorf("%w: gain at index %d is not finite", ErrInvalidConfig, tap.Index)
		}
	}
	return nil
}

// CheckBounds reports an index that a buffer of capacity samples cannot address.
func (k Kernel) CheckBounds(capacity int) error {
	for _, tap := range k {
		if tap.Index < 0 || tap.Index >= capacity {
			return fmt.Errorf("%w: kernel index %d, capacity %d", ErrOutOfRange, tap.Index, capacity)
		}
	}
	return nil
}

// Indices returns the tap indices.
func (k Kernel) Indices() []int {
	out := make([]int, len(k))
	for i, tap := range k {
		out[i] = tap.Index
	}
	return out
}

// Gains returns the tap gains.
func (k Kernel) Gains() []float64 {
	out := make([]float64, len(k))
	for i, tap := range k {
		out[i] = tap.Gain
	}
	return out
}

// Dense renders the kernel into a zero-filled impulse response of length samples.
func (k Kernel) Dense(length int) ([]float64, error) {
	if err := k.CheckBounds(length); err != nil {
		return nil, err
	}
	out := make([]float64, length)
	for _, tap := range k {
		out[tap.Index] = tap.Gain
	}
	return out, nil
}
