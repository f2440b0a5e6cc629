package engine

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-velvet-noise/internal/delay"
	"github.com/tphakala/go-velvet-noise/internal/simdops"
)

// ErrInvalidTaps is returned when a tap layout cannot be evaluated.
var ErrInvalidTaps = errors.New("invalid tap layout")

// SparseFIR convolves a sparse kernel against the recent input history.
//
// Each output is sum(gains[k] * x[n - offsets[k]]). The scattered history
// samples are gathered into a contiguous scratch slice so the multiply-accumulate
// runs through the SIMD dot product.
type SparseFIR[F simdops.Float] struct {
	history *delay.Buffer[F]
	offsets []int
	gains   []F
	scratch []F
	ops     *simdops.Ops[F]
}

// NewSparseFIR creates a filter whose history holds capacity samples.
// Every offset must lie in [0, capacity).
func NewSparseFIR[F simdops.Float](offsets []int, gains []float64, capacity int) (*SparseFIR[F], error) {
	if len(offsets) != len(gains) {
		return nil, fmt.Errorf("%w: %d offsets but %d gains", ErrInvalidTaps, len(offsets), len(gains))
	}
	history, err := delay.New[F](capacity)
	if err != nil {
		return nil, err
	}
	if err := history.CheckOffsets(offsets); err != nil {
		return nil, err
	}

	f := &SparseFIR[F]{
		history: history,
		offsets: append([]int(nil), offsets...),
		gains:   make([]F, len(gains)),
		scratch: make([]F, len(offsets)),
		ops:     simdops.For[F](),
	}
	for i, g := range gains {
		f.gains[i] = F(g)
	}
	return f, nil
}

// ProcessSample pushes x into the history and returns the convolution output.
func (f *SparseFIR[F]) ProcessSample(x F) F {
	f.history.Push(x)
	if len(f.offsets) == 0 {
		return 0
	}
	f.history.Read(f.scratch, f.offsets)
	return f.ops.DotProductUnsafe(f.scratch, f.gains)
}

// Taps returns the number of non-zero kernel taps.
func (f *SparseFIR[F]) Taps() int {
	return len(f.offsets)
}

// Capacity returns the history length in samples.
func (f *SparseFIR[F]) Capacity() int {
	return f.history.Capacity()
}

// GetMemoryUsage returns approximate memory usage in bytes.
func (f *SparseFIR[F]) GetMemoryUsage() int64 {
	size := int64(bytesPer[F]())
	return int64(f.history.Capacity())*size +
		int64(len(f.offsets))*(bytesPerInt+2*size)
}

// GetSIMDInfo returns the instruction set used for the tap sum.
func (f *SparseFIR[F]) GetSIMDInfo() string {
	return simdops.Info()
}
