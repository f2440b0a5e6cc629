// Package delay implements the fixed-capacity circular sample history shared by
// the sparse convolution and allpass diffusion stages.
package delay

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-velvet-noise/internal/simdops"
)

// ErrOutOfRange is returned when an offset does not address a stored sample.
var ErrOutOfRange = errors.New("delay offset out of range")

// Buffer is a circular history of the most recent input samples.
// Offsets count backwards from the most recent Push: offset 0 is the newest
// sample and Capacity()-1 the oldest. Offsets are never wrapped.
type Buffer[F simdops.Float] struct {
	data     []F
	writePos int
}

// New creates a zero-filled buffer holding capacity samples.
func New[F simdops.Float](capacity int) (*Buffer[F], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("delay capacity must be > 0: %d", capacity)
	}
	return &Buffer[F]{data: make([]F, capacity)}, nil
}

// Capacity returns the number of samples the buffer retains.
func (b *Buffer[F]) Capacity() int {
	return len(b.data)
}

// Push stores x, overwriting the oldest sample.
func (b *Buffer[F]) Push(x F) {
	b.data[b.writePos] = x
	b.writePos++
	if b.writePos == len(b.data) {
		b.writePos = 0
	}
}

// Get returns the sample pushed offset steps before the most recent one.
func (b *Buffer[F]) Get(offset int) (F, error) {
	if offset < 0 || offset >= len(b.data) {
		return 0, fmt.Errorf("%w: offset %d, capacity %d", ErrOutOfRange, offset, len(b.data))
	}
	return b.data[b.index(offset)], nil
}

// Oldest returns the sample the next Push will overwrite.
func (b *Buffer[F]) Oldest() F {
	return b.data[b.writePos]
}

// Gather reads the samples at offsets into dst, which must be at least as long as offsets.
func (b *Buffer[F]) Gather(dst []F, offsets []int) error {
	if len(dst) < len(offsets) {
		return fmt.Errorf("gather destination too small: %d < %d", len(dst), len(offsets))
	}
	size := len(b.data)
	for i, offset := range offsets {
		if offset < 0 || offset >= size {
			return fmt.Errorf("%w: offset %d, capacity %d", ErrOutOfRange, offset, size)
		}
		dst[i] = b.data[b.index(offset)]
	}
	return nil
}

// Read is Gather without bounds checks. The offsets must have passed CheckOffsets.
func (b *Buffer[F]) Read(dst []F, offsets []int) {
	for i, offset := range offsets {
		dst[i] = b.data[b.index(offset)]
	}
}

// CheckOffsets reports the first offset the buffer cannot address.
func (b *Buffer[F]) CheckOffsets(offsets []int) error {
	for _, offset := range offsets {
		if offset < 0 || offset >= len(b.data) {
			return fmt.Errorf("%w: offset %d, capacity %d", ErrOutOfRange, offset, len(b.data))
		}
	}
	return nil
}

func (b *Buffer[F]) index(offset int) int {
	idx := b.writePos - 1 - offset
	if idx < 0 {
		idx += len(b.data)
	}
	return idx
}
