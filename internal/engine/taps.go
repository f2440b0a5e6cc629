package engine

import (
	"fmt"

	"github.com/tphakala/go-velvet-noise/internal/simdops"
)

// TapSet is a fixed arena of (position, gain) taps reading a finite source.
// Slots are updated in place; the number of taps never changes.
type TapSet[F simdops.Float] struct {
	positions []int
	gains     []F
	scratch   []F
	limit     int
	ops       *simdops.Ops[F]
}

// NewTapSet seeds a tap set for a source of sourceLen samples. Every position
// must lie in [0, sourceLen).
func NewTapSet[F simdops.Float](positions []int, gains []float64, sourceLen int) (*TapSet[F], error) {
	switch {
	case len(positions) != len(gains):
		return nil, fmt.Errorf("%w: %d positions but %d gains", ErrInvalidTaps, len(positions), len(gains))
	case len(positions) == 0:
		return nil, fmt.Errorf("%w: tap set is empty", ErrInvalidTaps)
	case sourceLen < 1:
		return nil, fmt.Errorf("%w: source length must be > 0, got %d", ErrInvalidTaps, sourceLen)
	}
	for i, p := range positions {
		if p < 0 || p >= sourceLen {
			return nil, fmt.Errorf("%w: tap %d position %d outside [0, %d)", ErrInvalidTaps, i, p, sourceLen)
		}
	}

	s := &TapSet[F]{
		positions: append([]int(nil), positions...),
		gains:     make([]F, len(gains)),
		scratch:   make([]F, len(positions)),
		limit:     sourceLen,
		ops:       simdops.For[F](),
	}
	for i, g := range gains {
		s.gains[i] = F(g)
	}
	return s, nil
}

// Len returns the number of taps.
func (s *TapSet[F]) Len() int {
	return len(s.positions)
}

// Tap returns the position and gain held in slot i.
func (s *TapSet[F]) Tap(i int) (position int, gain F) {
	return s.positions[i], s.gains[i]
}

// Convolve returns sum(source[position] * gain) over all taps.
// source must hold at least the length the set was created with.
func (s *TapSet[F]) Convolve(source []F) F {
	src := source[:s.limit]
	for i, p := range s.positions {
		s.scratch[i] = src[p]
	}
	return s.ops.DotProductUnsafe(s.scratch, s.gains)
}

// Advance moves every tap one sample further into the source. A tap that
// passes the last source sample is recycled to position 0 with a gain drawn
// from next. It returns the number of recycled taps.
func (s *TapSet[F]) Advance(next func() float64) int {
	retired := 0
	last := s.limit - 1
	for i := range s.positions {
		s.positions[i]++
		if s.positions[i] > last {
			s.positions[i] = recycledPosition
			s.gains[i] = F(next())
			retired++
		}
	}
	return retired
}

// TapEngine renders an endless signal from a source by convolving it with a
// regenerating tap set.
type TapEngine[F simdops.Float] struct {
	source []F
	taps   *TapSet[F]
	next   func() float64
	gain   F
}

// NewTapEngine wraps taps around source. next supplies the gain of every
// recycled tap; gain scales each output sample.
func NewTapEngine[F simdops.Float](source []F, taps *TapSet[F], next func() float64, gain float64) (*TapEngine[F], error) {
	if taps == nil || next == nil {
		return nil, fmt.Errorf("%w: tap set and gain source are required", ErrInvalidTaps)
	}
	if len(source) != taps.limit {
		return nil, fmt.Errorf("%w: source has %d samples, taps expect %d", ErrInvalidTaps, len(source), taps.limit)
	}
	return &TapEngine[F]{source: source, taps: taps, next: next, gain: F(gain)}, nil
}

// Step produces one output sample and advances the taps.
func (e *TapEngine[F]) Step() F {
	out := e.taps.Convolve(e.source) * e.gain
	e.taps.Advance(e.next)
	return out
}

// Render fills dst with consecutive output samples.
func (e *TapEngine[F]) Render(dst []F) {
	for i := range dst {
		dst[i] = e.Step()
	}
}

// Taps exposes the live tap set.
func (e *TapEngine[F]) Taps() *TapSet[F] {
	return e.taps
}
