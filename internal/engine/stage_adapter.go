package engine

import (
	"github.com/tphakala/go-velvet-noise/internal/diffusion"
	"github.com/tphakala/go-velvet-noise/internal/simdops"
)

// CascadeStage wraps a diffusion.Cascade to implement the pipeline.Stage interface.
type CascadeStage[F simdops.Float] struct {
	*diffusion.Cascade[F]
}

// NewCascadeStage creates the allpass cascade described by configs.
func NewCascadeStage[F simdops.Float](configs []diffusion.StageConfig) (*CascadeStage[F], error) {
	c, err := diffusion.NewCascade[F](configs)
	if err != nil {
		return nil, err
	}
	return &CascadeStage[F]{Cascade: c}, nil
}

// GetFilterLength returns the summed delay of all allpass sections.
func (s *CascadeStage[F]) GetFilterLength() int {
	return s.TotalDelay()
}

// GetMemoryUsage returns approximate memory usage in bytes.
func (s *CascadeStage[F]) GetMemoryUsage() int64 {
	return int64(s.TotalDelay()) * int64(bytesPer[F]())
}

// GetSIMDInfo returns SIMD optimization info. The allpass recursion is scalar.
func (s *CascadeStage[F]) GetSIMDInfo() string {
	return ""
}

// GetFilterLength returns the history length the kernel spans.
func (f *SparseFIR[F]) GetFilterLength() int {
	return f.history.Capacity()
}

func bytesPer[F simdops.Float]() int {
	var zero F
	if _, ok := any(zero).(float64); ok {
		return bytesPerFloat64
	}
	return bytesPerFloat32
}
