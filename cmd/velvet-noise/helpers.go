package main

import (
	"fmt"
	"math"
	"strings"

	velvet "github.com/tphakala/go-velvet-noise"
	"github.com/tphakala/go-velvet-noise/internal/wavio"
)

// Location generator names accepted by -kind.
const (
	kindOVN = "ovn"
	kindARN = "arn"
)

// settings holds the command-line options.
type settings struct {
	kind       string
	density    int
	sampleRate int
	seconds    float64
	delta      float64
	crush      float64
	gain       float64
	seed       uint64
	bitDepth   int
}

func (s settings) options() []velvet.Option {
	if s.seed == 0 {
		return nil
	}
	return []velvet.Option{velvet.WithSeed(s.seed)}
}

// newNoise creates the velvet noise signal selected by s.
func newNoise(s settings) (*velvet.VelvetNoise, error) {
	switch strings.ToLower(s.kind) {
	case kindOVN:
		if s.crush == velvet.ClassicSkew {
			return velvet.NewVelvetNoise(s.density, s.sampleRate, s.options()...)
		}
		return velvet.NewCrushedVelvetNoise(s.density, s.sampleRate, s.crush, s.options()...)
	case kindARN:
		return velvet.NewCrushedAdditiveVelvetNoise(
			float64(s.density), float64(s.sampleRate), s.delta, s.crush, s.options()...)
	default:
		return nil, fmt.Errorf("unknown generator %q (want %s or %s)", s.kind, kindOVN, kindARN)
	}
}

// renderNoise returns s.seconds of velvet noise scaled by s.gain.
func renderNoise(s settings) ([]float64, error) {
	if s.seconds <= 0 {
		return nil, fmt.Errorf("seconds must be positive, got %g", s.seconds)
	}
	if _, err := wavio.MaxValue(s.bitDepth); err != nil {
		return nil, err
	}

	noise, err := newNoise(s)
	if err != nil {
		return nil, err
	}

	samples := make([]float64, int(math.Round(s.seconds*float64(s.sampleRate))))
	noise.Fill(samples)
	for i := range samples {
		samples[i] *= s.gain
	}
	return samples, nil
}

// impulseIndices returns the positions of the non-zero samples.
func impulseIndices(samples []float64) []int {
	var out []int
	for i, v := range samples {
		if v != 0 {
			out = append(out, i)
		}
	}
	return out
}
