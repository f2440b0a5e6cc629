package main

import (
	"fmt"
	"math"

	velvet "github.com/tphakala/go-velvet-noise"
	"github.com/tphakala/go-velvet-noise/internal/wavio"
)

// settings holds the command-line options.
type settings struct {
	seconds float64
	taps    int
	gain    float64
	ceiling float64
	seed    uint64
	mono    bool
}

// config returns the texture configuration for a source at sampleRate.
func (s settings) config(sampleRate int) velvet.TextureConfig {
	cfg := velvet.DefaultTextureConfig(sampleRate)
	cfg.Taps = s.taps
	cfg.Gain = s.gain
	if s.ceiling > 0 {
		cfg.OutputCeiling = s.ceiling
	} else {
		cfg.OutputCeiling = math.Inf(1)
	}
	return cfg
}

// channelOptions returns the generator options for channel ch. A fixed seed
// is offset per channel so channels decorrelate.
func (s settings) channelOptions(ch int) []velvet.Option {
	if s.seed == 0 {
		return nil
	}
	return []velvet.Option{velvet.WithSeed(s.seed + uint64(ch))}
}

// renderTexture renders s.seconds of texture from every source channel.
func renderTexture(source *wavio.Audio, s settings) (*wavio.Audio, error) {
	if s.seconds <= 0 {
		return nil, fmt.Errorf("seconds must be positive, got %g", s.seconds)
	}

	channels := source.Channels
	if s.mono {
		channels = [][]float64{wavio.Mixdown(channels)}
	}

	n := int(math.Round(s.seconds * float64(source.SampleRate)))
	cfg := s.config(source.SampleRate)

	out := make([][]float64, len(channels))
	for ch, src := range channels {
		tex, err := velvet.NewTexture(src, cfg, s.channelOptions(ch)...)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}
		if out[ch], err = tex.Render(n); err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}
	}

	return &wavio.Audio{
		SampleRate: source.SampleRate,
		BitDepth:   source.BitDepth,
		Channels:   out,
	}, nil
}
