// Package wavio reads and writes PCM WAV files as per-channel float64 slices
// normalized to [-1, 1]. It backs the command-line tools.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	// Channel count constants for fast paths
	monoChannels   = 1
	stereoChannels = 2

	// Supported sample formats
	BitDepth16 = 16
	BitDepth24 = 24
	BitDepth32 = 32

	// Conversion constants
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// WAV audio format tag for integer PCM
	pcmFormat = 1
)

var (
	// ErrInvalidFile is returned when the input is not a readable WAV stream.
	ErrInvalidFile = errors.New("invalid WAV file")

	// ErrUnsupportedBitDepth is returned for sample formats other than 16, 24 or 32 bit.
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")

	// ErrNoChannels is returned when writing audio without any channel data.
	ErrNoChannels = errors.New("no channels")
)

// Audio is a decoded multichannel PCM signal.
type Audio struct {
	SampleRate int
	BitDepth   int
	Channels   [][]float64
}

// Frames returns the length of the longest channel.
func (a *Audio) Frames() int {
	n := 0
	for _, ch := range a.Channels {
		n = max(n, len(ch))
	}
	return n
}

// Duration returns the signal length in seconds.
func (a *Audio) Duration() float64 {
	if a.SampleRate <= 0 {
		return 0
	}
	return float64(a.Frames()) / float64(a.SampleRate)
}

// MaxValue returns the full-scale integer value for the given bit depth.
func MaxValue(bitDepth int) (float64, error) {
	switch bitDepth {
	case BitDepth16:
		return maxInt16, nil
	case BitDepth24:
		return maxInt24, nil
	case BitDepth32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

// Read opens and decodes the WAV file at path.
func Read(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	a, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// Decode reads a complete WAV stream into memory.
func Decode(r io.ReadSeeker) (*Audio, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, ErrInvalidFile
	}

	bitDepth := int(decoder.BitDepth)
	maxVal, err := MaxValue(bitDepth)
	if err != nil {
		return nil, err
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidFile, channels)
	}

	return &Audio{
		SampleRate: buf.Format.SampleRate,
		BitDepth:   bitDepth,
		Channels:   Deinterleave(buf.Data, channels, 1.0/maxVal),
	}, nil
}

// Write encodes a to a new WAV file at path.
func Write(path string, a *Audio) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	// Capture close errors on the success path; the header is finalized on close.
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	return Encode(f, a)
}

// Encode writes a as integer PCM at a.BitDepth.
func Encode(w io.WriteSeeker, a *Audio) error {
	if len(a.Channels) == 0 {
		return ErrNoChannels
	}
	maxVal, err := MaxValue(a.BitDepth)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(w, a.SampleRate, a.BitDepth, len(a.Channels), pcmFormat)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: len(a.Channels),
			SampleRate:  a.SampleRate,
		},
		Data:           Interleave(a.Channels, maxVal),
		SourceBitDepth: a.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV header: %w", err)
	}
	return nil
}

// Deinterleave splits interleaved integer samples into per-channel slices
// scaled by invMaxVal.
func Deinterleave(data []int, numChannels int, invMaxVal float64) [][]float64 {
	samplesPerChannel := len(data) / numChannels
	result := make([][]float64, numChannels)
	for ch := range numChannels {
		result[ch] = make([]float64, samplesPerChannel)
	}

	// Fast path for mono
	if numChannels == monoChannels {
		buf := result[0]
		for i := range samplesPerChannel {
			buf[i] = float64(data[i]) * invMaxVal
		}
		return result
	}

	// Fast path for stereo
	if numChannels == stereoChannels {
		buf0, buf1 := result[0], result[1]
		for i := range samplesPerChannel {
			idx := i * stereoChannels
			buf0[i] = float64(data[idx]) * invMaxVal
			buf1[i] = float64(data[idx+1]) * invMaxVal
		}
		return result
	}

	for i := range samplesPerChannel {
		base := i * numChannels
		for ch := range numChannels {
			result[ch][i] = float64(data[base+ch]) * invMaxVal
		}
	}
	return result
}

// Interleave clamps per-channel samples to [-1, 1] and converts them to
// interleaved integers at full scale maxVal. Shorter channels are padded
// with silence.
func Interleave(channels [][]float64, maxVal float64) []int {
	numChannels := len(channels)
	if numChannels == 0 {
		return nil
	}

	frames := 0
	for _, ch := range channels {
		frames = max(frames, len(ch))
	}

	result := make([]int, frames*numChannels)
	for ch, samples := range channels {
		for i, s := range samples {
			result[i*numChannels+ch] = int(clamp(s) * maxVal)
		}
	}
	return result
}

// Mixdown averages all channels into one, padding shorter channels with silence.
func Mixdown(channels [][]float64) []float64 {
	if len(channels) == 0 {
		return nil
	}
	if len(channels) == monoChannels {
		out := make([]float64, len(channels[0]))
		copy(out, channels[0])
		return out
	}

	frames := 0
	for _, ch := range channels {
		frames = max(frames, len(ch))
	}

	out := make([]float64, frames)
	scale := 1.0 / float64(len(channels))
	for _, ch := range channels {
		for i, s := range ch {
			out[i] += s * scale
		}
	}
	return out
}

func clamp(s float64) float64 {
	if s > 1.0 {
		return 1.0
	}
	if s < -1.0 {
		return -1.0
	}
	return s
}
