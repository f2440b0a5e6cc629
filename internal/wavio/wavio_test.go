package wavio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSignal(n int, freq float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/44100)
	}
	return out
}

// =============================================================================
// File I/O
// =============================================================================

func TestRead_FileNotFound(t *testing.T) {
	_, err := Read("/nonexistent/file.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestRead_InvalidWAV(t *testing.T) {
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.wav")
	err := os.WriteFile(invalidFile, []byte("not a wav file"), 0o644)
	require.NoError(t, err)

	_, err = Read(invalidFile)
	require.ErrorIs(t, err, ErrInvalidFile)
}

func TestWrite_InvalidDirectory(t *testing.T) {
	a := &Audio{SampleRate: 44100, BitDepth: BitDepth16, Channels: [][]float64{{0}}}
	err := Write("/nonexistent/dir/out.wav", a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestWrite_Validation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")

	err := Write(path, &Audio{SampleRate: 44100, BitDepth: BitDepth16})
	require.ErrorIs(t, err, ErrNoChannels)

	err = Write(path, &Audio{SampleRate: 44100, BitDepth: 12, Channels: [][]float64{{0}}})
	require.ErrorIs(t, err, ErrUnsupportedBitDepth)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		bitDepth int
		channels int
	}{
		{"mono 16-bit", BitDepth16, 1},
		{"stereo 16-bit", BitDepth16, 2},
		{"stereo 24-bit", BitDepth24, 2},
		{"5.1 24-bit", BitDepth24, 6},
		{"mono 32-bit", BitDepth32, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const frames = 2048
			channels := make([][]float64, tt.channels)
			for ch := range channels {
				channels[ch] = testSignal(frames, 220*float64(ch+1))
			}
			in := &Audio{SampleRate: 44100, BitDepth: tt.bitDepth, Channels: channels}

			path := filepath.Join(t.TempDir(), "roundtrip.wav")
			require.NoError(t, Write(path, in))

			out, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, 44100, out.SampleRate)
			assert.Equal(t, tt.bitDepth, out.BitDepth)
			require.Len(t, out.Channels, tt.channels)
			assert.Equal(t, frames, out.Frames())

			maxVal, err := MaxValue(tt.bitDepth)
			require.NoError(t, err)
			tolerance := 2.0 / maxVal
			for ch := range channels {
				for i := range frames {
					assert.InDelta(t, channels[ch][i], out.Channels[ch][i], tolerance,
						"channel %d sample %d", ch, i)
				}
			}
		})
	}
}

func TestAudio_Duration(t *testing.T) {
	a := &Audio{SampleRate: 44100, Channels: [][]float64{make([]float64, 22050), make([]float64, 44100)}}
	assert.Equal(t, 44100, a.Frames())
	assert.InDelta(t, 1.0, a.Duration(), 1e-12)

	assert.Zero(t, (&Audio{}).Duration())
}

// =============================================================================
// Sample conversion
// =============================================================================

func TestDeinterleave(t *testing.T) {
	t.Run("mono", func(t *testing.T) {
		got := Deinterleave([]int{1, 2, 3}, 1, 0.5)
		assert.Equal(t, [][]float64{{0.5, 1, 1.5}}, got)
	})

	t.Run("stereo", func(t *testing.T) {
		got := Deinterleave([]int{1, -1, 2, -2}, 2, 1)
		assert.Equal(t, [][]float64{{1, 2}, {-1, -2}}, got)
	})

	t.Run("three channels drops partial frame", func(t *testing.T) {
		got := Deinterleave([]int{1, 2, 3, 4, 5, 6, 7}, 3, 1)
		assert.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, got)
	})
}

func TestInterleave(t *testing.T) {
	t.Run("clamps out of range samples", func(t *testing.T) {
		got := Interleave([][]float64{{2, -2, 0.5}}, 100)
		assert.Equal(t, []int{100, -100, 50}, got)
	})

	t.Run("pads shorter channels", func(t *testing.T) {
		got := Interleave([][]float64{{1, 1, 1}, {-1}}, 10)
		assert.Equal(t, []int{10, -10, 10, 0, 10, 0}, got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, Interleave(nil, 10))
	})
}

func TestMixdown(t *testing.T) {
	assert.Nil(t, Mixdown(nil))

	mono := []float64{0.1, 0.2}
	got := Mixdown([][]float64{mono})
	assert.Equal(t, mono, got)
	got[0] = 9
	assert.InDelta(t, 0.1, mono[0], 0, "mono mixdown must copy")

	got = Mixdown([][]float64{{1, 1}, {0, -1, 1}})
	require.Len(t, got, 3)
	assert.InDelta(t, 0.5, got[0], 1e-12)
	assert.InDelta(t, 0.0, got[1], 1e-12)
	assert.InDelta(t, 0.5, got[2], 1e-12)
}

func TestMaxValue(t *testing.T) {
	for bits, want := range map[int]float64{16: maxInt16, 24: maxInt24, 32: maxInt32} {
		got, err := MaxValue(bits)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 0)
	}

	_, err := MaxValue(8)
	require.ErrorIs(t, err, ErrUnsupportedBitDepth)
}
