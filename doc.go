// Package velvet synthesizes velvet noise and uses it for late reverberation
// and endless texture synthesis in pure Go.
//
// Velvet noise is a sparse train of ±1 impulses at randomized positions. At a
// few thousand impulses per second it sounds as smooth as white noise while
// touching only a small fraction of the samples, which makes it a cheap
// convolution kernel.
//
// # Generators
//
// Impulse locations come from a [LocationStream]:
//
//   - [OVN]: original velvet noise, one impulse per grid cell of
//     sampleRate/density samples at a uniformly random offset.
//   - [ARN]: additive random noise, each impulse a random distance after the
//     previous one. The delta parameter controls the spread of the spacing.
//
// Signs come from a [SignStream]. [Choice] draws +1 with probability p and -1
// otherwise; p = 0.5 is classic velvet noise and other values give "crushed"
// noise with a DC bias of 2p-1.
//
// [Chunked] regroups any location stream into fixed-length windows for
// block-wise consumption, and [VelvetNoise] turns a location and sign stream
// into a dense sample stream.
//
// # Kernels
//
// [Render] truncates a location stream and a sign stream to a sample range and
// produces a sparse [Kernel] of (index, gain) taps:
//
//	locs, _ := velvet.NewOVN(2000, 96000)
//	kernel, err := velvet.Render(locs, velvet.NewClassicChoice(), 0, 9600, 0.5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Late Reverb
//
// [LateReverb] convolves the input with a velvet kernel built from 20 segments
// of decreasing density and level, then diffuses it through a cascade of
// Schroeder allpass filters:
//
//	output, err := velvet.ApplyLateReverb(input, 5*velvet.RateCD)
//
// The reference tables are defined at 44.1 kHz. Use [ReverbConfig.AtSampleRate]
// to scale them, or [ApplyLateReverbResampled] to run other rates through the
// reference configuration.
//
// # Endless Texture
//
// [Texture] keeps a fixed set of taps walking through a short source sample.
// Taps that fall off the end restart at the beginning with a fresh random
// sign, so the output never repeats:
//
//	texture, err := velvet.NewTexture(source, velvet.DefaultTextureConfig(48000))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tenSeconds, err := texture.Render(10 * 48000)
//
// Like the reverb, a texture reports output at or above its ceiling with
// [ErrOutputRange] rather than clipping it.
//
// # Randomness
//
// Every generator owns its random source. Pass [WithSeed] for reproducible
// output or [WithSource] to supply a math/rand/v2 source. Without options a
// fresh PCG source is seeded per instance.
//
// # Thread Safety
//
// Generators and processors are not safe for concurrent use. Create one per
// goroutine; [ApplyLateReverbMulti] does this for multi-channel audio.
package velvet
