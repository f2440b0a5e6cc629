package velvet

// Common sample rates.
const (
	// RateCD is the rate the late reverb reference tables are defined at.
	RateCD = 44100

	// RateHiRes96 is the rate used by the velvet noise density measurements.
	RateHiRes96 = 96000
)

// ClassicSkew is the sign probability of symmetric velvet noise.
const ClassicSkew = 0.5

// Late reverb reference parameters.
const (
	// DefaultDelayCapacity is the length of the input history the kernel reads.
	DefaultDelayCapacity = 100_000

	// DefaultTailSeconds is the silence appended after the input when rendering.
	DefaultTailSeconds = 5

	defaultMaxDensity        = 100
	defaultMinDensity        = 40
	defaultMaxGainDB         = 0.0
	defaultMinGainDB         = -30.0
	defaultFirstStageBoostDB = 3.0
	defaultOutputGain        = 0.2
	defaultOutputCeiling     = 1.0
)

// Endless texture reference parameters.
const (
	defaultTextureTaps = 32
	defaultTextureGain = 0.3
)

// DefaultBoundaries are the sample indices separating the 20 late reverb
// kernel segments at 44.1 kHz.
var DefaultBoundaries = []int{
	4411, 5672, 7214, 9044, 11171, 13602, 16343, 19400, 22779, 26484, 30521,
	34895, 39609, 44669, 50077, 55837, 61954, 68431, 75271, 82477, 90053,
}
