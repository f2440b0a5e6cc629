package mathutil

// Decibel conversion constants
const (
	// decibelFactor converts amplitude ratios to decibels (20·log10).
	decibelFactor = 20.0

	// decibelBase is the logarithm base of the decibel scale.
	decibelBase = 10.0
)
