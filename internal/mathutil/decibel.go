package mathutil

import "math"

// DBToLinear converts a gain in decibels to an amplitude factor.
func DBToLinear(db float64) float64 {
	return math.Pow(decibelBase, db/decibelFactor)
}

// LinearToDB converts an amplitude factor to decibels.
// Zero maps to -Inf.
func LinearToDB(v float64) float64 {
	return decibelFactor * math.Log10(v)
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
