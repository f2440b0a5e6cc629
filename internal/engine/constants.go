package engine

// Memory estimate constants
const (
	// Byte sizes of the stored sample and offset types
	bytesPerFloat32 = 4
	bytesPerFloat64 = 8
	bytesPerInt     = 8
)

// Tap recycling constants
const (
	// recycledPosition is where a retired tap re-enters the source.
	recycledPosition = 0
)
