package diffusion

// Reference cascade from the Schroeder late-reverb diffuser.
const (
	// DefaultFeedback is the golden-ratio feedback used by every reference stage.
	DefaultFeedback = 0.618

	// maxStableFeedback is the exclusive bound on |g|.
	maxStableFeedback = 1.0
)

// DefaultDelays lists the reference stage delay lengths in samples, in processing order.
var DefaultDelays = []int{1, 64, 140, 209, 442, 555, 630}
