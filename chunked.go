package velvet

import "fmt"

// Window is one block of a chunked location stream.
type Window struct {
	// Base is the absolute index of the first sample covered by the window.
	Base int

	// Indices are the absolute impulse indices in [Base, Base+length).
	Indices []int
}

// Relative returns the indices as offsets from Base.
func (w Window) Relative() []int {
	out := make([]int, len(w.Indices))
	for i, idx := range w.Indices {
		out[i] = idx - w.Base
	}
	return out
}

// Chunked regroups a location stream into consecutive fixed-length windows.
// Concatenating the windows reproduces the underlying stream exactly.
type Chunked struct {
	stream     LocationStream
	length     int
	base       int
	pending    int
	hasPending bool
}

// NewChunked wraps stream in windows of chunkLength samples.
func NewChunked(stream LocationStream, chunkLength int) (*Chunked, error) {
	if stream == nil {
		return nil, fmt.Errorf("%w: location stream is nil", ErrInvalidConfig)
	}
	if chunkLength < 1 {
		return nil, fmt.Errorf("%w: chunk length must be positive, got %d", ErrInvalidConfig, chunkLength)
	}
	return &Chunked{stream: stream, length: chunkLength}, nil
}

// NewChunkedOVN chunks a fresh OVN stream.
func NewChunkedOVN(density, sampleRate, chunkLength int, opts ...Option) (*Chunked, error) {
	ovn, err := NewOVN(density, sampleRate, opts...)
	if err != nil {
		return nil, err
	}
	return NewChunked(ovn, chunkLength)
}

// Next returns the window starting at the current base and advances the base
// by the chunk length. A window may be empty when impulses are sparser than
// the chunk length.
func (c *Chunked) Next() Window {
	w := Window{Base: c.base}
	for {
		var idx int
		if c.hasPending {
			idx, c.hasPending = c.pending, false
		} else {
			idx = c.stream.Next()
		}
		if idx-c.base >= c.length {
			c.pending, c.hasPending = idx, true
			break
		}
		w.Indices = append(w.Indices, idx)
	}
	c.base += c.length
	return w
}

// ChunkLength returns the window length in samples.
func (c *Chunked) ChunkLength() int {
	return c.length
}
