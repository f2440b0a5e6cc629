package velvet

import "math"

// sliceStream replays fixed indices, then continues past the last one in steps of 1000.
type sliceStream struct {
	values []int
	pos    int
}

func (s *sliceStream) Next() int {
	if s.pos < len(s.values) {
		v := s.values[s.pos]
		s.pos++
		return v
	}
	last := 0
	if len(s.values) > 0 {
		last = s.values[len(s.values)-1]
	}
	s.pos++
	return last + (s.pos-len(s.values))*1000
}

// cycleSigns repeats a fixed sign pattern.
type cycleSigns struct {
	pattern []float64
	pos     int
}

func (c *cycleSigns) Next() float64 {
	v := c.pattern[c.pos%len(c.pattern)]
	c.pos++
	return v
}

// sine returns n samples of a sine wave at freq Hz scaled by amp.
func sine(n, sampleRate int, freq, amp float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}
