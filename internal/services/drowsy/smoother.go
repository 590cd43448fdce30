package drowsy

import "math"

// smoothingRatio is the fraction of the window that must agree before the
// smoothed verdict flips to drowsy. A single misclassified frame must not
// fire an alert.
const smoothingRatio = 0.6

// Smoother keeps a fixed-capacity window of the most recent frame verdicts
// and reports whether a supermajority of them indicate drowsiness. Each
// stream session owns exactly one Smoother; it is not safe for concurrent
// use and does not need to be.
type Smoother struct {
	window   []bool
	capacity int
	need     int
}

// NewSmoother creates a window of the given capacity. Capacity below 1 is
// clamped to 1, which degenerates to a pass-through verdict.
func NewSmoother(capacity int) *Smoother {
	if capacity < 1 {
		capacity = 1
	}
	return &Smoother{
		window:   make([]bool, 0, capacity),
		capacity: capacity,
		need:     int(math.Ceil(float64(capacity) * smoothingRatio)),
	}
}

// Push appends a frame verdict, evicting the oldest entry once the window
// is full, and returns the smoothed verdict.
func (s *Smoother) Push(verdict bool) bool {
	if len(s.window) == s.capacity {
		s.window = s.window[1:]
	}
	s.window = append(s.window, verdict)

	count := 0
	for _, v := range s.window {
		if v {
			count++
		}
	}
	return count >= s.need
}

// Len returns the number of verdicts currently held.
func (s *Smoother) Len() int {
	return len(s.window)
}
