package place

import "time"

// DefaultFlipInterval is how much frame time passes between steering flips.
const DefaultFlipInterval = 789 * time.Millisecond

// Steering holds the sign applied to the detour angles of Go. Entities stuck
// on the same obstacle try the same side at the same time, and the side
// changes periodically so that none of them keeps pushing one way forever.
type Steering struct {
	interval time.Duration
	elapsed  time.Duration
	sign     float64
}

// NewSteering creates a steering modifier that flips every interval. A
// non-positive interval never flips.
func NewSteering(interval time.Duration) Steering {
	return Steering{interval: interval, sign: 1}
}

// Advance accumulates frame time and flips the sign once per full interval.
func (s *Steering) Advance(dt time.Duration) {
	if s.interval <= 0 || dt <= 0 {
		return
	}
	s.elapsed += dt
	for s.elapsed >= s.interval {
		s.elapsed -= s.interval
		s.sign = -s.sign
	}
}

// Sign returns 1 or -1.
func (s *Steering) Sign() float64 {
	if s.sign == 0 {
		return 1
	}
	return s.sign
}
