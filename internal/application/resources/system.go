package resources

import "time"

// maxDelta caps the frame delta after stalls such as window drags.
const maxDelta = 0.25

// System holds frame timing and window metrics.
type System struct {
	DeltaTime   float64
	Elapsed     float64
	FrameCount  uint64
	Width       uint32
	Height      uint32
	ScaleFactor float64

	// ExitRequested is set by states that want the application to close.
	ExitRequested bool

	last time.Time
}

// NewSystem creates timing state starting at now.
func NewSystem(now time.Time) *System {
	return &System{
		ScaleFactor: 1,
		last:        now,
	}
}

// Tick advances the frame clock to now.
func (s *System) Tick(now time.Time) {
	dt := now.Sub(s.last).Seconds()
	if dt < 0 {
		dt = 0
	}
	if dt > maxDelta {
		dt = maxDelta
	}
	s.last = now
	s.DeltaTime = dt
	s.Elapsed += dt
	s.FrameCount++
}

// AspectRatio returns width over height, or 1 when the window is minimized.
func (s *System) AspectRatio() float64 {
	if s.Width == 0 || s.Height == 0 {
		return 1
	}
	return float64(s.Width) / float64(s.Height)
}
