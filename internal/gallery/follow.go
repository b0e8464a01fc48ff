package gallery

import "math"

// DefaultSmoothing is the share of the remaining distance covered per frame.
const DefaultSmoothing = 0.05

// referenceFrame is the frame length the smoothing factor is tuned for.
const referenceFrame = 1.0 / 60.0

// CameraFollow eases ScrollState.Current toward Target.
type CameraFollow struct {
	Smoothing float32

	velocity float32
}

// NewCameraFollow creates a follower with the default smoothing.
func NewCameraFollow() *CameraFollow {
	return &CameraFollow{Smoothing: DefaultSmoothing}
}

// Step advances one frame. dt rescales the smoothing so the approach speed
// does not depend on the refresh rate; dt <= 0 steps exactly one reference
// frame. It returns the new Current.
func (f *CameraFollow) Step(s *ScrollState, dt float32) float32 {
	k := f.Smoothing
	if dt > 0 && dt != referenceFrame {
		k = 1 - float32(math.Pow(float64(1-k), float64(dt/referenceFrame)))
	}
	k = min(max(k, 0), 1)

	s.Current += (s.Target - s.Current) * k
	f.velocity = s.Target - s.Current
	return s.Current
}

// Velocity is Target - Current after the last Step.
func (f *CameraFollow) Velocity() float32 {
	return f.velocity
}

// Reset zeroes the velocity.
func (f *CameraFollow) Reset() {
	f.velocity = 0
}
