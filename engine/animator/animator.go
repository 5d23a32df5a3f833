package animator

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-motion/engine/chain"
)

// WaveParams holds the traveling-wave parameters applied to a chain.
type WaveParams struct {
	Speed      float32 // temporal frequency in radians per second
	Amplitude  float32 // peak segment angle in radians
	Wavelength float32 // phase lag per segment in radians
}

// animator is the implementation of the Animator interface.
type animator struct {
	mu *sync.Mutex

	params WaveParams
	paused bool

	// lastTime is the time passed to the most recent Animate call.
	lastTime float32
}

// Animator defines the wave animation policy for segment chains.
//
// The Animator owns the wave parameters and the pause flag. Each tick the scene calls
// Animate with the global elapsed time; while paused the chain keeps its last rotations
// and resumes in phase with the global clock when unpaused.
type Animator interface {
	// Params returns the current wave parameters.
	//
	// Returns:
	//   - WaveParams: the parameters
	Params() WaveParams

	// SetParams replaces all wave parameters.
	//
	// Parameters:
	//   - params: the new parameters
	SetParams(params WaveParams)

	// SetSpeed sets the wave's temporal frequency.
	//
	// Parameters:
	//   - speed: radians per second
	SetSpeed(speed float32)

	// SetAmplitude sets the peak segment angle.
	//
	// Parameters:
	//   - amplitude: radians
	SetAmplitude(amplitude float32)

	// SetWavelength sets the phase lag between consecutive segments.
	//
	// Parameters:
	//   - wavelength: radians per segment
	SetWavelength(wavelength float32)

	// Paused reports whether the wave is frozen.
	//
	// Returns:
	//   - bool: true while paused
	Paused() bool

	// SetPaused freezes or resumes the wave.
	//
	// Parameters:
	//   - paused: the new pause state
	SetPaused(paused bool)

	// TogglePause flips the pause state.
	//
	// Returns:
	//   - bool: the pause state after the toggle
	TogglePause() bool

	// LastTime returns the time passed to the most recent Animate call.
	//
	// Returns:
	//   - float32: elapsed time in seconds
	LastTime() float32

	// Animate applies the wave at the given global time to every chain.
	//
	// Parameters:
	//   - time: elapsed time in seconds
	//   - chains: the chains to update
	Animate(time float32, chains ...chain.Chain)
}

var _ Animator = &animator{}

// NewAnimator creates a new wave Animator.
// Defaults: speed 2 rad/s, amplitude 0.3 rad, wavelength 0.5 rad per segment, not paused.
//
// Parameters:
//   - options: functional options to configure the animator
//
// Returns:
//   - Animator: the new animator
func NewAnimator(options ...AnimatorBuilderOption) Animator {
	a := &animator{
		mu: &sync.Mutex{},
		params: WaveParams{
			Speed:      2,
			Amplitude:  0.3,
			Wavelength: 0.5,
		},
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *animator) Params() WaveParams {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.params
}

func (a *animator) SetParams(params WaveParams) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.params = params
}

func (a *animator) SetSpeed(speed float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.params.Speed = speed
}

func (a *animator) SetAmplitude(amplitude float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.params.Amplitude = amplitude
}

func (a *animator) SetWavelength(wavelength float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.params.Wavelength = wavelength
}

func (a *animator) Paused() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.paused
}

func (a *animator) SetPaused(paused bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.paused = paused
}

func (a *animator) TogglePause() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.paused = !a.paused
	return a.paused
}

func (a *animator) LastTime() float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastTime
}

func (a *animator) Animate(time float32, chains ...chain.Chain) {
	a.mu.Lock()
	params, paused := a.params, a.paused
	a.lastTime = time
	a.mu.Unlock()

	for _, c := range chains {
		if c == nil {
			continue
		}
		c.UpdateWave(time, params.Speed, params.Amplitude, params.Wavelength, paused)
	}
}
