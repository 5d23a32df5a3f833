package animator

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithParams is an option builder that sets all wave parameters.
//
// Parameters:
//   - params: the wave parameters
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the parameters to an animator
func WithParams(params WaveParams) AnimatorBuilderOption {
	return func(a *animator) {
		a.params = params
	}
}

// WithPaused is an option builder that sets the initial pause state.
//
// Parameters:
//   - paused: true to start frozen
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the pause state to an animator
func WithPaused(paused bool) AnimatorBuilderOption {
	return func(a *animator) {
		a.paused = paused
	}
}
