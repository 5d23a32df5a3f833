package bezier

// FollowerBuilderOption is a functional option for configuring a Follower.
type FollowerBuilderOption func(*followerImpl)

// WithSpeed sets the advance rate in parameter units per second.
//
// Parameters:
//   - speed: the advance rate
//
// Returns:
//   - FollowerBuilderOption: a function that sets the speed
func WithSpeed(speed float32) FollowerBuilderOption {
	return func(f *followerImpl) {
		f.speed = speed
	}
}

// WithSegmentIndex sets the starting segment. The index is wrapped into the path's range.
//
// Parameters:
//   - index: the starting segment index
//
// Returns:
//   - FollowerBuilderOption: a function that sets the starting segment
func WithSegmentIndex(index int) FollowerBuilderOption {
	return func(f *followerImpl) {
		f.segment = index
	}
}

// WithParameter sets the starting local parameter. Values outside [0, 1) start at 0.
//
// Parameters:
//   - t: the starting parameter
//
// Returns:
//   - FollowerBuilderOption: a function that sets the starting parameter
func WithParameter(t float32) FollowerBuilderOption {
	return func(f *followerImpl) {
		f.t = t
	}
}

// WithLookahead sets the parameter offset used to sample the tangent direction.
//
// Parameters:
//   - epsilon: the lookahead offset (default DefaultLookahead)
//
// Returns:
//   - FollowerBuilderOption: a function that sets the lookahead
func WithLookahead(epsilon float32) FollowerBuilderOption {
	return func(f *followerImpl) {
		f.lookahead = epsilon
	}
}

// WithWorldUp sets the up hint used when building the orientation.
//
// Parameters:
//   - up: the world-up vector (default (0, 1, 0))
//
// Returns:
//   - FollowerBuilderOption: a function that sets world-up
func WithWorldUp(up [3]float32) FollowerBuilderOption {
	return func(f *followerImpl) {
		f.worldUp = up
	}
}
