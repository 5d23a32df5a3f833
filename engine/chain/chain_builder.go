package chain

// ChainBuilderOption is a functional option for configuring a Chain.
type ChainBuilderOption func(*chainImpl)

// WithWaveAxis sets the local axis the wave rotates each segment about.
//
// Parameters:
//   - axis: the rotation axis (default (0, 1, 0))
//
// Returns:
//   - ChainBuilderOption: a function that sets the wave axis
func WithWaveAxis(axis [3]float32) ChainBuilderOption {
	return func(c *chainImpl) {
		c.waveAxis = axis
	}
}

// WithOffsetDirection sets the local direction along which each child is placed.
//
// Parameters:
//   - dir: the unit offset direction (default (0, 0, 1))
//
// Returns:
//   - ChainBuilderOption: a function that sets the offset direction
func WithOffsetDirection(dir [3]float32) ChainBuilderOption {
	return func(c *chainImpl) {
		c.offsetDir = dir
	}
}
