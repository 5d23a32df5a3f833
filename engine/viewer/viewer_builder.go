package viewer

// ViewerBuilderOption is a functional option for configuring a Viewer.
type ViewerBuilderOption func(*Viewer)

// WithScale sets the zoom as screen rows per world unit. Non-positive values are ignored.
//
// Parameters:
//   - rowsPerUnit: rows per world unit (default 1.5)
//
// Returns:
//   - ViewerBuilderOption: functional option to set the scale
func WithScale(rowsPerUnit float32) ViewerBuilderOption {
	return func(v *Viewer) {
		if rowsPerUnit > 0 {
			v.scale = rowsPerUnit
		}
	}
}

// WithCenter sets the world XZ point drawn at the middle of the screen.
//
// Parameters:
//   - x, z: world coordinates
//
// Returns:
//   - ViewerBuilderOption: functional option to set the center
func WithCenter(x, z float32) ViewerBuilderOption {
	return func(v *Viewer) {
		v.center = [2]float32{x, z}
	}
}

// WithSamplesPerCurve sets how densely paths are sampled for drawing.
//
// Parameters:
//   - n: samples per cubic segment (default 16)
//
// Returns:
//   - ViewerBuilderOption: functional option to set the sampling density
func WithSamplesPerCurve(n int) ViewerBuilderOption {
	return func(v *Viewer) {
		v.samplesPerCurve = n
	}
}
