package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial client area size. The size is clamped into the resize limits
// when the window is spawned. The framebuffer size of the result seeds the camera aspect.
//
// Parameters:
//   - width: initial width in pixels
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
		w.height = height
	}
}

// WithSizeLimits bounds how far the user can resize the window. The window has no client
// API, so the limits only bound the aspect ratios the camera projection will see.
// A limit of NoLimit leaves that bound unset.
//
// Parameters:
//   - minWidth, minHeight: smallest client area in pixels
//   - maxWidth, maxHeight: largest client area in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = minWidth, minHeight
		w.maxWidth, w.maxHeight = maxWidth, maxHeight
	}
}

// NoLimit disables one side of WithSizeLimits.
const NoLimit = -1

// fitSize orders inverted limits and clamps the initial size into them.
func (w *engineWindow) fitSize() {
	if w.minWidth != NoLimit && w.maxWidth != NoLimit && w.maxWidth < w.minWidth {
		w.maxWidth = w.minWidth
	}
	if w.minHeight != NoLimit && w.maxHeight != NoLimit && w.maxHeight < w.minHeight {
		w.maxHeight = w.minHeight
	}
	w.width = clampSize(w.width, w.minWidth, w.maxWidth)
	w.height = clampSize(w.height, w.minHeight, w.maxHeight)
}

func clampSize(v, lo, hi int) int {
	if lo != NoLimit && v < lo {
		v = lo
	}
	if hi != NoLimit && v > hi {
		v = hi
	}
	return max(v, 1)
}
