package bezier

import (
	"iter"
	"sync"
)

// Path is an ordered sequence of cubic curves traversed cyclically.
// Insertion order is traversal order; joins are not required to be tangent-continuous.
// A Path may be shared by any number of followers, which only read from it.
type Path struct {
	mu     sync.RWMutex
	curves []CubicCurve
}

// NewPath creates a Path from the given curves in traversal order.
//
// Parameters:
//   - curves: the initial curve segments
//
// Returns:
//   - *Path: the new path
func NewPath(curves ...CubicCurve) *Path {
	p := &Path{curves: make([]CubicCurve, 0, len(curves))}
	p.curves = append(p.curves, curves...)
	return p
}

// Append adds a curve to the end of the traversal order.
//
// Parameters:
//   - curve: the curve segment to add
func (p *Path) Append(curve CubicCurve) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.curves = append(p.curves, curve)
}

// Curve returns the curve at index i. Panics if i is out of range.
//
// Parameters:
//   - i: the segment index
//
// Returns:
//   - CubicCurve: the segment
func (p *Path) Curve(i int) CubicCurve {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.curves[i]
}

// Count returns the number of curve segments.
func (p *Path) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.curves)
}

// Curves returns a copy of the curve segments in traversal order.
func (p *Path) Curves() []CubicCurve {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]CubicCurve, len(p.curves))
	copy(out, p.curves)
	return out
}

// SamplePath returns a lazy sequence of points along the path for visualization.
// Every curve is evaluated at samplesPerCurve+1 evenly spaced parameters (both endpoints
// included), in curve order and then parameter order. The sequence is finite and can be
// ranged over any number of times. A nil path or a negative sample count yields nothing.
//
// Parameters:
//   - path: the path to sample
//   - samplesPerCurve: the number of intervals per curve
//
// Returns:
//   - iter.Seq[[3]float32]: the sampled points
func SamplePath(path *Path, samplesPerCurve int) iter.Seq[[3]float32] {
	return func(yield func([3]float32) bool) {
		if path == nil || samplesPerCurve < 0 {
			return
		}
		for _, curve := range path.Curves() {
			if samplesPerCurve == 0 {
				if !yield(curve.P0) {
					return
				}
				continue
			}
			for s := 0; s <= samplesPerCurve; s++ {
				t := float32(s) / float32(samplesPerCurve)
				if !yield(curve.Evaluate(t)) {
					return
				}
			}
		}
	}
}

// SamplePoints materializes SamplePath into a slice.
//
// Parameters:
//   - path: the path to sample
//   - samplesPerCurve: the number of intervals per curve
//
// Returns:
//   - [][3]float32: the sampled points
func SamplePoints(path *Path, samplesPerCurve int) [][3]float32 {
	var points [][3]float32
	if path != nil && samplesPerCurve >= 0 {
		points = make([][3]float32, 0, path.Count()*(samplesPerCurve+1))
	}
	for p := range SamplePath(path, samplesPerCurve) {
		points = append(points, p)
	}
	return points
}
