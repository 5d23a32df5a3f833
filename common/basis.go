package common

// ParallelEpsilon is the sine of the smallest angle between the forward and up hints that
// BuildBasis still accepts. Closer hints are reported as degenerate.
const ParallelEpsilon float32 = 1e-4

// BuildBasis builds a right-handed orthonormal frame from a forward direction and a world-up hint.
// The up hint does not need to be perpendicular to the forward direction; the returned up
// vector is corrected so that right, up and forward are mutually perpendicular.
//
//	forward = normalize(forwardHint)
//	right   = normalize(cross(upHint, forward))
//	up      = normalize(cross(forward, right))
//
// Parameters:
//   - forwardHint: the facing direction (any non-zero length)
//   - upHint: the world-up reference
//
// Returns:
//   - right, up, forward: the orthonormal basis vectors
//   - ok: false when forwardHint is zero or parallel to upHint; all vectors are zero in that case
func BuildBasis(forwardHint, upHint [3]float32) (right, up, forward [3]float32, ok bool) {
	forward, ok = Normalize3(forwardHint)
	if !ok {
		return [3]float32{}, [3]float32{}, [3]float32{}, false
	}
	side := Cross3(upHint, forward)
	if Length3(side) < ParallelEpsilon*Length3(upHint) {
		return [3]float32{}, [3]float32{}, [3]float32{}, false
	}
	right, ok = Normalize3(side)
	if !ok {
		return [3]float32{}, [3]float32{}, [3]float32{}, false
	}
	up, ok = Normalize3(Cross3(forward, right))
	if !ok {
		return [3]float32{}, [3]float32{}, [3]float32{}, false
	}
	return right, up, forward, true
}
