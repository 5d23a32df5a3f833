package bezier

// CubicCurve is a single cubic Bezier segment defined by four control points.
// The curve passes through P0 and P3; P1 and P2 shape the tangents at either end.
type CubicCurve struct {
	P0 [3]float32
	P1 [3]float32
	P2 [3]float32
	P3 [3]float32
}

// NewCubicCurve creates a CubicCurve from its four control points.
//
// Parameters:
//   - p0: start point
//   - p1: first handle
//   - p2: second handle
//   - p3: end point
//
// Returns:
//   - CubicCurve: the curve
func NewCubicCurve(p0, p1, p2, p3 [3]float32) CubicCurve {
	return CubicCurve{P0: p0, P1: p1, P2: p2, P3: p3}
}

// Evaluate returns the point on the curve at parameter t using the cubic Bernstein blend
//
//	(1-t)^3*P0 + 3(1-t)^2*t*P1 + 3(1-t)*t^2*P2 + t^3*P3
//
// t is expected in [0, 1] but is not clamped.
//
// Parameters:
//   - t: the curve parameter
//
// Returns:
//   - [3]float32: the point at t
func (c CubicCurve) Evaluate(t float32) [3]float32 {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t

	var p [3]float32
	for i := range 3 {
		p[i] = b0*c.P0[i] + b1*c.P1[i] + b2*c.P2[i] + b3*c.P3[i]
	}
	return p
}
