package camera

// Movement is a discrete camera movement command issued by the input layer.
type Movement int

const (
	// MovementForward moves along the camera's front vector.
	MovementForward Movement = iota
	// MovementBackward moves against the camera's front vector.
	MovementBackward
	// MovementLeft moves against the camera's right vector.
	MovementLeft
	// MovementRight moves along the camera's right vector.
	MovementRight
	// MovementUp moves along the fixed world-up axis, independent of pitch.
	MovementUp
	// MovementDown moves against the fixed world-up axis, independent of pitch.
	MovementDown
)

// String returns the command name.
func (m Movement) String() string {
	switch m {
	case MovementForward:
		return "forward"
	case MovementBackward:
		return "backward"
	case MovementLeft:
		return "left"
	case MovementRight:
		return "right"
	case MovementUp:
		return "up"
	case MovementDown:
		return "down"
	default:
		return "unknown"
	}
}
