package camera

// CameraController defines the free-fly camera control system.
// Controllers own positional state (position, yaw/pitch orientation, field of view).
// Camera reads from the controller and computes view/projection matrices.
//
// The orientation is stored as yaw/pitch Euler angles in degrees and the front/right/up
// basis is recomputed from them after every change, so the basis never drifts.
type CameraController interface {
	freeFlyCameraController

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point, one unit in front of the camera.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// Up returns the camera's local up vector.
	//
	// Returns:
	//   - x, y, z: unit up vector, orthogonal to front and right
	Up() (x, y, z float32)

	// SetPosition sets the camera's world-space position directly.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// Fov returns the current field of view ("zoom") in degrees.
	//
	// Returns:
	//   - float32: field of view in degrees
	Fov() float32

	// Zoom narrows the field of view by delta degrees, clamped to the configured bounds.
	// Positive delta (scroll up) zooms in.
	//
	// Parameters:
	//   - delta: scroll amount in degrees
	Zoom(delta float32)

	// ViewMatrix returns the look-at view matrix built from position, position+front and up.
	// It is a pure function of the current state.
	//
	// Returns:
	//   - [16]float32: the view matrix (column-major)
	ViewMatrix() [16]float32
}

// freeFlyCameraController defines the first-person movement and look methods.
type freeFlyCameraController interface {
	// Move displaces the camera by MovementSpeed * dt along the axis selected by direction.
	// Forward/Backward follow the front vector, Left/Right the right vector and Up/Down the
	// fixed world-up axis, so vertical movement stays level regardless of pitch.
	//
	// Parameters:
	//   - direction: the movement command
	//   - dt: elapsed time in seconds
	Move(direction Movement, dt float32)

	// Look rotates the camera by pixel offsets scaled by MouseSensitivity.
	// When constrainPitch is true the pitch is clamped to the configured pitch limit.
	//
	// Parameters:
	//   - dx: horizontal offset in pixels (added to yaw)
	//   - dy: vertical offset in pixels (added to pitch)
	//   - constrainPitch: clamp pitch to prevent flipping over the poles
	Look(dx, dy float32, constrainPitch bool)

	// Yaw returns the rotation about world-up in degrees.
	//
	// Returns:
	//   - float32: yaw in degrees
	Yaw() float32

	// Pitch returns the elevation angle in degrees.
	//
	// Returns:
	//   - float32: pitch in degrees
	Pitch() float32

	// SetOrientation sets yaw and pitch directly and recomputes the basis.
	// Pitch is clamped to the configured limit.
	//
	// Parameters:
	//   - yaw: rotation about world-up in degrees
	//   - pitch: elevation in degrees
	SetOrientation(yaw, pitch float32)

	// Front returns the unit facing direction.
	//
	// Returns:
	//   - [3]float32: the front vector
	Front() [3]float32

	// Right returns the unit right vector.
	//
	// Returns:
	//   - [3]float32: the right vector
	Right() [3]float32

	// WorldUp returns the fixed world-up reference of this controller.
	//
	// Returns:
	//   - [3]float32: the world-up vector
	WorldUp() [3]float32

	// MovementSpeed returns the translation speed in units per second.
	//
	// Returns:
	//   - float32: movement speed
	MovementSpeed() float32

	// MouseSensitivity returns the look sensitivity in degrees per pixel.
	//
	// Returns:
	//   - float32: degrees per pixel
	MouseSensitivity() float32

	// FovBounds returns the field of view clamp range in degrees.
	//
	// Returns:
	//   - min, max: inclusive bounds
	FovBounds() (min, max float32)

	// PitchLimit returns the absolute pitch bound used when pitch is constrained.
	//
	// Returns:
	//   - float32: the limit in degrees
	PitchLimit() float32
}
