package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = [3]float32{x, y, z}
	}
}

// WithWorldUp sets the fixed world-up reference. It is used for Up/Down movement and as the
// up hint when the camera basis is rebuilt.
//
// Parameters:
//   - x, y, z: world-up vector components
//
// Returns:
//   - CameraControllerOption: functional option to set world-up
func WithWorldUp(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.worldUp = [3]float32{x, y, z}
	}
}

// WithYaw sets the initial yaw in degrees (-90 faces -Z).
//
// Parameters:
//   - yaw: rotation about world-up in degrees
//
// Returns:
//   - CameraControllerOption: functional option to set the yaw
func WithYaw(yaw float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.yaw = yaw
	}
}

// WithPitch sets the initial pitch in degrees. The value is not clamped.
//
// Parameters:
//   - pitch: elevation in degrees
//
// Returns:
//   - CameraControllerOption: functional option to set the pitch
func WithPitch(pitch float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.pitch = pitch
	}
}

// WithLookAtTarget orients the camera towards a world-space point. Yaw and pitch are derived
// after all options are applied, so the final position is used regardless of option order.
// Overrides WithYaw and WithPitch.
//
// Parameters:
//   - x, y, z: world-space point to face
//
// Returns:
//   - CameraControllerOption: functional option to set the initial facing
func WithLookAtTarget(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.lookAtTarget = &[3]float32{x, y, z}
	}
}

// WithMovementSpeed sets the translation speed.
//
// Parameters:
//   - speed: units per second
//
// Returns:
//   - CameraControllerOption: functional option to set movement speed
func WithMovementSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.movementSpeed = speed
	}
}

// WithMouseSensitivity sets the look sensitivity.
//
// Parameters:
//   - sensitivity: degrees per pixel
//
// Returns:
//   - CameraControllerOption: functional option to set mouse sensitivity
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.mouseSensitivity = sensitivity
	}
}

// WithFov sets the initial field of view in degrees. Clamped to the bounds after all options apply.
//
// Parameters:
//   - fov: field of view in degrees
//
// Returns:
//   - CameraControllerOption: functional option to set the field of view
func WithFov(fov float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.fov = fov
	}
}

// WithFovBounds sets the minimum and maximum field of view reachable through Zoom.
//
// Parameters:
//   - min: minimum field of view in degrees
//   - max: maximum field of view in degrees
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom bounds
func WithFovBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minFov = min
		cc.maxFov = max
	}
}

// WithPitchLimit sets the absolute pitch bound applied by constrained Look calls.
//
// Parameters:
//   - limit: the bound in degrees (default 89)
//
// Returns:
//   - CameraControllerOption: functional option to set the pitch limit
func WithPitchLimit(limit float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.pitchLimit = limit
	}
}
