package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/chewxy/math32"
)

// cameraControllerImpl is the single implementation of CameraController.
// Position and yaw/pitch are the only integrated state; front, right and up are always
// derived from yaw, pitch and worldUp.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position [3]float32
	worldUp  [3]float32

	// Euler angles in degrees
	yaw   float32
	pitch float32

	// Derived basis
	front [3]float32
	right [3]float32
	up    [3]float32

	movementSpeed    float32
	mouseSensitivity float32

	fov        float32
	minFov     float32
	maxFov     float32
	pitchLimit float32

	// lookAtTarget is resolved into yaw/pitch once all options are applied.
	lookAtTarget *[3]float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new free-fly camera controller.
// Defaults place the camera at (0, 0, 3) facing -Z (yaw -90, pitch 0) with world-up +Y,
// a movement speed of 2.5 units/s, a sensitivity of 0.1 degrees per pixel and a 45 degree
// field of view clamped to [1, 90].
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:       &sync.Mutex{},
		position: [3]float32{0, 0, 3},
		worldUp:  [3]float32{0, 1, 0},

		yaw:   -90,
		pitch: 0,

		// seed so the degenerate fallback in updateVectors always has a valid frame
		right: [3]float32{1, 0, 0},
		up:    [3]float32{0, 1, 0},

		movementSpeed:    2.5,
		mouseSensitivity: 0.1,

		fov:        45,
		minFov:     1,
		maxFov:     90,
		pitchLimit: 89,
	}

	for _, option := range options {
		option(cc)
	}

	if cc.lookAtTarget != nil {
		cc.orientTowards(*cc.lookAtTarget)
		cc.lookAtTarget = nil
	}
	cc.fov = common.Clamp(cc.fov, cc.minFov, cc.maxFov)
	cc.updateVectors()
	return cc
}

// --- internal helpers ---

// orientTowards derives yaw and pitch so that the camera faces target.
// Leaves the orientation untouched if target coincides with the position.
// Caller must hold the mutex (or be the constructor).
func (cc *cameraControllerImpl) orientTowards(target [3]float32) {
	dir, ok := common.Normalize3(common.Sub3(target, cc.position))
	if !ok {
		return
	}
	cc.pitch = common.Clamp(common.Degrees(math32.Asin(dir[1])), -cc.pitchLimit, cc.pitchLimit)
	cc.yaw = common.Degrees(math32.Atan2(dir[2], dir[0]))
}

// updateVectors recomputes front from yaw/pitch and then right/up from front and worldUp.
// The camera looks down its local -Z, so the basis is built from the backward direction;
// this yields right = cross(front, worldUp) and up = cross(right, front).
// If front is parallel to worldUp (only reachable with unconstrained pitch) the previous
// right vector is kept and up is rebuilt from it.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updateVectors() {
	yaw := common.Radians(cc.yaw)
	pitch := common.Radians(cc.pitch)

	front := [3]float32{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}
	front, ok := common.Normalize3(front)
	if !ok {
		return
	}
	cc.front = front

	right, up, _, ok := common.BuildBasis(common.Scale3(front, -1), cc.worldUp)
	if ok {
		cc.right = right
		cc.up = up
		return
	}
	if up, ok := common.Normalize3(common.Cross3(cc.right, front)); ok {
		cc.up = up
	}
}

// --- CameraController shared methods ---

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *cameraControllerImpl) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = [3]float32{x, y, z}
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	t := common.Add3(cc.position, cc.front)
	return t[0], t[1], t[2]
}

func (cc *cameraControllerImpl) Up() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.up[0], cc.up[1], cc.up[2]
}

func (cc *cameraControllerImpl) Fov() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.fov
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.fov = common.Clamp(cc.fov-delta, cc.minFov, cc.maxFov)
}

func (cc *cameraControllerImpl) ViewMatrix() [16]float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	var view [16]float32
	common.LookAt(view[:], cc.position, common.Add3(cc.position, cc.front), cc.up)
	return view
}

// --- freeFlyCameraController implementation ---

func (cc *cameraControllerImpl) Move(direction Movement, dt float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	velocity := cc.movementSpeed * dt
	switch direction {
	case MovementForward:
		cc.position = common.Add3(cc.position, common.Scale3(cc.front, velocity))
	case MovementBackward:
		cc.position = common.Sub3(cc.position, common.Scale3(cc.front, velocity))
	case MovementLeft:
		cc.position = common.Sub3(cc.position, common.Scale3(cc.right, velocity))
	case MovementRight:
		cc.position = common.Add3(cc.position, common.Scale3(cc.right, velocity))
	case MovementUp:
		cc.position = common.Add3(cc.position, common.Scale3(cc.worldUp, velocity))
	case MovementDown:
		cc.position = common.Sub3(cc.position, common.Scale3(cc.worldUp, velocity))
	}
}

func (cc *cameraControllerImpl) Look(dx, dy float32, constrainPitch bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	cc.yaw += dx * cc.mouseSensitivity
	cc.pitch += dy * cc.mouseSensitivity
	if constrainPitch {
		cc.pitch = common.Clamp(cc.pitch, -cc.pitchLimit, cc.pitchLimit)
	}
	cc.updateVectors()
}

func (cc *cameraControllerImpl) Yaw() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.yaw
}

func (cc *cameraControllerImpl) Pitch() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.pitch
}

func (cc *cameraControllerImpl) SetOrientation(yaw, pitch float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.yaw = yaw
	cc.pitch = common.Clamp(pitch, -cc.pitchLimit, cc.pitchLimit)
	cc.updateVectors()
}

func (cc *cameraControllerImpl) Front() [3]float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.front
}

func (cc *cameraControllerImpl) Right() [3]float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.right
}

func (cc *cameraControllerImpl) WorldUp() [3]float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.worldUp
}

func (cc *cameraControllerImpl) MovementSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.movementSpeed
}

func (cc *cameraControllerImpl) MouseSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mouseSensitivity
}

func (cc *cameraControllerImpl) FovBounds() (min, max float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minFov, cc.maxFov
}

func (cc *cameraControllerImpl) PitchLimit() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.pitchLimit
}
