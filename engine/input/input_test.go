package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/camera"
	"github.com/stretchr/testify/assert"
)

const standardTol = 1e-5

func newController() camera.CameraController {
	return camera.NewCameraController(camera.WithMovementSpeed(4))
}

func TestHeldKeysMoveCamera(t *testing.T) {
	tests := []struct {
		name     string
		keys     []uint32
		expected [3]float32
	}{
		{"forward", []uint32{common.KeyW}, [3]float32{0, 0, 1}},
		{"backward", []uint32{common.KeyS}, [3]float32{0, 0, 5}},
		{"left", []uint32{common.KeyA}, [3]float32{-2, 0, 3}},
		{"right", []uint32{common.KeyD}, [3]float32{2, 0, 3}},
		{"up", []uint32{common.KeySpace}, [3]float32{0, 2, 3}},
		{"down ctrl", []uint32{common.KeyLeftControl}, [3]float32{0, -2, 3}},
		{"down alt", []uint32{common.KeyLeftAlt}, [3]float32{0, -2, 3}},
		{"down both keys once", []uint32{common.KeyLeftControl, common.KeyLeftAlt}, [3]float32{0, -2, 3}},
		{"forward and right", []uint32{common.KeyW, common.KeyD}, [3]float32{2, 0, 1}},
		{"opposites cancel", []uint32{common.KeyW, common.KeyS}, [3]float32{0, 0, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInput()
			ctrl := newController()
			for _, k := range tt.keys {
				in.KeyDown(k)
			}
			in.Apply(ctrl, 0.5)

			x, y, z := ctrl.Position()
			assert.InDelta(t, tt.expected[0], x, standardTol)
			assert.InDelta(t, tt.expected[1], y, standardTol)
			assert.InDelta(t, tt.expected[2], z, standardTol)
		})
	}
}

func TestKeyUpStopsMovement(t *testing.T) {
	in := NewInput()
	ctrl := newController()
	in.KeyDown(common.KeyW)
	in.KeyUp(common.KeyW)
	assert.False(t, in.IsKeyDown(common.KeyW))

	in.Apply(ctrl, 1)
	_, _, z := ctrl.Position()
	assert.InDelta(t, 3, z, standardTol)
}

func TestPressedReportsOnce(t *testing.T) {
	in := NewInput()
	in.KeyDown(common.KeyP)
	in.KeyDown(common.KeyP) // key repeat
	assert.True(t, in.Pressed(common.KeyP))
	assert.False(t, in.Pressed(common.KeyP))

	in.KeyUp(common.KeyP)
	in.KeyDown(common.KeyP)
	assert.True(t, in.Pressed(common.KeyP))
}

func TestLeftClickTogglesCapture(t *testing.T) {
	in := NewInput()
	var states []bool
	in.SetCaptureCallback(func(c bool) { states = append(states, c) })

	in.MouseButtonDown(common.MouseButtonRight)
	assert.False(t, in.Captured())

	in.MouseButtonDown(common.MouseButtonLeft)
	assert.True(t, in.Captured())
	in.MouseButtonDown(common.MouseButtonLeft)
	assert.False(t, in.Captured())

	in.SetCaptured(false)
	assert.Equal(t, []bool{true, false}, states)
}

func TestCursorIgnoredUntilCaptured(t *testing.T) {
	in := NewInput()
	in.CursorMoved(10, 10)
	in.CursorMoved(50, 50)
	dx, dy := in.PendingLook()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestCursorAccumulatesWhileCaptured(t *testing.T) {
	in := NewInput()
	in.SetCaptured(true)

	in.CursorMoved(100, 100) // seeds reference
	in.CursorMoved(110, 95)
	in.CursorMoved(130, 90)

	dx, dy := in.PendingLook()
	assert.InDelta(t, 30, dx, standardTol)
	assert.InDelta(t, 10, dy, standardTol, "moving up is a positive pitch offset")
}

func TestApplyDrainsLookAndScroll(t *testing.T) {
	in := NewInput()
	ctrl := newController()
	in.SetCaptured(true)
	in.CursorMoved(0, 0)
	in.CursorMoved(100, -50)
	in.Scrolled(5)
	in.Scrolled(5)

	in.Apply(ctrl, 0.016)
	assert.InDelta(t, -90+100*0.1, ctrl.Yaw(), 1e-4)
	assert.InDelta(t, 50*0.1, ctrl.Pitch(), 1e-4)
	assert.InDelta(t, 35, ctrl.Fov(), standardTol)

	in.Apply(ctrl, 0.016)
	assert.InDelta(t, -80, ctrl.Yaw(), 1e-4, "offsets are drained once")
	assert.InDelta(t, 35, ctrl.Fov(), standardTol)
}

func TestApplyConstrainsPitch(t *testing.T) {
	in := NewInput()
	ctrl := newController()
	in.SetCaptured(true)
	in.CursorMoved(0, 0)
	in.CursorMoved(0, -10000)

	in.Apply(ctrl, 0.016)
	assert.InDelta(t, 89, ctrl.Pitch(), standardTol)
}

func TestApplyNilController(t *testing.T) {
	in := NewInput()
	in.KeyDown(common.KeyW)
	assert.NotPanics(t, func() { in.Apply(nil, 1) })
}
