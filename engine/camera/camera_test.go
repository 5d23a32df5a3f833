package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standardTol = 1e-5

func assertVec3(t *testing.T, expected, actual [3]float32, tol float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, expected[i], actual[i], tol, "component %d of %v", i, actual)
	}
}

func upOf(cc CameraController) [3]float32 {
	x, y, z := cc.Up()
	return [3]float32{x, y, z}
}

func positionOf(cc CameraController) [3]float32 {
	x, y, z := cc.Position()
	return [3]float32{x, y, z}
}

func TestDefaultOrientationFacesNegativeZ(t *testing.T) {
	cc := NewCameraController(WithYaw(-90), WithPitch(0))

	assertVec3(t, [3]float32{0, 0, -1}, cc.Front(), standardTol)
	assertVec3(t, [3]float32{1, 0, 0}, cc.Right(), standardTol)
	assertVec3(t, [3]float32{0, 1, 0}, upOf(cc), standardTol)
	assertVec3(t, [3]float32{0, 0, 3}, positionOf(cc), 0)
	assert.Equal(t, float32(45), cc.Fov())
}

func TestLookKeepsBasisOrthonormal(t *testing.T) {
	cc := NewCameraController()
	for step := range 200 {
		dx := float32(step%17) * 13.7
		dy := float32(step%11-5) * 9.3
		cc.Look(dx, dy, true)

		front, right, up := cc.Front(), cc.Right(), upOf(cc)
		assert.InDelta(t, 1, common.Length3(front), standardTol)
		assert.InDelta(t, 1, common.Length3(right), standardTol)
		assert.InDelta(t, 1, common.Length3(up), standardTol)
		assert.InDelta(t, 0, common.Dot3(front, right), standardTol)
		assert.InDelta(t, 0, common.Dot3(front, up), standardTol)
		assert.InDelta(t, 0, common.Dot3(right, up), standardTol)
		// camera looks down its local -Z
		assertVec3(t, common.Scale3(front, -1), common.Cross3(right, up), 1e-4)
	}
}

func TestLookClampsPitch(t *testing.T) {
	cc := NewCameraController(WithMouseSensitivity(1))

	deltas := []float32{500, 30, -2000, 1, 1, 88, 400, -12}
	for _, dy := range deltas {
		cc.Look(0, dy, true)
		assert.LessOrEqual(t, cc.Pitch(), float32(89))
		assert.GreaterOrEqual(t, cc.Pitch(), float32(-89))
	}

	cc.Look(0, 1000, true)
	assert.Equal(t, float32(89), cc.Pitch())
	cc.Look(0, -1000, true)
	assert.Equal(t, float32(-89), cc.Pitch())
}

func TestLookUnconstrainedKeepsUsableBasis(t *testing.T) {
	cc := NewCameraController(WithMouseSensitivity(1))
	cc.Look(0, 90, false)
	assert.Equal(t, float32(90), cc.Pitch())

	// looking straight up keeps the previous right vector
	assertVec3(t, [3]float32{1, 0, 0}, cc.Right(), standardTol)
	assert.InDelta(t, 0, common.Dot3(cc.Front(), upOf(cc)), standardTol)
}

func TestZoomClampsFov(t *testing.T) {
	cc := NewCameraController()
	for _, delta := range []float32{10, 10, 30, 5, -200, 17, 400, -3} {
		cc.Zoom(delta)
		assert.GreaterOrEqual(t, cc.Fov(), float32(1))
		assert.LessOrEqual(t, cc.Fov(), float32(90))
	}

	cc.Zoom(1000)
	assert.Equal(t, float32(1), cc.Fov())
	cc.Zoom(-1000)
	assert.Equal(t, float32(90), cc.Fov())

	narrow := NewCameraController(WithFovBounds(20, 60), WithFov(100))
	assert.Equal(t, float32(60), narrow.Fov())
}

func TestMove(t *testing.T) {
	tests := []struct {
		name      string
		direction Movement
		expected  [3]float32
	}{
		{"forward", MovementForward, [3]float32{0, 0, 1}},
		{"backward", MovementBackward, [3]float32{0, 0, 5}},
		{"left", MovementLeft, [3]float32{-2, 0, 3}},
		{"right", MovementRight, [3]float32{2, 0, 3}},
		{"up", MovementUp, [3]float32{0, 2, 3}},
		{"down", MovementDown, [3]float32{0, -2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := NewCameraController(WithMovementSpeed(4))
			cc.Move(tt.direction, 0.5)
			assertVec3(t, tt.expected, positionOf(cc), standardTol)
		})
	}
}

func TestMoveVerticalIgnoresPitch(t *testing.T) {
	cc := NewCameraController(WithPitch(45), WithPosition(0, 0, 0))
	cc.Move(MovementUp, 1)
	assertVec3(t, [3]float32{0, 2.5, 0}, positionOf(cc), standardTol)

	cc.Move(MovementForward, 1)
	pos := positionOf(cc)
	assert.Greater(t, pos[1], float32(2.5))
}

func TestWithLookAtTarget(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 0, 3), WithLookAtTarget(0, 0, 0))
	assert.InDelta(t, -90, cc.Yaw(), 1e-4)
	assert.InDelta(t, 0, cc.Pitch(), 1e-4)
	assertVec3(t, [3]float32{0, 0, -1}, cc.Front(), standardTol)

	// option order does not matter
	cc = NewCameraController(WithLookAtTarget(5, 5, 0), WithPosition(0, 0, 0))
	expected, _ := common.Normalize3([3]float32{1, 1, 0})
	assertVec3(t, expected, cc.Front(), 1e-4)
	assert.InDelta(t, 45, cc.Pitch(), 1e-3)
	assert.InDelta(t, 0, cc.Yaw(), 1e-3)
}

func TestSetOrientationClampsPitch(t *testing.T) {
	cc := NewCameraController(WithPitchLimit(60))
	cc.SetOrientation(0, 75)
	assert.Equal(t, float32(60), cc.Pitch())
	assert.Equal(t, float32(0), cc.Yaw())
	assert.InDelta(t, 0.5, cc.Front()[0], standardTol)
}

func TestViewMatrixIsPure(t *testing.T) {
	cc := NewCameraController()
	cc.Look(37, -12, true)
	first := cc.ViewMatrix()
	second := cc.ViewMatrix()
	assert.Equal(t, first, second)

	// the camera position lands on the view-space origin
	origin := common.TransformPoint4(first[:], positionOf(cc))
	assertVec3(t, [3]float32{}, origin, 1e-4)

	// one unit along front lands on view-space -Z
	x, y, z := cc.Target()
	ahead := common.TransformPoint4(first[:], [3]float32{x, y, z})
	assertVec3(t, [3]float32{0, 0, -1}, ahead, 1e-4)
}

func TestCameraMatricesFollowController(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 0, 0))
	cam := NewCamera(WithController(cc), WithAspect(16.0/9.0), WithNear(0.5), WithFar(50))

	assert.Equal(t, float32(45), cam.Fov())
	assert.Equal(t, float32(0.5), cam.Near())
	assert.Equal(t, float32(50), cam.Far())
	assert.Equal(t, cc.ViewMatrix(), cam.ViewMatrix())

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	var vp [16]float32
	common.Mul4(vp[:], proj[:], view[:])
	assert.Equal(t, vp, cam.ViewProjectionMatrix())

	frustum := cam.Frustum()
	assert.True(t, frustum.ContainsSphere([3]float32{0, 0, -10}, 1))
	assert.False(t, frustum.ContainsSphere([3]float32{0, 0, 10}, 1))

	cc.Zoom(15)
	cc.Move(MovementRight, 1)
	cam.Update()
	assert.Equal(t, float32(30), cam.Fov())
	assert.Equal(t, cc.ViewMatrix(), cam.ViewMatrix())

	var prod [16]float32
	proj = cam.ProjectionMatrix()
	inv := cam.InverseProjectionMatrix()
	common.Mul4(prod[:], proj[:], inv[:])
	id := common.Identity4()
	for i := range 16 {
		assert.InDelta(t, id[i], prod[i], 1e-4)
	}
}

func TestCameraStateLagsControllerUntilUpdate(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 0, 5), WithMovementSpeed(1))
	cam := NewCamera(WithController(cc))
	before := cam.State()

	cc.Move(MovementUp, 1)
	cc.Zoom(15)
	assert.Equal(t, before, cam.State(), "controller changes wait for Update")
	assert.Equal(t, [3]float32{0, 0, 5}, before.Position)
	assert.Equal(t, float32(45), before.Fov)

	cam.Update()
	after := cam.State()
	assert.Equal(t, [3]float32{0, 1, 5}, after.Position)
	assert.Equal(t, float32(30), after.Fov)
	assert.Equal(t, cam.ViewMatrix(), after.View)
	assert.Equal(t, cam.ProjectionMatrix(), after.Projection)
	assert.Equal(t, cam.ViewProjectionMatrix(), after.ViewProjection)
	assert.Equal(t, cam.Frustum(), after.Frustum)
	assert.Equal(t, after.Position, cam.Uniform().CameraPosition)
}

func TestCameraWithoutController(t *testing.T) {
	cam := NewCamera()
	assert.Nil(t, cam.Controller())
	assert.Equal(t, defaultFov, cam.Fov())
	assert.Equal(t, common.Identity4(), cam.ViewMatrix())
	cam.Update()
	assert.Equal(t, common.Identity4(), cam.ViewMatrix())
}

func TestCameraUniformMarshal(t *testing.T) {
	cc := NewCameraController(WithPosition(1, 2, 3))
	cam := NewCamera(WithController(cc))

	u := cam.Uniform()
	assert.Equal(t, [3]float32{1, 2, 3}, u.CameraPosition)
	require.Equal(t, 80, u.Size())

	buf := u.Marshal()
	require.Len(t, buf, 80)
	vp := cam.ViewProjectionMatrix()
	assert.Equal(t, vp[5], math.Float32frombits(binary.LittleEndian.Uint32(buf[20:])))
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[68:])))
}

func TestMovementString(t *testing.T) {
	assert.Equal(t, "forward", MovementForward.String())
	assert.Equal(t, "down", MovementDown.String())
}
