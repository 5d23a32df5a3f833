package chain

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standardTol = 1e-5

func origin(m [16]float32) [3]float32 {
	return [3]float32{m[12], m[13], m[14]}
}

func assertVec3(t *testing.T, expected, actual [3]float32) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, expected[i], actual[i], standardTol, "component %d of %v", i, actual)
	}
}

func TestNewChainLayout(t *testing.T) {
	c := NewChain(4, 0.5)
	require.Equal(t, 4, c.SegmentCount())
	assert.Equal(t, float32(0.5), c.Spacing())

	assert.Equal(t, [3]float32{}, c.Offset(0))
	for i := 1; i < 4; i++ {
		assert.Equal(t, [3]float32{0, 0, 0.5}, c.Offset(i))
	}
	assert.Equal(t, 1, c.Child(0))
	assert.Equal(t, 3, c.Child(2))
	assert.Equal(t, -1, c.Child(3))
	assert.Equal(t, common.Identity4(), c.LocalRotation(2))
}

func TestNewChainPanicsWithoutSegments(t *testing.T) {
	assert.Panics(t, func() { NewChain(0, 1) })
}

func TestWorldTransformsIdentity(t *testing.T) {
	c := NewChain(3, 1)
	world := c.WorldTransforms(common.Identity4())
	require.Len(t, world, 3)
	assertVec3(t, [3]float32{0, 0, 0}, origin(world[0]))
	assertVec3(t, [3]float32{0, 0, 1}, origin(world[1]))
	assertVec3(t, [3]float32{0, 0, 2}, origin(world[2]))
}

func TestWorldTransformsBase(t *testing.T) {
	c := NewChain(3, 1)
	var base [16]float32
	common.AxisAngle4(base[:], [3]float32{0, 1, 0}, math32.Pi/2)
	base[12], base[13], base[14] = 5, 1, 0

	world := c.WorldTransforms(base)
	// local +Z maps to world +X after a quarter turn about Y
	assertVec3(t, [3]float32{5, 1, 0}, origin(world[0]))
	assertVec3(t, [3]float32{6, 1, 0}, origin(world[1]))
	assertVec3(t, [3]float32{7, 1, 0}, origin(world[2]))
}

func TestUpdateWaveAngles(t *testing.T) {
	c := NewChain(5, 1)
	var (
		speed      float32 = 2
		amplitude  float32 = 0.4
		wavelength float32 = 0.7
		now        float32 = 1.3
	)
	c.UpdateWave(now, speed, amplitude, wavelength, false)
	for i := range 5 {
		expected := math32.Sin(now*speed-float32(i)*wavelength) * amplitude
		assert.InDelta(t, expected, c.Angle(i), standardTol)

		var rot [16]float32
		common.AxisAngle4(rot[:], [3]float32{0, 1, 0}, expected)
		assert.Equal(t, rot, c.LocalRotation(i))
	}
}

func TestUpdateWaveBounded(t *testing.T) {
	c := NewChain(12, 1)
	amplitude := float32(0.35)
	for step := range 500 {
		c.UpdateWave(float32(step)*0.037, 3.1, amplitude, 0.45, false)
		for i := range c.SegmentCount() {
			assert.LessOrEqual(t, math32.Abs(c.Angle(i)), amplitude+standardTol)
		}
	}
}

func TestUpdateWavePausedIsNoop(t *testing.T) {
	c := NewChain(4, 1)
	c.UpdateWave(0.8, 2, 0.5, 0.3, false)
	before := c.WorldTransforms(common.Identity4())

	c.UpdateWave(5, 2, 0.5, 0.3, true)
	assert.Equal(t, before, c.WorldTransforms(common.Identity4()))
}

func TestWorldTransformsDeterministicAndDecompose(t *testing.T) {
	c := NewChain(6, 0.8)
	c.UpdateWave(2.2, 1.5, 0.6, 0.5, false)

	var base [16]float32
	common.Translation4(base[:], [3]float32{1, 2, 3})
	first := c.WorldTransforms(base)
	second := c.WorldTransforms(base)
	assert.Equal(t, first, second)

	parent := base
	for i, world := range first {
		var tr, local, expected [16]float32
		common.Translation4(tr[:], c.Offset(i))
		rot := c.LocalRotation(i)
		common.Mul4(local[:], tr[:], rot[:])
		common.Mul4(expected[:], parent[:], local[:])
		for k := range 16 {
			assert.InDelta(t, expected[k], world[k], standardTol)
		}
		parent = world
	}
}

func TestWaveBendsChainSideways(t *testing.T) {
	c := NewChain(2, 1)
	// quarter period: root rotates by the full amplitude
	c.UpdateWave(math32.Pi/2, 1, math32.Pi/2, 0, false)
	world := c.WorldTransforms(common.Identity4())
	// the child offset (0,0,1) is carried by the root rotation onto +X
	assertVec3(t, [3]float32{1, 0, 0}, origin(world[1]))
}

func TestChainOptions(t *testing.T) {
	c := NewChain(3, 2, WithOffsetDirection([3]float32{1, 0, 0}), WithWaveAxis([3]float32{0, 0, 1}))
	assert.Equal(t, [3]float32{2, 0, 0}, c.Offset(2))

	c.UpdateWave(math32.Pi/2, 1, 0.3, 0, false)
	var rot [16]float32
	common.AxisAngle4(rot[:], [3]float32{0, 0, 1}, c.Angle(0))
	assert.Equal(t, rot, c.LocalRotation(0))
}

func TestInstancesMarshal(t *testing.T) {
	c := NewChain(3, 1)
	c.UpdateWave(0.5, 1, 0.2, 0.1, false)
	instances := Instances(c, common.Identity4())
	require.Len(t, instances, 3)
	assert.Equal(t, uint32(2), instances[2].Index)
	assert.Equal(t, c.Angle(1), instances[1].Angle)

	require.Equal(t, 80, instances[0].Size())
	buf := MarshalInstances(instances)
	require.Len(t, buf, 240)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[80+64:]))
	assert.Equal(t, instances[2].Model[14], math.Float32frombits(binary.LittleEndian.Uint32(buf[160+56:])))
	assert.Nil(t, MarshalInstances(nil))
}
