package chain

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/chewxy/math32"
)

// noChild marks the tail segment in the child adjacency array.
const noChild = -1

// segment is one rigid link of the chain.
type segment struct {
	offset   [3]float32
	angle    float32
	rotation [16]float32
}

type chainImpl struct {
	mu *sync.Mutex

	// segments is the arena; child[i] is the index of the segment owned by segment i.
	segments []segment
	child    []int

	spacing   float32
	waveAxis  [3]float32
	offsetDir [3]float32
}

// Chain is a singly linked hierarchy of rigid segments animated by a traveling wave.
// Segment 0 is the root; every segment owns at most one child. Each segment has a fixed
// local offset and a local rotation that the wave update rewrites every tick.
type Chain interface {
	// SegmentCount returns the number of segments.
	//
	// Returns:
	//   - int: the segment count (at least 1)
	SegmentCount() int

	// Spacing returns the distance between consecutive segment origins.
	//
	// Returns:
	//   - float32: the spacing
	Spacing() float32

	// Offset returns the local offset of segment i relative to its parent.
	//
	// Parameters:
	//   - i: the segment index
	//
	// Returns:
	//   - [3]float32: the local offset
	Offset(i int) [3]float32

	// Angle returns the wave angle of segment i in radians as set by the last UpdateWave.
	//
	// Parameters:
	//   - i: the segment index
	//
	// Returns:
	//   - float32: the angle in radians
	Angle(i int) float32

	// LocalRotation returns the local rotation matrix of segment i.
	//
	// Parameters:
	//   - i: the segment index
	//
	// Returns:
	//   - [16]float32: the rotation (column-major)
	LocalRotation(i int) [16]float32

	// Child returns the index of the segment owned by segment i, or -1 for the tail.
	//
	// Parameters:
	//   - i: the segment index
	//
	// Returns:
	//   - int: the child index or -1
	Child(i int) int

	// UpdateWave sets every segment's local rotation from a traveling sine wave.
	// For segment i: phase = time*waveSpeed - i*wavelength, angle = sin(phase)*waveAmplitude,
	// and the rotation is angle radians about the wave axis (default +Y).
	// Does nothing when paused.
	//
	// Parameters:
	//   - time: elapsed time in seconds
	//   - waveSpeed: temporal frequency in radians per second
	//   - waveAmplitude: peak angle in radians
	//   - wavelength: phase lag per segment in radians
	//   - paused: skip the update and keep the current rotations
	UpdateWave(time, waveSpeed, waveAmplitude, wavelength float32, paused bool)

	// WorldTransforms composes the world transform of every segment, root first.
	// world_0 = base * T(offset_0) * R_0 and world_i = world_{i-1} * T(offset_i) * R_i.
	// The chain is not modified.
	//
	// Parameters:
	//   - base: the chain's external base transform (column-major)
	//
	// Returns:
	//   - [][16]float32: one world transform per segment
	WorldTransforms(base [16]float32) [][16]float32
}

var _ Chain = &chainImpl{}

// NewChain creates a chain of segmentCount segments. Segment 0 sits at the base; every
// other segment is offset by spacing along the local +Z axis from its parent. All local
// rotations start as identity.
// Panics if segmentCount is less than 1.
//
// Parameters:
//   - segmentCount: the number of segments
//   - spacing: the distance between consecutive segments
//   - options: functional options to configure the chain
//
// Returns:
//   - Chain: the new chain
func NewChain(segmentCount int, spacing float32, options ...ChainBuilderOption) Chain {
	if segmentCount < 1 {
		panic("chain: segment count must be at least 1")
	}
	c := &chainImpl{
		mu:        &sync.Mutex{},
		spacing:   spacing,
		waveAxis:  [3]float32{0, 1, 0},
		offsetDir: [3]float32{0, 0, 1},
	}
	for _, option := range options {
		option(c)
	}

	c.segments = make([]segment, segmentCount)
	c.child = make([]int, segmentCount)
	for i := range c.segments {
		if i > 0 {
			c.segments[i].offset = common.Scale3(c.offsetDir, spacing)
		}
		c.segments[i].rotation = common.Identity4()
		c.child[i] = i + 1
	}
	c.child[segmentCount-1] = noChild
	return c
}

func (c *chainImpl) SegmentCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.segments)
}

func (c *chainImpl) Spacing() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spacing
}

func (c *chainImpl) Offset(i int) [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.segments[i].offset
}

func (c *chainImpl) Angle(i int) float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.segments[i].angle
}

func (c *chainImpl) LocalRotation(i int) [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.segments[i].rotation
}

func (c *chainImpl) Child(i int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.child[i]
}

func (c *chainImpl) UpdateWave(time, waveSpeed, waveAmplitude, wavelength float32, paused bool) {
	if paused {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.segments {
		phase := time*waveSpeed - float32(i)*wavelength
		angle := math32.Sin(phase) * waveAmplitude
		c.segments[i].angle = angle
		common.AxisAngle4(c.segments[i].rotation[:], c.waveAxis, angle)
	}
}

func (c *chainImpl) WorldTransforms(base [16]float32) [][16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([][16]float32, 0, len(c.segments))
	parent := base
	var local, translate [16]float32
	for i := 0; i != noChild; i = c.child[i] {
		s := &c.segments[i]
		common.Translation4(translate[:], s.offset)
		common.Mul4(local[:], translate[:], s.rotation[:])

		var world [16]float32
		common.Mul4(world[:], parent[:], local[:])
		out = append(out, world)
		parent = world
	}
	return out
}
