package bezier

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/chewxy/math32"
)

// DefaultLookahead is the parameter offset used to sample the tangent direction.
const DefaultLookahead float32 = 0.01

type followerImpl struct {
	mu *sync.Mutex

	path *Path

	segment   int
	t         float32
	speed     float32
	lookahead float32
	worldUp   [3]float32

	position    [3]float32
	right       [3]float32
	up          [3]float32
	forward     [3]float32
	orientation [16]float32
}

// Follower advances a body along a Path and derives its position and facing.
// Each animated body owns one Follower; followers share their Path read-only.
type Follower interface {
	// Advance moves the follower along the path by Speed * dt in parameter units.
	// When the local parameter reaches 1 it resets to 0 and the segment index advances
	// cyclically. The position is evaluated on the current segment and the orientation is
	// rebuilt from the direction between the position and a lookahead sample
	// (position - lookahead). Degenerate directions keep the previous orientation.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Advance(dt float32)

	// Position returns the position computed by the last update.
	//
	// Returns:
	//   - [3]float32: world-space position
	Position() [3]float32

	// Orientation returns the rotation-only matrix whose columns are right, up and forward.
	//
	// Returns:
	//   - [16]float32: the orientation matrix (column-major)
	Orientation() [16]float32

	// Basis returns the current orientation as separate vectors.
	//
	// Returns:
	//   - right, up, forward: the orthonormal frame
	Basis() (right, up, forward [3]float32)

	// ModelMatrix returns the orientation matrix with the position as its translation.
	//
	// Returns:
	//   - [16]float32: the model matrix (column-major)
	ModelMatrix() [16]float32

	// SegmentIndex returns the index of the curve currently being traversed.
	//
	// Returns:
	//   - int: the segment index in [0, Count)
	SegmentIndex() int

	// Parameter returns the local curve parameter.
	//
	// Returns:
	//   - float32: t in [0, 1)
	Parameter() float32

	// Speed returns the advance rate in parameter units per second.
	//
	// Returns:
	//   - float32: the speed
	Speed() float32

	// SetSpeed sets the advance rate in parameter units per second. Panics if speed is negative.
	//
	// Parameters:
	//   - speed: the new speed (0 holds the follower in place)
	SetSpeed(speed float32)

	// Path returns the shared path this follower traverses.
	//
	// Returns:
	//   - *Path: the path
	Path() *Path
}

var _ Follower = &followerImpl{}

// NewFollower creates a Follower on the given path starting at segment 0, t = 0 with a speed
// of 1 parameter unit per second. The initial pose is computed immediately so Position and
// Orientation are valid before the first Advance.
// Panics if path is nil or has no curves, or if the speed is negative.
//
// Parameters:
//   - path: the shared path to follow
//   - options: functional options to configure the follower
//
// Returns:
//   - Follower: the new follower
func NewFollower(path *Path, options ...FollowerBuilderOption) Follower {
	if path == nil || path.Count() == 0 {
		panic("bezier: follower requires a non-empty path")
	}
	f := &followerImpl{
		mu:          &sync.Mutex{},
		path:        path,
		speed:       1,
		lookahead:   DefaultLookahead,
		worldUp:     [3]float32{0, 1, 0},
		right:       [3]float32{1, 0, 0},
		up:          [3]float32{0, 1, 0},
		forward:     [3]float32{0, 0, 1},
		orientation: common.Identity4(),
	}
	for _, option := range options {
		option(f)
	}
	checkSpeed(f.speed)

	count := path.Count()
	f.segment = ((f.segment % count) + count) % count
	if f.t < 0 || f.t >= 1 {
		f.t = 0
	}
	f.updatePose()
	return f
}

func (f *followerImpl) Advance(dt float32) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.t += f.speed * dt
	if f.t >= 1 {
		f.t = 0
		f.segment = (f.segment + 1) % f.path.Count()
	}
	f.updatePose()
}

// checkSpeed rejects speeds that would move t below 0, where no wrap happens.
func checkSpeed(speed float32) {
	if speed < 0 || math32.IsNaN(speed) {
		panic(fmt.Sprintf("bezier: follower speed must not be negative, got %v", speed))
	}
}

// updatePose evaluates the current segment and rebuilds the orientation.
// Caller must hold the mutex (or be the constructor).
func (f *followerImpl) updatePose() {
	curve := f.path.Curve(f.segment)
	f.position = curve.Evaluate(f.t)
	posNext := curve.Evaluate(min(f.t+f.lookahead, 1))

	right, up, forward, ok := common.BuildBasis(common.Sub3(f.position, posNext), f.worldUp)
	if !ok {
		return
	}
	f.right, f.up, f.forward = right, up, forward
	common.Basis4(f.orientation[:], right, up, forward, [3]float32{})
}

func (f *followerImpl) Position() [3]float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

func (f *followerImpl) Orientation() [16]float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orientation
}

func (f *followerImpl) Basis() (right, up, forward [3]float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.right, f.up, f.forward
}

func (f *followerImpl) ModelMatrix() [16]float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.orientation
	m[12], m[13], m[14] = f.position[0], f.position[1], f.position[2]
	return m
}

func (f *followerImpl) SegmentIndex() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.segment
}

func (f *followerImpl) Parameter() float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *followerImpl) Speed() float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.speed
}

func (f *followerImpl) SetSpeed(speed float32) {
	checkSpeed(speed)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.speed = speed
}

func (f *followerImpl) Path() *Path {
	return f.path
}
