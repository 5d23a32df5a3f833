package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/bezier"
	"github.com/Carmen-Shannon/oxy-motion/engine/chain"
)

type gameObject struct {
	mu *sync.Mutex

	id        uint64
	name      string
	enabled   atomic.Bool
	ephemeral bool

	follower      bezier.Follower
	attachedChain chain.Chain

	// static pose used while no follower is attached
	position    [3]float32
	orientation [16]float32

	scale          [3]float32
	boundingRadius float32
}

// GameObject defines the interface for a scene entity driven along a path.
// Position and orientation are derived from the attached Follower; without one the object
// keeps a static pose. An attached Chain uses the object's unscaled transform as its base.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's display name.
	//
	// Returns:
	//   - string: the name, possibly empty
	Name() string

	// Enabled returns whether this object is updated and emitted in frames.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Ephemeral returns whether this object is ephemeral.
	// Ephemeral objects are updated by the scene but not persisted in its registry.
	//
	// Returns:
	//   - bool: true if ephemeral
	Ephemeral() bool

	// Follower returns the path follower driving this object, or nil.
	//
	// Returns:
	//   - bezier.Follower: the follower or nil
	Follower() bezier.Follower

	// Chain returns the segment chain attached to this object, or nil.
	//
	// Returns:
	//   - chain.Chain: the chain or nil
	Chain() chain.Chain

	// Position returns the object's current world-space position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Scale returns the object's scale factors.
	//
	// Returns:
	//   - sx, sy, sz: scale components
	Scale() (sx, sy, sz float32)

	// BoundingRadius returns the radius of the object's bounding sphere before scaling.
	//
	// Returns:
	//   - float32: the radius
	BoundingRadius() float32

	// Update advances the follower by dt. Disabled objects and objects without a
	// follower are left unchanged.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Update(dt float32)

	// BaseTransform returns translation * orientation without scale.
	// This is the base transform handed to an attached chain.
	//
	// Returns:
	//   - [16]float32: the transform (column-major)
	BaseTransform() [16]float32

	// ModelMatrix returns translation * orientation * scale.
	//
	// Returns:
	//   - [16]float32: the model matrix (column-major)
	ModelMatrix() [16]float32

	// ChainTransforms returns the world transforms of the attached chain composed on
	// BaseTransform, or nil if no chain is attached.
	//
	// Returns:
	//   - [][16]float32: one transform per segment, root first
	ChainTransforms() [][16]float32

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is updated and emitted.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetFollower attaches a follower. Pass nil to detach and keep the last pose static.
	//
	// Parameters:
	//   - f: the follower or nil
	SetFollower(f bezier.Follower)

	// SetChain attaches a segment chain. Pass nil to detach.
	//
	// Parameters:
	//   - c: the chain or nil
	SetChain(c chain.Chain)

	// SetPosition sets the static position. Ignored while a follower is attached.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// SetScale sets the object's scale factors.
	//
	// Parameters:
	//   - sx, sy, sz: new scale factors
	SetScale(sx, sy, sz float32)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects start enabled with unit scale and a bounding radius of 1.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:             &sync.Mutex{},
		orientation:    common.Identity4(),
		scale:          [3]float32{1, 1, 1},
		boundingRadius: 1,
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Ephemeral() bool {
	return g.ephemeral
}

func (g *gameObject) Follower() bezier.Follower {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.follower
}

func (g *gameObject) Chain() chain.Chain {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.attachedChain
}

func (g *gameObject) Position() (x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.follower != nil {
		p := g.follower.Position()
		return p[0], p[1], p[2]
	}
	return g.position[0], g.position[1], g.position[2]
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale[0], g.scale[1], g.scale[2]
}

func (g *gameObject) BoundingRadius() float32 {
	return g.boundingRadius
}

func (g *gameObject) Update(dt float32) {
	if !g.enabled.Load() {
		return
	}
	g.mu.Lock()
	f := g.follower
	g.mu.Unlock()
	if f != nil {
		f.Advance(dt)
	}
}

func (g *gameObject) BaseTransform() [16]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.baseTransform()
}

// baseTransform reads the pose from the follower or the static fields.
// Caller must hold the mutex.
func (g *gameObject) baseTransform() [16]float32 {
	if g.follower != nil {
		return g.follower.ModelMatrix()
	}
	m := g.orientation
	m[12], m[13], m[14] = g.position[0], g.position[1], g.position[2]
	return m
}

func (g *gameObject) ModelMatrix() [16]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	m := g.baseTransform()
	for col := range 3 {
		for row := range 3 {
			m[col*4+row] *= g.scale[col]
		}
	}
	return m
}

func (g *gameObject) ChainTransforms() [][16]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.attachedChain == nil {
		return nil
	}
	return g.attachedChain.WorldTransforms(g.baseTransform())
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetFollower(f bezier.Follower) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if f == nil && g.follower != nil {
		g.position = g.follower.Position()
		g.orientation = g.follower.Orientation()
	}
	g.follower = f
}

func (g *gameObject) SetChain(c chain.Chain) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.attachedChain = c
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = [3]float32{x, y, z}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = [3]float32{sx, sy, sz}
}
