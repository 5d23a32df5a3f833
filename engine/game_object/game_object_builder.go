package game_object

import (
	"github.com/Carmen-Shannon/oxy-motion/engine/bezier"
	"github.com/Carmen-Shannon/oxy-motion/engine/chain"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the display name of the GameObject.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject is updated and emitted in frames.
//
// Parameters:
//   - enabled: true to update the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithEphemeral marks the GameObject as ephemeral. Ephemeral objects are updated by the
// scene but not kept in its registry.
//
// Parameters:
//   - ephemeral: true to mark as ephemeral
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Ephemeral flag
func WithEphemeral(ephemeral bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.ephemeral = ephemeral
	}
}

// WithFollower attaches the path follower that drives the GameObject.
//
// Parameters:
//   - f: the follower
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the follower
func WithFollower(f bezier.Follower) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.follower = f
	}
}

// WithChain attaches a segment chain rooted at the GameObject.
//
// Parameters:
//   - c: the chain
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the chain
func WithChain(c chain.Chain) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.attachedChain = c
	}
}

// WithPosition sets the static position used while no follower is attached.
//
// Parameters:
//   - x: the x position
//   - y: the y position
//   - z: the z position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the static position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = [3]float32{x, y, z}
	}
}

// WithScale sets the scale of the GameObject.
//
// Parameters:
//   - sx: the x scale factor
//   - sy: the y scale factor
//   - sz: the z scale factor
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = [3]float32{sx, sy, sz}
	}
}

// WithBoundingRadius sets the unscaled bounding sphere radius used for visibility tests.
//
// Parameters:
//   - radius: the radius
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the bounding radius
func WithBoundingRadius(radius float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.boundingRadius = radius
	}
}
