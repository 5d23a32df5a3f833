package scene

import (
	"github.com/Carmen-Shannon/oxy-motion/engine/animator"
	"github.com/Carmen-Shannon/oxy-motion/engine/bezier"
	"github.com/Carmen-Shannon/oxy-motion/engine/game_object"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is ticked by the engine. Scenes start active.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
// Non-ephemeral objects are persisted in the registry.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.add(obj)
		}
	}
}

// WithPath registers a named shared path.
//
// Parameters:
//   - name: the path name
//   - p: the path
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPath(name string, p *bezier.Path) SceneBuilderOption {
	return func(s *scene) {
		s.addPath(name, p)
	}
}

// WithAnimator sets the wave animator applied to attached chains.
//
// Parameters:
//   - a: the animator
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAnimator(a animator.Animator) SceneBuilderOption {
	return func(s *scene) {
		s.anim = a
	}
}

// WithComputeWorkers sets the number of worker goroutines used to update objects during Tick.
// Defaults to 0, which updates objects inline on the ticking goroutine.
//
// Parameters:
//   - n: the number of workers (0 disables the pool)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 0 {
			n = 0
		}
		s.computeWorkers = n
	}
}

// WithCullingDisabled marks every body and segment visible in frames instead of testing
// them against the camera frustum. By default culling is enabled (disabled = false).
//
// Parameters:
//   - disabled: true to disable frustum tests, false to enable them (default)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCullingDisabled(disabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.cullingDisabled = disabled
	}
}
