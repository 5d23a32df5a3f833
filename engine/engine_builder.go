package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-motion/engine/config"
	"github.com/Carmen-Shannon/oxy-motion/engine/input"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
	"github.com/Carmen-Shannon/oxy-motion/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithProfileInterval sets how often profiling stats are logged.
//
// Parameters:
//   - interval: the reporting window (default 1s)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfileInterval(interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profileInterval = interval
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - tps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(tps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickInterval(tps)
	}
}

// WithWindow attaches a window whose events drive the controlled scene's camera.
// Without a window the engine runs headless until Quit.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithInput replaces the engine's input tracker.
//
// Parameters:
//   - in: the tracker
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithInput(in input.Input) EngineBuilderOption {
	return func(e *engine) {
		e.input = in
	}
}

// WithScene registers a scene at the given key during engine construction.
//
// Parameters:
//   - key: ordering key (lower first)
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithFrameLimit sets an optional frame delivery cap in frames per second.
// Pass 0 to uncap the frame loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.frameLimit = frameInterval(fps)
	}
}

// WithFrameCallback sets the consumer of scene snapshots.
//
// Parameters:
//   - callback: function receiving the scene key and its frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameCallback(callback func(key int, f scene.Frame)) EngineBuilderOption {
	return func(e *engine) {
		e.frameCallback = callback
	}
}

// WithEngineConfig applies the tick rate, frame limit and profiling settings of a configuration.
//
// Parameters:
//   - cfg: the engine section of a configuration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithEngineConfig(cfg config.EngineConfig) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickInterval(float64(cfg.TickRate))
		e.frameLimit = frameInterval(float64(cfg.FrameLimit))
		e.profilingEnabled.Store(cfg.Profiling)
		if cfg.ProfileInterval > 0 {
			e.profileInterval = time.Duration(float64(cfg.ProfileInterval) * float64(time.Second))
		}
	}
}
