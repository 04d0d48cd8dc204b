package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-audioviz/engine/logging"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/scene"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/window"
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
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Scenes are updated and the tick callback is called at this rate.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithWindow sets the window whose message loop Run drives and whose resizes reach the scenes.
// Without a window the engine runs headless.
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

// WithScene registers a scene at the given key during engine construction.
// Active scenes are updated in ascending key order every tick.
//
// Parameters:
//   - key: the order key (lower updates first)
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithTickCallback registers the function called each tick after the scenes have updated.
//
// Parameters:
//   - callback: function receiving the delta time in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.tickCallback = callback
	}
}

// WithLogger sets the logger used by the engine and its profiler.
//
// Parameters:
//   - logger: the logger to use (nil keeps the discard logger)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *logging.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger.With("component", "engine")
		}
	}
}
