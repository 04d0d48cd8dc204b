package scene

import (
	"github.com/Carmen-Shannon/oxy-audioviz/engine/animation"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/logging"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/picking"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the engine ticks the scene. Scenes start active.
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

// WithObjects adds object specs to build once the loader is ready.
// Objects get ids in the order given, starting at 1.
//
// Parameters:
//   - specs: the objects to build
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(specs ...ObjectSpec) SceneBuilderOption {
	return func(s *scene) {
		s.specs = append(s.specs, specs...)
	}
}

// WithFrequencyTexture sets the audio spectrum texture refreshed at the start of every frame.
//
// Parameters:
//   - ft: the frequency texture
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFrequencyTexture(ft FrequencyTexture) SceneBuilderOption {
	return func(s *scene) {
		s.freqTex = ft
	}
}

// WithCursorCallback registers the function told about cursor affordance changes.
// It runs on the goroutine calling Update.
//
// Parameters:
//   - cb: receives the new cursor
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCursorCallback(cb func(Cursor)) SceneBuilderOption {
	return func(s *scene) {
		s.cursorCallback = cb
	}
}

// WithHoverTransition sets the duration and easing of hover intensity ramps. Default 0.5s slow-mo.
//
// Parameters:
//   - duration: ramp length in seconds
//   - easing: progress curve (nil keeps the default)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithHoverTransition(duration float32, easing animation.Easing) SceneBuilderOption {
	return func(s *scene) {
		s.hoverDuration = duration
		if easing != nil {
			s.hoverEasing = easing
		}
	}
}

// WithHoverThreshold sets how close to 0 or 1 an intensity counts as settled. Default 0.01.
//
// Parameters:
//   - threshold: the near-zero threshold
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithHoverThreshold(threshold float32) SceneBuilderOption {
	return func(s *scene) {
		if threshold > 0 {
			s.hoverThreshold = threshold
		}
	}
}

// WithPickingEngine replaces the default picking engine, which ignores hits beyond the camera's far plane.
//
// Parameters:
//   - p: the picking engine
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPickingEngine(p picking.PickingEngine) SceneBuilderOption {
	return func(s *scene) {
		s.picker = p
	}
}

// WithViewport sets the initial viewport size used to normalize the pointer.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithViewport(width, height int) SceneBuilderOption {
	return func(s *scene) {
		s.width, s.height = width, height
	}
}

// WithLogger sets the scene's logger.
//
// Parameters:
//   - logger: the logger to use (nil keeps the discard logger)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger *logging.Logger) SceneBuilderOption {
	return func(s *scene) {
		if logger != nil {
			s.logger = logger.With("component", "scene")
		}
	}
}
