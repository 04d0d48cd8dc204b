package focus

import (
	"github.com/Carmen-Shannon/oxy-audioviz/engine/animation"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/logging"
	"github.com/go-gl/mathgl/mgl32"
)

// StateMachineBuilderOption is a functional option for configuring a StateMachine via NewStateMachine.
type StateMachineBuilderOption func(*stateMachine)

// WithNavigator sets the action taken when a non-focusable object with a link is clicked.
//
// Parameters:
//   - nav: the navigation callback
//
// Returns:
//   - StateMachineBuilderOption: a function that sets the navigator
func WithNavigator(nav Navigator) StateMachineBuilderOption {
	return func(m *stateMachine) {
		m.navigator = nav
	}
}

// WithDistanceFactor sets how many object widths the focused camera keeps from the object. Default 2.5.
//
// Parameters:
//   - factor: multiple of the object's width
//
// Returns:
//   - StateMachineBuilderOption: a function that sets the factor
func WithDistanceFactor(factor float32) StateMachineBuilderOption {
	return func(m *stateMachine) {
		if factor > 0 {
			m.distanceFactor = factor
		}
	}
}

// WithNeutralTarget sets the look-at point restored when the camera returns to ModeFree. Default origin.
//
// Parameters:
//   - target: world-space look-at point
//
// Returns:
//   - StateMachineBuilderOption: a function that sets the neutral target
func WithNeutralTarget(target mgl32.Vec3) StateMachineBuilderOption {
	return func(m *stateMachine) {
		m.neutralTarget = target
	}
}

// WithTransition sets the duration and easing of camera transitions. Default 0.5s slow-mo.
//
// Parameters:
//   - duration: transition length in seconds
//   - easing: progress curve (nil keeps the default)
//
// Returns:
//   - StateMachineBuilderOption: a function that sets the transition timing
func WithTransition(duration float32, easing animation.Easing) StateMachineBuilderOption {
	return func(m *stateMachine) {
		m.duration = duration
		if easing != nil {
			m.easing = easing
		}
	}
}

// WithLogger sets the logger used to trace transitions.
//
// Parameters:
//   - logger: the logger to use (nil keeps the discard logger)
//
// Returns:
//   - StateMachineBuilderOption: a function that applies the logger option
func WithLogger(logger *logging.Logger) StateMachineBuilderOption {
	return func(m *stateMachine) {
		if logger != nil {
			m.logger = logger.With("component", "focus")
		}
	}
}
