package animation

import "github.com/Carmen-Shannon/oxy-audioviz/engine/logging"

// SchedulerBuilderOption is a functional option for configuring a Scheduler via NewScheduler.
type SchedulerBuilderOption func(*scheduler)

// WithLogger sets the logger used to trace retargets.
//
// Parameters:
//   - logger: the logger to use (nil keeps the discard logger)
//
// Returns:
//   - SchedulerBuilderOption: a function that applies the logger option to a scheduler
func WithLogger(logger *logging.Logger) SchedulerBuilderOption {
	return func(s *scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStartTime sets the initial value of the scheduler clock.
//
// Parameters:
//   - seconds: the starting clock value
//
// Returns:
//   - SchedulerBuilderOption: a function that sets the clock
func WithStartTime(seconds float64) SchedulerBuilderOption {
	return func(s *scheduler) {
		s.now = seconds
	}
}

// AnimationOption configures a single animation passed to Animate.
type AnimationOption func(*Animation)

// WithOnComplete registers a callback fired once, right after the final update of an animation
// that ran to completion. Replaced animations never complete.
//
// Parameters:
//   - fn: the completion callback
//
// Returns:
//   - AnimationOption: option function to apply
func WithOnComplete(fn func()) AnimationOption {
	return func(a *Animation) {
		a.onComplete = fn
	}
}
