package animation

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-audioviz/common"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/logging"
)

// TargetRef identifies the property an animation drives. Two animations with the same
// TargetRef cannot run at once: the newer one replaces the older.
type TargetRef string

// UpdateFunc receives the interpolated values on every sampled frame.
// The slice is owned by the scheduler and only valid for the duration of the call.
type UpdateFunc func(values []float32)

// Animation is a single scheduler-owned interpolation.
type Animation struct {
	target   TargetRef
	from     []float32
	to       []float32
	current  []float32
	duration float32
	easing   Easing
	start    float64

	onUpdate   UpdateFunc
	onComplete func()

	done bool
}

// Handle is the caller's view of a scheduled animation.
type Handle struct {
	anim  *Animation
	sched *scheduler
}

// Target returns the TargetRef the animation drives.
func (h Handle) Target() TargetRef {
	if h.anim == nil {
		return ""
	}
	return h.anim.target
}

// Done reports whether the animation finished or was replaced.
func (h Handle) Done() bool {
	if h.anim == nil {
		return true
	}
	h.sched.mu.Lock()
	defer h.sched.mu.Unlock()
	return h.anim.done
}

// From returns a copy of the values the animation started from.
func (h Handle) From() []float32 {
	if h.anim == nil {
		return nil
	}
	return append([]float32(nil), h.anim.from...)
}

// To returns a copy of the destination values.
func (h Handle) To() []float32 {
	if h.anim == nil {
		return nil
	}
	return append([]float32(nil), h.anim.to...)
}

type scheduler struct {
	mu *sync.Mutex

	now    float64
	active []*Animation
	byRef  map[TargetRef]*Animation

	logger *logging.Logger
}

// Scheduler drives time-based interpolation of numeric properties.
// Its clock only advances through Update, so every animation is sampled against the same frame time.
type Scheduler interface {
	// Animate starts interpolating toward to over duration seconds and returns a handle to the new animation.
	// If target already has an animation in flight, that animation is cancelled and the new one starts
	// from its interpolated value at the current clock; from is only used for targets that are idle.
	// A duration <= 0 jumps to the destination on the next Update.
	//
	// Parameters:
	//   - target: the property being animated
	//   - from: start values, used when target is idle
	//   - to: destination values (same length as from)
	//   - duration: length in seconds
	//   - easing: progress curve (nil = Linear)
	//   - onUpdate: called with the interpolated values every sampled frame
	//   - options: per-animation options such as WithOnComplete
	//
	// Returns:
	//   - Handle: the scheduled animation
	Animate(target TargetRef, from, to []float32, duration float32, easing Easing, onUpdate UpdateFunc, options ...AnimationOption) Handle

	// Update advances the clock by deltaTime seconds and samples every active animation.
	// Completed animations are removed after their final update.
	//
	// Parameters:
	//   - deltaTime: elapsed seconds since the previous Update
	Update(deltaTime float32)

	// Active reports whether target has an animation in flight.
	//
	// Parameters:
	//   - target: the property to check
	//
	// Returns:
	//   - bool: true if an animation drives target
	Active(target TargetRef) bool

	// Values returns the current interpolated values of target's animation.
	//
	// Parameters:
	//   - target: the property to query
	//
	// Returns:
	//   - []float32: a copy of the values at the current clock
	//   - bool: false if target is idle
	Values(target TargetRef) ([]float32, bool)

	// Count returns the number of animations in flight.
	Count() int

	// Now returns the scheduler clock in seconds.
	Now() float64
}

var _ Scheduler = &scheduler{}

// NewScheduler creates an empty Scheduler with its clock at zero.
//
// Parameters:
//   - options: functional options to configure the scheduler
//
// Returns:
//   - Scheduler: the new scheduler
func NewScheduler(options ...SchedulerBuilderOption) Scheduler {
	s := &scheduler{
		mu:     &sync.Mutex{},
		byRef:  make(map[TargetRef]*Animation),
		logger: logging.Discard(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scheduler) Animate(target TargetRef, from, to []float32, duration float32, easing Easing, onUpdate UpdateFunc, options ...AnimationOption) Handle {
	if len(from) != len(to) {
		panic("animation: from and to must have the same length")
	}
	if easing == nil {
		easing = Linear
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := append([]float32(nil), from...)
	if prev, ok := s.byRef[target]; ok && !prev.done {
		if len(prev.to) == len(to) {
			copy(start, prev.sample(s.now))
		}
		prev.done = true
		s.remove(prev)
		s.logger.Debug("animation retargeted", "target", target, "from", start)
	}

	a := &Animation{
		target:   target,
		from:     start,
		to:       append([]float32(nil), to...),
		current:  append([]float32(nil), start...),
		duration: duration,
		easing:   easing,
		start:    s.now,
		onUpdate: onUpdate,
	}
	for _, option := range options {
		option(a)
	}

	s.active = append(s.active, a)
	s.byRef[target] = a
	return Handle{anim: a, sched: s}
}

func (s *scheduler) Update(deltaTime float32) {
	s.mu.Lock()
	s.now += float64(deltaTime)
	now := s.now
	snapshot := make([]*Animation, len(s.active))
	copy(snapshot, s.active)
	s.mu.Unlock()

	for _, a := range snapshot {
		s.mu.Lock()
		if a.done {
			// replaced by an earlier callback in this frame
			s.mu.Unlock()
			continue
		}
		values := append([]float32(nil), a.sample(now)...)
		finished := a.progress(now) >= 1
		if finished {
			a.done = true
			s.remove(a)
		}
		s.mu.Unlock()

		if a.onUpdate != nil {
			a.onUpdate(values)
		}
		if finished && a.onComplete != nil {
			a.onComplete()
		}
	}
}

func (s *scheduler) Active(target TargetRef) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byRef[target]
	return ok && !a.done
}

func (s *scheduler) Values(target TargetRef) ([]float32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byRef[target]
	if !ok || a.done {
		return nil, false
	}
	return append([]float32(nil), a.sample(s.now)...), true
}

func (s *scheduler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

func (s *scheduler) Now() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// remove drops a from the active set. Caller must hold the mutex.
func (s *scheduler) remove(a *Animation) {
	for i, other := range s.active {
		if other == a {
			s.active = append(s.active[:i], s.active[i+1:]...)
			break
		}
	}
	if s.byRef[a.target] == a {
		delete(s.byRef, a.target)
	}
}

// progress returns the clamped linear progress at time now.
func (a *Animation) progress(now float64) float32 {
	if a.duration <= 0 {
		return 1
	}
	return common.Clamp01(float32((now - a.start) / float64(a.duration)))
}

// sample interpolates the animation at time now into a.current and returns it.
func (a *Animation) sample(now float64) []float32 {
	common.LerpSlice(a.current, a.from, a.to, a.easing(a.progress(now)))
	return a.current
}
