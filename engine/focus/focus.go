package focus

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-audioviz/engine/animation"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/camera"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/logging"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/picking"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraTarget is the animation target shared by every camera transition, so a new transition
// always retargets the one in flight.
const CameraTarget animation.TargetRef = "camera"

// Mode is the camera mode.
type Mode int

const (
	// ModeFree leaves the camera to the orbit controls.
	ModeFree Mode = iota
	// ModeFocused parks the camera in front of a single object.
	ModeFocused
)

// State is the camera focus state. Target is only meaningful in ModeFocused.
type State struct {
	Mode   Mode
	Target picking.ObjectID
}

func (s State) String() string {
	if s.Mode == ModeFocused {
		return fmt.Sprintf("focused(%d)", s.Target)
	}
	return "free"
}

// Target is the click-time hover resolution handed to HandleClick.
type Target struct {
	ID picking.ObjectID
	// Position is the object's world position, used as the look-at point.
	Position mgl32.Vec3
	// Width is the object's bounding box extent along X.
	Width float32
	// Focusable objects take the camera; the rest navigate to Link.
	Focusable bool
	Link      string
}

// Transition reports what a click did.
type Transition int

const (
	// TransitionNone means the click was ignored.
	TransitionNone Transition = iota
	// TransitionNavigated means a non-focusable object's link was followed.
	TransitionNavigated
	// TransitionFocused means the camera started moving toward an object.
	TransitionFocused
	// TransitionReleased means the camera started returning to its free pose.
	TransitionReleased
)

// Navigator follows a non-focusable object's link.
type Navigator func(link string)

type stateMachine struct {
	mu *sync.Mutex

	ctrl  camera.CameraController
	sched animation.Scheduler

	state            State
	lastFreePosition mgl32.Vec3

	distanceFactor float32
	neutralTarget  mgl32.Vec3
	duration       float32
	easing         animation.Easing
	navigator      Navigator

	logger *logging.Logger
}

// StateMachine owns the camera mode and turns clicks into animated camera transitions.
// The state flips as soon as a transition starts, so a click during an animation reverses it.
type StateMachine interface {
	// State returns the current focus state.
	State() State

	// HandleClick reacts to a click given what was hovered at click time.
	//
	// A non-focusable target follows its link in any mode and leaves the camera alone.
	// In ModeFree, a focusable target records the current camera position, switches to
	// ModeFocused and animates toward the object; no target does nothing.
	// In ModeFocused, any click switches to ModeFree and animates back to the recorded
	// position, looking at the neutral target.
	//
	// Parameters:
	//   - target: the hovered object, or nil when nothing is hovered
	//
	// Returns:
	//   - Transition: what the click did
	HandleClick(target *Target) Transition

	// LastFreePosition returns the camera position recorded on the last Free to Focused transition.
	LastFreePosition() mgl32.Vec3
}

var _ StateMachine = &stateMachine{}

// NewStateMachine creates a StateMachine in ModeFree.
//
// Parameters:
//   - ctrl: the camera controller the transitions drive
//   - sched: the scheduler the transitions run on
//   - options: functional options to configure the state machine
//
// Returns:
//   - StateMachine: the new state machine
func NewStateMachine(ctrl camera.CameraController, sched animation.Scheduler, options ...StateMachineBuilderOption) StateMachine {
	if ctrl == nil {
		panic("focus: camera controller is required")
	}
	if sched == nil {
		panic("focus: scheduler is required")
	}

	px, py, pz := ctrl.Position()
	m := &stateMachine{
		mu:               &sync.Mutex{},
		ctrl:             ctrl,
		sched:            sched,
		lastFreePosition: mgl32.Vec3{px, py, pz},
		distanceFactor:   2.5,
		duration:         0.5,
		easing:           animation.DefaultEasing,
		logger:           logging.Discard(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *stateMachine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *stateMachine) LastFreePosition() mgl32.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastFreePosition
}

func (m *stateMachine) HandleClick(target *Target) Transition {
	if target != nil && !target.Focusable {
		m.mu.Lock()
		nav := m.navigator
		m.mu.Unlock()
		if nav != nil && target.Link != "" {
			nav(target.Link)
		}
		m.logger.Debug("navigate", "object", target.ID, "link", target.Link)
		return TransitionNavigated
	}

	m.mu.Lock()
	if m.state.Mode == ModeFree {
		if target == nil {
			m.mu.Unlock()
			return TransitionNone
		}

		px, py, pz := m.ctrl.Position()
		m.lastFreePosition = mgl32.Vec3{px, py, pz}

		// approach from whichever side of the object the camera is already on
		nz := m.distanceFactor * target.Width
		if pz <= target.Position[2] {
			nz = -nz
		}
		end := target.Position.Add(mgl32.Vec3{0, 0, nz})

		prev := m.state
		m.state = State{Mode: ModeFocused, Target: target.ID}
		m.mu.Unlock()

		m.logger.Debug("camera focus", "from", prev, "to", m.State(), "position", end)
		m.animateTo(end, target.Position)
		return TransitionFocused
	}

	prev := m.state
	m.state = State{Mode: ModeFree}
	dest, look := m.lastFreePosition, m.neutralTarget
	m.mu.Unlock()

	m.logger.Debug("camera release", "from", prev, "position", dest)
	m.animateTo(dest, look)
	return TransitionReleased
}

// animateTo starts the combined position and look-at animation. The scheduler replaces any
// transition already in flight and starts from its current value.
func (m *stateMachine) animateTo(position, look mgl32.Vec3) {
	px, py, pz := m.ctrl.Position()
	tx, ty, tz := m.ctrl.Target()
	from := []float32{px, py, pz, tx, ty, tz}
	to := []float32{position[0], position[1], position[2], look[0], look[1], look[2]}

	ctrl := m.ctrl
	m.sched.Animate(CameraTarget, from, to, m.duration, m.easing, func(v []float32) {
		ctrl.SetPose(v[0], v[1], v[2], v[3], v[4], v[5])
	})
}
