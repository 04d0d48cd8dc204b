package scene

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-audioviz/common"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/animation"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/camera"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/focus"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/loader"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/logging"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/picking"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene owns the interactive objects and drives picking, hover ramps and camera focus each frame.
//
// Window callbacks only record input through PointerMoved, SetViewport and Click; every state change
// happens inside Update, which the engine calls from its tick goroutine.
type Scene interface {
	// Name returns the name of the scene.
	//
	// Returns:
	//   - string: the name of the scene
	Name() string

	// SetName sets the name of the scene.
	//
	// Parameters:
	//   - name: the new name of the scene
	SetName(name string)

	// Active returns whether the engine ticks this scene.
	//
	// Returns:
	//   - bool: true if the scene is active
	Active() bool

	// SetActive sets whether the engine ticks this scene.
	//
	// Parameters:
	//   - active: true to activate the scene, false to deactivate
	SetActive(active bool)

	// Camera returns the camera attached to the scene.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Ready reports whether the loader finished and the objects were built.
	//
	// Returns:
	//   - bool: true once the scene is populated
	Ready() bool

	// Count returns the number of objects in the scene.
	//
	// Returns:
	//   - int: the number of objects
	Count() int

	// Object returns a copy of the object with the given id.
	//
	// Parameters:
	//   - id: the object id
	//
	// Returns:
	//   - InteractiveObject: the object
	//   - bool: false if no object has that id
	Object(id picking.ObjectID) (InteractiveObject, bool)

	// ObjectByName returns a copy of the first object with the given name.
	//
	// Parameters:
	//   - name: the object name
	//
	// Returns:
	//   - InteractiveObject: the object
	//   - bool: false if no object has that name
	ObjectByName(name string) (InteractiveObject, bool)

	// Objects returns copies of every object in the order they were built.
	//
	// Returns:
	//   - []InteractiveObject: the objects
	Objects() []InteractiveObject

	// Hover returns the hover state computed by the last Update.
	//
	// Returns:
	//   - HoverState: current and previous hovered object
	Hover() HoverState

	// Cursor returns the cursor affordance computed by the last Update.
	//
	// Returns:
	//   - Cursor: pointer while something is hovered, default otherwise
	Cursor() Cursor

	// Focus returns the camera focus state.
	//
	// Returns:
	//   - focus.State: the focus state
	Focus() focus.State

	// FrequencyTexture returns the audio spectrum texture staging data, or an empty value when the scene
	// has no frequency texture.
	//
	// Returns:
	//   - common.TextureStagingData: the last uploaded spectrum
	FrequencyTexture() common.TextureStagingData

	// PointerMoved records the pointer position. It takes effect on the next Update.
	//
	// Parameters:
	//   - x, y: pointer position in window pixels, origin top-left
	PointerMoved(x, y float32)

	// SetViewport records the viewport size used to normalize the pointer.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	SetViewport(width, height int)

	// Click queues a click for the next Update. Clicks before the scene is ready are dropped.
	Click()

	// Update runs one frame: frequency texture, picking, hover ramps, queued clicks, animations,
	// camera and per-object time. It does nothing before the scene is ready.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	Update(deltaTime float32)

	// Close stops listening to the loader.
	Close()
}

type scene struct {
	mu *sync.Mutex

	name   string
	active bool

	cam    camera.Camera
	ld     loader.Loader
	sched  animation.Scheduler
	fsm    focus.StateMachine
	picker picking.PickingEngine

	specs    []ObjectSpec
	registry map[picking.ObjectID]*InteractiveObject
	order    []picking.ObjectID
	nextID   picking.ObjectID
	ready    bool

	pointer       picking.PointerState
	pointerX      float32
	pointerY      float32
	width, height int
	clicks        int

	hover          HoverState
	cursor         Cursor
	cursorCallback func(Cursor)

	freqTex FrequencyTexture

	hoverDuration  float32
	hoverEasing    animation.Easing
	hoverThreshold float32

	unsubscribe func()

	logger *logging.Logger
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a Scene that builds its objects when the loader becomes ready.
// The camera, loader, scheduler and state machine are required and NewScene panics if any is nil.
// The scene ticks the scheduler; it should be the only caller of its Update.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera used for picking, updated every frame
//   - ld: the loader whose ready event populates the scene
//   - sched: the scheduler running hover and camera animations
//   - fsm: the camera focus state machine clicks are forwarded to
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, ld loader.Loader, sched animation.Scheduler, fsm focus.StateMachine, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if ld == nil {
		panic("scene: NewScene requires a non-nil Loader")
	}
	if sched == nil {
		panic("scene: NewScene requires a non-nil Scheduler")
	}
	if fsm == nil {
		panic("scene: NewScene requires a non-nil StateMachine")
	}

	s := &scene{
		mu:             &sync.Mutex{},
		name:           name,
		active:         true,
		cam:            cam,
		ld:             ld,
		sched:          sched,
		fsm:            fsm,
		registry:       make(map[picking.ObjectID]*InteractiveObject),
		nextID:         1,
		hoverDuration:  0.5,
		hoverEasing:    animation.DefaultEasing,
		hoverThreshold: 0.01,
		logger:         logging.Discard(),
	}

	for _, option := range options {
		option(s)
	}

	if s.picker == nil {
		s.picker = picking.NewPickingEngine(picking.WithMaxDistance(cam.Far()))
	}

	s.unsubscribe = ld.OnReady(s.populate)
	// the ready event is not replayed for late subscribers
	if ld.Ready() {
		s.populate()
	}

	return s
}

func (s *scene) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

func (s *scene) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

func (s *scene) Object(id picking.ObjectID) (InteractiveObject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.registry[id]
	if !ok {
		return InteractiveObject{}, false
	}
	return *obj, true
}

func (s *scene) ObjectByName(name string) (InteractiveObject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		if obj := s.registry[id]; obj.Name == name {
			return *obj, true
		}
	}
	return InteractiveObject{}, false
}

func (s *scene) Objects() []InteractiveObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]InteractiveObject, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.registry[id])
	}
	return out
}

func (s *scene) Hover() HoverState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hover
}

func (s *scene) Cursor() Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

func (s *scene) Focus() focus.State {
	return s.fsm.State()
}

func (s *scene) FrequencyTexture() common.TextureStagingData {
	s.mu.Lock()
	ft := s.freqTex
	s.mu.Unlock()
	if ft == nil {
		return common.TextureStagingData{}
	}
	return ft.Texture()
}

func (s *scene) PointerMoved(x, y float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointerX, s.pointerY = x, y
	s.pointer = picking.PointerFromPixels(x, y, s.width, s.height)
}

func (s *scene) SetViewport(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
	s.pointer = picking.PointerFromPixels(s.pointerX, s.pointerY, width, height)
}

func (s *scene) Click() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	s.clicks++
}

func (s *scene) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

func (s *scene) Update(deltaTime float32) {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return
	}
	ft := s.freqTex
	s.mu.Unlock()

	if ft != nil {
		ft.Update()
	}

	s.mu.Lock()
	hovered := s.pick()
	s.hover = HoverState{Current: hovered, Previous: s.hover.Current}
	s.rampHover()

	cursor := CursorDefault
	if hovered != 0 {
		cursor = CursorPointer
	}
	var cursorChanged func(Cursor)
	if cursor != s.cursor {
		s.cursor = cursor
		cursorChanged = s.cursorCallback
	}

	clicks := s.clicks
	s.clicks = 0
	var target *focus.Target
	if obj, ok := s.registry[hovered]; ok && clicks > 0 {
		target = &focus.Target{
			ID:        obj.ID,
			Position:  obj.Position,
			Width:     obj.Width(),
			Focusable: obj.Focusable,
			Link:      obj.Link,
		}
	}
	s.mu.Unlock()

	if cursorChanged != nil {
		cursorChanged(cursor)
	}

	for i := 0; i < clicks; i++ {
		if t := s.fsm.HandleClick(target); t != focus.TransitionNone {
			s.logger.Debug("click", "hovered", hovered, "focus", s.fsm.State())
		}
	}

	// hover callbacks lock the scene, so the scheduler ticks outside the lock
	s.sched.Update(deltaTime)
	s.cam.Update()

	s.mu.Lock()
	for _, id := range s.order {
		obj := s.registry[id]
		obj.Uniforms.Time += deltaTime
		obj.Uniforms.Hover = obj.HoverIntensity
	}
	s.mu.Unlock()
}

// pick resolves the pointer against the registry. Caller must hold the mutex.
func (s *scene) pick() picking.ObjectID {
	pickables := make([]picking.Pickable, 0, len(s.order))
	for _, id := range s.order {
		pickables = append(pickables, s.registry[id])
	}
	id, ok := s.picker.Resolve(s.pointer, s.cam, pickables)
	if !ok {
		return 0
	}
	return id
}

// rampHover starts the hover intensity animations for this frame's hover change. Caller must hold the mutex.
func (s *scene) rampHover() {
	if s.hover.Changed() {
		if prev, ok := s.registry[s.hover.Previous]; ok && prev.Highlight {
			s.animateHover(prev, 0)
		}
		// a running ramp on a newly hovered object can only be heading down
		if cur, ok := s.registry[s.hover.Current]; ok && cur.Highlight &&
			(cur.HoverIntensity < 1-s.hoverThreshold || s.sched.Active(hoverTarget(cur.ID))) {
			s.animateHover(cur, 1)
		}
		return
	}

	// a hovered object that settled near zero without a running ramp is brought back up
	cur, ok := s.registry[s.hover.Current]
	if !ok || !cur.Highlight {
		return
	}
	if cur.HoverIntensity < s.hoverThreshold && !s.sched.Active(hoverTarget(cur.ID)) {
		s.animateHover(cur, 1)
	}
}

// animateHover ramps an object's hover intensity toward value. Caller must hold the mutex.
func (s *scene) animateHover(obj *InteractiveObject, value float32) {
	id := obj.ID
	s.sched.Animate(hoverTarget(id), []float32{obj.HoverIntensity}, []float32{value}, s.hoverDuration, s.hoverEasing,
		func(v []float32) {
			s.setHoverIntensity(id, v[0])
		})
}

func (s *scene) setHoverIntensity(id picking.ObjectID, value float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if obj, ok := s.registry[id]; ok {
		obj.HoverIntensity = common.Clamp01(value)
	}
}

// populate builds the registry from the object specs. It runs once, on the loader's ready event.
func (s *scene) populate() {
	s.mu.Lock()
	if s.ready {
		s.mu.Unlock()
		return
	}

	for _, spec := range s.specs {
		obj := &InteractiveObject{
			Name:      spec.Name,
			Bounds:    common.BoxFromSize(spec.Size[0], spec.Size[1], spec.Size[2]),
			Position:  spec.Position,
			Focusable: spec.Focusable,
			Link:      spec.Link,
			Highlight: spec.Highlight,
			Uniforms: Uniforms{
				AudioStrength: spec.AudioStrength,
				Alpha:         spec.Alpha,
				LineSize:      spec.LineSize,
			},
		}

		if spec.Asset != "" {
			payload, ok := s.ld.Get(spec.Asset)
			if !ok {
				s.logger.Warn("object skipped, asset missing", "object", spec.Name, "asset", spec.Asset)
				continue
			}
			obj.Asset = payload
			if model, ok := payload.(*loader.ModelAsset); ok && spec.Size == (mgl32.Vec3{}) {
				obj.Bounds = model.Bounds
			}
		}

		obj.ID = s.nextID
		s.nextID++
		s.registry[obj.ID] = obj
		s.order = append(s.order, obj.ID)
	}

	s.ready = true
	count := len(s.order)
	s.mu.Unlock()

	s.logger.Info("scene ready", "scene", s.Name(), "objects", count)
}

func hoverTarget(id picking.ObjectID) animation.TargetRef {
	return animation.TargetRef(fmt.Sprintf("hover/%d", id))
}
