package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-audioviz/engine/logging"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/profiler"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/scene"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/window"
)

// engine implements the Engine interface.
// Coordinates the tick goroutine and the window message loop.
type engine struct {
	mu *sync.Mutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)

	scenes map[int]scene.Scene

	logger *logging.Logger
}

// Engine is the main entry point for the visualizer.
// It runs the fixed-rate tick loop that updates every active scene and owns the window message loop.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// ProfilerEnabled reports whether profiling output is on.
	//
	// Returns:
	//   - bool: true if the profiler logs each interval
	ProfilerEnabled() bool

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick, after the scenes have updated.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// AddScene registers a scene at the given key.
	// Active scenes are updated in ascending key order every tick.
	//
	// Parameters:
	//   - key: the order key (lower updates first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given key.
	//
	// Parameters:
	//   - key: the key of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the key of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by order key.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Run starts the tick loop and blocks until the engine quits. With a window it takes over the window's
	// update callback and runs the message loop on the calling goroutine, which must be the main one;
	// closing the window quits the engine and Quit closes the window.
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:               &sync.Mutex{},
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		scenes:           make(map[int]scene.Scene),
		running:          false,
		wg:               sync.WaitGroup{},
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
		logger:           logging.Discard(),
	}

	for _, opt := range options {
		opt(e)
	}

	e.profiler = profiler.NewProfiler(e.logger)

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			e.mu.Lock()
			scenes := make([]scene.Scene, 0, len(e.scenes))
			for _, s := range e.scenes {
				scenes = append(scenes, s)
			}
			e.mu.Unlock()
			for _, s := range scenes {
				resizeScene(s, width, height)
			}
		})
		for _, s := range e.scenes {
			resizeScene(s, e.window.Width(), e.window.Height())
		}
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.handle()
	if e.window == nil {
		e.wg.Wait()
		return
	}

	// GLFW calls must stay on the main thread, so a Quit from another goroutine is noticed here.
	e.window.SetUpdateCallback(func() {
		select {
		case <-e.quitChannel:
			_ = e.window.Close()
		default:
		}
	})
	e.window.ProcessMessages()
	e.signalQuit()
	e.wg.Wait()
	_ = e.window.Close()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
	})
}

// handle launches the tick and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleQuit()
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Each tick updates the active scenes in ascending key order, then fires the tick callback.
// Listens for dynamic rate changes via tickRateChannel and exits when the quit channel is closed.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("tick goroutine recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	e.mu.Lock()
	rate := e.engineTickRate
	e.mu.Unlock()
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.tick(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.mu.Lock()
			e.engineTickRate = newRate
			e.mu.Unlock()
		}
	}
}

// tick runs one engine tick.
func (e *engine) tick(dt float32) {
	e.mu.Lock()
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	active := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	callback := e.tickCallback
	profiling := e.profilingEnabled
	e.mu.Unlock()

	for _, s := range active {
		s.Update(dt)
	}

	if callback != nil {
		callback(dt)
	}

	if profiling {
		e.profiler.Tick()
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) ProfilerEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profilingEnabled
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.mu.Lock()
	running := e.running
	if !running {
		e.engineTickRate = newRate
	}
	e.mu.Unlock()
	if !running {
		return
	}

	// Non-blocking send - if channel is full, replace the pending value
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	e.scenes[key] = s
	e.mu.Unlock()
	if e.window != nil {
		resizeScene(s, e.window.Width(), e.window.Height())
	}
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

// resizeScene points the scene's camera and pointer mapping at the new framebuffer size.
func resizeScene(s scene.Scene, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if c := s.Camera(); c != nil {
		c.SetAspect(float32(width) / float32(height))
	}
	s.SetViewport(width, height)
}
