package main

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-audioviz/common"
	"github.com/Carmen-Shannon/oxy-audioviz/engine"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/camera"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/config"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/loader"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/logging"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/scene"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera distance used when no start position is configured.
const (
	landscapeDistance = 20
	portraitDistance  = 50
)

// startPosition returns the configured camera position, or one that frames the scene for the
// window's orientation: narrow windows need the camera further back.
//
// Parameters:
//   - cfg: camera configuration
//   - width, height: framebuffer size in pixels
//
// Returns:
//   - mgl32.Vec3: the camera start position
func startPosition(cfg config.CameraConfig, width, height int) mgl32.Vec3 {
	if cfg.Position != nil {
		return mgl32.Vec3(*cfg.Position)
	}
	if width >= height {
		return mgl32.Vec3{0, 0, landscapeDistance}
	}
	return mgl32.Vec3{0, 0, portraitDistance}
}

// loadRequests turns the asset list into loader requests, keyed by asset name.
func loadRequests(assets []config.AssetConfig) []loader.LoadRequest {
	reqs := make([]loader.LoadRequest, 0, len(assets))
	for _, a := range assets {
		reqs = append(reqs, loader.LoadRequest{
			ID:      a.Name,
			Kind:    loader.Kind(a.Type),
			Locator: loader.Locator(a.Path),
		})
	}
	return reqs
}

// objectSpecs turns the object list into scene specs. Objects that neither take focus nor carry
// their own link point at the current song.
func objectSpecs(cfg *config.Config) []scene.ObjectSpec {
	specs := make([]scene.ObjectSpec, 0, len(cfg.Objects))
	for _, o := range cfg.Objects {
		link := o.Link
		if !o.Focusable {
			link = common.Coalesce(o.Link, cfg.Song.URL)
		}
		specs = append(specs, scene.ObjectSpec{
			Name:          o.Name,
			Asset:         o.Asset,
			Position:      mgl32.Vec3(o.Position),
			Size:          mgl32.Vec3(o.Size),
			Focusable:     o.Focusable,
			Link:          link,
			Highlight:     o.Highlighted(),
			AudioStrength: o.AudioStrength,
			Alpha:         o.Alpha,
			LineSize:      o.LineSize,
		})
	}
	return specs
}

func cursorShape(c scene.Cursor) window.CursorShape {
	if c == scene.CursorPointer {
		return window.CursorHand
	}
	return window.CursorArrow
}

// keyState tracks held keys. Window callbacks write it on the main goroutine, the tick reads it.
type keyState struct {
	mu   sync.Mutex
	down map[uint32]bool
}

func (k *keyState) set(code uint32, down bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.down[code] = down
}

func (k *keyState) held(code uint32) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.down[code]
}

// setupInput wires pointer picking and clicks into the scene, middle-mouse orbit, scroll zoom,
// arrow-key orbit and WASD pan. P toggles the profiler, Space pauses the scene.
//
// Parameters:
//   - eng: the engine instance providing window callbacks and tick
//   - world: the scene receiving pointer and click input
//   - ctrl: the camera controller driven by orbit and zoom
//   - log: logger for toggles
func setupInput(eng engine.Engine, world scene.Scene, ctrl camera.CameraController, log *logging.Logger) {
	win := eng.Window()
	keys := &keyState{down: make(map[uint32]bool)}

	win.SetKeyDownCallback(func(keyCode uint32) {
		keys.set(keyCode, true)
		switch keyCode {
		case common.KeyP:
			if eng.ProfilerEnabled() {
				eng.DisableProfiler()
			} else {
				eng.EnableProfiler()
			}
		case common.KeySpace:
			world.SetActive(!world.Active())
			log.Info("scene toggled", "active", world.Active())
		}
	})

	win.SetKeyUpCallback(func(keyCode uint32) {
		keys.set(keyCode, false)
	})

	var dragging bool
	var lastX, lastY float32

	win.SetMiddleMouseDownCallback(func(x, y float32) {
		dragging = true
		lastX, lastY = x, y
	})

	win.SetMiddleMouseUpCallback(func(_, _ float32) {
		dragging = false
	})

	win.SetMouseMoveCallback(func(x, y float32) {
		world.PointerMoved(x, y)
		if !dragging {
			return
		}
		ctrl.OrbitDelta(x-lastX, y-lastY)
		lastX, lastY = x, y
	})

	win.SetLeftClickCallback(func(_, _ float32) {
		world.Click()
	})

	win.SetScrollCallback(func(delta float32) {
		ctrl.Zoom(delta)
	})

	eng.SetTickCallback(func(_ float32) {
		if keys.held(common.KeyLeft) {
			ctrl.OrbitLeft()
		}
		if keys.held(common.KeyRight) {
			ctrl.OrbitRight()
		}
		if keys.held(common.KeyUp) {
			ctrl.OrbitUp()
		}
		if keys.held(common.KeyDown) {
			ctrl.OrbitDown()
		}
		if keys.held(common.KeyD) {
			ctrl.PanRight(1)
		}
		if keys.held(common.KeyA) {
			ctrl.PanRight(-1)
		}
		if keys.held(common.KeyW) {
			ctrl.PanUp(1)
		}
		if keys.held(common.KeyS) {
			ctrl.PanUp(-1)
		}
	})
}
