// Oxy Audio Visualizer
//
// Entry point of the audio-reactive scene driver. It loads the configured
// assets in parallel, builds the interactive objects once everything is
// ready, and runs the tick loop that resolves pointer hover, animates hover
// highlights and moves the camera between free orbit and object focus.
//
// Rendering and audio capture are provided by external collaborators that
// read the scene's objects, uniforms and frequency texture.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/oxy-audioviz/engine"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/animation"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/camera"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/config"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/event"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/focus"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/loader"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/logging"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/scene"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0"
var version = "dev"

// Default configuration file path
const defaultConfigPath = "configs/audioviz.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the components and blocks on the window message loop.
// It must run on the main goroutine.
//
// Parameters:
//   - ctx: cancelled on interrupt signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting oxy-audioviz", "version", version)

	cfg, path, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log = logging.New(cfg.Logging, version)
	log.Info("configuration loaded", "path", path, "objects", len(cfg.Objects), "assets", len(cfg.Assets))

	easing, err := animation.ParseEasing(cfg.Animation.Easing)
	if err != nil {
		return fmt.Errorf("animation easing: %w", err)
	}
	policy, err := loader.ParseFailurePolicy(cfg.Loader.FailurePolicy)
	if err != nil {
		return fmt.Errorf("loader policy: %w", err)
	}

	// Open the window
	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	width, height := win.Width(), win.Height()

	// Camera starts framed for the window orientation
	ctrl := camera.NewCameraController(
		camera.WithPose(startPosition(cfg.Camera, width, height), mgl32.Vec3(cfg.Camera.Target)),
		camera.WithRadiusBounds(cfg.Camera.MinRadius, cfg.Camera.MaxRadius),
		camera.WithOrbitSpeed(cfg.Camera.OrbitSpeed),
		camera.WithMouseSensitivity(cfg.Camera.MouseSensitivity),
		camera.WithZoomSpeed(cfg.Camera.ZoomSpeed),
		camera.WithPanSpeed(cfg.Camera.PanSpeed),
	)
	cam := camera.NewCamera(
		camera.WithController(ctrl),
		camera.WithFovDegrees(cfg.Camera.FovDegrees),
		camera.WithAspect(float32(width)/float32(height)),
		camera.WithClipPlanes(cfg.Camera.Near, cfg.Camera.Far),
	)

	// Asset loading
	bus := event.NewEventBus(event.WithLogger(log))
	ld := loader.NewLoader(
		loader.WithEventBus(bus),
		loader.WithFailurePolicy(policy),
		loader.WithBaseDir(cfg.Loader.BaseDir),
		loader.WithWorkers(cfg.Loader.Workers, cfg.Loader.QueueSize),
		loader.WithLogger(log),
	)
	defer ld.Close()

	ld.OnProgress(func(completed, total int) {
		log.Info("loading", "completed", completed, "total", total)
	})
	ld.OnFailure(func(id string, err error) {
		log.Warn("asset unavailable", "id", id, "error", err)
	})

	// Tweening and camera focus
	sched := animation.NewScheduler(animation.WithLogger(log))
	fsm := focus.NewStateMachine(ctrl, sched,
		focus.WithNavigator(func(link string) {
			log.Info("open link", "url", link)
		}),
		focus.WithDistanceFactor(cfg.Focus.DistanceFactor),
		focus.WithNeutralTarget(mgl32.Vec3(cfg.Focus.NeutralTarget)),
		focus.WithTransition(cfg.Animation.Duration, easing),
		focus.WithLogger(log),
	)

	// Objects are built once every asset has settled
	world := scene.NewScene("world", cam, ld, sched, fsm,
		scene.WithObjects(objectSpecs(cfg)...),
		scene.WithViewport(width, height),
		scene.WithHoverTransition(cfg.Animation.Duration, easing),
		scene.WithHoverThreshold(cfg.Animation.HoverThreshold),
		scene.WithCursorCallback(func(c scene.Cursor) {
			win.SetCursorShape(cursorShape(c))
		}),
		scene.WithLogger(log),
	)
	defer world.Close()

	// Tick loop
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithScene(0, world),
		engine.WithLogger(log),
	)
	setupInput(eng, world, ctrl, log)

	if err := ld.Load(loadRequests(cfg.Assets)); err != nil {
		_ = win.Close()
		return fmt.Errorf("starting asset load: %w", err)
	}

	go func() {
		<-ctx.Done()
		eng.Quit()
	}()

	eng.Run()
	log.Info("shutdown complete")
	return nil
}

// loadConfig reads the file named by OXY_CONFIG, or the default path. A missing default file falls
// back to the built-in scene.
//
// Returns:
//   - *config.Config: the configuration
//   - string: where it came from
//   - error: read, parse or validation failure
func loadConfig() (*config.Config, string, error) {
	path := os.Getenv("OXY_CONFIG")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	cfg, err := config.Load(path)
	if err == nil {
		return cfg, path, nil
	}
	if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, path, err
	}

	cfg, err = config.LoadDefault()
	return cfg, "built-in defaults", err
}
