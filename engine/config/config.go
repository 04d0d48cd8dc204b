package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the visualizer.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Engine    EngineConfig    `yaml:"engine"`
	Camera    CameraConfig    `yaml:"camera"`
	Animation AnimationConfig `yaml:"animation"`
	Focus     FocusConfig     `yaml:"focus"`
	Loader    LoaderConfig    `yaml:"loader"`
	Logging   LoggingConfig   `yaml:"logging"`
	Song      SongConfig      `yaml:"song"`
	Assets    []AssetConfig   `yaml:"assets"`
	Objects   []ObjectConfig  `yaml:"objects"`
}

// WindowConfig contains the platform window settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// EngineConfig contains tick loop settings.
type EngineConfig struct {
	TickRate  float64 `yaml:"tick_rate"`
	Profiling bool    `yaml:"profiling"`
}

// CameraConfig contains the perspective camera and orbit settings.
// When Position is unset the start pose is derived from the window orientation.
type CameraConfig struct {
	FovDegrees float32     `yaml:"fov_degrees"`
	Near       float32     `yaml:"near"`
	Far        float32     `yaml:"far"`
	Position   *[3]float32 `yaml:"position"`
	Target     [3]float32  `yaml:"target"`
	MinRadius  float32     `yaml:"min_radius"`
	MaxRadius  float32     `yaml:"max_radius"`

	// Input speeds: radians per held-key tick, radians per dragged pixel, units per scroll step
	// and units per held-key tick.
	OrbitSpeed       float32 `yaml:"orbit_speed"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
	ZoomSpeed        float32 `yaml:"zoom_speed"`
	PanSpeed         float32 `yaml:"pan_speed"`
}

// AnimationConfig contains the shared duration/easing of camera and hover transitions.
type AnimationConfig struct {
	// Duration is in seconds.
	Duration float32 `yaml:"duration"`
	Easing   string  `yaml:"easing"`
	// HoverThreshold is the near-zero intensity below which a hovered object restarts its ramp.
	HoverThreshold float32 `yaml:"hover_threshold"`
}

// FocusConfig contains the camera focus settings.
type FocusConfig struct {
	// DistanceFactor scales the target's width to get the camera offset.
	DistanceFactor float32    `yaml:"distance_factor"`
	NeutralTarget  [3]float32 `yaml:"neutral_target"`
}

// LoaderConfig contains asset loading settings.
type LoaderConfig struct {
	Workers       int    `yaml:"workers"`
	QueueSize     int    `yaml:"queue_size"`
	FailurePolicy string `yaml:"failure_policy"`
	BaseDir       string `yaml:"base_dir"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// SongConfig describes the track whose details the info panel links to.
type SongConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// AssetConfig is one entry of the asset source list.
type AssetConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Path Paths  `yaml:"path"`
}

// ObjectConfig describes one interactive object of the scene.
type ObjectConfig struct {
	Name          string     `yaml:"name"`
	Asset         string     `yaml:"asset"`
	Position      [3]float32 `yaml:"position"`
	Size          [3]float32 `yaml:"size"`
	Focusable     bool       `yaml:"focusable"`
	Link          string     `yaml:"link"`
	Highlight     *bool      `yaml:"highlight"`
	AudioStrength float32    `yaml:"audio_strength"`
	Alpha         float32    `yaml:"alpha"`
	LineSize      float32    `yaml:"line_size"`
}

// Highlighted reports whether the object plays hover ramps. Defaults to true.
func (o ObjectConfig) Highlighted() bool {
	return o.Highlight == nil || *o.Highlight
}

// Paths is a list of file paths that unmarshals from either a scalar or a sequence.
type Paths []string

// UnmarshalYAML accepts `path: a.png` as well as `path: [px.png, nx.png, ...]`.
func (p *Paths) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*p = Paths{value.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*p = list
		return nil
	default:
		return fmt.Errorf("line %d: path must be a string or a list of strings", value.Line)
	}
}

// Load reads configuration from a YAML file.
//
// The loading process:
//  1. Start with default values
//  2. Override with values from YAML file
//  3. Override with environment variables (OXY_* prefix)
//  4. Validate the result
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded configuration
//   - error: If file cannot be read, parsed, or validated
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault returns Default() with the environment overrides applied, for running without a
// config file.
//
// Returns:
//   - *Config: default configuration with overrides
//   - error: If the overrides produce an invalid configuration
func LoadDefault() (*Config, error) {
	cfg := Default()
	if err := finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finalize applies env overrides, expands paths and validates.
func finalize(cfg *Config) error {
	applyEnvOverrides(cfg)

	if cfg.Loader.BaseDir != "" {
		expanded, err := homedir.Expand(cfg.Loader.BaseDir)
		if err != nil {
			return fmt.Errorf("expanding loader base dir: %w", err)
		}
		cfg.Loader.BaseDir = expanded
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OXY_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("OXY_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("OXY_ASSET_DIR"); v != "" {
		cfg.Loader.BaseDir = v
	}
	if v := os.Getenv("OXY_TICK_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Engine.TickRate = rate
		}
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Joined validation failures, nil if valid
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, errors.New("window width and height must be positive"))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, errors.New("camera near must be positive and less than far"))
	}
	if c.Camera.MinRadius <= 0 || c.Camera.MaxRadius < c.Camera.MinRadius {
		errs = append(errs, errors.New("camera min_radius must be positive and not above max_radius"))
	}
	if c.Animation.Duration < 0 {
		errs = append(errs, errors.New("animation duration must not be negative"))
	}
	switch strings.ToLower(c.Loader.FailurePolicy) {
	case "", "fail-open", "open", "strict", "fail-strict":
	default:
		errs = append(errs, fmt.Errorf("unknown loader failure policy %q", c.Loader.FailurePolicy))
	}

	names := make(map[string]bool, len(c.Assets))
	for i, a := range c.Assets {
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("assets[%d]: name is required", i))
			continue
		}
		if names[a.Name] {
			errs = append(errs, fmt.Errorf("assets[%d]: duplicate name %q", i, a.Name))
		}
		names[a.Name] = true
		if len(a.Path) == 0 {
			errs = append(errs, fmt.Errorf("assets[%d]: path is required", i))
		}
	}

	for i, o := range c.Objects {
		if o.Name == "" {
			errs = append(errs, fmt.Errorf("objects[%d]: name is required", i))
		}
		if o.Asset != "" && !names[o.Asset] {
			errs = append(errs, fmt.Errorf("objects[%d]: unknown asset %q", i, o.Asset))
		}
		if o.Focusable && o.Link != "" {
			errs = append(errs, fmt.Errorf("objects[%d]: an object is either focusable or a link", i))
		}
	}

	return errors.Join(errs...)
}
