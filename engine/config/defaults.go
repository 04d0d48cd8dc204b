package config

// Default returns a configuration with every value populated, describing the
// stock scene: six audio-reactive panels, the sun and the song info panel.
// It is the base that Load overlays the YAML file on.
//
// Returns:
//   - *Config: default configuration
func Default() *Config {
	noHighlight := false
	return &Config{
		Window: WindowConfig{
			Title:  "Oxy Audio Visualizer",
			Width:  1280,
			Height: 720,
		},
		Engine: EngineConfig{
			TickRate:  60,
			Profiling: false,
		},
		Camera: CameraConfig{
			FovDegrees: 35,
			Near:       0.1,
			Far:        1000,
			Target:     [3]float32{0, 0, 0},
			MinRadius:  1,
			MaxRadius:  200,

			OrbitSpeed:       0.03,
			MouseSensitivity: 0.005,
			ZoomSpeed:        1,
			PanSpeed:         0.05,
		},
		Animation: AnimationConfig{
			Duration:       0.5,
			Easing:         "slowmo",
			HoverThreshold: 0.01,
		},
		Focus: FocusConfig{
			DistanceFactor: 2.5,
			NeutralTarget:  [3]float32{0, 0, 0},
		},
		Loader: LoaderConfig{
			Workers:       4,
			QueueSize:     64,
			FailurePolicy: "fail-open",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
		Objects: []ObjectConfig{
			{Name: "Circular", Position: [3]float32{-3, 3, 0}, Size: [3]float32{3, 3, 0}, Focusable: true, AudioStrength: 0.5, Alpha: 1, LineSize: 0.01},
			{Name: "CircularSin", Position: [3]float32{0, 3, 0}, Size: [3]float32{3, 3, 0}, Focusable: true, AudioStrength: 0.5, Alpha: 1, LineSize: 0.01},
			{Name: "CircularDistorsion", Position: [3]float32{3, 3, 0}, Size: [3]float32{3, 3, 0}, Focusable: true, AudioStrength: 0.5, Alpha: 1, LineSize: 0.01},
			{Name: "Osciloscope", Position: [3]float32{0, 7, 0}, Size: [3]float32{6, 3, 0}, Focusable: true, Alpha: 1, LineSize: 0.005},
			{Name: "YinYang", Position: [3]float32{-3, 0, 0}, Size: [3]float32{3, 3, 0}, Focusable: true, AudioStrength: 0.5, Alpha: 1},
			{Name: "YinYangSin", Position: [3]float32{3, 0, 0}, Size: [3]float32{3, 3, 0}, Focusable: true, AudioStrength: 0.5, Alpha: 1},
			{Name: "PerlinSun", Position: [3]float32{0, 0, -4}, Size: [3]float32{4, 4, 4}, Focusable: true, AudioStrength: 1, Alpha: 1},
			{Name: "AudioInfo", Position: [3]float32{0, -3, 2}, Size: [3]float32{4, 1, 0}, Highlight: &noHighlight, Alpha: 1},
		},
	}
}
