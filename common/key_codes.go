package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyP     = 80 // P key (ASCII)
	KeySpace = 32 // Spacebar (ASCII)
)

// Pan keys (ASCII).
const (
	KeyA = 65
	KeyD = 68
	KeyS = 83
	KeyW = 87
)

// Arrow keys (GLFW).
const (
	KeyRight = 262
	KeyLeft  = 263
	KeyDown  = 264
	KeyUp    = 265
)
