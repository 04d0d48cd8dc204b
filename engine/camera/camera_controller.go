package camera

// CameraController owns the camera's positional state (eye position and look-at target).
// The Camera reads it every Update to build its view matrix. Orbit input and programmatic
// pose changes (focus animations) both go through the same controller, so orbiting always
// resumes from wherever the last animation left the camera.
type CameraController interface {
	orbitCameraController
	panCameraController

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetTarget moves the look-at/pivot point, keeping the current orbit offset.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// SetPosition moves the camera while keeping the target, re-deriving the orbit coordinates.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// SetPose sets position and target together. Orbit coordinates are re-derived without clamping,
	// so the pose is reproduced exactly.
	//
	// Parameters:
	//   - px, py, pz: world-space camera position
	//   - tx, ty, tz: world-space look-at point
	SetPose(px, py, pz, tx, ty, tz float32)

	// Zoom adjusts the camera's distance by modifying orbit radius.
	// Positive delta zooms in (closer to target).
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)
}

// orbitCameraController rotates the camera around its target using spherical coordinates
// (radius, azimuth, elevation).
type orbitCameraController interface {
	// OrbitLeft rotates the camera left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step, clamped to max elevation.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step, clamped to min elevation.
	OrbitDown()

	// OrbitDelta rotates by a mouse drag, scaled by MouseSensitivity.
	//
	// Parameters:
	//   - dx: horizontal drag in pixels (positive = right)
	//   - dy: vertical drag in pixels (positive = down)
	OrbitDelta(dx, dy float32)

	// Radius returns the current orbit radius (distance from target).
	Radius() float32

	// SetRadius sets the orbit radius directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// Azimuth returns the current horizontal angle around the Y axis in radians.
	Azimuth() float32

	// Elevation returns the current vertical angle from the horizontal plane in radians.
	Elevation() float32
}

// panCameraController translates position and target together along the camera's local axes.
type panCameraController interface {
	// PanRight translates along the camera's local right axis.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanRight(delta float32)

	// PanUp translates along the camera's local up axis.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanUp(delta float32)
}
