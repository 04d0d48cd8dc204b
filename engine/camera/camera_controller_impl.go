package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-audioviz/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraControllerImpl is the single implementation of CameraController.
// Position is always target + spherical(radius, azimuth, elevation).
type cameraControllerImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3

	radius    float32
	azimuth   float32 // around +Y, 0 = +Z
	elevation float32 // from the XZ plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed       float32
	mouseSensitivity float32
	zoomSpeed        float32
	panSpeed         float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller looking at the origin from 20 units down +Z.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		radius: 20,

		minRadius:    0.5,
		maxRadius:    500,
		minElevation: -math32.Pi/2 + 0.01,
		maxElevation: math32.Pi/2 - 0.01,

		orbitSpeed:       0.03,
		mouseSensitivity: 0.005,
		zoomSpeed:        1,
		panSpeed:         0.05,
	}

	for _, option := range options {
		option(cc)
	}

	cc.updatePosition()
	return cc
}

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cosElev := math32.Cos(cc.elevation)
	cc.position = cc.target.Add(mgl32.Vec3{
		cc.radius * cosElev * math32.Sin(cc.azimuth),
		cc.radius * math32.Sin(cc.elevation),
		cc.radius * cosElev * math32.Cos(cc.azimuth),
	})
}

// deriveSpherical recomputes radius, azimuth and elevation from position and target.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) deriveSpherical() {
	offset := cc.position.Sub(cc.target)
	cc.radius = offset.Len()
	if cc.radius < 1e-6 {
		return
	}
	cc.elevation = math32.Asin(common.Clamp(offset[1]/cc.radius, -1, 1))
	cc.azimuth = math32.Atan2(offset[0], offset[2])
}

// localAxes returns the right and up axes matching LookAtV with world up (0, 1, 0).
// Both are zero when position and target coincide or the camera looks straight up or down.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (right, up mgl32.Vec3) {
	backward := cc.position.Sub(cc.target)
	if backward.Len() < 1e-8 {
		return
	}
	backward = backward.Normalize()
	right = mgl32.Vec3{0, 1, 0}.Cross(backward)
	if right.Len() < 1e-8 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	right = right.Normalize()
	up = backward.Cross(right)
	return right, up
}

func (cc *cameraControllerImpl) clampRadius() {
	cc.radius = common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
}

func (cc *cameraControllerImpl) clampElevation() {
	cc.elevation = common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
}

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = mgl32.Vec3{x, y, z}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = mgl32.Vec3{x, y, z}
	cc.deriveSpherical()
}

func (cc *cameraControllerImpl) SetPose(px, py, pz, tx, ty, tz float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = mgl32.Vec3{px, py, pz}
	cc.target = mgl32.Vec3{tx, ty, tz}
	cc.deriveSpherical()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius -= delta * cc.zoomSpeed
	cc.clampRadius()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitLeft() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth -= cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitRight() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth += cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation += cc.orbitSpeed
	cc.clampElevation()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitDown() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation -= cc.orbitSpeed
	cc.clampElevation()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitDelta(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth -= dx * cc.mouseSensitivity
	cc.elevation += dy * cc.mouseSensitivity
	cc.clampElevation()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = radius
	cc.clampRadius()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	right, _ := cc.localAxes()
	offset := right.Mul(delta * cc.panSpeed)
	cc.target = cc.target.Add(offset)
	cc.position = cc.position.Add(offset)
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, up := cc.localAxes()
	offset := up.Mul(delta * cc.panSpeed)
	cc.target = cc.target.Add(offset)
	cc.position = cc.position.Add(offset)
}
