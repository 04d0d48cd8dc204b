package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(x, y, z float32) mgl32.Vec3 {
	return mgl32.Vec3{x, y, z}
}

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d of %v", i, got)
	}
}

func controllerPosition(cc CameraController) mgl32.Vec3 {
	x, y, z := cc.Position()
	return vec(x, y, z)
}

func TestNewCameraController_Defaults(t *testing.T) {
	cc := NewCameraController()
	assertVec(t, vec(0, 0, 20), controllerPosition(cc))
	assert.InDelta(t, 20, cc.Radius(), 1e-5)
}

func TestWithPose(t *testing.T) {
	cc := NewCameraController(WithPose(vec(3, 4, 12), vec(0, 0, 0)))
	assertVec(t, vec(3, 4, 12), controllerPosition(cc))
	assert.InDelta(t, 13, cc.Radius(), 1e-4)
}

func TestSetPose_OrbitResumesFromPose(t *testing.T) {
	cc := NewCameraController(WithOrbitSpeed(0.1))
	cc.SetPose(2, 0, 12.5, 2, 0, 10)

	assertVec(t, vec(2, 0, 12.5), controllerPosition(cc))
	tx, ty, tz := cc.Target()
	assertVec(t, vec(2, 0, 10), vec(tx, ty, tz))
	assert.InDelta(t, 2.5, cc.Radius(), 1e-5)

	cc.OrbitRight()
	pos := controllerPosition(cc)
	assert.InDelta(t, 2.5, pos.Sub(vec(2, 0, 10)).Len(), 1e-4)
	assert.Greater(t, pos[0], float32(2))
}

func TestSetPose_BelowElevationBoundsIsKept(t *testing.T) {
	cc := NewCameraController(WithElevationBounds(0.2, 1))
	cc.SetPose(0, -5, 0.001, 0, 0, 0)
	assertVec(t, vec(0, -5, 0.001), controllerPosition(cc))
}

func TestZoom_ClampsRadius(t *testing.T) {
	cc := NewCameraController(WithRadiusBounds(5, 30), WithZoomSpeed(1))
	cc.Zoom(100)
	assert.InDelta(t, 5, cc.Radius(), 1e-5)
	cc.Zoom(-100)
	assert.InDelta(t, 30, cc.Radius(), 1e-5)
}

func TestOrbitDelta_ClampsElevation(t *testing.T) {
	cc := NewCameraController(WithElevationBounds(-0.5, 0.5), WithMouseSensitivity(0.01))
	cc.OrbitDelta(0, 1000)
	assert.InDelta(t, 0.5, cc.Elevation(), 1e-5)
	cc.OrbitDelta(0, -1000)
	assert.InDelta(t, -0.5, cc.Elevation(), 1e-5)
}

func TestPan_MovesPositionAndTarget(t *testing.T) {
	cc := NewCameraController(WithPanSpeed(1))
	cc.PanRight(2)
	assertVec(t, vec(2, 0, 20), controllerPosition(cc))
	tx, ty, tz := cc.Target()
	assertVec(t, vec(2, 0, 0), vec(tx, ty, tz))

	cc.PanUp(1)
	assertVec(t, vec(2, 1, 20), controllerPosition(cc))
}

func TestCamera_RayThroughCenter(t *testing.T) {
	cam := NewCamera(WithController(NewCameraController()), WithAspect(16.0/9.0))

	ray := cam.Ray(0, 0)
	assertVec(t, vec(0, 0, 20), ray.Origin)
	assertVec(t, vec(0, 0, -1), ray.Direction)
}

func TestCamera_RayOffCenter(t *testing.T) {
	cam := NewCamera(WithController(NewCameraController()), WithFovDegrees(90), WithAspect(1))

	ray := cam.Ray(1, 0)
	assert.InDelta(t, 1, ray.Direction.Len(), 1e-5)
	// a 90 degree fov puts the right edge of the viewport at 45 degrees
	assert.InDelta(t, ray.Direction[0], -ray.Direction[2], 1e-4)
	assert.Greater(t, ray.Direction[0], float32(0))

	up := cam.Ray(0, 1)
	assert.Greater(t, up.Direction[1], float32(0))
}

func TestCamera_UpdateFollowsController(t *testing.T) {
	cc := NewCameraController()
	cam := NewCamera(WithController(cc))
	require.Equal(t, cc, cam.Controller())

	cc.SetPose(0, 0, 5, 0, 0, 0)
	assertVec(t, vec(0, 0, 20), cam.Position())
	cam.Update()
	assertVec(t, vec(0, 0, 5), cam.Position())
}

func TestCamera_SetAspectChangesProjection(t *testing.T) {
	cam := NewCamera(WithController(NewCameraController()))
	before := cam.ProjectionMatrix()
	cam.SetAspect(2)
	assert.NotEqual(t, before, cam.ProjectionMatrix())
	assert.Equal(t, float32(2), cam.Aspect())
}
