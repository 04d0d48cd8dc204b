package picking

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-audioviz/common"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type box struct {
	id     ObjectID
	bounds common.BoundingBox
}

func (b box) PickID() ObjectID               { return b.id }
func (b box) PickBounds() common.BoundingBox { return b.bounds }

func cube(id ObjectID, size float32, at mgl32.Vec3) Pickable {
	return box{id: id, bounds: common.BoxFromSize(size, size, size).Translate(at)}
}

func TestPointerFromPixels(t *testing.T) {
	tests := []struct {
		name   string
		px, py float32
		w, h   int
		want   PointerState
	}{
		{"top left", 0, 0, 800, 600, PointerState{-1, 1}},
		{"bottom right", 800, 600, 800, 600, PointerState{1, -1}},
		{"center", 400, 300, 800, 600, PointerState{0, 0}},
		{"quarter", 200, 450, 800, 600, PointerState{-0.5, -0.5}},
		{"zero viewport", 10, 10, 0, 0, PointerState{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointerFromPixels(tt.px, tt.py, tt.w, tt.h)
			assert.InDelta(t, tt.want.X, got.X, 1e-6)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-6)
		})
	}
}

func TestIntersect(t *testing.T) {
	unit := common.BoxFromSize(2, 2, 2)
	forward := mgl32.Vec3{0, 0, -1}

	tests := []struct {
		name  string
		ray   common.Ray
		hit   bool
		wantT float32
	}{
		{"front face", common.Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: forward}, true, 4},
		{"offset miss", common.Ray{Origin: mgl32.Vec3{3, 0, 5}, Direction: forward}, false, 0},
		{"behind origin", common.Ray{Origin: mgl32.Vec3{0, 0, -5}, Direction: forward}, false, 0},
		{"inside exits", common.Ray{Origin: mgl32.Vec3{0, 0, 0}, Direction: forward}, true, 1},
		{"edge graze", common.Ray{Origin: mgl32.Vec3{1, 0, 5}, Direction: forward}, true, 4},
		{"parallel outside", common.Ray{Origin: mgl32.Vec3{0, 2, 5}, Direction: forward}, false, 0},
		{"along x", common.Ray{Origin: mgl32.Vec3{-5, 0, 0}, Direction: mgl32.Vec3{1, 0, 0}}, true, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Intersect(tt.ray, unit)
			assert.Equal(t, tt.hit, ok)
			if tt.hit {
				assert.InDelta(t, tt.wantT, got, 1e-5)
			}
		})
	}
}

func TestResolveRay_NearestWins(t *testing.T) {
	p := NewPickingEngine()
	ray := common.Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}}

	id, dist, ok := p.ResolveRay(ray, []Pickable{
		cube(1, 2, mgl32.Vec3{0, 0, 0}),
		cube(2, 2, mgl32.Vec3{0, 0, 3}),
		cube(3, 2, mgl32.Vec3{5, 0, 6}),
	})
	require.True(t, ok)
	assert.Equal(t, ObjectID(2), id)
	assert.InDelta(t, 6, dist, 1e-5)
}

func TestResolveRay_TieKeepsFirst(t *testing.T) {
	p := NewPickingEngine()
	ray := common.Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}}

	id, _, ok := p.ResolveRay(ray, []Pickable{
		cube(7, 2, mgl32.Vec3{0, 0, 0}),
		cube(4, 2, mgl32.Vec3{0, 0, 0}),
	})
	require.True(t, ok)
	assert.Equal(t, ObjectID(7), id)
}

func TestResolveRay_MaxDistance(t *testing.T) {
	p := NewPickingEngine(WithMaxDistance(5))
	ray := common.Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}}

	_, _, ok := p.ResolveRay(ray, []Pickable{cube(1, 2, mgl32.Vec3{0, 0, 0})})
	assert.False(t, ok)
}

func TestResolve_ThroughCamera(t *testing.T) {
	ctrl := camera.NewCameraController(camera.WithPose(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}))
	cam := camera.NewCamera(camera.WithController(ctrl), camera.WithFovDegrees(35), camera.WithAspect(16.0/9.0))
	p := NewPickingEngine()

	objects := []Pickable{cube(1, 1, mgl32.Vec3{0, 0, 0})}

	id, ok := p.Resolve(PointerFromPixels(640, 360, 1280, 720), cam, objects)
	require.True(t, ok)
	assert.Equal(t, ObjectID(1), id)

	_, ok = p.Resolve(PointerFromPixels(10, 10, 1280, 720), cam, objects)
	assert.False(t, ok)
}

func TestResolve_NoObjects(t *testing.T) {
	p := NewPickingEngine()
	_, ok := p.Resolve(PointerState{}, nil, nil)
	assert.False(t, ok)
}
