package picking

import (
	"github.com/Carmen-Shannon/oxy-audioviz/common"
	"github.com/chewxy/math32"
)

// ObjectID identifies an interactive object. IDs are assigned by the scene and never reused.
type ObjectID uint32

// PointerState is the pointer position in normalized device coordinates:
// X grows left to right and Y bottom to top, both in [-1, 1] inside the viewport.
type PointerState struct {
	X float32
	Y float32
}

// PointerFromPixels converts a window pixel position (origin top-left) to normalized device coordinates.
// A zero-sized viewport maps everything to the center.
//
// Parameters:
//   - px, py: pointer position in pixels
//   - width, height: viewport size in pixels
//
// Returns:
//   - PointerState: the pointer in normalized device coordinates
func PointerFromPixels(px, py float32, width, height int) PointerState {
	if width <= 0 || height <= 0 {
		return PointerState{}
	}
	return PointerState{
		X: px/float32(width)*2 - 1,
		Y: -(py/float32(height))*2 + 1,
	}
}

// RayCaster produces world-space rays from normalized device coordinates. The camera implements it.
type RayCaster interface {
	Ray(ndcX, ndcY float32) common.Ray
}

// Pickable is anything the picker can hit.
type Pickable interface {
	// PickID returns the object's id.
	PickID() ObjectID

	// PickBounds returns the object's world-space bounding box.
	PickBounds() common.BoundingBox
}

type pickingEngine struct {
	maxDistance float32
}

// PickingEngine resolves the pointer against the scene's objects. It keeps no state between calls.
type PickingEngine interface {
	// Resolve casts a ray through the pointer and returns the nearest object it hits.
	// Hits behind the ray origin are ignored; when two hits are equally near, the object earlier in
	// objects wins.
	//
	// Parameters:
	//   - pointer: the pointer in normalized device coordinates
	//   - caster: produces the pick ray
	//   - objects: candidates, in registry order
	//
	// Returns:
	//   - ObjectID: the hit object
	//   - bool: false when nothing is hit
	Resolve(pointer PointerState, caster RayCaster, objects []Pickable) (ObjectID, bool)

	// ResolveRay is Resolve with an explicit ray.
	//
	// Parameters:
	//   - ray: the world-space pick ray
	//   - objects: candidates, in registry order
	//
	// Returns:
	//   - ObjectID: the hit object
	//   - float32: distance to the hit
	//   - bool: false when nothing is hit
	ResolveRay(ray common.Ray, objects []Pickable) (ObjectID, float32, bool)
}

var _ PickingEngine = &pickingEngine{}

// NewPickingEngine creates a PickingEngine with no distance limit.
//
// Parameters:
//   - options: functional options to configure the engine
//
// Returns:
//   - PickingEngine: the new picking engine
func NewPickingEngine(options ...PickingEngineBuilderOption) PickingEngine {
	p := &pickingEngine{
		maxDistance: math32.Inf(1),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *pickingEngine) Resolve(pointer PointerState, caster RayCaster, objects []Pickable) (ObjectID, bool) {
	if caster == nil || len(objects) == 0 {
		return 0, false
	}
	id, _, ok := p.ResolveRay(caster.Ray(pointer.X, pointer.Y), objects)
	return id, ok
}

func (p *pickingEngine) ResolveRay(ray common.Ray, objects []Pickable) (ObjectID, float32, bool) {
	var (
		bestID ObjectID
		bestT  = math32.Inf(1)
		found  bool
	)
	for _, obj := range objects {
		t, ok := Intersect(ray, obj.PickBounds())
		if !ok || t > p.maxDistance {
			continue
		}
		if t < bestT {
			bestID, bestT, found = obj.PickID(), t, true
		}
	}
	return bestID, bestT, found
}
