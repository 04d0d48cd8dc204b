package scene

import (
	"github.com/Carmen-Shannon/oxy-audioviz/common"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/picking"
	"github.com/go-gl/mathgl/mgl32"
)

// ObjectSpec describes an interactive object the scene builds once the loader is ready.
type ObjectSpec struct {
	Name string
	// Asset is the loader id the object renders. Empty means the object needs no asset.
	// When the asset failed to load the object is left out of the scene.
	Asset    string
	Position mgl32.Vec3
	// Size is the full extent of the pick box. A zero size takes the model asset's bounds.
	Size      mgl32.Vec3
	Focusable bool
	// Link is followed on click by objects that are not focusable.
	Link string
	// Highlight enables the hover intensity ramps.
	Highlight     bool
	AudioStrength float32
	Alpha         float32
	LineSize      float32
}

// Uniforms mirrors the per-object shader inputs.
type Uniforms struct {
	Time          float32
	Hover         float32
	AudioStrength float32
	Alpha         float32
	LineSize      float32
}

// InteractiveObject is a pickable object owned by the scene.
// HoverIntensity is written only by hover animations and stays within [0, 1].
type InteractiveObject struct {
	ID             picking.ObjectID
	Name           string
	HoverIntensity float32
	// Bounds is the local-space pick box, centered on Position.
	Bounds    common.BoundingBox
	Position  mgl32.Vec3
	Focusable bool
	Link      string
	Highlight bool
	// Asset is the loader payload, nil for objects without an asset.
	Asset    any
	Uniforms Uniforms
}

var _ picking.Pickable = &InteractiveObject{}

func (o *InteractiveObject) PickID() picking.ObjectID {
	return o.ID
}

func (o *InteractiveObject) PickBounds() common.BoundingBox {
	return o.Bounds.Translate(o.Position)
}

// Width returns the extent of the object along X.
func (o *InteractiveObject) Width() float32 {
	return o.Bounds.Width()
}

// HoverState holds the hovered object of the current and the previous frame. Zero means none.
type HoverState struct {
	Current  picking.ObjectID
	Previous picking.ObjectID
}

// Changed reports whether the hovered object differs from the previous frame.
func (h HoverState) Changed() bool {
	return h.Current != h.Previous
}

// Cursor is the pointer affordance the scene asks the window for.
type Cursor int

const (
	// CursorDefault is the plain arrow.
	CursorDefault Cursor = iota
	// CursorPointer signals that a click will do something.
	CursorPointer
)

func (c Cursor) String() string {
	if c == CursorPointer {
		return "pointer"
	}
	return "default"
}

// FrequencyTexture is the audio spectrum texture the shaders sample.
// The scene refreshes it once per frame before updating the objects.
type FrequencyTexture interface {
	Update()
	Texture() common.TextureStagingData
}
