package picking

// PickingEngineBuilderOption is a functional option for configuring a PickingEngine via NewPickingEngine.
type PickingEngineBuilderOption func(*pickingEngine)

// WithMaxDistance ignores hits farther than distance from the ray origin.
// Usually set to the camera's far plane.
//
// Parameters:
//   - distance: the maximum hit distance
//
// Returns:
//   - PickingEngineBuilderOption: a function that sets the limit
func WithMaxDistance(distance float32) PickingEngineBuilderOption {
	return func(p *pickingEngine) {
		if distance > 0 {
			p.maxDistance = distance
		}
	}
}
