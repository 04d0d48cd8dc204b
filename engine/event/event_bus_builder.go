package event

import "github.com/Carmen-Shannon/oxy-audioviz/engine/logging"

// EventBusBuilderOption is a functional option for configuring an EventBus via NewEventBus.
type EventBusBuilderOption func(*eventBus)

// WithLogger sets the logger used for debug tracing of emitted events.
//
// Parameters:
//   - logger: the logger to use (nil keeps the discard logger)
//
// Returns:
//   - EventBusBuilderOption: a function that applies the logger option to a bus
func WithLogger(logger *logging.Logger) EventBusBuilderOption {
	return func(b *eventBus) {
		if logger != nil {
			b.logger = logger
		}
	}
}
