package loader

import (
	"github.com/Carmen-Shannon/oxy-audioviz/engine/event"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/logging"
	"github.com/mitchellh/go-homedir"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithEventBus sets the bus the loader emits ready, progress and asset-failed on.
// Without it the loader owns a private bus.
//
// Parameters:
//   - bus: the event bus
//
// Returns:
//   - LoaderBuilderOption: a function that applies the bus option to a loader
func WithEventBus(bus event.EventBus) LoaderBuilderOption {
	return func(l *loader) {
		l.bus = bus
	}
}

// WithBackend registers or replaces the backend for a kind.
//
// Parameters:
//   - kind: the asset kind
//   - backend: the backend serving it
//
// Returns:
//   - LoaderBuilderOption: a function that registers the backend
func WithBackend(kind Kind, backend Backend) LoaderBuilderOption {
	return func(l *loader) {
		l.backends[kind] = backend
	}
}

// WithFailurePolicy sets how backend errors affect the session. The default is FailOpen.
//
// Parameters:
//   - policy: the failure policy
//
// Returns:
//   - LoaderBuilderOption: a function that sets the policy
func WithFailurePolicy(policy FailurePolicy) LoaderBuilderOption {
	return func(l *loader) {
		l.policy = policy
	}
}

// WithBaseDir sets the directory relative locator paths are resolved against. A leading ~ is expanded.
//
// Parameters:
//   - dir: the base directory
//
// Returns:
//   - LoaderBuilderOption: a function that sets the base directory
func WithBaseDir(dir string) LoaderBuilderOption {
	return func(l *loader) {
		if expanded, err := homedir.Expand(dir); err == nil {
			dir = expanded
		}
		l.baseDir = dir
	}
}

// WithWorkers sets the worker pool size and queue length.
//
// Parameters:
//   - workers: number of concurrent backend loads
//   - queueSize: pending task capacity (raised to the request count if smaller)
//
// Returns:
//   - LoaderBuilderOption: a function that sizes the pool
func WithWorkers(workers, queueSize int) LoaderBuilderOption {
	return func(l *loader) {
		if workers > 0 {
			l.workers = workers
		}
		if queueSize > 0 {
			l.queueSize = queueSize
		}
	}
}

// WithLogger sets the logger used by the loader and its private bus.
//
// Parameters:
//   - logger: the logger to use (nil keeps the discard logger)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(logger *logging.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger.With("component", "loader")
		}
	}
}
