package loader

import (
	"context"
	"fmt"
)

// CompletionFunc reports the outcome of a single request. Backends call it once; extra calls are tolerated
// by the loader and never count twice.
type CompletionFunc func(payload any, err error)

// Backend loads one kind of asset. Concrete implementations (e.g., gltfLoaderBackend) handle format-specific
// details and may block; the loader runs each Load call on its worker pool.
type Backend interface {
	// Validate checks the shape of a locator before anything is dispatched.
	//
	// Parameters:
	//   - locator: the request's paths
	//
	// Returns:
	//   - error: an error wrapping ErrInvalidLocator if the locator cannot be served
	Validate(locator Locator) error

	// Load reads the asset and reports through done.
	//
	// Parameters:
	//   - ctx: cancelled when the loader is closed
	//   - req: the request with its locator already resolved against the base directory
	//   - done: the completion callback
	Load(ctx context.Context, req LoadRequest, done CompletionFunc)
}

// singlePath validates a locator that must hold exactly one non-empty path.
func singlePath(locator Locator) error {
	if len(locator) != 1 {
		return fmt.Errorf("%w: expected 1 path, got %d", ErrInvalidLocator, len(locator))
	}
	if locator[0] == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidLocator)
	}
	return nil
}
