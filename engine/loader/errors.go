package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedAssetKind is returned by Load when a request names a kind with no registered backend.
	ErrUnsupportedAssetKind = errors.New("loader: unsupported asset kind")

	// ErrDuplicateAssetID is returned by Load when two requests share an id.
	ErrDuplicateAssetID = errors.New("loader: duplicate asset id")

	// ErrInvalidLocator is returned by Load when a locator has the wrong number of paths for its kind.
	ErrInvalidLocator = errors.New("loader: invalid locator")

	// ErrSessionStarted is returned by a second call to Load. A loader serves exactly one session.
	ErrSessionStarted = errors.New("loader: session already started")

	// ErrLoadFailed is returned by Wait when a strict session halted on a failed asset.
	ErrLoadFailed = errors.New("loader: load failed")
)

// AssetLoadError describes a backend failure for a single request.
type AssetLoadError struct {
	ID   string
	Kind Kind
	Err  error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("loader: %s %q: %v", e.Kind, e.ID, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}
