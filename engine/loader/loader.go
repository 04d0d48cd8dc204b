package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/event"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/logging"
)

// Kind identifies the backend that handles a LoadRequest.
type Kind string

const (
	// KindModel loads a glTF/GLB model.
	KindModel Kind = "model"
	// KindGLTFModel is an alias of KindModel.
	KindGLTFModel Kind = "gltfModel"
	// KindTexture loads a single 2D image.
	KindTexture Kind = "texture"
	// KindCubeTexture loads six images as the faces of a cube map.
	KindCubeTexture Kind = "cubeTexture"
	// KindHDRTexture loads a Radiance HDR environment map.
	KindHDRTexture Kind = "hdrTexture"
)

// FailurePolicy decides how a backend error affects the session.
type FailurePolicy int

const (
	// FailOpen counts a failed request toward completion. The asset is absent from the session.
	FailOpen FailurePolicy = iota
	// FailStrict halts the session on the first failure. Ready never fires.
	FailStrict
)

// ParseFailurePolicy resolves a policy by its configuration name ("fail-open" or "strict").
//
// Parameters:
//   - name: the policy name
//
// Returns:
//   - FailurePolicy: the matching policy
//   - error: error if the name is unknown
func ParseFailurePolicy(name string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fail-open", "open":
		return FailOpen, nil
	case "strict", "fail-strict":
		return FailStrict, nil
	default:
		return FailOpen, fmt.Errorf("loader: unknown failure policy %q", name)
	}
}

// Locator holds the path(s) of an asset. Cube textures take six paths, every other kind takes one.
type Locator []string

// LoadRequest describes a single asset to load.
type LoadRequest struct {
	ID      string
	Kind    Kind
	Locator Locator
}

// LoadedAsset is a completed request and its backend payload.
type LoadedAsset struct {
	ID      string
	Kind    Kind
	Payload any
}

// Session is a snapshot of the loader's bookkeeping.
type Session struct {
	// Total is the number of requests passed to Load.
	Total int
	// Completed counts distinct requests that reported completion, successful or failed.
	Completed int
	// Failed lists the ids whose backend reported an error, in arrival order.
	Failed []string
	// Assets holds the successful payloads keyed by request id.
	Assets map[string]LoadedAsset
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu *sync.Mutex

	bus      event.EventBus
	backends map[Kind]Backend
	policy   FailurePolicy
	baseDir  string

	workers   int
	queueSize int
	pool      worker.DynamicWorkerPool
	ctx       context.Context
	cancel    context.CancelFunc

	started    bool
	total      int
	completed  int
	seen       map[string]bool
	assets     map[string]LoadedAsset
	failed     []string
	readyFired bool
	readyCh    chan struct{}
	haltErr    error
	haltCh     chan struct{}

	logger *logging.Logger
}

// Loader dispatches heterogeneous load requests to kind-specific backends running concurrently on a worker
// pool and announces, exactly once, when every request has completed.
type Loader interface {
	// Load validates every request, then dispatches them. Validation failures return before anything is
	// dispatched and leave the loader unstarted. With zero requests the ready event fires before Load returns.
	// Backend failures are never returned here; they flow through the completion path and the failure policy.
	//
	// Parameters:
	//   - requests: the assets to load, each with a unique ID
	//
	// Returns:
	//   - error: ErrUnsupportedAssetKind, ErrDuplicateAssetID, ErrInvalidLocator or ErrSessionStarted
	Load(requests []LoadRequest) error

	// OnReady registers a callback fired once when the session completes.
	// Callbacks registered after the session is ready are never called; check Ready first.
	//
	// Parameters:
	//   - cb: the callback
	//
	// Returns:
	//   - func(): unsubscribes the callback
	OnReady(cb func()) func()

	// OnProgress registers a callback fired after each distinct completion.
	//
	// Parameters:
	//   - cb: receives the completed and total counts
	//
	// Returns:
	//   - func(): unsubscribes the callback
	OnProgress(cb func(completed, total int)) func()

	// OnFailure registers a callback fired when a backend reports an error.
	//
	// Parameters:
	//   - cb: receives the failed request id and its *AssetLoadError
	//
	// Returns:
	//   - func(): unsubscribes the callback
	OnFailure(cb func(id string, err error)) func()

	// Wait blocks until the session is ready (after its ready subscribers have run), the session halted
	// under FailStrict, or ctx is done.
	//
	// Parameters:
	//   - ctx: bounds the wait
	//
	// Returns:
	//   - error: nil once ready, an error wrapping ErrLoadFailed if halted, or ctx.Err()
	Wait(ctx context.Context) error

	// Ready reports whether the ready event has fired.
	Ready() bool

	// Session returns a copy of the current bookkeeping.
	Session() Session

	// Get returns the payload of a loaded asset.
	//
	// Parameters:
	//   - id: the request id
	//
	// Returns:
	//   - any: the backend payload
	//   - bool: false if the asset is absent
	Get(id string) (any, bool)

	// Assets returns a copy of the loaded assets keyed by id.
	Assets() map[string]LoadedAsset

	// Close cancels in-flight backend work. Completions arriving afterwards are ignored.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a Loader with the built-in model, texture, cube texture and HDR backends registered.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new, unstarted Loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	ctx, cancel := context.WithCancel(context.Background())
	l := &loader{
		mu:        &sync.Mutex{},
		backends:  make(map[Kind]Backend),
		policy:    FailOpen,
		workers:   4,
		queueSize: 64,
		ctx:       ctx,
		cancel:    cancel,
		seen:      make(map[string]bool),
		assets:    make(map[string]LoadedAsset),
		readyCh:   make(chan struct{}),
		haltCh:    make(chan struct{}),
		logger:    logging.Discard(),
	}

	model := newGLTFLoaderBackend()
	l.backends[KindModel] = model
	l.backends[KindGLTFModel] = model
	l.backends[KindTexture] = newTextureLoaderBackend()
	l.backends[KindCubeTexture] = newCubeTextureLoaderBackend()
	l.backends[KindHDRTexture] = newHDRTextureLoaderBackend()

	for _, option := range options {
		option(l)
	}
	if l.bus == nil {
		l.bus = event.NewEventBus(event.WithLogger(l.logger))
	}
	return l
}

func (l *loader) Load(requests []LoadRequest) error {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return ErrSessionStarted
	}

	resolved := make([]LoadRequest, len(requests))
	ids := make(map[string]bool, len(requests))
	for i, req := range requests {
		if ids[req.ID] {
			l.mu.Unlock()
			return fmt.Errorf("%w: %q", ErrDuplicateAssetID, req.ID)
		}
		ids[req.ID] = true

		backend, ok := l.backends[req.Kind]
		if !ok {
			l.mu.Unlock()
			return fmt.Errorf("%w: %q (asset %q)", ErrUnsupportedAssetKind, req.Kind, req.ID)
		}
		if err := backend.Validate(req.Locator); err != nil {
			l.mu.Unlock()
			return fmt.Errorf("asset %q: %w", req.ID, err)
		}
		resolved[i] = LoadRequest{ID: req.ID, Kind: req.Kind, Locator: l.resolve(req.Locator)}
	}

	l.started = true
	l.total = len(resolved)
	if l.total == 0 {
		l.mu.Unlock()
		l.logger.Info("load session empty, ready")
		l.fireReady()
		return nil
	}
	if l.pool == nil {
		l.pool = worker.NewDynamicWorkerPool(l.workers, max(l.queueSize, l.total), 1*time.Second)
	}
	pool := l.pool
	ctx := l.ctx
	l.mu.Unlock()

	l.logger.Info("load session started", "total", len(resolved), "workers", l.workers)

	for i, req := range resolved {
		backend := l.backends[req.Kind]
		reqCap := req // capture for closure
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				backend.Load(ctx, reqCap, func(payload any, err error) {
					l.complete(reqCap, payload, err)
				})
				return nil, nil
			},
		})
	}
	return nil
}

func (l *loader) OnReady(cb func()) func() {
	sub := l.bus.Once(event.EventReady, func(args ...any) { cb() })
	return func() { l.bus.Off(sub) }
}

func (l *loader) OnProgress(cb func(completed, total int)) func() {
	sub := l.bus.On(event.EventProgress, func(args ...any) {
		cb(args[0].(int), args[1].(int))
	})
	return func() { l.bus.Off(sub) }
}

func (l *loader) OnFailure(cb func(id string, err error)) func() {
	sub := l.bus.On(event.EventAssetFailed, func(args ...any) {
		cb(args[0].(string), args[1].(error))
	})
	return func() { l.bus.Off(sub) }
}

func (l *loader) Wait(ctx context.Context) error {
	select {
	case <-l.readyCh:
		return nil
	case <-l.haltCh:
		l.mu.Lock()
		defer l.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrLoadFailed, l.haltErr)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *loader) Ready() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readyFired
}

func (l *loader) Session() Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Session{
		Total:     l.total,
		Completed: l.completed,
		Failed:    append([]string(nil), l.failed...),
		Assets:    l.copyAssets(),
	}
}

func (l *loader) Get(id string) (any, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.assets[id]
	if !ok {
		return nil, false
	}
	return a.Payload, true
}

func (l *loader) Assets() map[string]LoadedAsset {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.copyAssets()
}

func (l *loader) Close() {
	l.cancel()
}

// complete records a backend completion. The first completion for an id counts toward the session;
// later ones only overwrite the payload.
func (l *loader) complete(req LoadRequest, payload any, err error) {
	l.mu.Lock()
	if l.haltErr != nil || l.ctx.Err() != nil {
		l.mu.Unlock()
		return
	}

	first := !l.seen[req.ID]
	l.seen[req.ID] = true

	var loadErr *AssetLoadError
	if err != nil {
		loadErr = &AssetLoadError{ID: req.ID, Kind: req.Kind, Err: err}
		// a duplicate completion only overwrites, it never halts a strict session
		if l.policy == FailStrict && first && !l.readyFired {
			l.haltErr = loadErr
			close(l.haltCh)
			l.mu.Unlock()
			l.logger.Error("asset failed, session halted", "id", req.ID, "kind", req.Kind, "error", err)
			l.bus.Emit(event.EventAssetFailed, req.ID, error(loadErr))
			return
		}
		if first {
			l.failed = append(l.failed, req.ID)
		}
	} else {
		l.assets[req.ID] = LoadedAsset{ID: req.ID, Kind: req.Kind, Payload: payload}
		l.failed = removeID(l.failed, req.ID)
	}

	if !first {
		l.mu.Unlock()
		l.logger.Debug("duplicate completion ignored", "id", req.ID)
		return
	}

	l.completed++
	completed, total := l.completed, l.total
	l.mu.Unlock()

	if loadErr != nil {
		l.logger.Warn("asset failed", "id", req.ID, "kind", req.Kind, "error", err)
		l.bus.Emit(event.EventAssetFailed, req.ID, error(loadErr))
	} else {
		l.logger.Debug("asset loaded", "id", req.ID, "kind", req.Kind)
	}
	l.bus.Emit(event.EventProgress, completed, total)

	if completed == total {
		l.fireReady()
	}
}

// fireReady flips the session to ready, emits the ready event and releases Wait. It must run once per loader.
func (l *loader) fireReady() {
	l.mu.Lock()
	if l.readyFired {
		l.mu.Unlock()
		panic("loader: ready fired twice")
	}
	l.readyFired = true
	completed, failed := l.completed, len(l.failed)
	l.mu.Unlock()

	l.logger.Info("load session ready", "completed", completed, "failed", failed)
	l.bus.Emit(event.EventReady)
	// Wait returns only after the ready subscribers have run.
	close(l.readyCh)
}

// resolve joins relative locator paths onto the base directory.
func (l *loader) resolve(locator Locator) Locator {
	out := make(Locator, len(locator))
	for i, p := range locator {
		if l.baseDir != "" && !filepath.IsAbs(p) && !isURL(p) {
			p = filepath.Join(l.baseDir, p)
		}
		out[i] = p
	}
	return out
}

// copyAssets copies the asset map. Caller must hold the mutex.
func (l *loader) copyAssets() map[string]LoadedAsset {
	out := make(map[string]LoadedAsset, len(l.assets))
	for k, v := range l.assets {
		out[k] = v
	}
	return out
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func isURL(p string) bool {
	return strings.Contains(p, "://")
}
