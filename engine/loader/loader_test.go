package loader

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-audioviz/engine/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendCall struct {
	req  LoadRequest
	done CompletionFunc
}

// fakeBackend hands every Load call to the test, which decides when and how it completes.
type fakeBackend struct {
	calls chan backendCall
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: make(chan backendCall, 16)}
}

func (f *fakeBackend) Validate(locator Locator) error {
	return singlePath(locator)
}

func (f *fakeBackend) Load(ctx context.Context, req LoadRequest, done CompletionFunc) {
	f.calls <- backendCall{req: req, done: done}
}

func (f *fakeBackend) collect(t *testing.T, n int) map[string]backendCall {
	t.Helper()
	out := make(map[string]backendCall, n)
	for len(out) < n {
		select {
		case c := <-f.calls:
			out[c.req.ID] = c
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for %d backend calls, got %d", n, len(out))
		}
	}
	return out
}

func newFakeLoader(fb *fakeBackend, options ...LoaderBuilderOption) Loader {
	opts := []LoaderBuilderOption{
		WithBackend(KindTexture, fb),
		WithBackend(KindModel, fb),
		WithBackend(KindHDRTexture, fb),
	}
	return NewLoader(append(opts, options...)...)
}

func threeRequests() []LoadRequest {
	return []LoadRequest{
		{ID: "a", Kind: KindTexture, Locator: Locator{"a.png"}},
		{ID: "b", Kind: KindModel, Locator: Locator{"b.glb"}},
		{ID: "c", Kind: KindHDRTexture, Locator: Locator{"c.hdr"}},
	}
}

func TestLoad_ZeroRequestsReadySynchronously(t *testing.T) {
	l := NewLoader()
	var ready atomic.Int32
	l.OnReady(func() { ready.Add(1) })

	require.NoError(t, l.Load(nil))

	assert.Equal(t, int32(1), ready.Load())
	assert.True(t, l.Ready())
	assert.NoError(t, l.Wait(context.Background()))
	assert.Equal(t, Session{Assets: map[string]LoadedAsset{}}, l.Session())
}

func TestLoad_ReadyAfterLastCompletionInAnyOrder(t *testing.T) {
	fb := newFakeBackend()
	l := newFakeLoader(fb)
	var ready atomic.Int32
	var progress [][2]int
	l.OnReady(func() { ready.Add(1) })
	l.OnProgress(func(completed, total int) { progress = append(progress, [2]int{completed, total}) })

	require.NoError(t, l.Load(threeRequests()))
	calls := fb.collect(t, 3)

	calls["c"].done("C", nil)
	assert.Equal(t, int32(0), ready.Load())
	calls["a"].done("A", nil)
	assert.Equal(t, int32(0), ready.Load())
	assert.False(t, l.Ready())
	calls["b"].done("B", nil)
	assert.Equal(t, int32(1), ready.Load())

	assets := l.Assets()
	require.Len(t, assets, 3)
	assert.Equal(t, "A", assets["a"].Payload)
	assert.Equal(t, "B", assets["b"].Payload)
	assert.Equal(t, "C", assets["c"].Payload)
	assert.Equal(t, KindHDRTexture, assets["c"].Kind)
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, progress)
}

func TestLoad_DuplicateCompletionIsIdempotent(t *testing.T) {
	fb := newFakeBackend()
	l := newFakeLoader(fb)
	var ready atomic.Int32
	l.OnReady(func() { ready.Add(1) })

	require.NoError(t, l.Load(threeRequests()))
	calls := fb.collect(t, 3)

	calls["a"].done("first", nil)
	calls["a"].done("second", nil)
	assert.Equal(t, 1, l.Session().Completed)

	calls["b"].done("B", nil)
	calls["c"].done("C", nil)
	calls["c"].done("C again", nil)

	session := l.Session()
	assert.Equal(t, 3, session.Completed)
	assert.Equal(t, 3, session.Total)
	assert.Equal(t, int32(1), ready.Load())
	p, ok := l.Get("a")
	require.True(t, ok)
	assert.Equal(t, "second", p)
}

func TestLoad_FailStrictDuplicateFailureDoesNotHalt(t *testing.T) {
	fb := newFakeBackend()
	l := newFakeLoader(fb, WithFailurePolicy(FailStrict))
	var ready atomic.Int32
	l.OnReady(func() { ready.Add(1) })

	require.NoError(t, l.Load(threeRequests()))
	calls := fb.collect(t, 3)

	calls["a"].done("A", nil)
	calls["a"].done(nil, errors.New("late failure"))
	calls["b"].done("B", nil)
	calls["c"].done("C", nil)

	require.NoError(t, l.Wait(context.Background()))
	assert.Equal(t, int32(1), ready.Load())
	p, ok := l.Get("a")
	require.True(t, ok)
	assert.Equal(t, "A", p)

	// after ready a duplicate failure leaves Wait settled on success
	calls["b"].done(nil, errors.New("after ready"))
	for i := 0; i < 50; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
	assert.True(t, l.Ready())
}

func TestLoad_FailOpenCountsFailureTowardReady(t *testing.T) {
	fb := newFakeBackend()
	l := newFakeLoader(fb)
	backendErr := errors.New("codec exploded")

	var failedID string
	var failedErr error
	l.OnFailure(func(id string, err error) {
		failedID = id
		failedErr = err
	})

	require.NoError(t, l.Load(threeRequests()))
	calls := fb.collect(t, 3)
	calls["a"].done(nil, backendErr)
	calls["b"].done("B", nil)
	calls["c"].done("C", nil)

	require.NoError(t, l.Wait(context.Background()))
	assert.Equal(t, "a", failedID)
	assert.ErrorIs(t, failedErr, backendErr)
	var loadErr *AssetLoadError
	require.ErrorAs(t, failedErr, &loadErr)
	assert.Equal(t, KindTexture, loadErr.Kind)

	_, ok := l.Get("a")
	assert.False(t, ok)
	session := l.Session()
	assert.Equal(t, 3, session.Completed)
	assert.Equal(t, []string{"a"}, session.Failed)
	assert.Len(t, session.Assets, 2)
}

func TestLoad_FailStrictHaltsSession(t *testing.T) {
	fb := newFakeBackend()
	l := newFakeLoader(fb, WithFailurePolicy(FailStrict))
	var ready atomic.Int32
	l.OnReady(func() { ready.Add(1) })

	require.NoError(t, l.Load(threeRequests()))
	calls := fb.collect(t, 3)
	calls["b"].done("B", nil)
	calls["a"].done(nil, errors.New("404"))
	calls["c"].done("C", nil)

	err := l.Wait(context.Background())
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.False(t, l.Ready())
	assert.Equal(t, int32(0), ready.Load())
	assert.Equal(t, 1, l.Session().Completed)
}

func TestLoad_ValidationHappensBeforeDispatch(t *testing.T) {
	tests := []struct {
		name     string
		requests []LoadRequest
		want     error
	}{
		{
			name: "unknown kind",
			requests: []LoadRequest{
				{ID: "a", Kind: KindTexture, Locator: Locator{"a.png"}},
				{ID: "v", Kind: "video", Locator: Locator{"v.mp4"}},
			},
			want: ErrUnsupportedAssetKind,
		},
		{
			name: "duplicate id",
			requests: []LoadRequest{
				{ID: "a", Kind: KindTexture, Locator: Locator{"a.png"}},
				{ID: "a", Kind: KindModel, Locator: Locator{"a.glb"}},
			},
			want: ErrDuplicateAssetID,
		},
		{
			name: "empty locator",
			requests: []LoadRequest{
				{ID: "a", Kind: KindTexture},
			},
			want: ErrInvalidLocator,
		},
		{
			name: "cube with two faces",
			requests: []LoadRequest{
				{ID: "env", Kind: KindCubeTexture, Locator: Locator{"px.png", "nx.png"}},
			},
			want: ErrInvalidLocator,
		},
		{
			name: "model with wrong extension",
			requests: []LoadRequest{
				{ID: "m", Kind: KindModel, Locator: Locator{"m.obj"}},
			},
			want: ErrInvalidLocator,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := newFakeBackend()
			l := NewLoader(WithBackend(KindTexture, fb))

			err := l.Load(tt.requests)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, fb.calls)
			assert.False(t, l.Ready())

			// a rejected session leaves the loader unstarted
			assert.NoError(t, l.Load(nil))
		})
	}
}

func TestLoad_SecondSessionRejected(t *testing.T) {
	l := NewLoader()
	require.NoError(t, l.Load(nil))
	assert.ErrorIs(t, l.Load(nil), ErrSessionStarted)
}

func TestLoad_GLTFModelAlias(t *testing.T) {
	fb := newFakeBackend()
	l := NewLoader(WithBackend(KindGLTFModel, fb))

	require.NoError(t, l.Load([]LoadRequest{{ID: "m", Kind: KindGLTFModel, Locator: Locator{"m.glb"}}}))
	calls := fb.collect(t, 1)
	calls["m"].done("M", nil)
	assert.True(t, l.Ready())
}

func TestLoad_ResolvesAgainstBaseDir(t *testing.T) {
	fb := newFakeBackend()
	base := t.TempDir()
	abs := filepath.Join(base, "elsewhere", "b.png")
	l := newFakeLoader(fb, WithBaseDir(base))

	require.NoError(t, l.Load([]LoadRequest{
		{ID: "a", Kind: KindTexture, Locator: Locator{"textures/a.png"}},
		{ID: "b", Kind: KindTexture, Locator: Locator{abs}},
		{ID: "c", Kind: KindTexture, Locator: Locator{"https://example.com/c.png"}},
	}))
	calls := fb.collect(t, 3)

	assert.Equal(t, filepath.Join(base, "textures", "a.png"), calls["a"].req.Locator[0])
	assert.Equal(t, abs, calls["b"].req.Locator[0])
	assert.Equal(t, "https://example.com/c.png", calls["c"].req.Locator[0])
}

func TestLoad_SharedEventBus(t *testing.T) {
	bus := event.NewEventBus()
	var ready atomic.Int32
	bus.On(event.EventReady, func(args ...any) { ready.Add(1) })

	l := NewLoader(WithEventBus(bus))
	require.NoError(t, l.Load(nil))
	assert.Equal(t, int32(1), ready.Load())
}

func TestOnReady_Unsubscribe(t *testing.T) {
	l := NewLoader()
	called := false
	unsubscribe := l.OnReady(func() { called = true })
	unsubscribe()

	require.NoError(t, l.Load(nil))
	assert.False(t, called)
}

func TestWait_ContextCancelled(t *testing.T) {
	fb := newFakeBackend()
	l := newFakeLoader(fb)
	require.NoError(t, l.Load(threeRequests()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, l.Wait(ctx), context.DeadlineExceeded)
}

func TestClose_IgnoresLateCompletions(t *testing.T) {
	fb := newFakeBackend()
	l := newFakeLoader(fb)
	require.NoError(t, l.Load(threeRequests()))
	calls := fb.collect(t, 3)

	l.Close()
	calls["a"].done("A", nil)
	assert.Equal(t, 0, l.Session().Completed)
}

func TestParseFailurePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    FailurePolicy
		wantErr bool
	}{
		{"", FailOpen, false},
		{"fail-open", FailOpen, false},
		{"Strict", FailStrict, false},
		{"sometimes", FailOpen, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFailurePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
