package main

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-audioviz/engine/config"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/loader"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/scene"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartPosition(t *testing.T) {
	cfg := config.CameraConfig{}
	assert.Equal(t, mgl32.Vec3{0, 0, 20}, startPosition(cfg, 1280, 720))
	assert.Equal(t, mgl32.Vec3{0, 0, 50}, startPosition(cfg, 720, 1280))

	cfg.Position = &[3]float32{1, 2, 3}
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, startPosition(cfg, 720, 1280))
}

func TestLoadRequests(t *testing.T) {
	reqs := loadRequests([]config.AssetConfig{
		{Name: "sun", Type: "model", Path: config.Paths{"models/sun.glb"}},
		{Name: "sky", Type: "cubeTexture", Path: config.Paths{"px", "nx", "py", "ny", "pz", "nz"}},
	})

	require.Len(t, reqs, 2)
	assert.Equal(t, "sun", reqs[0].ID)
	assert.Equal(t, loader.KindModel, reqs[0].Kind)
	assert.Equal(t, loader.Locator{"models/sun.glb"}, reqs[0].Locator)
	assert.Equal(t, loader.KindCubeTexture, reqs[1].Kind)
	assert.Len(t, reqs[1].Locator, 6)
}

func TestObjectSpecs_SongLinkFallback(t *testing.T) {
	off := false
	cfg := &config.Config{
		Song: config.SongConfig{Name: "track", URL: "https://example.com/track"},
		Objects: []config.ObjectConfig{
			{Name: "Panel", Focusable: true, Position: [3]float32{1, 2, 3}},
			{Name: "AudioInfo", Highlight: &off},
			{Name: "Credits", Link: "https://example.com/credits"},
		},
	}

	specs := objectSpecs(cfg)
	require.Len(t, specs, 3)

	assert.Equal(t, "", specs[0].Link)
	assert.True(t, specs[0].Highlight)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, specs[0].Position)

	assert.Equal(t, "https://example.com/track", specs[1].Link)
	assert.False(t, specs[1].Highlight)

	assert.Equal(t, "https://example.com/credits", specs[2].Link)
}

func TestCursorShape(t *testing.T) {
	assert.Equal(t, window.CursorHand, cursorShape(scene.CursorPointer))
	assert.Equal(t, window.CursorArrow, cursorShape(scene.CursorDefault))
}

func TestKeyState(t *testing.T) {
	k := &keyState{down: make(map[uint32]bool)}
	assert.False(t, k.held(7))
	k.set(7, true)
	assert.True(t, k.held(7))
	k.set(7, false)
	assert.False(t, k.held(7))
}
