package loader

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: uint8(x), B: uint8(y), A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

// loadOne runs a single request through a default loader and returns its completion outcome.
func loadOne(t *testing.T, req LoadRequest) (any, error) {
	t.Helper()
	l := NewLoader(WithWorkers(2, 8))
	var failure error
	l.OnFailure(func(id string, err error) { failure = err })
	require.NoError(t, l.Load([]LoadRequest{req}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, l.Wait(ctx))

	if failure != nil {
		return nil, failure
	}
	payload, ok := l.Get(req.ID)
	require.True(t, ok)
	return payload, nil
}

func TestTextureBackend_DecodesPNG(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "noise.png"), 4, 2)

	payload, err := loadOne(t, LoadRequest{ID: "noise", Kind: KindTexture, Locator: Locator{filepath.Join(dir, "noise.png")}})
	require.NoError(t, err)

	tex, ok := payload.(*TextureAsset)
	require.True(t, ok)
	assert.Equal(t, "noise", tex.Name)
	assert.Equal(t, "image/png", tex.MIME)
	assert.Equal(t, uint32(4), tex.Texture.Width)
	assert.Equal(t, uint32(2), tex.Texture.Height)
	require.Len(t, tex.Texture.Pixels, 4*2*4)
	// pixel (3, 1): R=255 G=3 B=1 A=255
	off := (1*4 + 3) * 4
	assert.Equal(t, []byte{255, 3, 1, 255}, tex.Texture.Pixels[off:off+4])
}

func TestTextureBackend_RejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a png"), 0o644))

	_, err := loadOne(t, LoadRequest{ID: "notes", Kind: KindTexture, Locator: Locator{path}})
	assert.ErrorContains(t, err, "not a recognised image")
}

func TestTextureBackend_MissingFile(t *testing.T) {
	_, err := loadOne(t, LoadRequest{ID: "gone", Kind: KindTexture, Locator: Locator{filepath.Join(t.TempDir(), "gone.png")}})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCubeTextureBackend(t *testing.T) {
	dir := t.TempDir()
	var faces Locator
	for _, name := range CubeFaces {
		p := filepath.Join(dir, name+".png")
		writePNG(t, p, 2, 2)
		faces = append(faces, p)
	}

	payload, err := loadOne(t, LoadRequest{ID: "env", Kind: KindCubeTexture, Locator: faces})
	require.NoError(t, err)
	cube := payload.(*CubeTextureAsset)
	assert.Equal(t, uint32(2), cube.Size)
	for i, face := range cube.Faces {
		require.NotNil(t, face)
		assert.Equal(t, CubeFaces[i], face.Name)
	}

	writePNG(t, faces[4], 4, 4)
	_, err = loadOne(t, LoadRequest{ID: "env", Kind: KindCubeTexture, Locator: faces})
	assert.ErrorContains(t, err, "face pz")
}

func TestHDRTextureBackend(t *testing.T) {
	dir := t.TempDir()
	body := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	good := filepath.Join(dir, "sky.hdr")
	header := "#?RADIANCE\nFORMAT=32-bit_rle_rgbe\nEXPOSURE=1.0\n\n-Y 2 +X 1\n"
	require.NoError(t, os.WriteFile(good, append([]byte(header), body...), 0o644))

	payload, err := loadOne(t, LoadRequest{ID: "sky", Kind: KindHDRTexture, Locator: Locator{good}})
	require.NoError(t, err)
	hdr := payload.(*HDRTextureAsset)
	assert.Equal(t, 1, hdr.Width)
	assert.Equal(t, 2, hdr.Height)
	assert.Equal(t, body, hdr.Data)

	bad := filepath.Join(dir, "bad.hdr")
	require.NoError(t, os.WriteFile(bad, []byte("P6\n1 1\n255\n"), 0o644))
	_, err = loadOne(t, LoadRequest{ID: "bad", Kind: KindHDRTexture, Locator: Locator{bad}})
	assert.ErrorContains(t, err, "signature")
}

const triangleGLTF = `{
  "asset": {"version": "2.0"},
  "buffers": [{"byteLength": 36, "uri": "data:application/octet-stream;base64,%s"}],
  "bufferViews": [{"buffer": 0, "byteLength": 36}],
  "accessors": [{
    "bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3",
    "min": [-1, -2, -0.5], "max": [1, 2, 0.5]
  }],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}]
}`

func TestGLTFBackend_ReadsBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Circular.gltf")
	doc := strings.Replace(triangleGLTF, "%s", strings.Repeat("A", 48), 1)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	payload, err := loadOne(t, LoadRequest{ID: "circular", Kind: KindModel, Locator: Locator{path}})
	require.NoError(t, err)

	m := payload.(*ModelAsset)
	assert.Equal(t, "Circular", m.Name)
	require.NotNil(t, m.Document)
	assert.Equal(t, mgl32.Vec3{-1, -2, -0.5}, m.Bounds.Min)
	assert.Equal(t, mgl32.Vec3{1, 2, 0.5}, m.Bounds.Max)
	assert.InDelta(t, 2, m.Bounds.Width(), 1e-6)
}

func TestGLTFBackend_BrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.glb")
	require.NoError(t, os.WriteFile(path, []byte("glTF but not really"), 0o644))

	_, err := loadOne(t, LoadRequest{ID: "broken", Kind: KindModel, Locator: Locator{path}})
	var loadErr *AssetLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "broken", loadErr.ID)
}
