package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-audioviz/common"
	"github.com/h2non/filetype"
)

// TextureAsset is the payload of a texture request: decoded RGBA pixels plus the sampler they are bound with.
type TextureAsset struct {
	Name    string
	Path    string
	MIME    string
	Texture common.TextureStagingData
	Sampler common.SamplerStagingData
}

// textureLoaderBackendImpl is the implementation of textureLoaderBackend.
type textureLoaderBackendImpl struct {
	sampler common.SamplerStagingData
}

// textureLoaderBackend is a Backend implementation for 2D images (PNG, JPEG, WebP, BMP).
type textureLoaderBackend interface {
	Backend
}

var _ textureLoaderBackend = &textureLoaderBackendImpl{}

// newTextureLoaderBackend creates a texture backend using the default repeat sampler.
//
// Returns:
//   - textureLoaderBackend: the loader backend for 2D images
func newTextureLoaderBackend() textureLoaderBackend {
	return &textureLoaderBackendImpl{sampler: common.DefaultSamplerStagingData()}
}

func (b *textureLoaderBackendImpl) Validate(locator Locator) error {
	return singlePath(locator)
}

func (b *textureLoaderBackendImpl) Load(ctx context.Context, req LoadRequest, done CompletionFunc) {
	if err := ctx.Err(); err != nil {
		done(nil, err)
		return
	}
	tex, err := decodeTexture(req.Locator[0], b.sampler)
	if err != nil {
		done(nil, err)
		return
	}
	done(tex, nil)
}

// decodeTexture sniffs the file type, rejects non-images, and decodes the pixels to RGBA.
//
// Parameters:
//   - path: the image file path
//   - sampler: the sampler attached to the result
//
// Returns:
//   - *TextureAsset: the decoded texture
//   - error: error if the file cannot be read, is not an image, or fails to decode
func decodeTexture(path string, sampler common.SamplerStagingData) (*TextureAsset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read texture %s: %w", path, err)
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !filetype.IsImage(data) {
		return nil, fmt.Errorf("%s is not a recognised image", path)
	}

	imported := &common.ImportedTexture{
		Name:        strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:        path,
		Data:        data,
		MimeType:    kind.MIME.Value,
		SamplerData: &sampler,
	}
	pixels, width, height, err := imported.Decode()
	if err != nil {
		return nil, fmt.Errorf("%s (%s): %w", path, imported.MimeType, err)
	}

	return &TextureAsset{
		Name:    imported.Name,
		Path:    path,
		MIME:    imported.MimeType,
		Texture: common.TextureStagingData{Pixels: pixels, Width: width, Height: height},
		Sampler: *imported.SamplerData,
	}, nil
}
