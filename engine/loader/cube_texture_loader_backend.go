package loader

import (
	"context"
	"fmt"

	"github.com/Carmen-Shannon/oxy-audioviz/common"
)

// CubeFaces is the face order of a cube texture locator.
var CubeFaces = [6]string{"px", "nx", "py", "ny", "pz", "nz"}

// CubeTextureAsset is the payload of a cube texture request.
type CubeTextureAsset struct {
	// Faces holds the decoded faces in CubeFaces order.
	Faces [6]*TextureAsset
	// Size is the shared edge length of every face.
	Size uint32
}

// cubeTextureLoaderBackendImpl is the implementation of cubeTextureLoaderBackend.
type cubeTextureLoaderBackendImpl struct {
	sampler common.SamplerStagingData
}

// cubeTextureLoaderBackend is a Backend implementation for six-image cube maps.
type cubeTextureLoaderBackend interface {
	Backend
}

var _ cubeTextureLoaderBackend = &cubeTextureLoaderBackendImpl{}

// newCubeTextureLoaderBackend creates a cube texture backend using a clamp-to-edge sampler.
//
// Returns:
//   - cubeTextureLoaderBackend: the loader backend for cube maps
func newCubeTextureLoaderBackend() cubeTextureLoaderBackend {
	return &cubeTextureLoaderBackendImpl{sampler: common.ClampedSamplerStagingData()}
}

func (b *cubeTextureLoaderBackendImpl) Validate(locator Locator) error {
	if len(locator) != len(CubeFaces) {
		return fmt.Errorf("%w: cube texture needs %d faces, got %d", ErrInvalidLocator, len(CubeFaces), len(locator))
	}
	for i, p := range locator {
		if p == "" {
			return fmt.Errorf("%w: empty path for face %s", ErrInvalidLocator, CubeFaces[i])
		}
	}
	return nil
}

func (b *cubeTextureLoaderBackendImpl) Load(ctx context.Context, req LoadRequest, done CompletionFunc) {
	cube := &CubeTextureAsset{}
	for i, path := range req.Locator {
		if err := ctx.Err(); err != nil {
			done(nil, err)
			return
		}
		face, err := decodeTexture(path, b.sampler)
		if err != nil {
			done(nil, fmt.Errorf("face %s: %w", CubeFaces[i], err))
			return
		}
		if face.Texture.Width != face.Texture.Height {
			done(nil, fmt.Errorf("face %s is %dx%d, cube faces must be square", CubeFaces[i], face.Texture.Width, face.Texture.Height))
			return
		}
		if i > 0 && face.Texture.Width != cube.Size {
			done(nil, fmt.Errorf("face %s is %d wide, expected %d", CubeFaces[i], face.Texture.Width, cube.Size))
			return
		}
		cube.Size = face.Texture.Width
		cube.Faces[i] = face
	}
	done(cube, nil)
}
