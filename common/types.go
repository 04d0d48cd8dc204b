// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
// Loaded textures and the externally produced audio spectrum buffer are both exposed in this form.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// DefaultSamplerStagingData returns the linear/repeat sampler used when an asset does not specify its own.
//
// Returns:
//   - SamplerStagingData: linear filtering, repeat addressing, full LOD range
func DefaultSamplerStagingData() SamplerStagingData {
	return SamplerStagingData{
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}

// ClampedSamplerStagingData returns a linear sampler that clamps to the texture edge.
// Cube map faces use this to avoid seams.
//
// Returns:
//   - SamplerStagingData: linear filtering, clamp-to-edge addressing
func ClampedSamplerStagingData() SamplerStagingData {
	s := DefaultSamplerStagingData()
	s.AddressModeU = wgpu.AddressModeClampToEdge
	s.AddressModeV = wgpu.AddressModeClampToEdge
	s.AddressModeW = wgpu.AddressModeClampToEdge
	return s
}

// ImportedTexture represents image data read from disk or embedded in another asset.
// For embedded textures the Data field contains raw image bytes.
// For external textures the Path field contains the file path.
type ImportedTexture struct {
	// Name is an identifier for this texture (e.g., "diffuse", "px").
	Name string

	// Path is the file path for external textures (empty for embedded).
	Path string

	// Data contains raw encoded image bytes (PNG/JPEG/WebP/BMP).
	Data []byte

	// MimeType indicates the image format (e.g., "image/png", "image/jpeg").
	MimeType string

	// Width is the texture width in pixels (populated after Decode).
	Width int

	// Height is the texture height in pixels (populated after Decode).
	Height int

	// SamplerData holds sampler parameters for the texture.
	// When nil, DefaultSamplerStagingData applies.
	SamplerData *SamplerStagingData
}

// Decode decodes the texture to raw RGBA pixel data.
// Uses either embedded Data bytes or loads from Path on disk.
// Supports PNG, JPEG, WebP and BMP.
// Reference: https://pkg.go.dev/image
//
// Returns:
//   - []byte: raw RGBA pixel data (4 bytes per pixel, row-major order)
//   - uint32: texture width in pixels
//   - uint32: texture height in pixels
//   - error: error if decoding fails
func (t *ImportedTexture) Decode() ([]byte, uint32, uint32, error) {
	if t == nil {
		return nil, 0, 0, fmt.Errorf("texture is nil")
	}

	var img image.Image
	var err error

	if len(t.Data) > 0 {
		img, _, err = image.Decode(bytes.NewReader(t.Data))
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to decode embedded image: %w", err)
		}
	} else if t.Path != "" {
		file, fileErr := os.Open(t.Path)
		if fileErr != nil {
			return nil, 0, 0, fmt.Errorf("failed to open texture file %s: %w", t.Path, fileErr)
		}
		defer file.Close()

		img, _, err = image.Decode(file)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to decode texture file %s: %w", t.Path, err)
		}
	} else {
		return nil, 0, 0, fmt.Errorf("texture has neither data nor path")
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	t.Width = width
	t.Height = height

	return rgba.Pix, uint32(width), uint32(height), nil
}

// Ray is a half-line in world space. Direction is expected to be normalized.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the ray.
//
// Parameters:
//   - t: distance from the origin
//
// Returns:
//   - mgl32.Vec3: Origin + Direction*t
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// BoundingBox is an axis-aligned box described by its minimum and maximum corners.
type BoundingBox struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// BoxFromSize builds a box of the given extents centered on the origin.
//
// Parameters:
//   - width, height, depth: full extents along X, Y and Z
//
// Returns:
//   - BoundingBox: the centered box
func BoxFromSize(width, height, depth float32) BoundingBox {
	half := mgl32.Vec3{width, height, depth}.Mul(0.5)
	return BoundingBox{Min: half.Mul(-1), Max: half}
}

// Width returns the extent of the box along X.
func (b BoundingBox) Width() float32 {
	return b.Max[0] - b.Min[0]
}

// Empty reports whether the box has no extent along any axis.
func (b BoundingBox) Empty() bool {
	return b.Min == b.Max
}

// Translate returns the box moved by the given offset.
//
// Parameters:
//   - offset: the translation to apply to both corners
//
// Returns:
//   - BoundingBox: the translated box
func (b BoundingBox) Translate(offset mgl32.Vec3) BoundingBox {
	return BoundingBox{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// Union returns the smallest box containing both boxes. An empty receiver is treated as unset.
//
// Parameters:
//   - o: the box to merge with
//
// Returns:
//   - BoundingBox: the merged box
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	if b.Empty() {
		return o
	}
	out := b
	for i := 0; i < 3; i++ {
		out.Min[i] = min(out.Min[i], o.Min[i])
		out.Max[i] = max(out.Max[i], o.Max[i])
	}
	return out
}
