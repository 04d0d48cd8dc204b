package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-audioviz/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// ModelAsset is the payload of a model request.
type ModelAsset struct {
	// Name is the file name without extension.
	Name string
	// Path is the resolved file path.
	Path string
	// Document is the parsed glTF document, kept for rendering.
	Document *gltf.Document
	// Bounds is the local-space box enclosing every primitive's POSITION accessor.
	// Empty when the file declares no accessor bounds.
	Bounds common.BoundingBox
}

// gltfLoaderBackendImpl is the implementation of gltfLoaderBackend.
type gltfLoaderBackendImpl struct{}

// gltfLoaderBackend is a Backend implementation for glTF/GLB files.
// Parsing is delegated to github.com/qmuntal/gltf.
type gltfLoaderBackend interface {
	Backend
}

var _ gltfLoaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Returns:
//   - gltfLoaderBackend: the loader backend for glTF/GLB files
func newGLTFLoaderBackend() gltfLoaderBackend {
	return &gltfLoaderBackendImpl{}
}

func (b *gltfLoaderBackendImpl) Validate(locator Locator) error {
	if err := singlePath(locator); err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(locator[0])); ext {
	case ".gltf", ".glb":
		return nil
	default:
		return fmt.Errorf("%w: unsupported model format %q", ErrInvalidLocator, ext)
	}
}

func (b *gltfLoaderBackendImpl) Load(ctx context.Context, req LoadRequest, done CompletionFunc) {
	if err := ctx.Err(); err != nil {
		done(nil, err)
		return
	}

	path := req.Locator[0]
	doc, err := gltf.Open(path)
	if err != nil {
		done(nil, fmt.Errorf("failed to open %s: %w", path, err))
		return
	}

	done(&ModelAsset{
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:     path,
		Document: doc,
		Bounds:   documentBounds(doc),
	}, nil)
}

// documentBounds unions the min/max of every primitive's POSITION accessor.
// Node transforms are not applied; the scene places models by their configured position.
func documentBounds(doc *gltf.Document) common.BoundingBox {
	var box common.BoundingBox
	for _, mesh := range doc.Meshes {
		for _, prim := range mesh.Primitives {
			idx, ok := prim.Attributes[gltf.POSITION]
			if !ok || int(idx) >= len(doc.Accessors) {
				continue
			}
			acc := doc.Accessors[idx]
			if len(acc.Min) < 3 || len(acc.Max) < 3 {
				continue
			}
			box = box.Union(common.BoundingBox{
				Min: mgl32.Vec3{float32(acc.Min[0]), float32(acc.Min[1]), float32(acc.Min[2])},
				Max: mgl32.Vec3{float32(acc.Max[0]), float32(acc.Max[1]), float32(acc.Max[2])},
			})
		}
	}
	return box
}
