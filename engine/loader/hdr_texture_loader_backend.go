package loader

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
)

// HDRTextureAsset is the payload of an HDR texture request. Data holds the encoded scanlines untouched;
// decoding them is left to the renderer.
type HDRTextureAsset struct {
	Path   string
	Width  int
	Height int
	Data   []byte
}

// hdrTextureLoaderBackendImpl is the implementation of hdrTextureLoaderBackend.
type hdrTextureLoaderBackendImpl struct{}

// hdrTextureLoaderBackend is a Backend implementation for Radiance (.hdr) environment maps.
// It validates the header and resolution line only.
type hdrTextureLoaderBackend interface {
	Backend
}

var _ hdrTextureLoaderBackend = &hdrTextureLoaderBackendImpl{}

// newHDRTextureLoaderBackend creates a new HDR texture backend.
//
// Returns:
//   - hdrTextureLoaderBackend: the loader backend for Radiance files
func newHDRTextureLoaderBackend() hdrTextureLoaderBackend {
	return &hdrTextureLoaderBackendImpl{}
}

func (b *hdrTextureLoaderBackendImpl) Validate(locator Locator) error {
	return singlePath(locator)
}

func (b *hdrTextureLoaderBackendImpl) Load(ctx context.Context, req LoadRequest, done CompletionFunc) {
	if err := ctx.Err(); err != nil {
		done(nil, err)
		return
	}
	path := req.Locator[0]
	raw, err := os.ReadFile(path)
	if err != nil {
		done(nil, fmt.Errorf("failed to read %s: %w", path, err))
		return
	}
	asset, err := parseHDRHeader(raw)
	if err != nil {
		done(nil, fmt.Errorf("%s: %w", path, err))
		return
	}
	asset.Path = path
	done(asset, nil)
}

// parseHDRHeader reads the Radiance header: the #?RADIANCE or #?RGBE signature, variable lines up to a
// blank line, then the resolution line (-Y height +X width).
func parseHDRHeader(raw []byte) (*HDRTextureAsset, error) {
	r := bufio.NewReader(bytes.NewReader(raw))
	consumed := 0
	readLine := func() (string, error) {
		line, err := r.ReadString('\n')
		consumed += len(line)
		if err != nil {
			return "", fmt.Errorf("truncated header: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	sig, err := readLine()
	if err != nil {
		return nil, err
	}
	if sig != "#?RADIANCE" && sig != "#?RGBE" {
		return nil, fmt.Errorf("missing radiance signature")
	}

	for {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			break
		}
		if format, ok := strings.CutPrefix(line, "FORMAT="); ok && format != "32-bit_rle_rgbe" {
			return nil, fmt.Errorf("unsupported format %q", format)
		}
	}

	res, err := readLine()
	if err != nil {
		return nil, err
	}
	var height, width int
	if _, err := fmt.Sscanf(res, "-Y %d +X %d", &height, &width); err != nil {
		return nil, fmt.Errorf("bad resolution line %q: %w", res, err)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bad resolution %dx%d", width, height)
	}

	return &HDRTextureAsset{
		Width:  width,
		Height: height,
		Data:   raw[consumed:],
	}, nil
}
