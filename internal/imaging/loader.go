package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/anthonynsimon/bild/clone"
	"github.com/vincent-petithory/dataurl"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrDecode marks failures to turn data URL bytes into pixels.
var ErrDecode = errors.New("image could not be decoded")

// MaxPixels bounds width*height of any image Decode materializes or any
// Canvas created. Headers are checked before pixel buffers are allocated.
const MaxPixels = 50_000_000

// checkPixels reports whether a width x height buffer stays within MaxPixels.
func checkPixels(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if width > MaxPixels/height {
		return fmt.Errorf("dimensions %dx%d exceed %d pixels", width, height, MaxPixels)
	}
	return nil
}

// Decode parses a data URL and decodes its payload into a pixel grid.
//
// Supported formats are PNG, JPEG, GIF (first frame), BMP and WebP. The
// declared media type of the data URL is not trusted; the payload is sniffed.
//
// Returns:
//   - image.Image: the decoded pixels materialized as *image.RGBA.
//   - string: the detected format name ("png", "jpeg", "gif", "bmp", "webp").
//   - error: wraps ErrDecode if the data URL or its payload is malformed or
//     larger than MaxPixels, or ctx.Err() if ctx is done before decoding finishes.
func Decode(ctx context.Context, dataURL string) (image.Image, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	du, err := parseDataURL(dataURL)
	if err != nil {
		return nil, "", err
	}
	return decodePayload(ctx, du.Data)
}

func parseDataURL(dataURL string) (*dataurl.DataURL, error) {
	du, err := dataurl.DecodeString(dataURL)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed data URL: %v", ErrDecode, err)
	}
	return du, nil
}

// decodePayload reads the header of data, enforces MaxPixels and decodes.
func decodePayload(ctx context.Context, data []byte) (image.Image, string, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := checkPixels(cfg.Width, cfg.Height); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	return clone.AsRGBA(img), format, nil
}

// ImageInfo contains metadata about an encoded image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format detected from the payload: "png", "jpeg", "gif", "bmp" or "webp".
	Format string `json:"format"`

	// MimeType is the media type declared by the data URL.
	MimeType string `json:"mime_type"`

	// HasAlpha indicates whether any pixel is not fully opaque.
	HasAlpha bool `json:"has_alpha"`

	// PayloadBytes is the size of the decoded payload in bytes.
	PayloadBytes int `json:"payload_bytes"`
}

// Inspect decodes a data URL and reports its dimensions and format.
func Inspect(ctx context.Context, dataURL string) (*ImageInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	du, err := parseDataURL(dataURL)
	if err != nil {
		return nil, err
	}
	img, format, err := decodePayload(ctx, du.Data)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		Format:       format,
		MimeType:     du.MediaType.ContentType(),
		HasAlpha:     !img.(*image.RGBA).Opaque(),
		PayloadBytes: len(du.Data),
	}, nil
}
