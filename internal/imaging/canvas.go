package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/vincent-petithory/dataurl"
)

// ExportMimeType is the encoding ToDataURL produces.
const ExportMimeType = "image/png"

// ErrCanvasReleased is returned by Canvas methods called after Release.
var ErrCanvasReleased = errors.New("canvas has been released")

// Canvas is an off-screen 2D drawing surface of fixed size.
//
// A Canvas starts fully transparent. DrawImage composites a source region
// scaled into a destination rectangle; ToDataURL exports the current pixels.
// Release drops the pixel buffer, after which every method fails.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	img *image.NRGBA
}

// NewCanvas creates a transparent width x height canvas of at most MaxPixels.
func NewCanvas(width, height int) (*Canvas, error) {
	if err := checkPixels(width, height); err != nil {
		return nil, fmt.Errorf("invalid canvas size: %w", err)
	}
	return &Canvas{img: imaging.New(width, height, color.Transparent)}, nil
}

// Bounds returns the canvas rectangle, or an empty rectangle once released.
func (c *Canvas) Bounds() image.Rectangle {
	if c.img == nil {
		return image.Rectangle{}
	}
	return c.img.Bounds()
}

// DrawImage draws the src region of img scaled to fill dst on the canvas.
//
// src is given in img's coordinate space and must lie within img.Bounds().
// dst is given in canvas coordinates and must lie within Bounds().
func (c *Canvas) DrawImage(img image.Image, src, dst image.Rectangle, filter imaging.ResampleFilter) error {
	if c.img == nil {
		return ErrCanvasReleased
	}
	if src.Empty() || dst.Empty() {
		return fmt.Errorf("invalid draw: source %v, destination %v", src, dst)
	}
	if !src.In(img.Bounds()) {
		return fmt.Errorf("source region %v outside image bounds %v", src, img.Bounds())
	}
	if !dst.In(c.img.Bounds()) {
		return fmt.Errorf("destination %v outside canvas bounds %v", dst, c.img.Bounds())
	}

	region := imaging.Crop(img, src)
	if region.Bounds().Dx() != dst.Dx() || region.Bounds().Dy() != dst.Dy() {
		region = imaging.Resize(region, dst.Dx(), dst.Dy(), filter)
	}
	c.img = imaging.Overlay(c.img, region, dst.Min, 1.0)
	return nil
}

// Image returns the canvas pixels. The returned image must not be modified.
func (c *Canvas) Image() image.Image {
	if c.img == nil {
		return nil
	}
	return c.img
}

// ToDataURL encodes the canvas as PNG and returns it as a data URL.
func (c *Canvas) ToDataURL() (string, error) {
	if c.img == nil {
		return "", ErrCanvasReleased
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, c.img); err != nil {
		return "", fmt.Errorf("failed to encode canvas: %w", err)
	}
	return dataurl.New(buf.Bytes(), ExportMimeType).String(), nil
}

// Release frees the pixel buffer. It is safe to call more than once.
func (c *Canvas) Release() {
	c.img = nil
}

// Released reports whether Release has been called.
func (c *Canvas) Released() bool {
	return c.img == nil
}
