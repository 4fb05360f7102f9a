package imaging

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/vincent-petithory/dataurl"
	"golang.org/x/image/bmp"
)

func TestDecode_PNG(t *testing.T) {
	src := createQuadrantImage(40, 20)

	img, format, err := Decode(context.Background(), pngDataURL(t, src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if format != "png" {
		t.Errorf("format: got %s, want png", format)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
		t.Errorf("dimensions: got %dx%d, want 40x20", img.Bounds().Dx(), img.Bounds().Dy())
	}
	if got := rgbAt(img, 0, 0); got != [3]uint8{255, 0, 0} {
		t.Errorf("pixel (0,0): got %v, want red", got)
	}
}

func TestDecode_BMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, createSolidImage(7, 3, color.RGBA{0, 0, 255, 255})); err != nil {
		t.Fatalf("failed to encode bmp: %v", err)
	}

	img, format, err := Decode(context.Background(), dataurl.New(buf.Bytes(), "image/bmp").String())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if format != "bmp" {
		t.Errorf("format: got %s, want bmp", format)
	}
	if img.Bounds().Dx() != 7 || img.Bounds().Dy() != 3 {
		t.Errorf("dimensions: got %dx%d, want 7x3", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		dataURL string
	}{
		{"not a data URL", "hello"},
		{"garbage payload", dataurl.New([]byte("definitely not pixels"), "image/png").String()},
		{"truncated png", dataurl.New([]byte("\x89PNG\r\n\x1a\n"), "image/png").String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(context.Background(), tt.dataURL)
			if !errors.Is(err, ErrDecode) {
				t.Errorf("got %v, want ErrDecode", err)
			}
		})
	}
}

func TestDecode_RejectsOversizedHeader(t *testing.T) {
	// A few hundred bytes whose IHDR claims 65535x65535.
	data := pngWithHeaderSize(t, 65535, 65535)

	_, _, err := Decode(context.Background(), dataurl.New(data, "image/png").String())
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("got %v, want ErrDecode", err)
	}
	if _, err := Inspect(context.Background(), dataurl.New(data, "image/png").String()); !errors.Is(err, ErrDecode) {
		t.Errorf("Inspect: got %v, want ErrDecode", err)
	}
}

func TestCheckPixels(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"small", 640, 480, false},
		{"at budget", MaxPixels, 1, false},
		{"over budget", MaxPixels, 2, true},
		{"zero", 0, 10, true},
		{"overflowing", math.MaxInt, math.MaxInt, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkPixels(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkPixels(%d, %d) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
		})
	}
}

func TestDecode_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Decode(ctx, pngDataURL(t, createSolidImage(2, 2, color.White)))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestInspect(t *testing.T) {
	opaque := pngDataURL(t, createSolidImage(30, 12, color.RGBA{1, 2, 3, 255}))
	info, err := Inspect(context.Background(), opaque)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.Width != 30 || info.Height != 12 {
		t.Errorf("dimensions: got %dx%d, want 30x12", info.Width, info.Height)
	}
	if info.Format != "png" || info.MimeType != "image/png" {
		t.Errorf("format/mime: got %s/%s, want png/image/png", info.Format, info.MimeType)
	}
	if info.HasAlpha {
		t.Error("opaque image reported HasAlpha")
	}
	if info.PayloadBytes == 0 {
		t.Error("PayloadBytes should be non-zero")
	}

	translucent := pngDataURL(t, createSolidImage(4, 4, color.NRGBA{1, 2, 3, 128}))
	info, err = Inspect(context.Background(), translucent)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if !info.HasAlpha {
		t.Error("translucent image should report HasAlpha")
	}

	if _, err := Inspect(context.Background(), "not a data URL"); !errors.Is(err, ErrDecode) {
		t.Errorf("malformed input: got %v, want ErrDecode", err)
	}
}
