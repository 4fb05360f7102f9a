package picker

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"

	dimaging "github.com/disintegration/imaging"
	"golang.org/x/sync/semaphore"

	"github.com/ironsheep/image-picker/internal/host"
	"github.com/ironsheep/image-picker/internal/imaging"
	"github.com/ironsheep/image-picker/internal/logging"
)

// Picker runs the pick-and-encode operation against one host dialog.
//
// A Picker owns a single file-input control, created on first use and kept
// between successful calls. Any failed call closes the control; the next
// call creates a fresh one. Concurrent Pick calls are serialized.
type Picker struct {
	dialog    host.Dialog
	log       logging.Logger
	newCanvas func(width, height int) (*imaging.Canvas, error)

	sem *semaphore.Weighted

	mu    sync.Mutex
	input host.Input
}

// Option configures a Picker.
type Option func(*Picker)

// WithLogger sets the logger. The default discards output.
func WithLogger(l logging.Logger) Option {
	return func(p *Picker) {
		p.log = logging.OrNop(l)
	}
}

// WithCanvasFactory replaces the drawing surface constructor.
func WithCanvasFactory(fn func(width, height int) (*imaging.Canvas, error)) Option {
	return func(p *Picker) {
		if fn != nil {
			p.newCanvas = fn
		}
	}
}

// New returns a Picker that selects files through dialog.
func New(dialog host.Dialog, opts ...Option) *Picker {
	p := &Picker{
		dialog:    dialog,
		log:       logging.Nop(),
		newCanvas: imaging.NewCanvas,
		sem:       semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pick lets the user choose one image and returns it as a data URL.
//
// With req.Size == NoResize the file's bytes are returned as read, in their
// original encoding. Otherwise the largest square of the image, anchored by
// req.Anchor, is scaled to req.Size x req.Size and returned as a PNG data URL.
//
// Pick blocks while the chooser is open and while the file is read and
// decoded. It has no timeout of its own; cancel ctx to abandon it. Failures
// wrap one of the package's Err values, or ctx.Err().
func (p *Picker) Pick(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	filter, err := imaging.ParseFilter(req.Filter)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer p.sem.Release(1)

	dataURL, err := p.pick(ctx, req, filter)
	if err != nil {
		p.closeInput()
		p.log.Printf("Image pick failed: %v", err)
		return "", err
	}
	return dataURL, nil
}

func (p *Picker) pick(ctx context.Context, req Request, filter dimaging.ResampleFilter) (string, error) {
	input, err := p.ensureInput(req.Accept)
	if err != nil {
		return "", err
	}

	files, err := input.Open(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if errors.Is(err, host.ErrRead) {
			return "", fmt.Errorf("%w: %v", ErrUnreadableFile, err)
		}
		return "", fmt.Errorf("file selection failed: %w", err)
	}

	file, err := validateSelection(files, req.MaxFileSizeMB)
	if err != nil {
		return "", err
	}
	p.log.Debugf("Selected %s (%s, %d bytes)", file.Name, file.MimeType, file.Size)

	dataURL, err := host.ReadDataURL(ctx, file)
	if err != nil {
		if errors.Is(err, host.ErrRead) {
			return "", fmt.Errorf("%w: %v", ErrUnreadableFile, err)
		}
		return "", err
	}

	if req.Size == NoResize {
		return dataURL, nil
	}

	img, format, err := imaging.Decode(ctx, dataURL)
	if err != nil {
		if errors.Is(err, imaging.ErrDecode) {
			return "", fmt.Errorf("%w: %v", ErrUndecodableImage, err)
		}
		return "", err
	}
	p.log.Debugf("Decoded %s %dx%d", format, img.Bounds().Dx(), img.Bounds().Dy())

	return p.thumbnail(img, req.Size, req.Anchor, filter)
}

// thumbnail draws the anchored square of img onto a size x size canvas and
// exports it. The canvas is released before returning.
func (p *Picker) thumbnail(img image.Image, size int, anchor imaging.Anchor, filter dimaging.ResampleFilter) (string, error) {
	src := imaging.SquareRegion(img.Bounds(), anchor)
	if src.Empty() {
		return "", fmt.Errorf("%w: image has no pixels", ErrUndecodableImage)
	}

	canvas, err := p.newCanvas(size, size)
	if err != nil {
		return "", fmt.Errorf("failed to create canvas: %w", err)
	}
	defer canvas.Release()

	if err := canvas.DrawImage(img, src, image.Rect(0, 0, size, size), filter); err != nil {
		return "", fmt.Errorf("failed to draw image: %w", err)
	}
	return canvas.ToDataURL()
}

// ensureInput returns the picker's control, creating it if needed, with its
// filter set to accept.
func (p *Picker) ensureInput(accept []string) (host.Input, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.input == nil {
		input, err := p.dialog.NewInput()
		if err != nil {
			return nil, fmt.Errorf("failed to create file input: %w", err)
		}
		p.input = input
	}
	p.input.SetAccept(accept)
	return p.input, nil
}

func (p *Picker) closeInput() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.input == nil {
		return
	}
	if err := p.input.Close(); err != nil {
		p.log.Printf("Failed to close file input: %v", err)
	}
	p.input = nil
}

// Close releases the picker's file input, if any. The Picker stays usable;
// the next Pick creates a new control.
func (p *Picker) Close() error {
	p.closeInput()
	return nil
}

// validateSelection checks that files holds exactly one image no larger
// than maxMB megabytes.
func validateSelection(files []host.File, maxMB float64) (host.File, error) {
	if len(files) != 1 {
		return host.File{}, fmt.Errorf("%w: got %d", ErrWrongFileCount, len(files))
	}

	f := files[0]
	if category, _, _ := strings.Cut(f.MimeType, "/"); category != "image" {
		return host.File{}, fmt.Errorf("%w: %q has type %q", ErrNotAnImage, f.Name, f.MimeType)
	}
	if float64(f.Size)/MB > maxMB {
		return host.File{}, fmt.Errorf("%w: %q is %.2f MB, limit %g MB", ErrFileTooLarge, f.Name, float64(f.Size)/MB, maxMB)
	}
	return f, nil
}
