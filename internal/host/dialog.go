package host

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"sort"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ncruces/zenity"
)

// ErrInputClosed is returned by Input.Open after Close.
var ErrInputClosed = errors.New("file input has been closed")

// Dialog creates file-input controls on the host.
type Dialog interface {
	// NewInput creates a hidden file-input control. The caller owns it and
	// must Close it when it is no longer wanted.
	NewInput() (Input, error)
}

// Input is a reusable single-file selection control.
type Input interface {
	// SetAccept replaces the MIME type filter shown by the chooser.
	SetAccept(mimeTypes []string)

	// Open shows the chooser and blocks until the user completes or
	// dismisses it. A dismissed chooser yields no files and a nil error.
	// A chosen path that cannot be inspected yields an error wrapping ErrRead.
	Open(ctx context.Context) ([]File, error)

	// Close detaches the control. Closing twice is a no-op.
	Close() error
}

// NativeDialog opens the operating system's file chooser.
type NativeDialog struct {
	// Title is shown in the chooser's title bar.
	Title string
}

// NewInput returns a control backed by the native chooser.
func (d NativeDialog) NewInput() (Input, error) {
	return &nativeInput{title: d.Title}, nil
}

type nativeInput struct {
	mu     sync.Mutex
	title  string
	accept []string
	closed bool
}

func (n *nativeInput) SetAccept(mimeTypes []string) {
	n.mu.Lock()
	n.accept = append([]string(nil), mimeTypes...)
	n.mu.Unlock()
}

func (n *nativeInput) Open(ctx context.Context) ([]File, error) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil, ErrInputClosed
	}
	opts := []zenity.Option{zenity.Context(ctx)}
	if n.title != "" {
		opts = append(opts, zenity.Title(n.title))
	}
	if patterns := FilterPatterns(n.accept); len(patterns) > 0 {
		opts = append(opts, zenity.FileFilter{
			Name:     strings.Join(n.accept, ", "),
			Patterns: patterns,
			CaseFold: true,
		})
	}
	n.mu.Unlock()

	path, err := zenity.SelectFile(opts...)
	if errors.Is(err, zenity.ErrCanceled) {
		return nil, nil
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("file chooser failed: %w", err)
	}

	f, err := OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	return []File{f}, nil
}

func (n *nativeInput) Close() error {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()
	return nil
}

// FilterPatterns turns MIME types into sorted, de-duplicated glob patterns
// such as "*.png". Types with no known extension are skipped.
func FilterPatterns(mimeTypes []string) []string {
	seen := make(map[string]bool)
	for _, mt := range mimeTypes {
		mt = strings.ToLower(strings.TrimSpace(mt))
		if m := mimetype.Lookup(mt); m != nil && m.Extension() != "" {
			seen["*"+m.Extension()] = true
		}
		exts, _ := mime.ExtensionsByType(mt)
		for _, ext := range exts {
			seen["*"+ext] = true
		}
	}

	patterns := make([]string, 0, len(seen))
	for p := range seen {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	return patterns
}

// PathDialog is a Dialog whose controls return preselected files without
// showing anything. Each path is described with OpenFile when the control
// is opened.
type PathDialog struct {
	Paths []string
}

// NewInput returns a control that yields the dialog's paths.
func (d PathDialog) NewInput() (Input, error) {
	return &pathInput{paths: append([]string(nil), d.Paths...)}, nil
}

type pathInput struct {
	paths  []string
	closed bool
}

func (p *pathInput) SetAccept([]string) {}

func (p *pathInput) Open(ctx context.Context) ([]File, error) {
	if p.closed {
		return nil, ErrInputClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files := make([]File, 0, len(p.paths))
	for _, path := range p.paths {
		f, err := OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRead, err)
		}
		files = append(files, f)
	}
	return files, nil
}

func (p *pathInput) Close() error {
	p.closed = true
	return nil
}
