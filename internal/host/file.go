package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/vincent-petithory/dataurl"
)

// fallbackMimeType is used when a file's declared type cannot be parsed.
const fallbackMimeType = "application/octet-stream"

// ErrRead marks failures to stat or read a chosen file.
var ErrRead = errors.New("unable to read file")

// File is a file handed over by a file-selection surface.
//
// MimeType and Size are what the host declares; they are not re-checked
// against the bytes when the file is read.
type File struct {
	// Name is the base name of the file.
	Name string

	// MimeType is the declared media type, e.g. "image/png".
	MimeType string

	// Size is the declared length in bytes.
	Size int64

	open func() (io.ReadCloser, error)
}

// OpenFile describes the file at path. The MIME type is sniffed from the
// file's leading bytes. The file is not kept open.
func OpenFile(path string) (File, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to stat file: %w", err)
	}
	if stat.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", path)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to detect file type: %w", err)
	}

	return File{
		Name:     filepath.Base(path),
		MimeType: mt.String(),
		Size:     stat.Size(),
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// NewFile wraps in-memory bytes as a File with the given declared type.
func NewFile(name, mimeType string, data []byte) File {
	return File{
		Name:     name,
		MimeType: mimeType,
		Size:     int64(len(data)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// NewFileFunc builds a File whose bytes come from open. It lets callers
// supply their own storage, including readers that fail.
func NewFileFunc(name, mimeType string, size int64, open func() (io.ReadCloser, error)) File {
	return File{Name: name, MimeType: mimeType, Size: size, open: open}
}

// ReadDataURL reads the file's bytes and returns them as a base64 data URL
// carrying the declared MIME type. Errors wrap ErrRead.
func ReadDataURL(ctx context.Context, f File) (string, error) {
	if f.open == nil {
		return "", fmt.Errorf("%w: %s has no content", ErrRead, f.Name)
	}

	rc, err := f.open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(contextReader{ctx: ctx, r: rc})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %v", ErrRead, err)
	}

	return dataurl.New(data, mediaType(f.MimeType)).String(), nil
}

// mediaType returns the bare type/subtype of declared, or the fallback
// when declared is not a valid media type.
func mediaType(declared string) string {
	mt, _, err := mime.ParseMediaType(declared)
	if err != nil || !strings.Contains(mt, "/") {
		return fallbackMimeType
	}
	return mt
}

// contextReader stops a long read once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
