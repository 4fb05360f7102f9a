package picker

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ironsheep/image-picker/internal/imaging"
)

const (
	// DefaultSize is the default thumbnail edge in pixels.
	DefaultSize = 256

	// DefaultMaxFileSizeMB is the default upload limit.
	DefaultMaxFileSizeMB = 5

	// NoResize as Request.Size returns the file's own data URL untouched.
	NoResize = 0

	// MaxSize is the largest accepted Request.Size. The validate tags on
	// Request.Size and config.Config.Size repeat it.
	MaxSize = 4096

	// MB is the number of bytes in one megabyte for size checks.
	MB = 1024 * 1024
)

// DefaultAccept returns the default accepted MIME types.
func DefaultAccept() []string {
	return []string{"image/png", "image/jpeg", "image/bmp"}
}

// Request configures one Pick call.
type Request struct {
	// Size is the edge of the square output in pixels, or NoResize.
	// Negative sizes and sizes above MaxSize are rejected with ErrInvalidRequest.
	Size int `json:"size" validate:"gte=0,lte=4096"`

	// Accept lists the MIME types offered by the chooser's filter.
	Accept []string `json:"accept" validate:"required,min=1,dive,required"`

	// MaxFileSizeMB is the largest accepted file, in units of MB bytes.
	MaxFileSizeMB float64 `json:"max_file_size_mb" validate:"gt=0"`

	// Anchor positions the square crop. Empty means imaging.AnchorTopLeft.
	Anchor imaging.Anchor `json:"anchor,omitempty" validate:"omitempty,oneof=top-left center"`

	// Filter names the resampling filter. Empty means linear.
	Filter string `json:"filter,omitempty" validate:"omitempty,oneof=nearest linear catmullrom lanczos"`
}

// DefaultRequest returns a Request with every field at its default.
func DefaultRequest() Request {
	return Request{
		Size:          DefaultSize,
		Accept:        DefaultAccept(),
		MaxFileSizeMB: DefaultMaxFileSizeMB,
		Anchor:        imaging.AnchorTopLeft,
	}
}

// WithDefaults fills zero Accept and MaxFileSizeMB from the defaults.
// Size is left alone since zero is NoResize.
func (r Request) WithDefaults() Request {
	if len(r.Accept) == 0 {
		r.Accept = DefaultAccept()
	}
	if r.MaxFileSizeMB == 0 {
		r.MaxFileSizeMB = DefaultMaxFileSizeMB
	}
	return r
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports whether r can be serviced. Errors wrap ErrInvalidRequest.
func (r Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}
