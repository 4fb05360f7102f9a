package imaging

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// Anchor selects where the square crop region sits inside a non-square image.
type Anchor string

const (
	// AnchorTopLeft keeps the square at the image origin. The remainder to the
	// right (landscape) or below (portrait) is discarded.
	AnchorTopLeft Anchor = "top-left"

	// AnchorCenter keeps the middle square of the image.
	AnchorCenter Anchor = "center"
)

// ParseAnchor converts a user-supplied anchor name to an Anchor.
// An empty name selects AnchorTopLeft.
func ParseAnchor(name string) (Anchor, error) {
	switch Anchor(strings.ToLower(strings.TrimSpace(name))) {
	case "", AnchorTopLeft:
		return AnchorTopLeft, nil
	case AnchorCenter:
		return AnchorCenter, nil
	default:
		return "", fmt.Errorf("unknown crop anchor: %s", name)
	}
}

// SquareRegion returns the largest square inside bounds, positioned by anchor.
//
// The side of the square is min(width, height). For AnchorCenter the
// offset along the longer axis is (long - short) / 2, rounded down.
// An empty bounds rectangle yields an empty rectangle.
func SquareRegion(bounds image.Rectangle, anchor Anchor) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	extent := min(w, h)
	if extent <= 0 {
		return image.Rectangle{}
	}

	origin := bounds.Min
	if anchor == AnchorCenter {
		origin = origin.Add(image.Pt((w-extent)/2, (h-extent)/2))
	}
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(extent, extent))}
}

// Filter names accepted by ParseFilter.
const (
	FilterNearest    = "nearest"
	FilterLinear     = "linear"
	FilterCatmullRom = "catmullrom"
	FilterLanczos    = "lanczos"
)

// ParseFilter maps a filter name to a resampling filter. An empty name selects
// linear filtering, the closest match to a browser canvas with smoothing on.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FilterLinear:
		return imaging.Linear, nil
	case FilterNearest:
		return imaging.NearestNeighbor, nil
	case FilterCatmullRom:
		return imaging.CatmullRom, nil
	case FilterLanczos:
		return imaging.Lanczos, nil
	default:
		return imaging.ResampleFilter{}, fmt.Errorf("unknown resample filter: %s", name)
	}
}
