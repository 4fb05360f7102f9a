// Package imaging holds the pixel-level steps of picking an image: decoding a
// data URL into pixels, computing the square crop, drawing onto an
// off-screen Canvas and exporting it again as a data URL.
//
// # Coordinate System
//
// Coordinates follow image.Image: (0,0) is the top-left corner, X grows to
// the right and Y grows downward. Rectangles are half-open, so Min is
// inclusive and Max is exclusive.
//
// # Square Crop
//
// SquareRegion picks the largest square inside an image, min(width, height)
// on a side. AnchorTopLeft keeps the square at the origin; AnchorCenter
// keeps the middle of the longer axis.
//
// # Formats
//
// Decode accepts PNG, JPEG, GIF, BMP and WebP payloads. Canvas.ToDataURL
// always produces PNG.
//
// # Thread Safety
//
// Decode, Inspect and SquareRegion are stateless and safe for concurrent use.
// A Canvas must be used from one goroutine at a time.
package imaging
