// Package picker lets a user choose one image and returns it as a
// self-contained base64 data URL, optionally cropped to a square thumbnail.
//
// # Operation
//
// Pick runs a fixed sequence and returns exactly once:
//
//  1. Show the host's file chooser, filtered to Request.Accept.
//  2. Require exactly one file whose declared MIME type is image/* and whose
//     size is at most Request.MaxFileSizeMB megabytes (1 MB = 1,048,576 bytes).
//  3. Read the bytes as a data URL.
//  4. With Request.Size == NoResize, return that data URL unchanged.
//     Otherwise decode it, take the largest square (min(width, height) on a
//     side), draw it scaled onto a Size x Size canvas and return the canvas
//     as a PNG data URL.
//
// # Crop Anchor
//
// The square is anchored at the top-left corner by default, so a landscape
// image loses its right side and a portrait image its bottom. Set
// Request.Anchor to imaging.AnchorCenter for a centered crop.
//
// # Errors
//
// Failures wrap ErrWrongFileCount, ErrNotAnImage, ErrFileTooLarge,
// ErrUnreadableFile, ErrUndecodableImage or ErrInvalidRequest. None is
// retried; call Pick again to let the user choose another file. A canceled
// or expired context is returned as ctx.Err().
//
// # Resources
//
// The Picker owns one file-input control from its host.Dialog. It is reused
// across successful calls and closed after any failure. Drawing surfaces are
// released before Pick returns. Concurrent Pick calls on one Picker run one
// at a time.
package picker
