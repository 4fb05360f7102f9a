package picker

import "errors"

// Failure kinds returned by Pick. Callers test them with errors.Is; the
// returned error carries extra detail after the kind's message.
var (
	// ErrWrongFileCount means the selection did not yield exactly one file.
	// A dismissed chooser yields zero files.
	ErrWrongFileCount = errors.New("wrong amount of files")

	// ErrNotAnImage means the declared MIME type's primary category is not "image".
	ErrNotAnImage = errors.New("file is not an image")

	// ErrFileTooLarge means the file exceeds the request's MaxFileSizeMB.
	ErrFileTooLarge = errors.New("file is bigger than allowed")

	// ErrUnreadableFile means the host failed to read the file's bytes.
	ErrUnreadableFile = errors.New("unable to read file")

	// ErrUndecodableImage means the bytes passed validation but are not a
	// decodable image.
	ErrUndecodableImage = errors.New("unable to decode image")

	// ErrInvalidRequest means the Request failed validation. No dialog is shown.
	ErrInvalidRequest = errors.New("invalid request")
)
