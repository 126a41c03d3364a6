// Package imagelib defines the contracts between the in-memory image model in
// package image and the format backends that read and write it, together
// with a registry that dispatches on file extension.
//
// Backends register themselves when imported:
//
//	import (
//		"github.com/AlanRace/go-imagelib"
//		_ "github.com/AlanRace/go-imagelib/png"
//	)
//
//	img, err := imagelib.Decode("png", f)
package imagelib

import (
	"time"

	"github.com/AlanRace/go-imagelib/image"
)

// Reader is implemented by backends that can decode a format.
type Reader interface {
	// Extensions lists the file extensions handled, without a leading dot.
	Extensions() []string

	// Size reads only as much of src as needed to report the image
	// dimensions.
	Size(src *ChunkReader) (width, height int, err error)

	// Parse decodes a whole image from src.
	Parse(src *ChunkReader) (*image.Image, error)
}

// StreamState is the opaque position of a StreamingReader inside a stream.
// A nil state starts a new stream.
type StreamState any

// StreamResult is one step of a streamed decode.
type StreamResult struct {
	Image *image.Image
	// Frame is the zero-based index of Image in the stream.
	Frame int
	// Delay is how long Image should be shown before the next frame.
	Delay time.Duration
	// Next resumes the stream. It is nil after the last frame.
	Next StreamState
}

// StreamingReader is implemented by readers of formats holding a sequence of
// images. Each call to ReadStreaming returns the next image.
type StreamingReader interface {
	Reader
	ReadStreaming(src *ChunkReader, state StreamState) (*StreamResult, error)
}

// Writer is implemented by backends that can encode a format.
type Writer interface {
	Extensions() []string
	Write(dst *ChunkWriter, img *image.Image) error
}

// FormatError reports that input is not valid for a format, or that an image
// cannot be represented in it.
type FormatError struct {
	Format string // format name, e.g. "png"
	Msg    string // description of error
	Err    error  // underlying decoder or encoder error, if any
}

func (e *FormatError) Error() string {
	s := e.Format + ": " + e.Msg
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *FormatError) Unwrap() error { return e.Err }
