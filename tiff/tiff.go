// Package tiff reads and writes baseline TIFF images. Importing it registers
// the "tif" and "tiff" extensions with imagelib.
//
// Images are written as 8- or 16-bit greyscale, RGB or RGB with unassociated
// alpha, uncompressed or Deflate compressed. BigTIFF files are recognised and
// rejected.
package tiff

import (
	"encoding/binary"
	"errors"
	"fmt"

	xtiff "golang.org/x/image/tiff"

	"github.com/AlanRace/go-imagelib"
	"github.com/AlanRace/go-imagelib/image"
)

const formatName = "tiff"

const (
	littleEndianMarker uint16 = 0x4949
	bigEndianMarker    uint16 = 0x4d4d
	versionMarker      uint16 = 0x2a
	bigTiffMarker      uint16 = 0x2b
)

// Compression selects how strips are compressed on write.
type Compression int

const (
	None Compression = iota
	Deflate
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Deflate:
		return "deflate"
	default:
		return fmt.Sprintf("Compression(%d)", int(c))
	}
}

// ErrInvalidCompression is returned by Options.Validate for an unknown
// Compression.
var ErrInvalidCompression = errors.New("tiff: invalid compression")

// Options controls encoding.
type Options struct {
	Compression Compression

	// Predictor applies horizontal differencing before compression, which
	// usually shrinks continuous-tone images.
	Predictor bool
}

// Validate checks that o can be used for encoding.
func (o *Options) Validate() error {
	switch o.Compression {
	case None, Deflate:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidCompression, o.Compression)
	}
}

func (o *Options) encoderOptions() *xtiff.Options {
	ct := xtiff.Uncompressed
	if o.Compression == Deflate {
		ct = xtiff.Deflate
	}
	return &xtiff.Options{Compression: ct, Predictor: o.Predictor}
}

func init() {
	imagelib.Register(Codec{Options: Options{Compression: Deflate, Predictor: true}})
}

// Codec is the TIFF reader and writer. The registered codec writes Deflate
// with the predictor enabled.
type Codec struct {
	Options Options
}

func (Codec) Extensions() []string { return []string{"tif", "tiff"} }

// checkHeader inspects the byte order mark and version without consuming
// them.
func checkHeader(src *imagelib.ChunkReader) error {
	buf, err := src.Peek(4)
	if err != nil {
		return &imagelib.FormatError{Format: formatName, Msg: "reading header", Err: err}
	}

	var order binary.ByteOrder
	switch binary.BigEndian.Uint16(buf) {
	case littleEndianMarker:
		order = binary.LittleEndian
	case bigEndianMarker:
		order = binary.BigEndian
	default:
		return &imagelib.FormatError{Format: formatName, Msg: "invalid byte order mark"}
	}

	switch v := order.Uint16(buf[2:]); v {
	case versionMarker:
		return nil
	case bigTiffMarker:
		return &imagelib.FormatError{Format: formatName, Msg: "BigTIFF is not supported"}
	default:
		return &imagelib.FormatError{Format: formatName, Msg: fmt.Sprintf("unsupported version %#x", v)}
	}
}

func (Codec) Size(src *imagelib.ChunkReader) (width, height int, err error) {
	if err := checkHeader(src); err != nil {
		return 0, 0, err
	}
	cfg, err := xtiff.DecodeConfig(src)
	if err != nil {
		return 0, 0, &imagelib.FormatError{Format: formatName, Msg: "reading header", Err: err}
	}
	return cfg.Width, cfg.Height, nil
}

func (Codec) Parse(src *imagelib.ChunkReader) (*image.Image, error) {
	if err := checkHeader(src); err != nil {
		return nil, err
	}
	m, err := xtiff.Decode(src)
	if err != nil {
		return nil, &imagelib.FormatError{Format: formatName, Msg: "decoding", Err: err}
	}
	img, err := image.FromStd(m)
	if err != nil {
		return nil, err
	}
	imagelib.LogImage("decoded", formatName, img)
	return img, nil
}

func (c Codec) Write(dst *imagelib.ChunkWriter, img *image.Image) error {
	if err := c.Options.Validate(); err != nil {
		return err
	}
	if err := xtiff.Encode(dst, img.Std(), c.Options.encoderOptions()); err != nil {
		return &imagelib.FormatError{Format: formatName, Msg: "encoding", Err: err}
	}
	imagelib.LogImage("encoded", formatName, img)
	return nil
}
