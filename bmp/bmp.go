// Package bmp reads and writes Windows BMP images. Importing it registers the
// "bmp" extension with imagelib.
//
// BMP stores 8 bits per channel. Grey images are written as 8-bit paletted
// greyscale and decode back to Grey; colour images are written as 24-bit RGB,
// or 32-bit when they are not opaque.
package bmp

import (
	"golang.org/x/image/bmp"

	"github.com/AlanRace/go-imagelib"
	"github.com/AlanRace/go-imagelib/image"
)

const formatName = "bmp"

func init() {
	imagelib.Register(Codec{})
}

// Codec is the BMP reader and writer.
type Codec struct{}

func (Codec) Extensions() []string { return []string{"bmp", "dib"} }

func (Codec) Size(src *imagelib.ChunkReader) (width, height int, err error) {
	cfg, err := bmp.DecodeConfig(src)
	if err != nil {
		return 0, 0, &imagelib.FormatError{Format: formatName, Msg: "reading header", Err: err}
	}
	return cfg.Width, cfg.Height, nil
}

func (Codec) Parse(src *imagelib.ChunkReader) (*image.Image, error) {
	m, err := bmp.Decode(src)
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

func (Codec) Write(dst *imagelib.ChunkWriter, img *image.Image) error {
	if err := bmp.Encode(dst, img.Std8()); err != nil {
		return &imagelib.FormatError{Format: formatName, Msg: "encoding", Err: err}
	}
	imagelib.LogImage("encoded", formatName, img)
	return nil
}
