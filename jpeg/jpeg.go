// Package jpeg reads and writes JPEG images using libjpeg. Importing it
// registers the "jpg" and "jpeg" extensions with imagelib.
//
// JPEG has no alpha channel and stores 8-bit samples, so alpha is dropped
// on write and wider samples are rescaled to 8 bits. Grey layouts are written
// as single-component images and decode back to Grey.
package jpeg

import (
	"errors"
	stdimage "image"
	"image/color"

	libjpeg "github.com/pixiv/go-libjpeg/jpeg"

	"github.com/AlanRace/go-imagelib"
	"github.com/AlanRace/go-imagelib/image"
)

const formatName = "jpeg"

// DefaultQuality is the encoding quality used when Options.Quality is zero.
const DefaultQuality = 90

// ErrInvalidQuality is returned by Options.Validate for a quality outside
// 0-100.
var ErrInvalidQuality = errors.New("jpeg: invalid quality (must be 1-100)")

func init() {
	imagelib.Register(Codec{})
}

// Options controls encoding.
type Options struct {
	// Quality is the encoder quality from 1 to 100. Zero selects
	// DefaultQuality.
	Quality int

	// Progressive writes a progressive rather than a baseline JPEG.
	Progressive bool

	// OptimizeCoding computes optimal Huffman tables, making the output
	// smaller and the encode slower.
	OptimizeCoding bool
}

// Validate checks that o can be used for encoding.
func (o *Options) Validate() error {
	if o.Quality < 0 || o.Quality > 100 {
		return ErrInvalidQuality
	}
	return nil
}

// Codec is the JPEG reader and writer.
type Codec struct {
	Options Options
}

func (Codec) Extensions() []string { return []string{"jpg", "jpeg"} }

// Size reads marker segments up to the frame header.
func (Codec) Size(src *imagelib.ChunkReader) (width, height int, err error) {
	h, err := readHeader(src)
	if err != nil {
		var ferr *imagelib.FormatError
		if !errors.As(err, &ferr) {
			err = &imagelib.FormatError{Format: formatName, Msg: "reading header", Err: err}
		}
		return 0, 0, err
	}
	return h.Width, h.Height, nil
}

func (Codec) Parse(src *imagelib.ChunkReader) (*image.Image, error) {
	m, err := libjpeg.Decode(src, &libjpeg.DecoderOptions{})
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
	quality := c.Options.Quality
	if quality == 0 {
		quality = DefaultQuality
	}

	var m stdimage.Image
	switch img.Kind() {
	case image.KindGrey, image.KindGreyAlpha:
		m = toGray(img)
	default:
		m = toYCbCr(img)
	}

	err := libjpeg.Encode(dst, m, &libjpeg.EncoderOptions{
		Quality:         quality,
		OptimizeCoding:  c.Options.OptimizeCoding,
		ProgressiveMode: c.Options.Progressive,
	})
	if err != nil {
		return &imagelib.FormatError{Format: formatName, Msg: "encoding", Err: err}
	}
	imagelib.LogImage("encoded", formatName, img)
	return nil
}

func toGray(img *image.Image) *stdimage.Gray {
	m := stdimage.NewGray(img.Bounds())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			m.Pix[y*m.Stride+x] = uint8(image.Rescale(img.ReadGrey(x, y), img.MaxVal, 0xff))
		}
	}
	return m
}

func toYCbCr(img *image.Image) *stdimage.YCbCr {
	m := stdimage.NewYCbCr(img.Bounds(), stdimage.YCbCrSubsampleRatio444)
	s := func(v int) uint8 { return uint8(image.Rescale(v, img.MaxVal, 0xff)) }
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b := img.ReadRGB(x, y)
			yy, cb, cr := color.RGBToYCbCr(s(r), s(g), s(b))
			m.Y[m.YOffset(x, y)] = yy
			m.Cb[m.COffset(x, y)] = cb
			m.Cr[m.COffset(x, y)] = cr
		}
	}
	return m
}
