// Package png reads and writes PNG images. Importing it registers the "png"
// extension with imagelib.
//
// Grey images are stored as 8- or 16-bit greyscale and every other layout
// as RGBA, with PNG choosing RGB when the image is opaque. Samples are
// rescaled from MaxVal to the full range of the stored bit depth.
package png

import (
	gopng "image/png"

	"github.com/AlanRace/go-imagelib"
	"github.com/AlanRace/go-imagelib/image"
)

const formatName = "png"

func init() {
	imagelib.Register(Codec{})
}

// Codec is the PNG reader and writer.
type Codec struct {
	// CompressionLevel is passed to the encoder. The zero value is
	// png.DefaultCompression.
	CompressionLevel gopng.CompressionLevel
}

func (Codec) Extensions() []string { return []string{"png"} }

func (Codec) Size(src *imagelib.ChunkReader) (width, height int, err error) {
	cfg, err := gopng.DecodeConfig(src)
	if err != nil {
		return 0, 0, &imagelib.FormatError{Format: formatName, Msg: "reading header", Err: err}
	}
	return cfg.Width, cfg.Height, nil
}

func (Codec) Parse(src *imagelib.ChunkReader) (*image.Image, error) {
	m, err := gopng.Decode(src)
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
	enc := gopng.Encoder{CompressionLevel: c.CompressionLevel}
	if err := enc.Encode(dst, img.Std()); err != nil {
		return &imagelib.FormatError{Format: formatName, Msg: "encoding", Err: err}
	}
	imagelib.LogImage("encoded", formatName, img)
	return nil
}
