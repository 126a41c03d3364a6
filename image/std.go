package image

import (
	"image"
	"image/color"
	"image/draw"
)

// FromStd converts a standard library image into an *Image, picking the
// layout and MaxVal that keep every sample: Gray, Gray16 and paletted images
// with an opaque grey palette become Grey, Alpha images become GreyAlpha, and everything else becomes RGB, or RGBA when the
// source is not opaque. 8-bit sources get MaxVal 255 and wider ones 65535.
func FromStd(src image.Image) (*Image, error) {
	if img, ok := src.(*Image); ok {
		return img.Copy(), nil
	}

	b := src.Bounds()
	if b.Empty() {
		return nil, newError(InvalidArgument, "FromStd", "empty bounds %v", b)
	}

	opaque := false
	if o, ok := src.(interface{ Opaque() bool }); ok {
		opaque = o.Opaque()
	}
	colour := func(wide bool) (LayoutKind, int) {
		maxVal := 0xff
		if wide {
			maxVal = 0xffff
		}
		if opaque {
			return KindRGB, maxVal
		}
		return KindRGBA, maxVal
	}

	var (
		kind   LayoutKind
		maxVal int
	)
	switch m := src.(type) {
	case *image.Gray:
		kind, maxVal = KindGrey, 0xff
	case *image.Gray16:
		kind, maxVal = KindGrey, 0xffff
	case *image.Alpha:
		kind, maxVal = KindGreyAlpha, 0xff
	case *image.Alpha16:
		kind, maxVal = KindGreyAlpha, 0xffff
	case *image.YCbCr, *image.CMYK:
		kind, maxVal = KindRGB, 0xff
	case *image.Paletted:
		if greyPalette(m.Palette) {
			kind, maxVal = KindGrey, 0xff
		} else {
			kind, maxVal = colour(false)
		}
	case *image.RGBA, *image.NRGBA:
		kind, maxVal = colour(false)
	case *image.RGBA64, *image.NRGBA64:
		kind, maxVal = colour(true)
	default:
		switch src.ColorModel() {
		case color.GrayModel:
			kind, maxVal = KindGrey, 0xff
		case color.Gray16Model:
			kind, maxVal = KindGrey, 0xffff
		default:
			kind, maxVal = colour(true)
		}
	}

	img, err := NewOf(kind, b.Dx(), b.Dy(), maxVal)
	if err != nil {
		return nil, err
	}

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := src.At(b.Min.X+x, b.Min.Y+y)
			if maxVal == 0xff {
				n := color.NRGBAModel.Convert(c).(color.NRGBA)
				img.WriteRGBA(x, y, int(n.R), int(n.G), int(n.B), int(n.A))
			} else {
				n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
				img.WriteRGBA(x, y, int(n.R), int(n.G), int(n.B), int(n.A))
			}
		}
	}
	return img, nil
}

// greyPalette reports whether every entry of p is an opaque grey.
func greyPalette(p color.Palette) bool {
	for _, c := range p {
		r, g, b, a := c.RGBA()
		if r != g || g != b || a != 0xffff {
			return false
		}
	}
	return len(p) > 0
}

// Std returns a standard library copy of img with samples rescaled from
// MaxVal to the full 8- or 16-bit range: *image.Gray or *image.Gray16 for the
// Grey layout, *image.NRGBA or *image.NRGBA64 otherwise.
func (img *Image) Std() image.Image {
	return img.std(img.Depth() == Depth16)
}

// Std8 is like Std but always returns 8 bits per channel, for encoders that
// cannot store wider samples.
func (img *Image) Std8() image.Image {
	return img.std(false)
}

func (img *Image) std(wide bool) image.Image {
	r := img.Bounds()

	if grey, ok := img.Pixels.(*Grey); ok {
		if wide {
			dst := image.NewGray16(r)
			for y := 0; y < img.Height; y++ {
				for x := 0; x < img.Width; x++ {
					dst.SetGray16(x, y, color.Gray16{Y: uint16(Rescale(grey.Y.Get(x, y), img.MaxVal, 0xffff))})
				}
			}
			return dst
		}
		dst := image.NewGray(r)
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				dst.SetGray(x, y, color.Gray{Y: uint8(Rescale(grey.Y.Get(x, y), img.MaxVal, 0xff))})
			}
		}
		return dst
	}

	if wide {
		dst := image.NewNRGBA64(r)
		s := func(v int) uint16 { return uint16(Rescale(v, img.MaxVal, 0xffff)) }
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				cr, cg, cb, ca := img.ReadRGBA(x, y)
				dst.SetNRGBA64(x, y, color.NRGBA64{R: s(cr), G: s(cg), B: s(cb), A: s(ca)})
			}
		}
		return dst
	}
	dst := image.NewNRGBA(r)
	s := func(v int) uint8 { return uint8(Rescale(v, img.MaxVal, 0xff)) }
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			cr, cg, cb, ca := img.ReadRGBA(x, y)
			dst.SetNRGBA(x, y, color.NRGBA{R: s(cr), G: s(cg), B: s(cb), A: s(ca)})
		}
	}
	return dst
}

// Interface checks.
var (
	_ image.Image = (*Image)(nil)
	_ draw.Image  = (*Image)(nil)
)
