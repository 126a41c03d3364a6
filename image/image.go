// Package image implements the in-memory pixel representation shared by every
// format backend: channel pixmaps at 8 or 16 bits, the four channel layouts
// built from them, and accessors that read or write any of the Grey,
// GreyAlpha, RGB and RGBA colour models whatever layout an Image stores.
//
// An *Image also satisfies the standard library's image.Image and draw.Image
// interfaces, so it can be passed to Go encoders and drawing code directly.
package image

import (
	"fmt"
	"image"
	"image/color"

	imgcolor "github.com/AlanRace/go-imagelib/image/color"
)

// MaxSample is the largest MaxVal an Image may declare.
const MaxSample = 0xffff

// Image is a width × height grid of pixels stored in one Layout.
//
// MaxVal is the logical white point and fully opaque alpha value. Pixmaps are
// 8-bit when MaxVal ≤ 255 and 16-bit otherwise.
//
// An Image must not be mutated by two goroutines at once; hand a Copy to
// other goroutines instead.
type Image struct {
	Width  int
	Height int
	MaxVal int
	Pixels Layout
}

// Option configures the factory functions NewRGB and NewGrey.
type Option func(*options)

type options struct {
	alpha  bool
	maxVal int
}

// defaultOptions returns the factory defaults: no alpha channel, MaxVal 255.
func defaultOptions() options {
	return options{
		alpha:  false,
		maxVal: 0xff,
	}
}

// WithAlpha selects whether the new image carries an alpha channel.
//
// Example:
//
//	img, err := image.NewRGB(640, 480, image.WithAlpha(true))
func WithAlpha(alpha bool) Option {
	return func(o *options) {
		o.alpha = alpha
	}
}

// WithMaxVal sets the maximum sample value, which must lie in [1, 65535].
// Values above 255 select 16-bit pixmaps.
func WithMaxVal(maxVal int) Option {
	return func(o *options) {
		o.maxVal = maxVal
	}
}

// NewRGB returns a zero-filled image with an RGB layout, or RGBA when
// WithAlpha(true) is given.
func NewRGB(width, height int, opts ...Option) (*Image, error) {
	o := applyOptions(opts)
	kind := KindRGB
	if o.alpha {
		kind = KindRGBA
	}
	return create("NewRGB", kind, width, height, o.maxVal)
}

// NewGrey returns a zero-filled image with a Grey layout, or GreyAlpha when
// WithAlpha(true) is given.
func NewGrey(width, height int, opts ...Option) (*Image, error) {
	o := applyOptions(opts)
	kind := KindGrey
	if o.alpha {
		kind = KindGreyAlpha
	}
	return create("NewGrey", kind, width, height, o.maxVal)
}

// NewOf returns a zero-filled image with the given layout kind.
func NewOf(kind LayoutKind, width, height, maxVal int) (*Image, error) {
	if kind > KindRGBA {
		return nil, newError(InvalidArgument, "NewOf", "unknown layout kind %d", uint8(kind))
	}
	return create("NewOf", kind, width, height, maxVal)
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func create(op string, kind LayoutKind, width, height, maxVal int) (*Image, error) {
	if maxVal < 1 || maxVal > MaxSample {
		return nil, newError(InvalidArgument, op, "max value %d outside [1, %d]", maxVal, MaxSample)
	}
	if width <= 0 || height <= 0 {
		return nil, newError(InvalidArgument, op, "dimensions %dx%d must be positive", width, height)
	}
	if mul3NonNeg(kind.Channels(), width, height) < 0 {
		return nil, newError(InvalidArgument, op, "dimensions %dx%d are too large", width, height)
	}

	return &Image{
		Width:  width,
		Height: height,
		MaxVal: maxVal,
		Pixels: newLayout(kind, DepthFor(maxVal), width, height),
	}, nil
}

// New wraps an existing layout, typically filled by a decoder, and checks
// that it satisfies every structural invariant.
func New(width, height, maxVal int, pixels Layout) (*Image, error) {
	if maxVal < 1 || maxVal > MaxSample {
		return nil, newError(InvalidArgument, "New", "max value %d outside [1, %d]", maxVal, MaxSample)
	}
	if width <= 0 || height <= 0 {
		return nil, newError(InvalidArgument, "New", "dimensions %dx%d must be positive", width, height)
	}
	img := &Image{Width: width, Height: height, MaxVal: maxVal, Pixels: pixels}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	return img, nil
}

// Validate checks the structural invariants of img and returns an
// ErrCorruptedImage error describing the first violation found.
func (img *Image) Validate() error {
	const op = "Validate"

	if img.MaxVal < 1 || img.MaxVal > MaxSample {
		return newError(CorruptedImage, op, "max value %d outside [1, %d]", img.MaxVal, MaxSample)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return newError(CorruptedImage, op, "dimensions %dx%d must be positive", img.Width, img.Height)
	}
	if isNilLayout(img.Pixels) {
		return newError(CorruptedImage, op, "missing layout")
	}

	depth := DepthFor(img.MaxVal)
	for i, p := range img.Pixels.Pixmaps() {
		if isNilPixmap(p) {
			return newError(CorruptedImage, op, "%s channel %d is missing", img.Pixels.Kind(), i)
		}
		if p.Width() != img.Width || p.Height() != img.Height {
			return newError(CorruptedImage, op, "%s channel %d is %dx%d, image is %dx%d",
				img.Pixels.Kind(), i, p.Width(), p.Height(), img.Width, img.Height)
		}
		if p.Depth() != depth {
			return newError(CorruptedImage, op, "%s channel %d is %s, max value %d needs %s",
				img.Pixels.Kind(), i, p.Depth(), img.MaxVal, depth)
		}
	}
	return nil
}

// Kind returns the layout kind of img.
func (img *Image) Kind() LayoutKind {
	return img.Pixels.Kind()
}

// HasAlpha reports whether img stores an alpha channel.
func (img *Image) HasAlpha() bool {
	return img.Pixels.Kind().HasAlpha()
}

// Depth returns the bit depth of img's pixmaps.
func (img *Image) Depth() Depth {
	return DepthFor(img.MaxVal)
}

func (img *Image) String() string {
	return fmt.Sprintf("%s %dx%d max=%d (%s)", img.Pixels.Kind(), img.Width, img.Height, img.MaxVal, img.Depth())
}

// Copy returns a deep copy of img. The copy shares no pixmaps with img.
func (img *Image) Copy() *Image {
	return &Image{
		Width:  img.Width,
		Height: img.Height,
		MaxVal: img.MaxVal,
		Pixels: img.Pixels.copyLayout(),
	}
}

// Equal reports whether a and b have the same size, MaxVal and layout kind and
// hold the same samples. Both images must be valid; see Validate.
func Equal(a, b *Image) bool {
	if isNilLayout(a.Pixels) || isNilLayout(b.Pixels) {
		return false
	}
	if a.Width != b.Width || a.Height != b.Height || a.MaxVal != b.MaxVal || a.Kind() != b.Kind() {
		return false
	}
	pa, pb := a.Pixels.Pixmaps(), b.Pixels.Pixmaps()
	for i := range pa {
		for y := 0; y < a.Height; y++ {
			for x := 0; x < a.Width; x++ {
				if pa[i].Get(x, y) != pb[i].Get(x, y) {
					return false
				}
			}
		}
	}
	return true
}

// Rescale maps v from the range 0..from onto 0..to, rounding to nearest.
// Values above from are clamped.
func Rescale(v, from, to int) int {
	if from == to {
		return v
	}
	if v > from {
		v = from
	}
	return (v*to + from/2) / from
}

func (img *Image) ColorModel() color.Model {
	wide := img.Depth() == Depth16
	switch img.Pixels.(type) {
	case *Grey:
		if wide {
			return color.Gray16Model
		}
		return color.GrayModel
	case *GreyAlpha:
		if wide {
			return imgcolor.GreyAlpha16Model
		}
		return imgcolor.GreyAlphaModel
	case *RGB:
		if wide {
			return imgcolor.RGB16Model
		}
		return imgcolor.RGBModel
	default:
		if wide {
			return color.NRGBA64Model
		}
		return color.NRGBAModel
	}
}

func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// At returns the pixel at (x, y) in img's colour model, with samples
// rescaled from MaxVal to the full range of the pixmap depth.
func (img *Image) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(img.Bounds())) {
		return color.Transparent
	}

	full := img.Depth().Max()
	s := func(p Pixmap) int { return Rescale(p.Get(x, y), img.MaxVal, full) }
	wide := full == 0xffff

	switch l := img.Pixels.(type) {
	case *Grey:
		if wide {
			return color.Gray16{Y: uint16(s(l.Y))}
		}
		return color.Gray{Y: uint8(s(l.Y))}
	case *GreyAlpha:
		if wide {
			return imgcolor.GreyAlpha16{Y: uint16(s(l.Y)), A: uint16(s(l.A))}
		}
		return imgcolor.GreyAlpha{Y: uint8(s(l.Y)), A: uint8(s(l.A))}
	case *RGB:
		if wide {
			return imgcolor.RGB16{R: uint16(s(l.R)), G: uint16(s(l.G)), B: uint16(s(l.B))}
		}
		return imgcolor.RGB{R: uint8(s(l.R)), G: uint8(s(l.G)), B: uint8(s(l.B))}
	case *RGBA:
		if wide {
			return color.NRGBA64{R: uint16(s(l.R)), G: uint16(s(l.G)), B: uint16(s(l.B)), A: uint16(s(l.A))}
		}
		return color.NRGBA{R: uint8(s(l.R)), G: uint8(s(l.G)), B: uint8(s(l.B)), A: uint8(s(l.A))}
	default:
		panic(fmt.Sprintf("image: unknown layout %T", img.Pixels))
	}
}

// Set stores c at (x, y) through WriteRGBA after rescaling it to MaxVal.
// Points outside the image are ignored.
func (img *Image) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(img.Bounds())) {
		return
	}

	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	s := func(v uint16) int { return Rescale(int(v), 0xffff, img.MaxVal) }
	img.WriteRGBA(x, y, s(n.R), s(n.G), s(n.B), s(n.A))
}
