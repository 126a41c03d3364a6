package image

import "fmt"

// Luminance collapses a colour sample to grey as (r+g+b)/3, truncating.
func Luminance(r, g, b int) int {
	return (r + g + b) / 3
}

func unknownLayout(l Layout) string {
	return fmt.Sprintf("image: unknown layout %T", l)
}

// ReadRGBA returns the pixel at (x, y) as red, green, blue and alpha. Grey
// is replicated into the three colour channels and alpha is MaxVal when the
// layout has none. It panics if (x, y) is out of bounds.
func (img *Image) ReadRGBA(x, y int) (r, g, b, a int) {
	switch l := img.Pixels.(type) {
	case *RGB:
		return l.R.Get(x, y), l.G.Get(x, y), l.B.Get(x, y), img.MaxVal
	case *RGBA:
		return l.R.Get(x, y), l.G.Get(x, y), l.B.Get(x, y), l.A.Get(x, y)
	case *Grey:
		v := l.Y.Get(x, y)
		return v, v, v, img.MaxVal
	case *GreyAlpha:
		v := l.Y.Get(x, y)
		return v, v, v, l.A.Get(x, y)
	default:
		panic(unknownLayout(img.Pixels))
	}
}

// ReadRGB returns the pixel at (x, y) as red, green and blue, discarding any
// alpha.
func (img *Image) ReadRGB(x, y int) (r, g, b int) {
	switch l := img.Pixels.(type) {
	case *RGB:
		return l.R.Get(x, y), l.G.Get(x, y), l.B.Get(x, y)
	case *RGBA:
		return l.R.Get(x, y), l.G.Get(x, y), l.B.Get(x, y)
	case *Grey:
		v := l.Y.Get(x, y)
		return v, v, v
	case *GreyAlpha:
		v := l.Y.Get(x, y)
		return v, v, v
	default:
		panic(unknownLayout(img.Pixels))
	}
}

// ReadGreyAlpha returns the pixel at (x, y) as luminance and alpha. Colour
// layouts are collapsed with Luminance and alpha is MaxVal when the layout
// has none.
func (img *Image) ReadGreyAlpha(x, y int) (grey, a int) {
	switch l := img.Pixels.(type) {
	case *RGB:
		return Luminance(l.R.Get(x, y), l.G.Get(x, y), l.B.Get(x, y)), img.MaxVal
	case *RGBA:
		return Luminance(l.R.Get(x, y), l.G.Get(x, y), l.B.Get(x, y)), l.A.Get(x, y)
	case *Grey:
		return l.Y.Get(x, y), img.MaxVal
	case *GreyAlpha:
		return l.Y.Get(x, y), l.A.Get(x, y)
	default:
		panic(unknownLayout(img.Pixels))
	}
}

// ReadGrey returns the luminance of the pixel at (x, y).
func (img *Image) ReadGrey(x, y int) int {
	switch l := img.Pixels.(type) {
	case *RGB:
		return Luminance(l.R.Get(x, y), l.G.Get(x, y), l.B.Get(x, y))
	case *RGBA:
		return Luminance(l.R.Get(x, y), l.G.Get(x, y), l.B.Get(x, y))
	case *Grey:
		return l.Y.Get(x, y)
	case *GreyAlpha:
		return l.Y.Get(x, y)
	default:
		panic(unknownLayout(img.Pixels))
	}
}

// WriteRGBA stores a colour with alpha at (x, y). Alpha is dropped when the
// layout has no alpha channel, and colour is collapsed with Luminance for
// grey layouts. Nothing is blended with the existing pixel.
func (img *Image) WriteRGBA(x, y, r, g, b, a int) {
	switch l := img.Pixels.(type) {
	case *RGB:
		l.R.Set(x, y, r)
		l.G.Set(x, y, g)
		l.B.Set(x, y, b)
	case *RGBA:
		l.R.Set(x, y, r)
		l.G.Set(x, y, g)
		l.B.Set(x, y, b)
		l.A.Set(x, y, a)
	case *Grey:
		l.Y.Set(x, y, Luminance(r, g, b))
	case *GreyAlpha:
		l.Y.Set(x, y, Luminance(r, g, b))
		l.A.Set(x, y, a)
	default:
		panic(unknownLayout(img.Pixels))
	}
}

// WriteRGB stores a colour at (x, y), leaving any alpha sample untouched.
// Grey layouts receive the flat Luminance of the colour.
func (img *Image) WriteRGB(x, y, r, g, b int) {
	switch l := img.Pixels.(type) {
	case *RGB:
		l.R.Set(x, y, r)
		l.G.Set(x, y, g)
		l.B.Set(x, y, b)
	case *RGBA:
		l.R.Set(x, y, r)
		l.G.Set(x, y, g)
		l.B.Set(x, y, b)
	case *Grey:
		l.Y.Set(x, y, Luminance(r, g, b))
	case *GreyAlpha:
		l.Y.Set(x, y, Luminance(r, g, b))
	default:
		panic(unknownLayout(img.Pixels))
	}
}

// WriteGreyAlpha stores a grey level with alpha at (x, y). Colour layouts get
// grey broadcast into all three channels; alpha is dropped when the layout
// has no alpha channel.
func (img *Image) WriteGreyAlpha(x, y, grey, a int) {
	switch l := img.Pixels.(type) {
	case *RGB:
		l.R.Set(x, y, grey)
		l.G.Set(x, y, grey)
		l.B.Set(x, y, grey)
	case *RGBA:
		l.R.Set(x, y, grey)
		l.G.Set(x, y, grey)
		l.B.Set(x, y, grey)
		l.A.Set(x, y, a)
	case *Grey:
		l.Y.Set(x, y, grey)
	case *GreyAlpha:
		l.Y.Set(x, y, grey)
		l.A.Set(x, y, a)
	default:
		panic(unknownLayout(img.Pixels))
	}
}

// WriteGrey stores a grey level at (x, y) in every colour channel, leaving
// any alpha sample untouched.
func (img *Image) WriteGrey(x, y, grey int) {
	switch l := img.Pixels.(type) {
	case *RGB:
		l.R.Set(x, y, grey)
		l.G.Set(x, y, grey)
		l.B.Set(x, y, grey)
	case *RGBA:
		l.R.Set(x, y, grey)
		l.G.Set(x, y, grey)
		l.B.Set(x, y, grey)
	case *Grey:
		l.Y.Set(x, y, grey)
	case *GreyAlpha:
		l.Y.Set(x, y, grey)
	default:
		panic(unknownLayout(img.Pixels))
	}
}
