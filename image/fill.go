package image

// FillRGB sets the colour channels of every pixel, leaving any alpha channel
// untouched. Grey layouts are not supported and return ErrNotImplemented.
func (img *Image) FillRGB(r, g, b int) error {
	switch l := img.Pixels.(type) {
	case *RGB:
		l.R.Fill(r)
		l.G.Fill(g)
		l.B.Fill(b)
	case *RGBA:
		l.R.Fill(r)
		l.G.Fill(g)
		l.B.Fill(b)
	case *Grey, *GreyAlpha:
		return newError(NotImplemented, "FillRGB", "%s layout", l.Kind())
	default:
		panic(unknownLayout(img.Pixels))
	}
	return nil
}

// FillRGBA sets every pixel to the given colour and alpha. An RGB layout has
// nowhere to store alpha and returns ErrCorruptedImage; grey layouts return
// ErrNotImplemented.
func (img *Image) FillRGBA(r, g, b, a int) error {
	switch l := img.Pixels.(type) {
	case *RGB:
		return newError(CorruptedImage, "FillRGBA", "alpha %d given for %s layout without alpha channel", a, l.Kind())
	case *RGBA:
		l.R.Fill(r)
		l.G.Fill(g)
		l.B.Fill(b)
		l.A.Fill(a)
	case *Grey, *GreyAlpha:
		return newError(NotImplemented, "FillRGBA", "%s layout", l.Kind())
	default:
		panic(unknownLayout(img.Pixels))
	}
	return nil
}

// FillAlpha sets the alpha of every pixel. It does nothing for layouts
// without an alpha channel.
func (img *Image) FillAlpha(a int) {
	switch l := img.Pixels.(type) {
	case *Grey, *RGB:
	case *GreyAlpha:
		l.A.Fill(a)
	case *RGBA:
		l.A.Fill(a)
	default:
		panic(unknownLayout(img.Pixels))
	}
}
