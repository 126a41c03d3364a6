// Package color adds the colour types that image/color lacks for the
// GreyAlpha and RGB layouts: grey with straight alpha, and opaque RGB at 8
// and 16 bits per channel.
package color

import (
	"image/color"
)

// GreyAlpha represents an 8-bit grey level with non-alpha-premultiplied
// alpha.
type GreyAlpha struct {
	Y, A uint8
}

func (c GreyAlpha) RGBA() (r, g, b, a uint32) {
	y := uint32(c.Y)
	y |= y << 8
	a = uint32(c.A)
	a |= a << 8
	y = y * a / 0xffff
	return y, y, y, a
}

// GreyAlpha16 represents a 16-bit grey level with non-alpha-premultiplied
// alpha.
type GreyAlpha16 struct {
	Y, A uint16
}

func (c GreyAlpha16) RGBA() (r, g, b, a uint32) {
	y := uint32(c.Y)
	a = uint32(c.A)
	y = y * a / 0xffff
	return y, y, y, a
}

// RGB represents a fully opaque colour with 8 bits for each of red, green
// and blue.
type RGB struct {
	R, G, B uint8
}

func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8

	g = uint32(c.G)
	g |= g << 8

	b = uint32(c.B)
	b |= b << 8

	a = 0xffff

	return
}

// RGB16 represents a fully opaque colour with 16 bits for each of red,
// green and blue.
type RGB16 struct {
	R, G, B uint16
}

func (c RGB16) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	g = uint32(c.G)
	b = uint32(c.B)

	a = 0xffff

	return
}

// Models for the colour types.
var (
	GreyAlphaModel   color.Model = color.ModelFunc(greyAlphaModel)
	GreyAlpha16Model color.Model = color.ModelFunc(greyAlpha16Model)
	RGBModel         color.Model = color.ModelFunc(rgbModel)
	RGB16Model       color.Model = color.ModelFunc(rgb16Model)
)

// grey is the truncated mean of the three channels, the same luminance
// collapse the pixel accessors use.
func grey(r, g, b uint32) uint32 {
	return (r + g + b) / 3
}

func greyAlphaModel(c color.Color) color.Color {
	if _, ok := c.(GreyAlpha); ok {
		return c
	}

	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return GreyAlpha{Y: uint8(grey(uint32(n.R), uint32(n.G), uint32(n.B))), A: n.A}
}

func greyAlpha16Model(c color.Color) color.Color {
	if _, ok := c.(GreyAlpha16); ok {
		return c
	}

	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return GreyAlpha16{Y: uint16(grey(uint32(n.R), uint32(n.G), uint32(n.B))), A: n.A}
}

// rgbModel drops alpha after undoing the premultiplication, so a
// translucent colour keeps its hue.
func rgbModel(c color.Color) color.Color {
	if _, ok := c.(RGB); ok {
		return c
	}

	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

func rgb16Model(c color.Color) color.Color {
	if _, ok := c.(RGB16); ok {
		return c
	}

	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return RGB16{R: n.R, G: n.G, B: n.B}
}
