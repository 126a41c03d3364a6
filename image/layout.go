package image

// LayoutKind names the four channel layouts.
type LayoutKind uint8

const (
	KindGrey LayoutKind = iota
	KindGreyAlpha
	KindRGB
	KindRGBA
)

func (k LayoutKind) String() string {
	switch k {
	case KindGrey:
		return "Grey"
	case KindGreyAlpha:
		return "GreyAlpha"
	case KindRGB:
		return "RGB"
	case KindRGBA:
		return "RGBA"
	default:
		return "Unknown"
	}
}

// Channels returns the number of pixmaps a layout of kind k holds.
func (k LayoutKind) Channels() int {
	return int(k) + 1
}

// HasAlpha reports whether layouts of kind k carry an alpha channel.
func (k LayoutKind) HasAlpha() bool {
	return k == KindGreyAlpha || k == KindRGBA
}

// Layout is the set of pixmaps making up one image. It is one of Grey,
// GreyAlpha, RGB or RGBA; every pixmap in a layout has the same width,
// height and depth.
type Layout interface {
	Kind() LayoutKind

	// Pixmaps returns the channel pixmaps in storage order (colour
	// channels first, alpha last).
	Pixmaps() []Pixmap

	copyLayout() Layout
}

// Grey is a single luminance channel.
type Grey struct {
	Y Pixmap
}

// GreyAlpha is luminance plus alpha.
type GreyAlpha struct {
	Y, A Pixmap
}

// RGB is three colour channels.
type RGB struct {
	R, G, B Pixmap
}

// RGBA is three colour channels plus alpha.
type RGBA struct {
	R, G, B, A Pixmap
}

func (l *Grey) Kind() LayoutKind      { return KindGrey }
func (l *GreyAlpha) Kind() LayoutKind { return KindGreyAlpha }
func (l *RGB) Kind() LayoutKind       { return KindRGB }
func (l *RGBA) Kind() LayoutKind      { return KindRGBA }

func (l *Grey) Pixmaps() []Pixmap      { return []Pixmap{l.Y} }
func (l *GreyAlpha) Pixmaps() []Pixmap { return []Pixmap{l.Y, l.A} }
func (l *RGB) Pixmaps() []Pixmap       { return []Pixmap{l.R, l.G, l.B} }
func (l *RGBA) Pixmaps() []Pixmap      { return []Pixmap{l.R, l.G, l.B, l.A} }

func (l *Grey) copyLayout() Layout {
	return &Grey{Y: l.Y.Copy()}
}

func (l *GreyAlpha) copyLayout() Layout {
	return &GreyAlpha{Y: l.Y.Copy(), A: l.A.Copy()}
}

func (l *RGB) copyLayout() Layout {
	return &RGB{R: l.R.Copy(), G: l.G.Copy(), B: l.B.Copy()}
}

func (l *RGBA) copyLayout() Layout {
	return &RGBA{R: l.R.Copy(), G: l.G.Copy(), B: l.B.Copy(), A: l.A.Copy()}
}

// newLayout allocates a zero-filled layout of kind k.
func newLayout(k LayoutKind, depth Depth, w, h int) Layout {
	p := func() Pixmap { return NewPixmap(depth, w, h) }
	switch k {
	case KindGrey:
		return &Grey{Y: p()}
	case KindGreyAlpha:
		return &GreyAlpha{Y: p(), A: p()}
	case KindRGB:
		return &RGB{R: p(), G: p(), B: p()}
	default:
		return &RGBA{R: p(), G: p(), B: p(), A: p()}
	}
}

// Interface checks.
var (
	_ Layout = (*Grey)(nil)
	_ Layout = (*GreyAlpha)(nil)
	_ Layout = (*RGB)(nil)
	_ Layout = (*RGBA)(nil)
)

// isNilLayout reports whether l is nil or a nil pointer to one of the
// layout variants.
func isNilLayout(l Layout) bool {
	switch l := l.(type) {
	case *Grey:
		return l == nil
	case *GreyAlpha:
		return l == nil
	case *RGB:
		return l == nil
	case *RGBA:
		return l == nil
	}
	return l == nil
}
