package image

import (
	"fmt"
	"math/bits"
)

// Depth is the physical bit depth of a Pixmap.
type Depth uint8

const (
	// Depth8 stores samples in the range 0..255.
	Depth8 Depth = 8
	// Depth16 stores samples in the range 0..65535.
	Depth16 Depth = 16
)

// Max returns the largest sample value representable at depth d.
func (d Depth) Max() int {
	if d == Depth8 {
		return 0xff
	}
	return 0xffff
}

func (d Depth) String() string {
	return fmt.Sprintf("%d-bit", uint8(d))
}

// DepthFor returns the depth required to store samples up to maxVal.
func DepthFor(maxVal int) Depth {
	if maxVal <= 0xff {
		return Depth8
	}
	return Depth16
}

// Pixmap is a 2D grid of unsigned samples at a fixed bit depth.
//
// The only implementations are *Pixmap8 and *Pixmap16.
type Pixmap interface {
	Width() int
	Height() int
	Depth() Depth

	// Get returns the sample at (x, y). It panics if (x, y) is out of bounds.
	Get(x, y int) int

	// Set stores v at (x, y). v must fit the pixmap depth; it is not clamped.
	Set(x, y, v int)

	// Fill sets every sample to v.
	Fill(v int)

	// Copy returns an independent deep copy.
	Copy() Pixmap

	pixmap()
}

// mul3NonNeg returns (x * y * z), unless at least one argument is negative or
// if the computation overflows the int type, in which case it returns -1.
func mul3NonNeg(x int, y int, z int) int {
	if (x < 0) || (y < 0) || (z < 0) {
		return -1
	}
	hi, lo := bits.Mul64(uint64(x), uint64(y))
	if hi != 0 {
		return -1
	}
	hi, lo = bits.Mul64(lo, uint64(z))
	if hi != 0 {
		return -1
	}
	a := int(lo)
	if (a < 0) || (uint64(a) != lo) {
		return -1
	}
	return a
}

// sampleCount returns w*h for the NewPixmap functions. It panics if either
// dimension is not positive or the product overflows: the factory validates
// dimensions before allocating, so reaching the panic is a caller bug.
func sampleCount(w, h int, typeName string) int {
	n := mul3NonNeg(1, w, h)
	if w <= 0 || h <= 0 || n < 0 {
		panic(fmt.Sprintf("image: New%s has invalid dimensions %dx%d", typeName, w, h))
	}
	return n
}

// NewPixmap returns a zero-filled pixmap of the given depth and size.
func NewPixmap(depth Depth, w, h int) Pixmap {
	switch depth {
	case Depth8:
		return NewPixmap8(w, h)
	case Depth16:
		return NewPixmap16(w, h)
	default:
		panic(fmt.Sprintf("image: unsupported pixmap depth %d", uint8(depth)))
	}
}

// Pixmap8 holds 8-bit samples.
type Pixmap8 struct {
	// Pix holds the samples in row-major order.
	Pix []uint8
	// Stride is the Pix distance between vertically adjacent samples.
	Stride int

	w, h int
}

// NewPixmap8 returns a zero-filled 8-bit pixmap.
func NewPixmap8(w, h int) *Pixmap8 {
	return &Pixmap8{
		Pix:    make([]uint8, sampleCount(w, h, "Pixmap8")),
		Stride: w,
		w:      w,
		h:      h,
	}
}

func (p *Pixmap8) pixmap() {}

func (p *Pixmap8) Width() int   { return p.w }
func (p *Pixmap8) Height() int  { return p.h }
func (p *Pixmap8) Depth() Depth { return Depth8 }

// PixOffset returns the index of the element of Pix that corresponds to
// the sample at (x, y).
func (p *Pixmap8) PixOffset(x, y int) int {
	if x < 0 || x >= p.w || y < 0 || y >= p.h {
		panic(fmt.Sprintf("image: sample (%d,%d) out of %dx%d bounds", x, y, p.w, p.h))
	}
	return y*p.Stride + x
}

func (p *Pixmap8) Get(x, y int) int {
	return int(p.Pix[p.PixOffset(x, y)])
}

func (p *Pixmap8) Set(x, y, v int) {
	p.Pix[p.PixOffset(x, y)] = uint8(v)
}

func (p *Pixmap8) Fill(v int) {
	s := uint8(v)
	for i := range p.Pix {
		p.Pix[i] = s
	}
}

func (p *Pixmap8) Copy() Pixmap {
	pix := make([]uint8, len(p.Pix))
	copy(pix, p.Pix)
	return &Pixmap8{Pix: pix, Stride: p.Stride, w: p.w, h: p.h}
}

// Pixmap16 holds 16-bit samples.
type Pixmap16 struct {
	// Pix holds the samples in row-major order.
	Pix []uint16
	// Stride is the Pix distance between vertically adjacent samples.
	Stride int

	w, h int
}

// NewPixmap16 returns a zero-filled 16-bit pixmap.
func NewPixmap16(w, h int) *Pixmap16 {
	return &Pixmap16{
		Pix:    make([]uint16, sampleCount(w, h, "Pixmap16")),
		Stride: w,
		w:      w,
		h:      h,
	}
}

func (p *Pixmap16) pixmap() {}

func (p *Pixmap16) Width() int   { return p.w }
func (p *Pixmap16) Height() int  { return p.h }
func (p *Pixmap16) Depth() Depth { return Depth16 }

// PixOffset returns the index of the element of Pix that corresponds to
// the sample at (x, y).
func (p *Pixmap16) PixOffset(x, y int) int {
	if x < 0 || x >= p.w || y < 0 || y >= p.h {
		panic(fmt.Sprintf("image: sample (%d,%d) out of %dx%d bounds", x, y, p.w, p.h))
	}
	return y*p.Stride + x
}

func (p *Pixmap16) Get(x, y int) int {
	return int(p.Pix[p.PixOffset(x, y)])
}

func (p *Pixmap16) Set(x, y, v int) {
	p.Pix[p.PixOffset(x, y)] = uint16(v)
}

func (p *Pixmap16) Fill(v int) {
	s := uint16(v)
	for i := range p.Pix {
		p.Pix[i] = s
	}
}

func (p *Pixmap16) Copy() Pixmap {
	pix := make([]uint16, len(p.Pix))
	copy(pix, p.Pix)
	return &Pixmap16{Pix: pix, Stride: p.Stride, w: p.w, h: p.h}
}

// Interface checks.
var (
	_ Pixmap = (*Pixmap8)(nil)
	_ Pixmap = (*Pixmap16)(nil)
)

func isNilPixmap(p Pixmap) bool {
	switch p := p.(type) {
	case *Pixmap8:
		return p == nil
	case *Pixmap16:
		return p == nil
	}
	return p == nil
}
