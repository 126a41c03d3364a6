// Package gif reads and writes GIF images. Importing it registers the "gif"
// extension with imagelib.
//
// Parse returns the first frame. ReadStreaming returns every frame of an
// animation in turn, composited onto the logical screen the way a viewer
// would show it, as an 8-bit RGBA image.
package gif

import (
	"fmt"
	stdimage "image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/AlanRace/go-imagelib"
	"github.com/AlanRace/go-imagelib/image"
)

const formatName = "gif"

func init() {
	imagelib.Register(Codec{})
}

// Codec is the GIF reader and writer.
type Codec struct {
	// NumColors is the palette size used when quantizing colour images,
	// 1 to 256. Zero means 256.
	NumColors int
}

func (Codec) Extensions() []string { return []string{"gif"} }

func (Codec) Size(src *imagelib.ChunkReader) (width, height int, err error) {
	cfg, err := gif.DecodeConfig(src)
	if err != nil {
		return 0, 0, &imagelib.FormatError{Format: formatName, Msg: "reading header", Err: err}
	}
	return cfg.Width, cfg.Height, nil
}

func (Codec) Parse(src *imagelib.ChunkReader) (*image.Image, error) {
	m, err := gif.Decode(src)
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

// animation is the StreamState of a GIF stream.
type animation struct {
	g      *gif.GIF
	canvas *stdimage.RGBA
	// saved is the canvas before the previous frame, restored when that
	// frame's disposal is DisposalPrevious.
	saved *stdimage.RGBA
	next  int
}

// ReadStreaming decodes the whole animation from src on the first call,
// when state is nil, and returns one frame per call. Later calls do not
// read src.
func (Codec) ReadStreaming(src *imagelib.ChunkReader, state imagelib.StreamState) (*imagelib.StreamResult, error) {
	var a *animation
	switch s := state.(type) {
	case nil:
		g, err := gif.DecodeAll(src)
		if err != nil {
			return nil, &imagelib.FormatError{Format: formatName, Msg: "decoding", Err: err}
		}
		if len(g.Image) == 0 {
			return nil, &imagelib.FormatError{Format: formatName, Msg: "no frames"}
		}
		screen := stdimage.Rect(0, 0, g.Config.Width, g.Config.Height)
		if screen.Empty() {
			screen = g.Image[0].Bounds()
		}
		a = &animation{g: g, canvas: stdimage.NewRGBA(screen)}
	case *animation:
		a = s
	default:
		return nil, fmt.Errorf("gif: stream state of type %T", state)
	}

	i := a.next
	if i >= len(a.g.Image) {
		return nil, fmt.Errorf("gif: frame %d requested from a stream of %d", i, len(a.g.Image))
	}
	a.dispose(i - 1)
	if disposal(a.g, i) == gif.DisposalPrevious {
		a.saved = stdimage.NewRGBA(a.canvas.Bounds())
		copy(a.saved.Pix, a.canvas.Pix)
	}

	frame := a.g.Image[i]
	xdraw.Draw(a.canvas, frame.Bounds(), frame, frame.Bounds().Min, xdraw.Over)

	b := a.canvas.Bounds()
	img, err := image.NewRGB(b.Dx(), b.Dy(), image.WithAlpha(true))
	if err != nil {
		return nil, err
	}
	xdraw.Draw(img, img.Bounds(), a.canvas, b.Min, xdraw.Src)
	imagelib.LogImage("decoded frame", formatName, img)

	res := &imagelib.StreamResult{
		Image: img,
		Frame: i,
		Delay: time.Duration(delay(a.g, i)) * 10 * time.Millisecond,
	}
	a.next++
	if a.next < len(a.g.Image) {
		res.Next = a
	}
	return res, nil
}

func disposal(g *gif.GIF, i int) byte {
	if i < 0 || i >= len(g.Disposal) {
		return 0
	}
	return g.Disposal[i]
}

func delay(g *gif.GIF, i int) int {
	if i >= len(g.Delay) {
		return 0
	}
	return g.Delay[i]
}

// dispose applies the disposal method of frame i before the next frame is
// drawn.
func (a *animation) dispose(i int) {
	switch disposal(a.g, i) {
	case gif.DisposalBackground:
		xdraw.Draw(a.canvas, a.g.Image[i].Bounds(), stdimage.Transparent, stdimage.Point{}, xdraw.Src)
	case gif.DisposalPrevious:
		if a.saved != nil {
			copy(a.canvas.Pix, a.saved.Pix)
		}
	}
}

// greyPalette has one entry per 8-bit grey level.
var greyPalette = func() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}()

func (c Codec) Write(dst *imagelib.ChunkWriter, img *image.Image) error {
	var err error
	if img.Kind() == image.KindGrey {
		// Every 8-bit grey level has a palette entry, so grey images are
		// stored without loss.
		m := stdimage.NewPaletted(img.Bounds(), greyPalette)
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				m.Pix[y*m.Stride+x] = uint8(image.Rescale(img.ReadGrey(x, y), img.MaxVal, 0xff))
			}
		}
		err = gif.Encode(dst, m, nil)
	} else {
		n := c.NumColors
		if n == 0 {
			n = 256
		}
		err = gif.Encode(dst, img.Std8(), &gif.Options{
			NumColors: n,
			Drawer:    xdraw.FloydSteinberg,
		})
	}
	if err != nil {
		return &imagelib.FormatError{Format: formatName, Msg: "encoding", Err: err}
	}
	imagelib.LogImage("encoded", formatName, img)
	return nil
}

// WriteAll writes frames as an animation, showing each for the matching
// delay. All frames must have the same size; colour frames are quantized
// to the web-safe palette.
func (Codec) WriteAll(dst *imagelib.ChunkWriter, frames []*image.Image, delays []time.Duration) error {
	if len(frames) == 0 {
		return &imagelib.FormatError{Format: formatName, Msg: "no frames to write"}
	}
	if len(delays) != len(frames) {
		return &imagelib.FormatError{Format: formatName, Msg: fmt.Sprintf("%d delays for %d frames", len(delays), len(frames))}
	}

	g := &gif.GIF{}
	for i, f := range frames {
		if f.Width != frames[0].Width || f.Height != frames[0].Height {
			return &imagelib.FormatError{Format: formatName, Msg: fmt.Sprintf("frame %d is %dx%d, frame 0 is %dx%d",
				i, f.Width, f.Height, frames[0].Width, frames[0].Height)}
		}
		m := stdimage.NewPaletted(f.Bounds(), palette.WebSafe)
		xdraw.Draw(m, m.Bounds(), f.Std8(), stdimage.Point{}, xdraw.Src)
		g.Image = append(g.Image, m)
		g.Delay = append(g.Delay, int(delays[i]/(10*time.Millisecond)))
	}

	if err := gif.EncodeAll(dst, g); err != nil {
		return &imagelib.FormatError{Format: formatName, Msg: "encoding", Err: err}
	}
	return nil
}
