package tiff_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/hhrutter/lzw"

	"github.com/AlanRace/go-imagelib"
	"github.com/AlanRace/go-imagelib/image"
	"github.com/AlanRace/go-imagelib/tiff"
)

func gradient(t *testing.T, kind image.LayoutKind, maxVal int) *image.Image {
	t.Helper()
	img, err := image.NewOf(kind, 9, 6, maxVal)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			v := (x*maxVal/8 + y) % (maxVal + 1)
			img.WriteRGBA(x, y, v, maxVal-v, y*maxVal/5, maxVal-x*maxVal/8)
		}
	}
	return img
}

func TestRoundTrip(t *testing.T) {
	kinds := []image.LayoutKind{image.KindGrey, image.KindRGB, image.KindRGBA}
	options := []tiff.Options{
		{Compression: tiff.None},
		{Compression: tiff.Deflate},
		{Compression: tiff.Deflate, Predictor: true},
	}

	for _, kind := range kinds {
		for _, maxVal := range []int{255, 65535} {
			for _, opts := range options {
				name := fmt.Sprintf("%s max %d %s predictor %t", kind, maxVal, opts.Compression, opts.Predictor)
				t.Run(name, func(t *testing.T) {
					img := gradient(t, kind, maxVal)

					var buf bytes.Buffer
					w := imagelib.NewChunkWriter(&buf)
					if err := (tiff.Codec{Options: opts}).Write(w, img); err != nil {
						t.Fatal(err)
					}
					if err := w.Flush(); err != nil {
						t.Fatal(err)
					}

					got, err := imagelib.Decode("TIF", &buf)
					if err != nil {
						t.Fatal(err)
					}
					if !image.Equal(img, got) {
						t.Errorf("decoded %s, want %s with identical samples", got, img)
					}
				})
			}
		}
	}
}

func TestSize(t *testing.T) {
	var buf bytes.Buffer
	if err := imagelib.Encode("tiff", &buf, gradient(t, image.KindRGB, 255)); err != nil {
		t.Fatal(err)
	}
	w, h, err := imagelib.DecodeSize("tiff", &buf)
	if err != nil || w != 9 || h != 6 {
		t.Errorf("DecodeSize = %d, %d, %v, want 9, 6", w, h, err)
	}
}

func TestHeader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		msg  string
	}{
		{"big tiff little endian", []byte("II\x2b\x00\x08\x00\x00\x00"), "BigTIFF is not supported"},
		{"big tiff big endian", []byte("MM\x00\x2b\x00\x08\x00\x00"), "BigTIFF is not supported"},
		{"bad order", []byte("XX\x2a\x00\x08\x00\x00\x00"), "invalid byte order mark"},
		{"bad version", []byte("II\x07\x00\x08\x00\x00\x00"), "unsupported version 0x7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := imagelib.Decode("tiff", bytes.NewReader(tt.data))
			var ferr *imagelib.FormatError
			if !errors.As(err, &ferr) || ferr.Msg != tt.msg {
				t.Errorf("Decode error = %v, want %q", err, tt.msg)
			}
		})
	}
}

func TestShortHeader(t *testing.T) {
	_, _, err := imagelib.DecodeSize("tiff", bytes.NewReader([]byte("II")))
	if !errors.Is(err, imagelib.ErrSourceExhausted) {
		t.Errorf("DecodeSize error = %v, want ErrSourceExhausted", err)
	}
}

func TestInvalidCompression(t *testing.T) {
	img := gradient(t, image.KindGrey, 255)
	err := tiff.Codec{Options: tiff.Options{Compression: 7}}.Write(imagelib.NewChunkWriter(&bytes.Buffer{}), img)
	if !errors.Is(err, tiff.ErrInvalidCompression) {
		t.Errorf("Write error = %v, want ErrInvalidCompression", err)
	}
}

// lzwGrey builds a little-endian, LZW-compressed 8-bit greyscale TIFF with a
// single strip.
func lzwGrey(t *testing.T, width, height int, pix []byte) []byte {
	t.Helper()

	var strip bytes.Buffer
	zw := lzw.NewWriter(&strip, true)
	if _, err := zw.Write(pix); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	type entry struct {
		tag, typ uint16
		value    uint32
	}
	const short, long = 3, 4
	entries := []entry{
		{256, short, uint32(width)},
		{257, short, uint32(height)},
		{258, short, 8},
		{259, short, 5}, // LZW
		{262, short, 1}, // BlackIsZero
		{273, long, uint32(8 + 2 + 9*12 + 4)},
		{277, short, 1},
		{278, short, uint32(height)},
		{279, long, uint32(strip.Len())},
	}

	var buf bytes.Buffer
	le := binary.LittleEndian
	buf.WriteString("II")
	binary.Write(&buf, le, uint16(42))
	binary.Write(&buf, le, uint32(8))
	binary.Write(&buf, le, uint16(len(entries)))
	for _, e := range entries {
		binary.Write(&buf, le, e.tag)
		binary.Write(&buf, le, e.typ)
		binary.Write(&buf, le, uint32(1))
		binary.Write(&buf, le, e.value)
	}
	binary.Write(&buf, le, uint32(0))
	buf.Write(strip.Bytes())
	return buf.Bytes()
}

func TestDecodeLZW(t *testing.T) {
	pix := []byte{0, 10, 20, 30, 40, 40, 40, 255}
	data := lzwGrey(t, 4, 2, pix)

	img, err := imagelib.Decode("tiff", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Kind() != image.KindGrey || img.Width != 4 || img.Height != 2 || img.MaxVal != 255 {
		t.Fatalf("decoded %s, want Grey 4x2 max=255", img)
	}
	for i, want := range pix {
		if got := img.ReadGrey(i%4, i/4); got != int(want) {
			t.Errorf("(%d, %d) = %d, want %d", i%4, i/4, got, want)
		}
	}
}
