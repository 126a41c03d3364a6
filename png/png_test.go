package png_test

import (
	"bytes"
	"errors"
	gopng "image/png"
	"testing"

	"github.com/AlanRace/go-imagelib"
	"github.com/AlanRace/go-imagelib/image"
	"github.com/AlanRace/go-imagelib/png"
)

func pattern(t *testing.T, kind image.LayoutKind, maxVal int) *image.Image {
	t.Helper()
	img, err := image.NewOf(kind, 7, 5, maxVal)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			v := (x*37 + y*101) % (maxVal + 1)
			img.WriteRGBA(x, y, v, maxVal-v, (v*3)%(maxVal+1), (maxVal/5)*(y%5))
		}
	}
	return img
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		kind   image.LayoutKind
		maxVal int
	}{
		{"grey 8", image.KindGrey, 255},
		{"grey 16", image.KindGrey, 65535},
		{"rgb 8", image.KindRGB, 255},
		{"rgb 16", image.KindRGB, 65535},
		{"rgba 8", image.KindRGBA, 255},
		{"rgba 16", image.KindRGBA, 65535},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := pattern(t, tt.kind, tt.maxVal)

			var buf bytes.Buffer
			if err := imagelib.Encode("png", &buf, img); err != nil {
				t.Fatal(err)
			}
			got, err := imagelib.Decode("PNG", &buf)
			if err != nil {
				t.Fatal(err)
			}
			if !image.Equal(img, got) {
				t.Errorf("decoded %s, want %s with identical samples", got, img)
			}
		})
	}
}

func TestGreyAlphaRoundTrip(t *testing.T) {
	img := pattern(t, image.KindGreyAlpha, 255)

	var buf bytes.Buffer
	if err := imagelib.Encode("png", &buf, img); err != nil {
		t.Fatal(err)
	}
	got, err := imagelib.Decode("png", &buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind() != image.KindRGBA {
		t.Fatalf("decoded layout %s, want RGBA", got.Kind())
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			g0, a0 := img.ReadGreyAlpha(x, y)
			g1, a1 := got.ReadGreyAlpha(x, y)
			if g0 != g1 || a0 != a1 {
				t.Fatalf("(%d, %d) = (%d, %d), want (%d, %d)", x, y, g1, a1, g0, a0)
			}
		}
	}
}

func TestRescaledMaxVal(t *testing.T) {
	img, _ := image.NewGrey(2, 1, image.WithMaxVal(1023))
	img.WriteGrey(0, 0, 1023)
	img.WriteGrey(1, 0, 0)

	var buf bytes.Buffer
	if err := imagelib.Encode("png", &buf, img); err != nil {
		t.Fatal(err)
	}
	got, err := imagelib.Decode("png", &buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.MaxVal != 65535 || got.ReadGrey(0, 0) != 65535 || got.ReadGrey(1, 0) != 0 {
		t.Errorf("decoded %s with samples %d, %d", got, got.ReadGrey(0, 0), got.ReadGrey(1, 0))
	}
}

func TestSize(t *testing.T) {
	var buf bytes.Buffer
	if err := imagelib.Encode("png", &buf, pattern(t, image.KindRGB, 255)); err != nil {
		t.Fatal(err)
	}
	w, h, err := imagelib.DecodeSize("png", &buf)
	if err != nil || w != 7 || h != 5 {
		t.Errorf("DecodeSize = %d, %d, %v, want 7, 5", w, h, err)
	}
}

func TestCompressionLevel(t *testing.T) {
	img := pattern(t, image.KindRGB, 255)

	var buf bytes.Buffer
	w := imagelib.NewChunkWriter(&buf)
	if err := (png.Codec{CompressionLevel: gopng.NoCompression}).Write(w, img); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if int(w.Offset()) != buf.Len() {
		t.Errorf("Offset() = %d, sink holds %d bytes", w.Offset(), buf.Len())
	}
	got, err := png.Codec{}.Parse(imagelib.NewChunkReader(&buf))
	if err != nil {
		t.Fatal(err)
	}
	if !image.Equal(img, got) {
		t.Error("uncompressed round trip changed the image")
	}
}

func TestCorrupt(t *testing.T) {
	_, err := imagelib.Decode("png", bytes.NewReader([]byte("\x89PNG\r\n\x1a\nbroken")))
	var ferr *imagelib.FormatError
	if !errors.As(err, &ferr) || ferr.Format != "png" {
		t.Errorf("Decode error = %v, want png *FormatError", err)
	}
}
