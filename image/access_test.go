package image

import (
	"fmt"
	"testing"
)

var allKinds = []LayoutKind{KindGrey, KindGreyAlpha, KindRGB, KindRGBA}

// storedFixture returns a 2x1 image of the given kind whose pixel (0, 0)
// holds RGB (10, 20, 31) or grey 42, with alpha 7 where present.
func storedFixture(t *testing.T, kind LayoutKind) *Image {
	t.Helper()
	img, err := NewOf(kind, 2, 1, 255)
	if err != nil {
		t.Fatal(err)
	}
	switch l := img.Pixels.(type) {
	case *Grey:
		l.Y.Set(0, 0, 42)
	case *GreyAlpha:
		l.Y.Set(0, 0, 42)
		l.A.Set(0, 0, 7)
	case *RGB:
		l.R.Set(0, 0, 10)
		l.G.Set(0, 0, 20)
		l.B.Set(0, 0, 31)
	case *RGBA:
		l.R.Set(0, 0, 10)
		l.G.Set(0, 0, 20)
		l.B.Set(0, 0, 31)
		l.A.Set(0, 0, 7)
	}
	return img
}

func samples(img *Image, x, y int) []int {
	var s []int
	for _, p := range img.Pixels.Pixmaps() {
		s = append(s, p.Get(x, y))
	}
	return s
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestReadRGBA(t *testing.T) {
	want := map[LayoutKind][4]int{
		KindRGB:       {10, 20, 31, 255},
		KindRGBA:      {10, 20, 31, 7},
		KindGrey:      {42, 42, 42, 255},
		KindGreyAlpha: {42, 42, 42, 7},
	}
	for _, kind := range allKinds {
		img := storedFixture(t, kind)
		r, g, b, a := img.ReadRGBA(0, 0)
		if got := [4]int{r, g, b, a}; got != want[kind] {
			t.Errorf("%s: ReadRGBA = %v, want %v", kind, got, want[kind])
		}
	}
}

func TestReadRGB(t *testing.T) {
	want := map[LayoutKind][3]int{
		KindRGB:       {10, 20, 31},
		KindRGBA:      {10, 20, 31},
		KindGrey:      {42, 42, 42},
		KindGreyAlpha: {42, 42, 42},
	}
	for _, kind := range allKinds {
		img := storedFixture(t, kind)
		r, g, b := img.ReadRGB(0, 0)
		if got := [3]int{r, g, b}; got != want[kind] {
			t.Errorf("%s: ReadRGB = %v, want %v", kind, got, want[kind])
		}
	}
}

func TestReadGreyAlpha(t *testing.T) {
	want := map[LayoutKind][2]int{
		KindRGB:       {20, 255},
		KindRGBA:      {20, 7},
		KindGrey:      {42, 255},
		KindGreyAlpha: {42, 7},
	}
	for _, kind := range allKinds {
		img := storedFixture(t, kind)
		g, a := img.ReadGreyAlpha(0, 0)
		if got := [2]int{g, a}; got != want[kind] {
			t.Errorf("%s: ReadGreyAlpha = %v, want %v", kind, got, want[kind])
		}
	}
}

func TestReadGrey(t *testing.T) {
	want := map[LayoutKind]int{
		KindRGB:       20,
		KindRGBA:      20,
		KindGrey:      42,
		KindGreyAlpha: 42,
	}
	for _, kind := range allKinds {
		img := storedFixture(t, kind)
		if got := img.ReadGrey(0, 0); got != want[kind] {
			t.Errorf("%s: ReadGrey = %d, want %d", kind, got, want[kind])
		}
	}
}

func TestWriteAccessors(t *testing.T) {
	tests := []struct {
		name  string
		write func(img *Image)
		want  map[LayoutKind][]int
	}{
		{
			name:  "WriteRGBA",
			write: func(img *Image) { img.WriteRGBA(1, 0, 30, 60, 91, 5) },
			want: map[LayoutKind][]int{
				KindRGB:       {30, 60, 91},
				KindRGBA:      {30, 60, 91, 5},
				KindGrey:      {60},
				KindGreyAlpha: {60, 5},
			},
		},
		{
			name:  "WriteRGB",
			write: func(img *Image) { img.WriteRGB(1, 0, 30, 60, 91) },
			want: map[LayoutKind][]int{
				KindRGB:       {30, 60, 91},
				KindRGBA:      {30, 60, 91, 9},
				KindGrey:      {60},
				KindGreyAlpha: {60, 9},
			},
		},
		{
			name:  "WriteGreyAlpha",
			write: func(img *Image) { img.WriteGreyAlpha(1, 0, 77, 3) },
			want: map[LayoutKind][]int{
				KindRGB:       {77, 77, 77},
				KindRGBA:      {77, 77, 77, 3},
				KindGrey:      {77},
				KindGreyAlpha: {77, 3},
			},
		},
		{
			name:  "WriteGrey",
			write: func(img *Image) { img.WriteGrey(1, 0, 77) },
			want: map[LayoutKind][]int{
				KindRGB:       {77, 77, 77},
				KindRGBA:      {77, 77, 77, 9},
				KindGrey:      {77},
				KindGreyAlpha: {77, 9},
			},
		},
	}

	for _, tt := range tests {
		for _, kind := range allKinds {
			t.Run(fmt.Sprintf("%s on %s", tt.name, kind), func(t *testing.T) {
				img, _ := NewOf(kind, 2, 1, 255)
				img.FillAlpha(9)
				tt.write(img)

				if got := samples(img, 1, 0); !equalInts(got, tt.want[kind]) {
					t.Errorf("samples = %v, want %v", got, tt.want[kind])
				}
				// The neighbouring pixel is untouched apart from the alpha fill.
				for i, v := range samples(img, 0, 0) {
					want := 0
					if kind.HasAlpha() && i == kind.Channels()-1 {
						want = 9
					}
					if v != want {
						t.Errorf("pixel (0, 0) channel %d = %d, want %d", i, v, want)
					}
				}
			})
		}
	}
}

func TestWriteReadRGBA(t *testing.T) {
	want := map[LayoutKind][4]int{
		KindRGBA:      {12, 34, 56, 78},
		KindRGB:       {12, 34, 56, 1000},
		KindGreyAlpha: {34, 34, 34, 78},
		KindGrey:      {34, 34, 34, 1000},
	}
	for _, kind := range allKinds {
		img, _ := NewOf(kind, 1, 1, 1000)
		img.WriteRGBA(0, 0, 12, 34, 56, 78)
		r, g, b, a := img.ReadRGBA(0, 0)
		if got := [4]int{r, g, b, a}; got != want[kind] {
			t.Errorf("%s: ReadRGBA after WriteRGBA = %v, want %v", kind, got, want[kind])
		}
	}
}

func TestConversionConsistency(t *testing.T) {
	for _, kind := range allKinds {
		for _, maxVal := range []int{255, 65535} {
			t.Run(fmt.Sprintf("%s max %d", kind, maxVal), func(t *testing.T) {
				img, _ := NewOf(kind, 5, 4, maxVal)
				for y := 0; y < img.Height; y++ {
					for x := 0; x < img.Width; x++ {
						img.WriteRGBA(x, y, (x*53)%maxVal, (y*97)%maxVal, (x*y*13)%maxVal, (x+y)%maxVal)
					}
				}

				for y := 0; y < img.Height; y++ {
					for x := 0; x < img.Width; x++ {
						grey := img.ReadGrey(x, y)
						if g, _ := img.ReadGreyAlpha(x, y); g != grey {
							t.Fatalf("(%d, %d): ReadGreyAlpha grey %d != ReadGrey %d", x, y, g, grey)
						}
						if kind == KindRGB || kind == KindRGBA {
							r, g, b := img.ReadRGB(x, y)
							if want := (r + g + b) / 3; grey != want {
								t.Fatalf("(%d, %d): ReadGrey = %d, want %d", x, y, grey, want)
							}
						}
						if !img.HasAlpha() {
							_, _, _, a := img.ReadRGBA(x, y)
							_, ga := img.ReadGreyAlpha(x, y)
							if a != maxVal || ga != maxVal {
								t.Fatalf("(%d, %d): alpha = %d / %d, want %d", x, y, a, ga, maxVal)
							}
						}
					}
				}
			})
		}
	}
}

func TestLuminanceTruncates(t *testing.T) {
	tests := []struct {
		r, g, b, want int
	}{
		{255, 0, 0, 85},
		{1, 1, 0, 0},
		{2, 2, 1, 1},
		{65535, 65535, 65534, 65534},
	}
	for _, tt := range tests {
		if got := Luminance(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("Luminance(%d, %d, %d) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestAccessOutOfBounds(t *testing.T) {
	img, _ := NewRGB(2, 2)
	defer func() {
		if recover() == nil {
			t.Error("ReadRGB(2, 0) did not panic")
		}
	}()
	img.ReadRGB(2, 0)
}
