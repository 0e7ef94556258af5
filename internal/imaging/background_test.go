package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createFramedImage fills the image with fill and draws a one pixel frame
// of border around it, except for the corner pixels which get accent.
func createFramedImage(width, height int, fill, border, accent color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			edgeX := x == 0 || x == width-1
			edgeY := y == 0 || y == height-1
			switch {
			case edgeX && edgeY:
				img.Set(x, y, accent)
			case edgeX || edgeY:
				img.Set(x, y, border)
			default:
				img.Set(x, y, fill)
			}
		}
	}
	return img
}

func TestBorderColor(t *testing.T) {
	tint := color.RGBA{0xF4, 0xE2, 0xC1, 255}
	img := createFramedImage(40, 30, color.Black, tint, color.RGBA{255, 0, 0, 255})

	got := BorderColor(img)

	want := color.RGBA{0xF0, 0xE0, 0xC0, 255}
	if got != color.Color(want) {
		t.Errorf("BorderColor: got %v, want %v", got, want)
	}
}

func TestBorderColor_IgnoresInterior(t *testing.T) {
	img := createFramedImage(50, 50, color.RGBA{0, 0, 200, 255}, color.White, color.White)

	r, g, b, _ := BorderColor(img).RGBA()
	if r>>8 != 0xF0 || g>>8 != 0xF0 || b>>8 != 0xF0 {
		t.Errorf("BorderColor: got (%d,%d,%d), want quantized white", r>>8, g>>8, b>>8)
	}
}

func TestBorderColor_TinyImages(t *testing.T) {
	tests := []struct {
		name string
		rect image.Rectangle
	}{
		{"single pixel", image.Rect(0, 0, 1, 1)},
		{"single row", image.Rect(0, 0, 5, 1)},
		{"single column", image.Rect(0, 0, 1, 5)},
		{"offset bounds", image.Rect(10, 10, 14, 13)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(tt.rect)
			for y := tt.rect.Min.Y; y < tt.rect.Max.Y; y++ {
				for x := tt.rect.Min.X; x < tt.rect.Max.X; x++ {
					img.Set(x, y, color.RGBA{32, 64, 96, 255})
				}
			}
			if got := BorderColor(img); got != color.Color(color.RGBA{32, 64, 96, 255}) {
				t.Errorf("BorderColor: got %v", got)
			}
		})
	}
}

func TestBorderColor_Empty(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if got := BorderColor(img); got != DefaultBackground {
		t.Errorf("empty image: got %v, want DefaultBackground", got)
	}
}

func TestBorderColor_TieGoesToLighter(t *testing.T) {
	// 2x2: every pixel is on the border; two black, two white.
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.Black)
	img.Set(1, 0, color.White)
	img.Set(0, 1, color.White)
	img.Set(1, 1, color.Black)

	r, _, _, _ := BorderColor(img).RGBA()
	if r>>8 != 0xF0 {
		t.Errorf("tie should pick the lighter colour, got r=%d", r>>8)
	}
}

func TestBorderColor_TieOnLumaIsStable(t *testing.T) {
	// Both colours are already quantized and share a luma of 84528.
	first := color.RGBA{R: 240, G: 0, B: 112, A: 255}
	second := color.RGBA{R: 0, G: 144, B: 0, A: 255}
	if luma(first) != luma(second) {
		t.Fatalf("fixture colours must share a luma: %d vs %d", luma(first), luma(second))
	}

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, first)
	img.Set(1, 0, second)
	img.Set(0, 1, second)
	img.Set(1, 1, first)

	for i := 0; i < 20; i++ {
		if got := BorderColor(img); got != color.Color(first) {
			t.Fatalf("run %d: got %v, want %v", i, got, first)
		}
	}
}
