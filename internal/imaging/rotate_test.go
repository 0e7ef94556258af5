package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/disintegration/imaging"
)

// createQuadrantImage paints the top-left quadrant red and the rest blue.
func createQuadrantImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 && y < height/2 {
				img.Set(x, y, color.RGBA{255, 0, 0, 255})
			} else {
				img.Set(x, y, color.RGBA{0, 0, 255, 255})
			}
		}
	}
	return img
}

func isRed(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r>>8 > 200 && g>>8 < 60 && b>>8 < 60
}

func TestRotate_ExpandsCanvas(t *testing.T) {
	img := createQuadrantImage(200, 100)

	rotated := Rotate(img, 30, color.White)

	// A 200x100 image turned by 30 degrees needs about 223x187 pixels.
	wantW := 200*math.Cos(math.Pi/6) + 100*math.Sin(math.Pi/6)
	wantH := 200*math.Sin(math.Pi/6) + 100*math.Cos(math.Pi/6)
	b := rotated.Bounds()
	if math.Abs(float64(b.Dx())-wantW) > 2 || math.Abs(float64(b.Dy())-wantH) > 2 {
		t.Errorf("rotated bounds: got %dx%d, want about %.0fx%.0f", b.Dx(), b.Dy(), wantW, wantH)
	}
}

func TestRotate_QuarterTurnSwapsDimensions(t *testing.T) {
	img := createQuadrantImage(120, 40)

	rotated := Rotate(img, 90, color.White)

	b := rotated.Bounds()
	if abs(b.Dx()-40) > 1 || abs(b.Dy()-120) > 1 {
		t.Errorf("rotated bounds: got %dx%d, want about 40x120", b.Dx(), b.Dy())
	}
}

func TestRotate_CounterClockwise(t *testing.T) {
	img := createQuadrantImage(100, 100)

	rotated := Rotate(img, 90, color.White)
	reference := imaging.Rotate90(img)

	// The red quadrant moves from top-left to bottom-left.
	b := rotated.Bounds()
	if !isRed(rotated.At(b.Min.X+b.Dx()/4, b.Min.Y+3*b.Dy()/4)) {
		t.Error("bottom-left quadrant should be red after a counter-clockwise quarter turn")
	}
	if !isRed(reference.At(25, 75)) {
		t.Fatal("reference rotation does not match the expected layout")
	}
	if isRed(rotated.At(b.Min.X+3*b.Dx()/4, b.Min.Y+b.Dy()/4)) {
		t.Error("top-right quadrant should not be red")
	}
}

func TestRotate_FillsCornersWithBackground(t *testing.T) {
	img := createQuadrantImage(100, 100)
	bg := color.RGBA{0, 255, 0, 255}

	rotated := Rotate(img, 45, bg)

	r, g, b, a := rotated.At(rotated.Bounds().Min.X, rotated.Bounds().Min.Y).RGBA()
	if r>>8 > 10 || g>>8 < 245 || b>>8 > 10 || a>>8 != 255 {
		t.Errorf("corner pixel: got (%d,%d,%d,%d), want opaque green", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestRotate_DoesNotModifySource(t *testing.T) {
	img := createQuadrantImage(50, 50)
	before := make([]uint8, len(img.Pix))
	copy(before, img.Pix)

	Rotate(img, 17, nil)

	for i := range before {
		if img.Pix[i] != before[i] {
			t.Fatal("Rotate modified the source image")
		}
	}
}

func TestParseBackground(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"", color.RGBA{255, 255, 255, 255}, false},
		{"#000000", color.RGBA{0, 0, 0, 255}, false},
		{"ff0000", color.RGBA{255, 0, 0, 255}, false},
		{"#fff", color.RGBA{255, 255, 255, 255}, false},
		{"#zzzzzz", color.RGBA{}, true},
		{"red", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBackground(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseBackground(%q) should fail", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBackground(%q) failed: %v", tt.in, err)
			}
			r, g, b, a := got.RGBA()
			if uint8(r>>8) != tt.want.R || uint8(g>>8) != tt.want.G || uint8(b>>8) != tt.want.B || uint8(a>>8) != tt.want.A {
				t.Errorf("ParseBackground(%q) = (%d,%d,%d,%d), want %v", tt.in, r>>8, g>>8, b>>8, a>>8, tt.want)
			}
		})
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
