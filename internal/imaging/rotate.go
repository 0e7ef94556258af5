package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultBackground fills canvas areas uncovered by a rotation.
var DefaultBackground color.Color = color.White

// ParseBackground parses a hex colour such as "#ffffff", "fff" or "#000".
// An empty string yields DefaultBackground.
func ParseBackground(hex string) (color.Color, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return DefaultBackground, nil
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid background colour %q: %w", hex, err)
	}
	return c, nil
}

// Rotate turns img counter-clockwise by degrees. The canvas grows to hold the
// whole rotated image, so nothing is cropped, and the corners it gains are
// filled with background.
//
// The result is always a new image; img is never modified.
func Rotate(img image.Image, degrees float64, background color.Color) image.Image {
	if background == nil {
		background = DefaultBackground
	}

	// bild measures angles clockwise.
	rotated := transform.Rotate(img, -degrees, &transform.RotationOptions{ResizeBounds: true})

	b := rotated.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), background)
	return imaging.Overlay(canvas, rotated, image.Point{}, 1.0)
}
