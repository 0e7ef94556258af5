package imaging

import (
	"image"
	"image/color"
)

// BorderColor returns the most common colour along the outermost ring of
// pixels of img. Channels are quantized to multiples of 16 before counting
// so scanner noise does not split one paper colour into many.
//
// Pages printed on tinted card stock keep their tint in the corners a
// rotation uncovers, which keeps OCR from seeing a hard frame around the
// text. An empty image yields DefaultBackground.
func BorderColor(img image.Image) color.Color {
	b := img.Bounds()
	if b.Empty() {
		return DefaultBackground
	}

	counts := make(map[color.RGBA]int)
	count := func(x, y int) {
		r, g, bl, _ := img.At(x, y).RGBA()
		counts[color.RGBA{
			R: uint8((r >> 8) / 16 * 16),
			G: uint8((g >> 8) / 16 * 16),
			B: uint8((bl >> 8) / 16 * 16),
			A: 255,
		}]++
	}

	for x := b.Min.X; x < b.Max.X; x++ {
		count(x, b.Min.Y)
		if b.Dy() > 1 {
			count(x, b.Max.Y-1)
		}
	}
	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		count(b.Min.X, y)
		if b.Dx() > 1 {
			count(b.Max.X-1, y)
		}
	}

	var best color.RGBA
	bestCount := -1
	for c, n := range counts {
		if n > bestCount || (n == bestCount && lighter(c, best)) {
			best, bestCount = c, n
		}
	}
	return best
}

// lighter orders colours by luma, then by channel values, so that ties in
// BorderColor never depend on map order.
func lighter(a, b color.RGBA) bool {
	if la, lb := luma(a), luma(b); la != lb {
		return la > lb
	}
	if a.R != b.R {
		return a.R > b.R
	}
	if a.G != b.G {
		return a.G > b.G
	}
	return a.B > b.B
}

func luma(c color.RGBA) int {
	return 299*int(c.R) + 587*int(c.G) + 114*int(c.B)
}
