package imaging

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// RotatedPath returns where the rotated copy of inputPath is kept: in the
// directory of outputPath, named after the input with "-rotated" inserted
// before the extension.
//
//	RotatedPath("in/card.jpg", "out/card.txt") == "out/card-rotated.jpg"
func RotatedPath(inputPath, outputPath string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(filepath.Dir(outputPath), name+"-rotated"+ext)
}

// Save writes img to path in the format implied by its extension and returns
// the path actually written. Extensions the encoder does not support (e.g.
// ".webp") get ".png" appended.
func Save(img image.Image, path string) (string, error) {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		path += ".png"
	}
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return path, nil
}
