// Package orientation turns page images upright before text recognition.
//
// The OCR engine's orientation and script detection reports how many degrees
// a page is rotated. Pages off by more than RotationThreshold degrees are
// rotated back; smaller angles are left alone since recognition copes with
// slight skew and a rotation would only add interpolation blur.
package orientation

import (
	"context"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/ironsheep/image-emails/internal/imaging"
	"github.com/ironsheep/image-emails/internal/ocr"
)

// RotationThreshold is the smallest reported angle, in degrees, that causes
// a rotation. Angles of exactly RotationThreshold are not corrected.
const RotationThreshold = 5.0

// Normalizer rotates images according to the detector's orientation estimate.
type Normalizer struct {
	Detector ocr.OrientationDetector

	// Threshold overrides RotationThreshold when positive.
	Threshold float64

	// Background fills canvas uncovered by a rotation. Nil means white.
	Background color.Color

	// AutoBackground fills with the page's own border colour instead of
	// Background.
	AutoBackground bool

	// Verbose logs the full orientation estimate.
	Verbose bool
}

// New returns a Normalizer with the default threshold and background.
func New(detector ocr.OrientationDetector) *Normalizer {
	return &Normalizer{Detector: detector}
}

// Normalize returns img turned upright and whether it was rotated.
//
// When detection fails, the estimate carries no rotation, or the angle is
// within the threshold, img itself is returned unchanged. Detection
// confidence is not consulted.
func (n *Normalizer) Normalize(ctx context.Context, img image.Image, cfg ocr.Config) (image.Image, bool) {
	if n.Detector == nil {
		log.Printf("No orientation detector configured, skipping rotation")
		return img, false
	}

	est, err := n.Detector.DetectOrientation(ctx, img, cfg)
	if err != nil {
		log.Printf("Orientation detection failed, keeping image as is: %v", err)
		return img, false
	}
	if n.Verbose {
		log.Printf("Orientation estimate: %+v", est)
	}
	if !est.HasRotate {
		log.Printf("Orientation report has no rotation, keeping image as is")
		return img, false
	}

	if !n.ShouldRotate(est) {
		return img, false
	}

	log.Printf("Rotating image by %.1f degrees", -est.Rotate)
	return imaging.Rotate(img, -est.Rotate, n.background(img)), true
}

// ShouldRotate reports whether est calls for a rotation: it must carry a
// rotation whose magnitude exceeds the threshold.
func (n *Normalizer) ShouldRotate(est ocr.Orientation) bool {
	return est.HasRotate && math.Abs(est.Rotate) > n.ThresholdDegrees()
}

// ThresholdDegrees returns the rotation threshold in effect.
func (n *Normalizer) ThresholdDegrees() float64 {
	if n.Threshold > 0 {
		return n.Threshold
	}
	return RotationThreshold
}

func (n *Normalizer) background(img image.Image) color.Color {
	if n.AutoBackground {
		return imaging.BorderColor(img)
	}
	if n.Background == nil {
		return imaging.DefaultBackground
	}
	return n.Background
}
