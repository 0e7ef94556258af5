package ocr

import (
	"context"
	"errors"
	"image"
)

var (
	// ErrTimeout is wrapped by text extraction errors caused by an expired deadline.
	ErrTimeout = errors.New("ocr: recognition timed out")

	// ErrNoEngine is returned when no Tesseract installation can be found.
	ErrNoEngine = errors.New("ocr: tesseract not available")
)

// Orientation is the result of orientation and script detection.
type Orientation struct {
	// Rotate is the number of degrees the page has to be rotated to become
	// upright, as reported by the engine. Only meaningful when HasRotate is set.
	Rotate float64 `json:"rotate"`

	// HasRotate is false when the engine report carried no usable rotation.
	HasRotate bool `json:"has_rotate"`

	// Confidence is the engine's orientation confidence. Reported for
	// diagnostics only.
	Confidence float64 `json:"confidence"`

	// Script is the detected script name, e.g. "Latin".
	Script string `json:"script,omitempty"`

	// ScriptConfidence is the engine's confidence in Script.
	ScriptConfidence float64 `json:"script_confidence"`
}

// OrientationDetector estimates how far a page image is rotated.
type OrientationDetector interface {
	DetectOrientation(ctx context.Context, img image.Image, cfg Config) (Orientation, error)
}

// TextExtractor recognizes all text in an image.
type TextExtractor interface {
	ExtractText(ctx context.Context, img image.Image, cfg Config) (string, error)
}

// Engine is the full OCR capability set used by the extraction pipeline.
type Engine interface {
	OrientationDetector
	TextExtractor
}

// Composite joins separate detector and extractor implementations into an Engine.
type Composite struct {
	Detector  OrientationDetector
	Extractor TextExtractor
}

// DetectOrientation delegates to the configured detector.
func (c Composite) DetectOrientation(ctx context.Context, img image.Image, cfg Config) (Orientation, error) {
	return c.Detector.DetectOrientation(ctx, img, cfg)
}

// ExtractText delegates to the configured extractor.
func (c Composite) ExtractText(ctx context.Context, img image.Image, cfg Config) (string, error) {
	return c.Extractor.ExtractText(ctx, img, cfg)
}

// timeoutError converts an expired context into an ErrTimeout-wrapping error.
func timeoutError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Join(ErrTimeout, err)
	}
	return err
}
