// Package extractor runs the email extraction pipeline for page images:
// orientation correction, text recognition, candidate reconstruction,
// validation and deduplication, and finally the result file.
package extractor

import (
	"context"
	"errors"
	"image"
	"log"
	"time"

	"github.com/ironsheep/image-emails/internal/emails"
	"github.com/ironsheep/image-emails/internal/ocr"
)

// DefaultTimeout bounds a single text recognition call.
const DefaultTimeout = 60 * time.Second

// Extractor recognizes text in an image and returns the valid addresses in it.
type Extractor struct {
	Engine    ocr.TextExtractor
	Validator emails.Validator

	// Timeout bounds text recognition; zero means DefaultTimeout.
	Timeout time.Duration

	// Verbose logs the recognized text and every candidate.
	Verbose bool
}

// New returns an Extractor with the default validator and timeout.
func New(engine ocr.TextExtractor) *Extractor {
	return &Extractor{
		Engine:    engine,
		Validator: emails.NewSyntaxValidator(),
		Timeout:   DefaultTimeout,
	}
}

// ExtractEmails returns the distinct normalized addresses found in img,
// sorted. Recognition failures and timeouts are logged and yield an empty
// result, as do images without any valid address. Callers tell an
// interrupted run apart by checking ctx.
func (e *Extractor) ExtractEmails(ctx context.Context, img image.Image, cfg ocr.Config) []string {
	text, err := e.recognize(ctx, img, cfg)
	if err != nil {
		switch {
		case errors.Is(err, ocr.ErrTimeout):
			log.Printf("Text recognition timed out after %v", e.timeout())
		case errors.Is(ctx.Err(), context.Canceled):
			log.Printf("Text recognition interrupted")
		default:
			log.Printf("Text recognition failed: %v", err)
		}
		return nil
	}
	if e.Verbose {
		log.Printf("Recognized text: %q", text)
	}
	return e.FromText(text).Sorted()
}

// FromText reconstructs and validates the addresses in already recognized text.
func (e *Extractor) FromText(text string) *emails.Set {
	return emails.Collect(emails.Candidates(text), e.validator(), func(candidate string, err error) {
		log.Printf("Skipping candidate: %v", err)
	})
}

func (e *Extractor) recognize(ctx context.Context, img image.Image, cfg ocr.Config) (string, error) {
	if e.Engine == nil {
		return "", ocr.ErrNoEngine
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout())
	defer cancel()

	text, err := e.Engine.ExtractText(ctx, img, cfg)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, ocr.ErrTimeout) {
			err = errors.Join(ocr.ErrTimeout, err)
		}
		return "", err
	}
	return text, nil
}

func (e *Extractor) timeout() time.Duration {
	if e.Timeout > 0 {
		return e.Timeout
	}
	return DefaultTimeout
}

func (e *Extractor) validator() emails.Validator {
	if e.Validator == nil {
		return emails.NewSyntaxValidator()
	}
	return e.Validator
}
