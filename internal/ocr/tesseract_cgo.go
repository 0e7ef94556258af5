//go:build cgo

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

const nativeAvailable = true

func newNative(osd OrientationDetector) Engine {
	return NewTesseract(osd)
}

// Tesseract recognizes text through the native gosseract bindings.
//
// gosseract exposes no orientation detection, so DetectOrientation is
// delegated to a separate detector (normally the CLI engine).
type Tesseract struct {
	clientFactory func() *gosseract.Client
	osd           OrientationDetector
}

// NewTesseract constructs a gosseract-backed engine. osd may be nil, in which
// case DetectOrientation always fails.
func NewTesseract(osd OrientationDetector) *Tesseract {
	return &Tesseract{clientFactory: gosseract.NewClient, osd: osd}
}

// DetectOrientation delegates to the configured orientation detector.
func (t *Tesseract) DetectOrientation(ctx context.Context, img image.Image, cfg Config) (Orientation, error) {
	if t.osd == nil {
		return Orientation{}, fmt.Errorf("%w: orientation detection needs the tesseract binary", ErrNoEngine)
	}
	return t.osd.DetectOrientation(ctx, img, cfg)
}

// ExtractText recognizes all text in img.
//
// The gosseract call cannot be interrupted, so it runs on its own goroutine
// and ExtractText stops waiting once ctx is done. The goroutine owns its
// client and closes it when recognition eventually finishes.
func (t *Tesseract) ExtractText(ctx context.Context, img image.Image, cfg Config) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		client := t.clientFactory()
		defer client.Close()
		text, err := recognize(client, buf.Bytes(), cfg)
		done <- result{text: text, err: err}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-ctx.Done():
		return "", timeoutError(ctx, fmt.Errorf("OCR abandoned: %w", ctx.Err()))
	}
}

func recognize(client *gosseract.Client, data []byte, cfg Config) (string, error) {
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	if err := applyConfig(client, cfg); err != nil {
		return "", err
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return text, nil
}

// applyConfig maps command-line style options onto the client.
func applyConfig(client *gosseract.Client, cfg Config) error {
	for _, o := range cfg.Options() {
		key := strings.TrimLeft(o.Key, "-")
		switch key {
		case "psm":
			mode, err := strconv.Atoi(o.Value)
			if err != nil {
				return fmt.Errorf("invalid psm %q: %w", o.Value, err)
			}
			if err := client.SetPageSegMode(gosseract.PageSegMode(mode)); err != nil {
				return fmt.Errorf("failed to set psm: %w", err)
			}
		case "l", "lang":
			if err := client.SetLanguage(strings.Split(o.Value, "+")...); err != nil {
				return fmt.Errorf("failed to set language: %w", err)
			}
		case "tessdata-dir":
			if err := client.SetTessdataPrefix(o.Value); err != nil {
				return fmt.Errorf("failed to set tessdata path: %w", err)
			}
		case "dpi":
			if err := client.SetVariable("user_defined_dpi", o.Value); err != nil {
				return fmt.Errorf("failed to set dpi: %w", err)
			}
		case "oem":
			// Engine mode is fixed when the native client initializes.
		case "c":
			name, value, ok := strings.Cut(o.Value, "=")
			if !ok {
				return fmt.Errorf("invalid variable %q: want name=value", o.Value)
			}
			if err := client.SetVariable(gosseract.SettableVariable(name), value); err != nil {
				return fmt.Errorf("failed to set variable %s: %w", name, err)
			}
		default:
			if err := client.SetVariable(gosseract.SettableVariable(key), o.Value); err != nil {
				return fmt.Errorf("failed to set variable %s: %w", key, err)
			}
		}
	}
	return nil
}

func describeNative(e Engine) (Info, bool) {
	if _, ok := e.(*Tesseract); !ok {
		return Info{}, false
	}
	client := gosseract.NewClient()
	defer client.Close()
	return Info{Available: true, Backend: "gosseract (native)", Version: client.Version()}, true
}
