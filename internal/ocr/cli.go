package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"strings"

	"github.com/disintegration/imaging"
)

// CLI runs the tesseract binary for each request.
//
// Each call writes the image to a temporary PNG file, runs tesseract with
// "stdout" as the output base and removes the file afterwards. The command is
// started with exec.CommandContext, so an expired context kills the process.
type CLI struct {
	// Binary is the resolved path of the tesseract executable.
	Binary string
}

// NewCLI locates the tesseract executable. An empty binary means "tesseract"
// looked up in PATH.
func NewCLI(binary string) (*CLI, error) {
	if binary == "" {
		binary = "tesseract"
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoEngine, err)
	}
	return &CLI{Binary: path}, nil
}

// DetectOrientation runs orientation and script detection (--psm 0).
// Any psm option in cfg is dropped because OSD only works in mode 0.
func (c *CLI) DetectOrientation(ctx context.Context, img image.Image, cfg Config) (Orientation, error) {
	tmpPath, err := SaveImageToTemp(img, "ocr-osd")
	if err != nil {
		return Orientation{}, err
	}
	defer os.Remove(tmpPath)

	args := append([]string{tmpPath, "stdout", "--psm", "0"}, cfg.Without("psm").Args()...)
	out, err := c.run(ctx, args)
	if err != nil {
		return Orientation{}, fmt.Errorf("orientation detection failed: %w", err)
	}
	return ParseOSD(out), nil
}

// ExtractText recognizes all text in img.
func (c *CLI) ExtractText(ctx context.Context, img image.Image, cfg Config) (string, error) {
	tmpPath, err := SaveImageToTemp(img, "ocr-text")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmpPath)

	args := append([]string{tmpPath, "stdout"}, cfg.Args()...)
	out, err := c.run(ctx, args)
	if err != nil {
		return "", timeoutError(ctx, fmt.Errorf("OCR failed: %w", err))
	}
	return out, nil
}

func (c *CLI) run(ctx context.Context, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, c.Binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("tesseract: %w (stderr: %s)", err, msg)
		}
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return stdout.String(), nil
}

// SaveImageToTemp saves an image to a temporary PNG file and returns its path.
//
// The file name starts with prefix, e.g. "ocr-osd-123456.png".
//
// IMPORTANT: The caller is responsible for deleting the temporary file
// after use with os.Remove().
func SaveImageToTemp(img image.Image, prefix string) (string, error) {
	tmpFile, err := os.CreateTemp("", prefix+"-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if err := imaging.Encode(tmpFile, img, imaging.PNG); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to encode temp image: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write temp image: %w", err)
	}
	return tmpPath, nil
}
