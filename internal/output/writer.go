// Package output persists extraction results.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Writer stores the addresses found in one image at path.
type Writer interface {
	Write(path string, emails []string) error
}

// FileWriter writes one address per line, separated by "\n" with no trailing
// newline. An existing file is replaced after a warning is logged. Missing
// parent directories are created.
type FileWriter struct {
	// Perm is used for new files; zero means 0644.
	Perm fs.FileMode
}

// Write implements Writer.
func (w FileWriter) Write(path string, emails []string) error {
	if path == "" {
		return errors.New("output path is required")
	}

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("output path %s is a directory", path)
	case err == nil:
		log.Printf("Output file %s already exists and will be overwritten", path)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to check output file %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	perm := w.Perm
	if perm == 0 {
		perm = 0o644
	}
	if err := os.WriteFile(path, []byte(strings.Join(emails, "\n")), perm); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
