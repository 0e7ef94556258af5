package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ironsheep/image-emails/internal/config"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"single image", []string{"--input", "a.png", "--output", "a.txt"}, false},
		{"single dash flags", []string{"-input", "a.png", "-output", "a.txt"}, false},
		{"batch", []string{"--input-dir", "in", "--output-dir", "out"}, false},
		{"serve", []string{"serve", "--config", "x.ini"}, false},
		{"missing output", []string{"--input", "a.png"}, true},
		{"nothing", nil, true},
		{"half batch", []string{"--input-dir", "in"}, true},
		{"unknown flag", []string{"--input", "a.png", "--output", "a.txt", "--bogus"}, true},
		{"stray argument", []string{"--input", "a.png", "--output", "a.txt", "extra"}, true},
		{"bad timeout", []string{"--input", "a.png", "--output", "a.txt", "--timeout", "soon"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseArgs(%q) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
		})
	}
}

func TestParseArgs_Defaults(t *testing.T) {
	o, set, err := parseArgs([]string{"--input", "a.png", "--output", "a.txt"})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}
	if o.configPath != config.DefaultPath {
		t.Errorf("config path: got %q, want %q", o.configPath, config.DefaultPath)
	}
	if set["save-rotated"] || set["timeout"] {
		t.Errorf("only given flags should be marked as set: %v", set)
	}
}

func TestSettings_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	content := "[tesseract]\npsm = 6\n\n[image-emails]\ntimeout = 30s\nsave_rotated = true\nengine = cli\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	o, set, err := parseArgs([]string{
		"--input", "a.png", "--output", "a.txt",
		"--config", path,
		"--timeout", "5s",
		"--save-rotated=false",
	})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}

	s, err := settings(o, set)
	if err != nil {
		t.Fatalf("settings failed: %v", err)
	}
	if s.Timeout != 5*time.Second {
		t.Errorf("Timeout: got %v, want 5s", s.Timeout)
	}
	if s.SaveRotated {
		t.Error("--save-rotated=false should win over the file")
	}
	if s.Engine != "cli" {
		t.Errorf("Engine from file: got %q, want cli", s.Engine)
	}
	if s.OCR.String() != "--psm 6" {
		t.Errorf("OCR options: got %q, want --psm 6", s.OCR.String())
	}
}

func TestSettings_RejectsNonPositiveTimeout(t *testing.T) {
	o, set, err := parseArgs([]string{
		"--input", "a.png", "--output", "a.txt",
		"--config", filepath.Join(t.TempDir(), "absent.ini"),
		"--timeout", "0s",
	})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}
	if _, err := settings(o, set); err == nil {
		t.Error("a zero timeout should be rejected")
	}
}
