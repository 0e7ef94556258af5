// Package config loads run settings from an INI file.
//
// The [tesseract] section is handed to the OCR engine verbatim: every key
// becomes an engine option ("psm = 6" is passed as "--psm 6"). A key may be
// repeated, which is how several "-c name=value" variables are set.
//
// The [image-emails] section tunes the pipeline itself:
//
//	[image-emails]
//	timeout        = 60s      ; Go duration or plain seconds
//	background     = #ffffff  ; fill for corners uncovered by rotation, or "auto"
//	save_rotated   = true
//	engine         = auto     ; auto, native or cli
//	tesseract_path = /usr/bin/tesseract
//
// A missing file is not an error; defaults apply.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/ini.v1"

	"github.com/ironsheep/image-emails/internal/imaging"
	"github.com/ironsheep/image-emails/internal/ocr"
)

// Section names.
const (
	TesseractSection = "tesseract"
	AppSection       = "image-emails"
)

// AutoBackground as the background value fills rotated corners with the
// page's own border colour.
const AutoBackground = "auto"

// DefaultPath is the configuration file read when none is named.
const DefaultPath = "config.ini"

// Settings is the immutable configuration of one run.
type Settings struct {
	OCR           ocr.Config
	Timeout       time.Duration
	Background    string
	SaveRotated   bool
	Engine        string
	TesseractPath string
}

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		Timeout:     60 * time.Second,
		SaveRotated: true,
		Engine:      ocr.EngineAuto,
	}
}

// AutoBackground reports whether the background follows the page colour.
func (s Settings) AutoBackground() bool {
	return strings.EqualFold(s.Background, AutoBackground)
}

// BackgroundColor parses Background. It returns nil for AutoBackground.
func (s Settings) BackgroundColor() (color.Color, error) {
	if s.AutoBackground() {
		return nil, nil
	}
	return imaging.ParseBackground(s.Background)
}

// Load reads settings from the INI file at path. A missing file yields
// Default().
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("config %s: %w", path, err)
	}
	return s, nil
}

// Parse reads settings from INI data.
func Parse(data []byte) (Settings, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys: true,
		AllowShadows:    true,
	}, data)
	if err != nil {
		return Settings{}, fmt.Errorf("invalid INI: %w", err)
	}

	s := Default()

	if sec, err := file.GetSection(TesseractSection); err == nil {
		var opts []ocr.Option
		for _, key := range sec.Keys() {
			for _, value := range key.ValueWithShadows() {
				opts = append(opts, ocr.Option{Key: key.Name(), Value: value})
			}
		}
		s.OCR = ocr.NewConfig(opts...)
	}

	sec, err := file.GetSection(AppSection)
	if err != nil {
		return s, nil
	}

	if key, err := sec.GetKey("timeout"); err == nil {
		d, err := ParseTimeout(key.String())
		if err != nil {
			return Settings{}, err
		}
		s.Timeout = d
	}

	if key, err := sec.GetKey("background"); err == nil {
		s.Background = strings.TrimSpace(key.String())
		if _, err := s.BackgroundColor(); err != nil {
			return Settings{}, err
		}
	}

	if key, err := sec.GetKey("save_rotated"); err == nil {
		v, err := key.Bool()
		if err != nil {
			return Settings{}, fmt.Errorf("invalid save_rotated %q: %w", key.String(), err)
		}
		s.SaveRotated = v
	}

	if key, err := sec.GetKey("engine"); err == nil {
		engine := strings.ToLower(strings.TrimSpace(key.String()))
		switch engine {
		case ocr.EngineAuto, ocr.EngineNative, ocr.EngineCLI:
			s.Engine = engine
		default:
			return Settings{}, fmt.Errorf("invalid engine %q (want %s, %s or %s)", key.String(), ocr.EngineAuto, ocr.EngineNative, ocr.EngineCLI)
		}
	}

	if key, err := sec.GetKey("tesseract_path"); err == nil {
		s.TesseractPath = strings.TrimSpace(key.String())
	}

	return s, nil
}

// ParseTimeout accepts a Go duration ("90s", "2m") or a number of seconds.
func ParseTimeout(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	d, err := time.ParseDuration(v)
	if err != nil {
		secs, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil {
			return 0, fmt.Errorf("invalid timeout %q: %w", v, err)
		}
		d = time.Duration(secs * float64(time.Second))
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q: must be positive", v)
	}
	return d, nil
}
