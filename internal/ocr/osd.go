package ocr

import (
	"bufio"
	"strconv"
	"strings"
)

// ParseOSD parses the report printed by "tesseract <image> stdout --psm 0".
//
// A typical report looks like:
//
//	Page number: 0
//	Orientation in degrees: 270
//	Rotate: 90
//	Orientation confidence: 1.93
//	Script: Latin
//	Script confidence: 2.86
//
// A missing or non-numeric "Rotate" line yields an Orientation with HasRotate
// unset rather than an error; the caller decides what that means.
func ParseOSD(report string) Orientation {
	var o Orientation
	scanner := bufio.NewScanner(strings.NewReader(report))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Rotate":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				o.Rotate = v
				o.HasRotate = true
			}
		case "Orientation confidence":
			o.Confidence, _ = strconv.ParseFloat(value, 64)
		case "Script":
			o.Script = value
		case "Script confidence":
			o.ScriptConfidence, _ = strconv.ParseFloat(value, 64)
		}
	}
	return o
}
