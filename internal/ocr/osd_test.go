package ocr

import "testing"

func TestParseOSD(t *testing.T) {
	report := `Page number: 0
Orientation in degrees: 270
Rotate: 90
Orientation confidence: 1.93
Script: Latin
Script confidence: 2.86
`
	o := ParseOSD(report)

	if !o.HasRotate {
		t.Fatal("HasRotate should be set")
	}
	if o.Rotate != 90 {
		t.Errorf("Rotate: got %v, want 90", o.Rotate)
	}
	if o.Confidence != 1.93 {
		t.Errorf("Confidence: got %v, want 1.93", o.Confidence)
	}
	if o.Script != "Latin" {
		t.Errorf("Script: got %q, want Latin", o.Script)
	}
	if o.ScriptConfidence != 2.86 {
		t.Errorf("ScriptConfidence: got %v, want 2.86", o.ScriptConfidence)
	}
}

func TestParseOSD_MissingRotate(t *testing.T) {
	tests := []struct {
		name   string
		report string
	}{
		{"empty", ""},
		{"no rotate line", "Page number: 0\nOrientation confidence: 0.5\n"},
		{"non numeric", "Rotate: n/a\n"},
		{"warning only", "Too few characters. Skipping this page\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if o := ParseOSD(tt.report); o.HasRotate {
				t.Errorf("HasRotate should be false, got %+v", o)
			}
		})
	}
}

func TestParseOSD_NegativeAndFractional(t *testing.T) {
	o := ParseOSD("Rotate: -7.5\r\n")
	if !o.HasRotate || o.Rotate != -7.5 {
		t.Errorf("got %+v, want Rotate=-7.5", o)
	}
}
