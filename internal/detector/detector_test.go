package detector

import (
	"strings"
	"testing"
)

func TestDetectISO(t *testing.T) {
	d := New()

	tests := []struct {
		text string
		want string
	}{
		{"This is a long enough English sentence for reliable detection.", "EN"},
		{"Це достатньо довге українське речення для надійного визначення мови.", "UK"},
		{"これは言語検出のための十分に長い日本語の文章です。", "JA"},
	}
	for _, tt := range tests {
		code, ok := d.DetectISO(tt.text)
		if !ok {
			t.Errorf("detection failed for %q", tt.text)
			continue
		}
		if !strings.EqualFold(code, tt.want) {
			t.Errorf("DetectISO(%q) = %s, want %s", tt.text, code, tt.want)
		}
	}
}

func TestDetect_Empty(t *testing.T) {
	d := New()
	if _, ok := d.Detect(""); ok {
		t.Error("empty text must not detect")
	}
}
