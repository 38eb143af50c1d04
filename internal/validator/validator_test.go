package validator

import (
	"strings"
	"testing"
)

func TestCheck(t *testing.T) {
	v := New()

	tests := []struct {
		name       string
		text       string
		targetLang string
		wantWarn   bool
	}{
		{"matching english", "This is a perfectly normal English sentence for testing.", "en", false},
		{"matching ukrainian", "Це звичайне українське речення для перевірки мови.", "uk-UA", false},
		{"mismatch", "This is a perfectly normal English sentence for testing.", "uk-UA", true},
		{"short text skipped", "Зберегти", "en", false},
		{"empty target skipped", "whatever text at all goes here", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warn := v.Check(tt.text, tt.targetLang)
			if tt.wantWarn && warn == "" {
				t.Errorf("expected a warning for %q -> %s", tt.text, tt.targetLang)
			}
			if !tt.wantWarn && warn != "" {
				t.Errorf("unexpected warning: %s", warn)
			}
		})
	}
}

func TestCheck_EmptyTranslation(t *testing.T) {
	v := New()
	if warn := v.Check("   ", "uk-UA"); !strings.Contains(warn, "empty") {
		t.Errorf("expected empty-translation warning, got %q", warn)
	}
}
