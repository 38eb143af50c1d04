// Package validator checks that a translated string is actually written in
// the expected target language. Mismatches become batch warnings, never
// hard failures: short UI strings are frequently ambiguous.
package validator

import (
	"fmt"
	"strings"

	"github.com/valpere/xlifftran/internal/detector"
)

// minValidationLength is the minimum rune count required to attempt language
// detection. Shorter texts produce unreliable results and pass unvalidated.
const minValidationLength = 20

type Validator struct {
	det *detector.Detector
}

// New creates a Validator backed by the lingua-go language detector.
func New() *Validator {
	return &Validator{det: detector.New()}
}

// Check returns a warning message when translatedText does not appear to be
// written in targetLang, and "" when it passes. targetLang may be a BCP-47
// code such as zh-CN; only the primary subtag is compared.
func (v *Validator) Check(translatedText, targetLang string) string {
	if targetLang == "" {
		return ""
	}

	text := strings.TrimSpace(translatedText)
	if text == "" {
		return "translation is empty"
	}

	// Detector is unreliable for very short texts; skip validation.
	if len([]rune(text)) < minValidationLength {
		return ""
	}

	detected, ok := v.det.DetectISO(text)
	if !ok {
		// Ambiguous language, cannot validate.
		return ""
	}

	want := targetLang
	if i := strings.IndexAny(want, "-_"); i > 0 {
		want = want[:i]
	}
	if !strings.EqualFold(detected, want) {
		return fmt.Sprintf("expected %s but detected %s", targetLang, detected)
	}

	return ""
}
