// Package placeholder protects interpolation tokens in UI strings (brace
// variables like {count}, printf verbs like %s, HTML tags) during
// translation by replacing them with numbered markers ([PH0], [PH1], …)
// that the model is instructed to preserve. After translation, Restore
// substitutes the originals back.
package placeholder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// brace interpolation: {name}, {0}, {user.email}
	reBraceVar = regexp.MustCompile(`\{[A-Za-z0-9_.]+\}`)

	// printf-style verbs: %s, %d, %.1f, %(name)s
	rePrintfVerb = regexp.MustCompile(`%\([A-Za-z0-9_]+\)[sd]|%[-+ #0]?[0-9]*(?:\.[0-9]+)?[sdfxv]`)

	// HTML/XML tags: opening, closing, and self-closing
	reHTMLTag = regexp.MustCompile(`<[^>]+>`)

	// placeholder reference in translated text
	rePlaceholder = regexp.MustCompile(`\[PH(\d+)\]`)
)

// Protect replaces interpolation tokens with numbered placeholders [PH0],
// [PH1], … in the order they appear in text. It returns the modified text
// and the slice of captured originals so Restore can put them back.
func Protect(text string) (string, []string) {
	var markers []string
	counter := 0

	replace := func(match string) string {
		id := fmt.Sprintf("[PH%d]", counter)
		markers = append(markers, match)
		counter++
		return id
	}

	// Tags first so attribute values never get re-matched as variables.
	text = reHTMLTag.ReplaceAllStringFunc(text, replace)
	text = reBraceVar.ReplaceAllStringFunc(text, replace)
	text = rePrintfVerb.ReplaceAllStringFunc(text, replace)

	return text, markers
}

// Restore substitutes [PHn] markers in text back with the originals captured
// by Protect. Unrecognised indices leave the marker as-is.
func Restore(text string, markers []string) string {
	return rePlaceholder.ReplaceAllStringFunc(text, func(match string) string {
		sub := rePlaceholder.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		idx, err := strconv.Atoi(sub[1])
		if err != nil || idx < 0 || idx >= len(markers) {
			return match
		}
		return markers[idx]
	})
}

// InstructionHint returns a sentence to append to a prompt so the model
// knows to leave the markers intact.
func InstructionHint() string {
	return "Preserve all [PHn] markers exactly as they appear. Do not translate, move, or remove them."
}

// Missing reports the indices of markers created by Protect that no longer
// appear in the translated text.
func Missing(text string, markers []string) []int {
	var missing []int
	for i := range markers {
		if !strings.Contains(text, fmt.Sprintf("[PH%d]", i)) {
			missing = append(missing, i)
		}
	}
	return missing
}
