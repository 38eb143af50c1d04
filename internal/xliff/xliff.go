// Package xliff generates, parses, merges, and validates XLIFF documents in
// both the 1.2 and 2.0 dialects. Both dialects map onto the same logical
// Document so the rest of the pipeline never cares which one is on disk.
package xliff

import "fmt"

// Version selects which XLIFF dialect to emit or expect.
type Version string

const (
	Version12 Version = "1.2"
	Version20 Version = "2.0"
)

func ParseVersion(s string) (Version, error) {
	switch s {
	case "1.2":
		return Version12, nil
	case "2.0":
		return Version20, nil
	}
	return "", fmt.Errorf("unsupported XLIFF version %q (want 1.2 or 2.0)", s)
}

// Unit is one translation unit: a record's source text and its translation
// for the document's target language.
type Unit struct {
	ID     string
	Name   string
	Source string
	Target string
	Notes  []string
}

// Document is the dialect-independent view of one XLIFF file.
type Document struct {
	Version    Version
	SourceLang string
	TargetLang string
	Original   string
	Units      []Unit
}
