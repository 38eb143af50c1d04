package xliff

import (
	"encoding/xml"
	"fmt"
	"os"
	"sort"

	"github.com/valpere/xlifftran/internal/record"
)

// WarningKind classifies a non-fatal merge finding.
type WarningKind string

const (
	// OrphanUnit: the XLIFF contains a unit id absent from the source CSV.
	OrphanUnit WarningKind = "orphan_unit"
	// MissingTranslation: a source record has no translated unit in the
	// XLIFF for this language, or its target is empty.
	MissingTranslation WarningKind = "missing_translation"
)

// Warning is one merge finding, reported but never fatal.
type Warning struct {
	Kind       WarningKind
	RecordID   string
	TargetLang string
}

func (w Warning) String() string {
	switch w.Kind {
	case OrphanUnit:
		return fmt.Sprintf("%s: unit %s has no matching source record", w.TargetLang, w.RecordID)
	case MissingTranslation:
		return fmt.Sprintf("%s: record %s has no translation", w.TargetLang, w.RecordID)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.RecordID)
}

// Parse decodes XLIFF content into the dialect-independent Document,
// detecting 1.2 vs 2.0 from the root version attribute.
func Parse(data []byte) (*Document, error) {
	var probe struct {
		XMLName xml.Name `xml:"xliff"`
		Version string   `xml:"version,attr"`
	}
	if err := xml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parsing XLIFF: %w", err)
	}

	switch probe.Version {
	case "1.2":
		var doc xliff12
		if err := xml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing XLIFF 1.2: %w", err)
		}
		out := &Document{
			Version:    Version12,
			SourceLang: doc.File.SourceLanguage,
			TargetLang: doc.File.TargetLanguage,
			Original:   doc.File.Original,
			Units:      make([]Unit, 0, len(doc.File.Body.TransUnits)),
		}
		for _, tu := range doc.File.Body.TransUnits {
			out.Units = append(out.Units, Unit{
				ID:     tu.ID,
				Name:   tu.Resname,
				Source: tu.Source,
				Target: tu.Target,
				Notes:  tu.Notes,
			})
		}
		return out, nil
	case "2.0":
		var doc xliff20
		if err := xml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing XLIFF 2.0: %w", err)
		}
		out := &Document{
			Version:    Version20,
			SourceLang: doc.SrcLang,
			TargetLang: doc.TrgLang,
			Units:      make([]Unit, 0, len(doc.File.Units)),
		}
		for _, u := range doc.File.Units {
			nu := Unit{
				ID:     u.ID,
				Name:   u.Name,
				Source: u.Segment.Source,
				Target: u.Segment.Target,
			}
			if u.Notes != nil {
				nu.Notes = u.Notes.Notes
			}
			out.Units = append(out.Units, nu)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported XLIFF version %q", probe.Version)
}

// ParseFile reads and parses one XLIFF file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Merge joins source records with translated XLIFF documents, keyed by
// language code, into output rows: one row per source record in input
// order, with the source columns preserved and one column per language
// holding that record's translation. A missing or empty translation leaves
// the cell absent and produces a MissingTranslation warning; an XLIFF unit
// with no matching record produces an OrphanUnit warning and is dropped.
func Merge(records []record.Record, docs map[string]*Document) ([]map[string]string, []Warning) {
	byID := make(map[string]int, len(records))
	for i, r := range records {
		byID[r.ID] = i
	}

	rows := make([]map[string]string, len(records))
	for i, r := range records {
		rows[i] = r.Columns()
	}

	var warnings []Warning

	langs := make([]string, 0, len(docs))
	for lang := range docs {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	for _, lang := range langs {
		doc := docs[lang]
		translated := make(map[string]bool, len(doc.Units))
		for _, u := range doc.Units {
			i, ok := byID[u.ID]
			if !ok {
				warnings = append(warnings, Warning{Kind: OrphanUnit, RecordID: u.ID, TargetLang: lang})
				continue
			}
			if u.Target == "" {
				continue
			}
			rows[i][lang] = u.Target
			translated[u.ID] = true
		}
		for _, r := range records {
			if !translated[r.ID] {
				warnings = append(warnings, Warning{Kind: MissingTranslation, RecordID: r.ID, TargetLang: lang})
			}
		}
	}
	return rows, warnings
}
