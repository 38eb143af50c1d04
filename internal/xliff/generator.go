package xliff

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/valpere/xlifftran/internal/lqa"
	"github.com/valpere/xlifftran/internal/record"
	"github.com/valpere/xlifftran/internal/translator"
)

// XLIFF 1.2 wire structures.

type xliff12 struct {
	XMLName xml.Name `xml:"xliff"`
	Version string   `xml:"version,attr"`
	Xmlns   string   `xml:"xmlns,attr"`
	File    file12   `xml:"file"`
}

type file12 struct {
	SourceLanguage string    `xml:"source-language,attr"`
	TargetLanguage string    `xml:"target-language,attr"`
	Datatype       string    `xml:"datatype,attr"`
	Original       string    `xml:"original,attr"`
	Body           body12    `xml:"body"`
}

type body12 struct {
	TransUnits []transUnit12 `xml:"trans-unit"`
}

type transUnit12 struct {
	ID      string   `xml:"id,attr"`
	Resname string   `xml:"resname,attr,omitempty"`
	Source  string   `xml:"source"`
	Target  string   `xml:"target"`
	Notes   []string `xml:"note,omitempty"`
}

// XLIFF 2.0 wire structures.

type xliff20 struct {
	XMLName xml.Name `xml:"xliff"`
	Version string   `xml:"version,attr"`
	Xmlns   string   `xml:"xmlns,attr"`
	SrcLang string   `xml:"srcLang,attr"`
	TrgLang string   `xml:"trgLang,attr"`
	File    file20   `xml:"file"`
}

type file20 struct {
	ID    string   `xml:"id,attr"`
	Units []unit20 `xml:"unit"`
}

type unit20 struct {
	ID      string     `xml:"id,attr"`
	Name    string     `xml:"name,attr,omitempty"`
	Notes   *notes20   `xml:"notes,omitempty"`
	Segment segment20  `xml:"segment"`
}

type notes20 struct {
	Notes []string `xml:"note"`
}

type segment20 struct {
	Source string `xml:"source"`
	Target string `xml:"target"`
}

const (
	ns12 = "urn:oasis:names:tc:xliff:document:1.2"
	ns20 = "urn:oasis:names:tc:xliff:document:2.0"
)

// Generate builds a Document for one target language. results must be
// parallel to records (one entry per record, same order), as produced by a
// batch run. evals may be nil; when present, matching evaluations are
// embedded as lqa_score / lqa_status notes.
func Generate(records []record.Record, results []*translator.Result, sourceLang, targetLang string, evals map[string]*lqa.Evaluation, version Version) (*Document, error) {
	if len(results) != len(records) {
		return nil, fmt.Errorf("got %d results for %d records", len(results), len(records))
	}

	doc := &Document{
		Version:    version,
		SourceLang: sourceLang,
		TargetLang: targetLang,
		Original:   "translations.csv",
		Units:      make([]Unit, 0, len(records)),
	}

	for i, r := range records {
		res := results[i]
		u := Unit{
			ID:     r.ID,
			Name:   r.DisplayKey,
			Source: r.SourceText,
			Target: res.TranslatedText,
		}
		if r.Ref != "" {
			u.Notes = append(u.Notes, "ref: "+r.Ref)
		}
		if r.Category != "" {
			u.Notes = append(u.Notes, "category: "+r.Category)
		}
		if r.MaxLength > 0 {
			u.Notes = append(u.Notes, fmt.Sprintf("max_length: %d", r.MaxLength))
		}
		if ev, ok := evals[r.ID]; ok && ev != nil {
			u.Notes = append(u.Notes, fmt.Sprintf("lqa_score: %.1f", ev.WeightedScore))
			u.Notes = append(u.Notes, "lqa_status: "+string(ev.Status))
		}
		doc.Units = append(doc.Units, u)
	}
	return doc, nil
}

// Marshal renders the document in its dialect.
func Marshal(doc *Document) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch doc.Version {
	case Version12:
		units := make([]transUnit12, len(doc.Units))
		for i, u := range doc.Units {
			units[i] = transUnit12{
				ID:      u.ID,
				Resname: u.Name,
				Source:  u.Source,
				Target:  u.Target,
				Notes:   u.Notes,
			}
		}
		out, err = xml.MarshalIndent(xliff12{
			Version: "1.2",
			Xmlns:   ns12,
			File: file12{
				SourceLanguage: doc.SourceLang,
				TargetLanguage: doc.TargetLang,
				Datatype:       "plaintext",
				Original:       doc.Original,
				Body:           body12{TransUnits: units},
			},
		}, "", "  ")
	case Version20:
		units := make([]unit20, len(doc.Units))
		for i, u := range doc.Units {
			wu := unit20{
				ID:      u.ID,
				Name:    u.Name,
				Segment: segment20{Source: u.Source, Target: u.Target},
			}
			if len(u.Notes) > 0 {
				wu.Notes = &notes20{Notes: u.Notes}
			}
			units[i] = wu
		}
		out, err = xml.MarshalIndent(xliff20{
			Version: "2.0",
			Xmlns:   ns20,
			SrcLang: doc.SourceLang,
			TrgLang: doc.TargetLang,
			File:    file20{ID: "f1", Units: units},
		}, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported XLIFF version %q", doc.Version)
	}
	if err != nil {
		return nil, fmt.Errorf("marshaling XLIFF: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// WriteFile marshals the document and writes it to path, creating parent
// directories as needed.
func WriteFile(doc *Document, path string) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
