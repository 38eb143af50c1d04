package xliff

import "fmt"

// Validate checks XLIFF content for structural soundness before it is
// handed to a TMS or merged back into the source table. An expected
// version of "" accepts either dialect.
func Validate(data []byte, expected Version) error {
	doc, err := Parse(data)
	if err != nil {
		return err
	}
	if expected != "" && doc.Version != expected {
		return fmt.Errorf("expected XLIFF %s, got %s", expected, doc.Version)
	}
	if doc.SourceLang == "" {
		return fmt.Errorf("missing source language")
	}
	if doc.TargetLang == "" {
		return fmt.Errorf("missing target language")
	}
	if len(doc.Units) == 0 {
		return fmt.Errorf("document has no translation units")
	}

	seen := make(map[string]bool, len(doc.Units))
	for i, u := range doc.Units {
		if u.ID == "" {
			return fmt.Errorf("unit %d has no id", i)
		}
		if seen[u.ID] {
			return fmt.Errorf("duplicate unit id %q", u.ID)
		}
		seen[u.ID] = true
		if u.Source == "" {
			return fmt.Errorf("unit %s has empty source", u.ID)
		}
	}
	return nil
}
