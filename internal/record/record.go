// Package record implements the tabular data model for translation jobs:
// reading a CSV export into translation records and writing merged rows
// back out after round-trip import.
package record

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Required columns of the input table. Every other column is carried
// through as record metadata.
var RequiredColumns = []string{"_id", "ref", "object", "display_key", "en"}

// Optional columns recognised by name; absent values stay at their zero value.
const (
	colMaxLength = "max_length"
	colCategory  = "category"
)

// SchemaError reports a table that cannot be read at all: required columns
// are missing or the table holds no data rows.
type SchemaError struct {
	Missing []string
	Empty   bool
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
	}
	if e.Empty {
		return "table is empty"
	}
	return "invalid table schema"
}

// Record is one translatable unit from the source table.
type Record struct {
	ID         string
	Ref        string
	Object     string
	DisplayKey string
	SourceText string
	MaxLength  int // 0 means no constraint
	Category   string
	Extra      map[string]string
}

// Read parses a CSV table into records.
//
// Missing required columns or an empty table fail with *SchemaError.
// Duplicate IDs, unparsable IDs, and empty source texts are returned as
// warnings; the offending rows are still loaded (empty-source rows must be
// filtered by the caller before translation starts).
func Read(r io.Reader) ([]Record, []string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, &SchemaError{Empty: true}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = stripBOM(header[0])
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &SchemaError{Missing: missing}
	}

	required := make(map[string]bool, len(RequiredColumns)+2)
	for _, col := range RequiredColumns {
		required[col] = true
	}
	required[colMaxLength] = true
	required[colCategory] = true

	var (
		records  []Record
		warnings []string
		seen     = make(map[string]bool)
	)

	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}

		id := cell(row, "_id")
		if id == "" {
			warnings = append(warnings, fmt.Sprintf("row %d: missing _id, row skipped", line))
			continue
		}
		if seen[id] {
			warnings = append(warnings, fmt.Sprintf("row %d: duplicate _id %s", line, id))
		}
		seen[id] = true

		rec := Record{
			ID:         id,
			Ref:        cell(row, "ref"),
			Object:     cell(row, "object"),
			DisplayKey: cell(row, "display_key"),
			SourceText: cell(row, "en"),
			Category:   cell(row, colCategory),
			Extra:      make(map[string]string),
		}

		if rec.SourceText == "" {
			warnings = append(warnings, fmt.Sprintf("row %d: record %s has empty source text", line, id))
		}

		if s := cell(row, colMaxLength); s != "" {
			ml, err := strconv.Atoi(s)
			if err != nil || ml <= 0 {
				warnings = append(warnings, fmt.Sprintf("row %d: invalid max_length %q, ignored", line, s))
			} else {
				rec.MaxLength = ml
			}
		}

		for col, i := range idx {
			if required[col] || i >= len(row) {
				continue
			}
			if v := strings.TrimSpace(row[i]); v != "" {
				rec.Extra[col] = v
			}
		}

		records = append(records, rec)
	}

	if len(records) == 0 && len(warnings) == 0 {
		return nil, nil, &SchemaError{Empty: true}
	}

	return records, warnings, nil
}

// ReadFile reads records from a CSV file on disk.
func ReadFile(path string) ([]Record, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Read(bytes.NewReader(data))
}

// Columns returns the row representation of a record: required columns plus
// all metadata columns. The inverse of what Read folds into a Record.
func (r Record) Columns() map[string]string {
	row := map[string]string{
		"_id":         r.ID,
		"ref":         r.Ref,
		"object":      r.Object,
		"display_key": r.DisplayKey,
		"en":          r.SourceText,
	}
	if r.MaxLength > 0 {
		row[colMaxLength] = strconv.Itoa(r.MaxLength)
	}
	if r.Category != "" {
		row[colCategory] = r.Category
	}
	for k, v := range r.Extra {
		row[k] = v
	}
	return row
}

// Write serialises rows to CSV. The column set is the union over all rows;
// required columns come first in their canonical order, the rest sorted.
// A key absent from a row becomes an empty cell.
func Write(rows []map[string]string, w io.Writer) error {
	if len(rows) == 0 {
		return fmt.Errorf("no rows to write")
	}

	union := make(map[string]bool)
	for _, row := range rows {
		for k := range row {
			union[k] = true
		}
	}

	var header []string
	for _, col := range RequiredColumns {
		if union[col] {
			header = append(header, col)
			delete(union, col)
		}
	}
	rest := make([]string, 0, len(union))
	for k := range union {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	header = append(header, rest...)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	line := make([]string, len(header))
	for _, row := range rows {
		for i, col := range header {
			line[i] = row[col]
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes rows to a CSV file, creating parent directories as needed.
func WriteFile(rows []map[string]string, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return Write(rows, f)
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
