package lqa

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Report is the serialisable output of one LQA run for one target language.
type Report struct {
	TargetLang  string       `json:"target_lang"`
	GeneratedAt time.Time    `json:"generated_at"`
	Results     []Evaluation `json:"results"`
}

// ReportSummary aggregates dispositions for operator-level reporting.
type ReportSummary struct {
	Total        int     `json:"total"`
	Approved     int     `json:"approved"`
	NeedsReview  int     `json:"needs_review"`
	Rejected     int     `json:"rejected"`
	AverageScore float64 `json:"average_score"`
}

func (r *Report) Summary() ReportSummary {
	s := ReportSummary{Total: len(r.Results)}
	var sum float64
	for _, e := range r.Results {
		sum += e.WeightedScore
		switch e.Status {
		case StatusApproved:
			s.Approved++
		case StatusRejected:
			s.Rejected++
		default:
			s.NeedsReview++
		}
	}
	if s.Total > 0 {
		s.AverageScore = sum / float64(s.Total)
	}
	return s
}

// LoadReport reads a report previously written by WriteJSON.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &r, nil
}

func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteCSV emits one row per evaluation: record id, weighted score, status,
// then the dimension scores in sorted dimension order.
func (r *Report) WriteCSV(w io.Writer) error {
	dims := r.dimensionNames()
	header := append([]string{"record_id", "target_lang", "weighted_score", "status"}, dims...)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, e := range r.Results {
		row := []string{
			e.RecordID,
			r.TargetLang,
			fmt.Sprintf("%.1f", e.WeightedScore),
			string(e.Status),
		}
		for _, d := range dims {
			row = append(row, fmt.Sprintf("%.0f", e.Scores[d]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var htmlReport = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>LQA Report - {{.Lang}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 10px; text-align: left; }
.approved { color: #2d7a2d; }
.needs_review { color: #b58900; }
.rejected { color: #c0392b; }
</style>
</head>
<body>
<h1>LQA Report - {{.Lang}}</h1>
<p>Generated {{.Generated}}:
{{.Summary.Total}} translations, {{.Summary.Approved}} approved,
{{.Summary.NeedsReview}} need review, {{.Summary.Rejected}} rejected,
average score {{printf "%.1f" .Summary.AverageScore}}.</p>
<table>
<tr><th>Record</th><th>Score</th><th>Status</th>{{range .Dims}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>
<td>{{.RecordID}}</td>
<td>{{.Score}}</td>
<td class="{{.Status}}">{{.Status}}</td>
{{range .Cells}}<td>{{.}}</td>{{end}}
</tr>{{end}}
</table>
</body>
</html>
`))

type htmlRow struct {
	RecordID string
	Score    string
	Status   Status
	Cells    []string
}

type htmlReportData struct {
	Lang      string
	Generated string
	Summary   ReportSummary
	Dims      []string
	Rows      []htmlRow
}

func (r *Report) WriteHTML(w io.Writer) error {
	dims := r.dimensionNames()
	rows := make([]htmlRow, 0, len(r.Results))
	for _, e := range r.Results {
		row := htmlRow{
			RecordID: e.RecordID,
			Score:    fmt.Sprintf("%.1f", e.WeightedScore),
			Status:   e.Status,
		}
		for _, d := range dims {
			row.Cells = append(row.Cells, fmt.Sprintf("%.0f", e.Scores[d]))
		}
		rows = append(rows, row)
	}
	return htmlReport.Execute(w, htmlReportData{
		Lang:      r.TargetLang,
		Generated: r.GeneratedAt.Format("2006-01-02 15:04"),
		Summary:   r.Summary(),
		Dims:      dims,
		Rows:      rows,
	})
}

// WriteFiles renders the report into dir in the requested format: "json",
// "csv", "html", or "all". Returns the paths written.
func (r *Report) WriteFiles(dir, format string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	type renderer struct {
		ext   string
		write func(io.Writer) error
	}
	renderers := map[string]renderer{
		"json": {"json", r.WriteJSON},
		"csv":  {"csv", r.WriteCSV},
		"html": {"html", r.WriteHTML},
	}

	var formats []string
	if format == "all" {
		formats = []string{"json", "csv", "html"}
	} else {
		if _, ok := renderers[format]; !ok {
			return nil, fmt.Errorf("unknown report format %q", format)
		}
		formats = []string{format}
	}

	var paths []string
	for _, f := range formats {
		rd := renderers[f]
		path := filepath.Join(dir, fmt.Sprintf("lqa_report_%s.%s", r.TargetLang, rd.ext))
		out, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := rd.write(out); err != nil {
			out.Close()
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := out.Close(); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (r *Report) dimensionNames() []string {
	seen := make(map[string]bool)
	for _, e := range r.Results {
		for d := range e.Scores {
			seen[d] = true
		}
	}
	dims := make([]string, 0, len(seen))
	for d := range seen {
		dims = append(dims, d)
	}
	sort.Strings(dims)
	return dims
}
