// Package batch runs a set of source records through a translation service
// for multiple target languages. Languages proceed in parallel; records
// within a language are translated sequentially so that provider rate
// limits are stressed by at most one in-flight request per language.
package batch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/valpere/xlifftran/internal/record"
	"github.com/valpere/xlifftran/internal/translator"
	"github.com/valpere/xlifftran/internal/validator"
)

// Progress is called after each completed batch of records for a language.
type Progress func(targetLang string, done, total int)

// Config controls one batch run.
type Config struct {
	SourceLang string
	BatchSize  int
	Progress   Progress
	// Glossary returns the term map for a target language, or nil.
	Glossary func(targetLang string) map[string]string
	// Validator is optional; when set, translations are checked for
	// target-language mismatch and the findings recorded as warnings.
	Validator *validator.Validator
}

// Summary aggregates the outcome of one language's run.
type Summary struct {
	Completed int
	Failed    int
	Warnings  []string
	Elapsed   time.Duration
}

// Processor drives a translation service over record slices.
type Processor struct {
	svc translator.Service
	cfg Config
}

func NewProcessor(svc translator.Service, cfg Config) *Processor {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.SourceLang == "" {
		cfg.SourceLang = "en"
	}
	return &Processor{svc: svc, cfg: cfg}
}

// Run translates every record into every target language. The result slice
// for a language has exactly one entry per input record, in input order; a
// record whose translation fails gets a failure sentinel rather than being
// dropped. The only error Run itself returns is a context cancellation or
// an up-front input rejection.
func (p *Processor) Run(ctx context.Context, records []record.Record, targetLangs []string) (map[string][]*translator.Result, map[string]*Summary, error) {
	for _, r := range records {
		if r.SourceText == "" {
			return nil, nil, fmt.Errorf("record %s has empty source text; filter or fix the input first", r.ID)
		}
	}

	results := make(map[string][]*translator.Result, len(targetLangs))
	summaries := make(map[string]*Summary, len(targetLangs))

	g, ctx := errgroup.WithContext(ctx)
	for _, lang := range targetLangs {
		lang := lang
		out := make([]*translator.Result, len(records))
		sum := &Summary{}
		results[lang] = out
		summaries[lang] = sum

		g.Go(func() error {
			return p.runLanguage(ctx, records, lang, out, sum)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return results, summaries, nil
}

func (p *Processor) runLanguage(ctx context.Context, records []record.Record, lang string, out []*translator.Result, sum *Summary) error {
	start := time.Now()
	var glossary map[string]string
	if p.cfg.Glossary != nil {
		glossary = p.cfg.Glossary(lang)
	}

	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}

		req := translator.Request{
			Text:       r.SourceText,
			SourceLang: p.cfg.SourceLang,
			TargetLang: lang,
			Context:    r.DisplayKey,
			MaxLength:  r.MaxLength,
			Category:   r.Category,
			Glossary:   glossary,
		}

		res, err := p.svc.Translate(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			res = translator.FailureResult(req, err)
		}
		out[i] = res

		if res.Failed() {
			sum.Failed++
			sum.Warnings = append(sum.Warnings, fmt.Sprintf("record %s: translation failed", r.ID))
		} else {
			sum.Completed++
			if res.Truncated {
				sum.Warnings = append(sum.Warnings, fmt.Sprintf("record %s: translation truncated to %d characters", r.ID, r.MaxLength))
			}
			if len(res.LostPlaceholders) > 0 {
				sum.Warnings = append(sum.Warnings, fmt.Sprintf("record %s: placeholders lost in translation: %s", r.ID, strings.Join(res.LostPlaceholders, ", ")))
			}
			if p.cfg.Validator != nil {
				if w := p.cfg.Validator.Check(res.TranslatedText, lang); w != "" {
					sum.Warnings = append(sum.Warnings, fmt.Sprintf("record %s: %s", r.ID, w))
				}
			}
		}

		done := i + 1
		if p.cfg.Progress != nil && (done%p.cfg.BatchSize == 0 || done == len(records)) {
			p.cfg.Progress(lang, done, len(records))
		}
	}

	sum.Elapsed = time.Since(start)
	return nil
}
