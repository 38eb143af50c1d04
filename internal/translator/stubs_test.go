package translator

import (
	"context"
	"fmt"
)

// stubService returns canned results and counts calls.
type stubService struct {
	calls   int
	failFor int // fail the first N calls
	text    string
}

func (s *stubService) Name() string { return "stub" }

func (s *stubService) Translate(ctx context.Context, req Request) (*Result, error) {
	s.calls++
	if s.calls <= s.failFor {
		return nil, fmt.Errorf("stub failure %d", s.calls)
	}
	text := s.text
	if text == "" {
		text = "translated:" + req.Text
	}
	return &Result{
		SourceText:     req.Text,
		TranslatedText: text,
		SourceLang:     req.SourceLang,
		TargetLang:     req.TargetLang,
		Model:          "stub-model",
	}, nil
}

func (s *stubService) TranslateBatch(ctx context.Context, reqs []Request) ([]*Result, error) {
	return translateEach(ctx, s, reqs)
}

// stubCatalog satisfies Catalog for provider tests.
type stubCatalog struct{}

func (stubCatalog) TemplateFor(category string) string { return DefaultTemplate }

func (stubCatalog) LanguageName(code string) (string, bool) {
	names := map[string]string{
		"zh-CN": "Simplified Chinese",
		"ja-JP": "Japanese",
		"uk-UA": "Ukrainian",
	}
	n, ok := names[code]
	return n, ok
}
