package translator

import (
	"context"
	"fmt"
	"time"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleService translates via the Google Cloud Translation API. It ignores
// content categories and glossaries (not an LLM provider) and reports zero
// token usage.
type GoogleService struct {
	credentials string
}

func NewGoogleService(cfg ServiceConfig) *GoogleService {
	return &GoogleService{credentials: cfg.Credentials}
}

func (s *GoogleService) Name() string {
	return "google"
}

func (s *GoogleService) Translate(ctx context.Context, req Request) (*Result, error) {
	targetTag, err := language.Parse(req.TargetLang)
	if err != nil {
		return nil, fmt.Errorf("invalid target language %q: %w", req.TargetLang, err)
	}
	sourceTag, err := language.Parse(req.SourceLang)
	if err != nil {
		return nil, fmt.Errorf("invalid source language %q: %w", req.SourceLang, err)
	}

	opts := []option.ClientOption{}
	if s.credentials != "" {
		opts = append(opts, option.WithCredentialsFile(s.credentials))
	}

	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	translations, err := client.Translate(ctx, []string{req.Text}, targetTag, &translate.Options{
		Source: sourceTag,
	})
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}
	if len(translations) == 0 {
		return nil, fmt.Errorf("no translation returned")
	}

	result := &Result{
		SourceText:     req.Text,
		TranslatedText: translations[0].Text,
		SourceLang:     req.SourceLang,
		TargetLang:     req.TargetLang,
		Model:          "google-translate",
		Timestamp:      time.Now(),
		Category:       req.Category,
	}
	EnforceMaxLength(result, req.MaxLength)

	return result, nil
}

func (s *GoogleService) TranslateBatch(ctx context.Context, reqs []Request) ([]*Result, error) {
	return translateEach(ctx, s, reqs)
}
