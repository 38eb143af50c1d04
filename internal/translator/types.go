// Package translator defines the translation client contract and its
// provider implementations.
package translator

import (
	"context"
	"fmt"
	"time"
)

// FailureModel marks a Result that stands in for a failed provider call.
const FailureModel = "error"

// ServiceConfig holds provider settings, loaded via viper from environment
// variables and an optional config file.
type ServiceConfig struct {
	Provider    string        `mapstructure:"provider" json:"provider"`
	APIKey      string        `mapstructure:"api_key" json:"api_key"`
	Model       string        `mapstructure:"model" json:"model"`
	BaseURL     string        `mapstructure:"base_url" json:"base_url"`
	Credentials string        `mapstructure:"credentials" json:"credentials"`
	ProjectID   string        `mapstructure:"project_id" json:"project_id"`
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout"`
	MaxAttempts int           `mapstructure:"max_attempts" json:"max_attempts"`
	RetryDelay  time.Duration `mapstructure:"retry_delay" json:"retry_delay"`
}

// Request asks for one string to be translated into one target language.
type Request struct {
	Text       string            `json:"text"`
	SourceLang string            `json:"source_lang"`
	TargetLang string            `json:"target_lang"`
	Context    string            `json:"context,omitempty"`
	MaxLength  int               `json:"max_length,omitempty"` // 0 means no constraint
	Category   string            `json:"category,omitempty"`
	Glossary   map[string]string `json:"glossary,omitempty"`
}

// Result is the outcome of translating one record into one target language.
type Result struct {
	SourceText       string    `json:"source_text"`
	TranslatedText   string    `json:"translated_text"`
	SourceLang       string    `json:"source_lang"`
	TargetLang       string    `json:"target_lang"`
	Model            string    `json:"model"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	Timestamp        time.Time `json:"timestamp"`
	Category         string    `json:"category,omitempty"`
	Truncated        bool      `json:"truncated,omitempty"`
	// LostPlaceholders lists interpolation tokens the model dropped from
	// the translation. The tokens are broken in the output text.
	LostPlaceholders []string `json:"lost_placeholders,omitempty"`
}

// Failed reports whether this result is a failure sentinel.
func (r *Result) Failed() bool {
	return r.Model == FailureModel
}

// FailureResult builds the sentinel result for a failed provider call.
// The failure marker stays visible all the way into the exchange document
// so operators can see which records failed.
func FailureResult(req Request, err error) *Result {
	return &Result{
		SourceText:     req.Text,
		TranslatedText: fmt.Sprintf("[TRANSLATION FAILED: %v]", err),
		SourceLang:     req.SourceLang,
		TargetLang:     req.TargetLang,
		Model:          FailureModel,
		Category:       req.Category,
	}
}

// Service is the translation client contract. Translate must return a fully
// populated Result on success and a distinguishable error on provider
// failure, never an empty translation.
type Service interface {
	Name() string
	Translate(ctx context.Context, req Request) (*Result, error)
	TranslateBatch(ctx context.Context, reqs []Request) ([]*Result, error)
}

// Catalog supplies prompt templates and language display names to providers.
// Implemented by config.Config.
type Catalog interface {
	TemplateFor(category string) string
	LanguageName(code string) (string, bool)
}

// translateEach implements TranslateBatch as repeated single calls, which
// keeps the two entry points value-identical. The first error aborts.
func translateEach(ctx context.Context, svc Service, reqs []Request) ([]*Result, error) {
	results := make([]*Result, 0, len(reqs))
	for _, req := range reqs {
		res, err := svc.Translate(ctx, req)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// EnforceMaxLength truncates a result that violates the request's length
// constraint. Truncation is lossy, so the result is flagged for the caller
// to surface as a warning. Every Service implementation, including caching
// decorators, must apply it before returning a result.
func EnforceMaxLength(res *Result, maxLength int) {
	if maxLength <= 0 {
		return
	}
	runes := []rune(res.TranslatedText)
	if len(runes) <= maxLength {
		return
	}
	res.TranslatedText = string(runes[:maxLength])
	res.Truncated = true
}
