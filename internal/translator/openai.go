package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/valpere/xlifftran/internal/placeholder"
	"github.com/valpere/xlifftran/internal/postprocess"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIService translates via an OpenAI-compatible chat-completions API.
// This is the primary provider: it honours content categories through the
// prompt catalog and protects interpolation tokens across the call.
type OpenAIService struct {
	apiKey  string
	model   string
	baseURL string
	catalog Catalog
	client  *http.Client
}

func NewOpenAIService(cfg ServiceConfig, catalog Catalog) *OpenAIService {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &OpenAIService{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: baseURL,
		catalog: catalog,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *OpenAIService) Name() string {
	return "openai"
}

func (s *OpenAIService) Translate(ctx context.Context, req Request) (*Result, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key required")
	}

	langName, ok := s.catalog.LanguageName(req.TargetLang)
	if !ok {
		return nil, fmt.Errorf("unknown target language: %s", req.TargetLang)
	}

	protected, markers := placeholder.Protect(req.Text)

	prompt := BuildPrompt(s.catalog.TemplateFor(req.Category), PromptParams{
		Text:           protected,
		SourceLang:     req.SourceLang,
		TargetLang:     req.TargetLang,
		TargetLangName: langName,
		Context:        req.Context,
		MaxLength:      req.MaxLength,
		Glossary:       req.Glossary,
	})
	if len(markers) > 0 {
		prompt += "\n" + placeholder.InstructionHint()
	}

	apiReq := map[string]interface{}{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are an expert translator."},
			{"role": "user", "content": prompt},
		},
		"temperature": 0.3,
		"max_tokens":  1000,
	}

	jsonData, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat/completions", s.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, fmt.Errorf("API returned status %d: %v", resp.StatusCode, errResp)
	}

	var apiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
		} `json:"usage"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(apiResp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	translated := postprocess.Clean(apiResp.Choices[0].Message.Content)
	var lost []string
	for _, i := range placeholder.Missing(translated, markers) {
		lost = append(lost, markers[i])
	}
	translated = placeholder.Restore(translated, markers)

	result := &Result{
		SourceText:       req.Text,
		TranslatedText:   translated,
		SourceLang:       req.SourceLang,
		TargetLang:       req.TargetLang,
		Model:            s.model,
		PromptTokens:     apiResp.Usage.PromptTokens,
		CompletionTokens: apiResp.Usage.CompletionTokens,
		Timestamp:        time.Now(),
		Category:         req.Category,
		LostPlaceholders: lost,
	}
	EnforceMaxLength(result, req.MaxLength)

	return result, nil
}

func (s *OpenAIService) TranslateBatch(ctx context.Context, reqs []Request) ([]*Result, error) {
	return translateEach(ctx, s, reqs)
}
