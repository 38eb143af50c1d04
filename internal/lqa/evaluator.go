package lqa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/valpere/xlifftran/internal/translator"
)

// Evaluator is the quality-evaluation collaborator boundary: it produces
// raw dimension scores for one translation. Aggregation into a weighted
// score and status stays in Score.
type Evaluator interface {
	Evaluate(ctx context.Context, source, translated, targetLang, hint string) (map[string]float64, error)
}

// LLMEvaluator scores translations with an OpenAI-compatible
// chat-completions model that is asked to answer in strict JSON.
type LLMEvaluator struct {
	apiKey     string
	model      string
	baseURL    string
	dimensions []string
	client     *http.Client
}

func NewLLMEvaluator(cfg translator.ServiceConfig, dimensions []string) *LLMEvaluator {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &LLMEvaluator{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    baseURL,
		dimensions: dimensions,
		client:     &http.Client{Timeout: timeout},
	}
}

func (e *LLMEvaluator) Evaluate(ctx context.Context, source, translated, targetLang, hint string) (map[string]float64, error) {
	if e.apiKey == "" {
		return nil, fmt.Errorf("API key required for LQA evaluation")
	}

	prompt := buildEvalPrompt(source, translated, targetLang, hint, e.dimensions)

	apiReq := map[string]interface{}{
		"model": e.model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a professional translation quality evaluator."},
			{"role": "user", "content": prompt},
		},
		"temperature": 0.0,
		"max_tokens":  500,
	}

	jsonData, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat/completions", e.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", e.apiKey))

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("evaluation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("evaluator returned status %d", resp.StatusCode)
	}

	var apiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(apiResp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from evaluator")
	}

	return parseScores(apiResp.Choices[0].Message.Content, e.dimensions)
}

func buildEvalPrompt(source, translated, targetLang, hint string, dimensions []string) string {
	var sb strings.Builder
	sb.WriteString("Evaluate the quality of this translation.\n\n")
	sb.WriteString(fmt.Sprintf("Source (en): %q\n", source))
	sb.WriteString(fmt.Sprintf("Translation (%s): %q\n", targetLang, translated))
	if hint != "" {
		sb.WriteString(fmt.Sprintf("Context: %s\n", hint))
	}
	sb.WriteString("\nScore each dimension from 0 to 100.\nRespond ONLY in JSON:\n{")
	for i, dim := range dimensions {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%q: <0-100>", dim))
	}
	sb.WriteString("}\n")
	return sb.String()
}

// parseScores extracts the score object from the model's reply, tolerating
// a fenced code block around the JSON. Every configured dimension must be
// present.
func parseScores(response string, dimensions []string) (map[string]float64, error) {
	response = strings.TrimSpace(response)
	if i := strings.Index(response, "{"); i >= 0 {
		if j := strings.LastIndex(response, "}"); j > i {
			response = response[i : j+1]
		}
	}

	var scores map[string]float64
	if err := json.Unmarshal([]byte(response), &scores); err != nil {
		return nil, fmt.Errorf("failed to parse evaluator response as JSON: %w", err)
	}

	for _, dim := range dimensions {
		if _, ok := scores[dim]; !ok {
			return nil, fmt.Errorf("evaluator response missing dimension %q", dim)
		}
	}
	return scores, nil
}
