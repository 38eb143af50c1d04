package lqa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/valpere/xlifftran/internal/translator"
)

func evalServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
}

func TestLLMEvaluator_Evaluate(t *testing.T) {
	srv := evalServer(t, `{"accuracy": 90, "fluency": 80}`)
	defer srv.Close()

	e := NewLLMEvaluator(translator.ServiceConfig{
		APIKey: "test-key", Model: "m", BaseURL: srv.URL,
	}, []string{"accuracy", "fluency"})

	scores, err := e.Evaluate(context.Background(), "Save changes", "保存更改", "zh-CN", "home.save")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if scores["accuracy"] != 90 || scores["fluency"] != 80 {
		t.Errorf("unexpected scores: %v", scores)
	}
}

func TestLLMEvaluator_FencedJSON(t *testing.T) {
	srv := evalServer(t, "Here you go:\n```json\n{\"accuracy\": 75}\n```")
	defer srv.Close()

	e := NewLLMEvaluator(translator.ServiceConfig{APIKey: "k", Model: "m", BaseURL: srv.URL}, []string{"accuracy"})
	scores, err := e.Evaluate(context.Background(), "a", "b", "zh-CN", "")
	if err != nil {
		t.Fatalf("Evaluate failed on fenced JSON: %v", err)
	}
	if scores["accuracy"] != 75 {
		t.Errorf("unexpected scores: %v", scores)
	}
}

func TestLLMEvaluator_MissingDimension(t *testing.T) {
	srv := evalServer(t, `{"accuracy": 90}`)
	defer srv.Close()

	e := NewLLMEvaluator(translator.ServiceConfig{APIKey: "k", Model: "m", BaseURL: srv.URL}, []string{"accuracy", "fluency"})
	if _, err := e.Evaluate(context.Background(), "a", "b", "zh-CN", ""); err == nil {
		t.Fatal("expected error for missing dimension")
	}
}

func TestLLMEvaluator_BadJSON(t *testing.T) {
	srv := evalServer(t, "The translation is quite good overall.")
	defer srv.Close()

	e := NewLLMEvaluator(translator.ServiceConfig{APIKey: "k", Model: "m", BaseURL: srv.URL}, []string{"accuracy"})
	if _, err := e.Evaluate(context.Background(), "a", "b", "zh-CN", ""); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}

func TestLLMEvaluator_NoKey(t *testing.T) {
	e := NewLLMEvaluator(translator.ServiceConfig{Model: "m"}, []string{"accuracy"})
	if _, err := e.Evaluate(context.Background(), "a", "b", "zh-CN", ""); err == nil {
		t.Fatal("expected error without API key")
	}
}
