package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Empty directory: every document falls back to built-in defaults.
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Languages) == 0 {
		t.Error("no default languages")
	}
	if err := cfg.Criteria.Validate(); err != nil {
		t.Errorf("default criteria invalid: %v", err)
	}
	if cfg.Prompts["default_prompt"] == "" {
		t.Error("no default prompt")
	}
	if cfg.Service.Provider != "openai" {
		t.Errorf("default provider = %q", cfg.Service.Provider)
	}
	if cfg.BatchSize != 50 {
		t.Errorf("default batch size = %d", cfg.BatchSize)
	}
}

func TestLoad_LanguagesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "languages.yaml", `
languages:
  - code: uk-UA
    name: Ukrainian
    bcp47: uk-UA
    native_name: Українська
`)
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Languages) != 1 {
		t.Fatalf("expected 1 language, got %d", len(cfg.Languages))
	}
	if name, ok := cfg.LanguageName("uk-UA"); !ok || name != "Ukrainian" {
		t.Errorf("LanguageName = %q, %v", name, ok)
	}
	if _, ok := cfg.LanguageName("zh-CN"); ok {
		t.Error("unconfigured language resolved")
	}
}

func TestLoad_BadWeights(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "lqa_criteria.yaml", `
dimensions:
  accuracy:
    weight: 0.5
thresholds:
  approve: 85
  reject_floor: 10
`)
	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected ConfigError for weight sum 0.5")
	}
	if _, ok := err.(*ConfigError); !ok {
		t.Errorf("expected *ConfigError, got %T", err)
	}
}

func TestLoad_BadBCP47(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "languages.yaml", `
languages:
  - code: xx
    name: Broken
    bcp47: "not a tag!"
`)
	if _, err := Load(dir); err == nil {
		t.Fatal("expected ConfigError for invalid BCP-47 tag")
	}
}

func TestLoad_PromptsRequireDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "prompts.yaml", `
ui_strings: "Translate {text}"
`)
	if _, err := Load(dir); err == nil {
		t.Fatal("expected ConfigError for missing default_prompt")
	}
}

func TestTemplateFor(t *testing.T) {
	cfg := &Config{Prompts: map[string]string{
		"default_prompt": "default",
		"ui_strings":     "ui",
		"compliance":     "legal",
	}}

	tests := []struct {
		category string
		want     string
	}{
		{"ui", "ui"},
		{"form_label", "ui"},
		{"button", "ui"},
		{"section_header", "ui"},
		{"compliance", "legal"},
		{"legal", "legal"},
		{"safety", "legal"},
		{"marketing", "default"},
		{"", "default"},
	}
	for _, tt := range tests {
		if got := cfg.TemplateFor(tt.category); got != tt.want {
			t.Errorf("TemplateFor(%q) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestTemplateFor_FallsBackToDefault(t *testing.T) {
	cfg := &Config{Prompts: map[string]string{"default_prompt": "default"}}
	if got := cfg.TemplateFor("ui"); got != "default" {
		t.Errorf("missing ui_strings template should fall back, got %q", got)
	}
}

func TestRequireLanguages(t *testing.T) {
	cfg := &Config{Languages: map[string]Language{
		"zh-CN": {Code: "zh-CN", Name: "Simplified Chinese", BCP47: "zh-Hans"},
	}}
	if err := cfg.RequireLanguages([]string{"zh-CN"}); err != nil {
		t.Errorf("configured language rejected: %v", err)
	}
	if err := cfg.RequireLanguages([]string{"zh-CN", "xx-XX"}); err == nil {
		t.Error("unknown language accepted")
	}
}

func TestLoad_EnvAPIKey(t *testing.T) {
	t.Setenv("XLIFFTRAN_API_KEY", "from-env")
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Service.APIKey != "from-env" {
		t.Errorf("API key not bound from environment: %q", cfg.Service.APIKey)
	}
}

func TestLoad_OpenAIKeyFallback(t *testing.T) {
	t.Setenv("XLIFFTRAN_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "fallback-key")
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Service.APIKey != "fallback-key" {
		t.Errorf("OPENAI_API_KEY fallback not applied: %q", cfg.Service.APIKey)
	}
}
