package translator

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	p := PromptParams{
		Text:           "Save changes",
		SourceLang:     "en",
		TargetLang:     "zh-CN",
		TargetLangName: "Simplified Chinese",
		Context:        "home.save",
		MaxLength:      20,
	}
	prompt := BuildPrompt(DefaultTemplate, p)

	for _, want := range []string{"Save changes", "Simplified Chinese", "zh-CN", "home.save", "20"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "{") {
		t.Errorf("prompt contains unreplaced token:\n%s", prompt)
	}
}

func TestBuildPrompt_Defaults(t *testing.T) {
	prompt := BuildPrompt(DefaultTemplate, PromptParams{
		Text: "Hi", SourceLang: "en", TargetLang: "fr-FR", TargetLangName: "French",
	})
	if !strings.Contains(prompt, "Context: None") {
		t.Errorf("expected default context, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Maximum length: No limit") {
		t.Errorf("expected no-limit max length, got:\n%s", prompt)
	}
}

func TestBuildPrompt_Glossary(t *testing.T) {
	p := PromptParams{
		Text: "Open the Dashboard", SourceLang: "en", TargetLang: "zh-CN", TargetLangName: "Simplified Chinese",
		Glossary: map[string]string{"Dashboard": "仪表板", "Account": "账户"},
	}
	prompt := BuildPrompt(DefaultTemplate, p)

	if !strings.Contains(prompt, "TERMINOLOGY") {
		t.Fatalf("expected terminology block:\n%s", prompt)
	}
	// Sorted source-term order keeps prompts deterministic.
	if strings.Index(prompt, "Account = 账户") > strings.Index(prompt, "Dashboard = 仪表板") {
		t.Errorf("glossary terms not sorted:\n%s", prompt)
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	p := PromptParams{
		Text: "Hi", SourceLang: "en", TargetLang: "de-DE", TargetLangName: "German",
		Glossary: map[string]string{"a": "1", "b": "2", "c": "3"},
	}
	first := BuildPrompt(DefaultTemplate, p)
	for i := 0; i < 10; i++ {
		if got := BuildPrompt(DefaultTemplate, p); got != first {
			t.Fatal("BuildPrompt is not deterministic")
		}
	}
}
