package translator

import (
	"fmt"
	"sort"
	"strings"
)

// PromptParams are the inputs to prompt construction.
type PromptParams struct {
	Text           string
	SourceLang     string
	TargetLang     string
	TargetLangName string
	Context        string
	MaxLength      int // 0 means no constraint
	Glossary       map[string]string
}

// BuildPrompt renders a prompt template with the given parameters. Templates
// use named tokens: {text}, {source_lang}, {target_lang}, {target_lang_name},
// {context}, {max_length}. Glossary terms, when present, are appended as a
// terminology block in sorted source-term order so output is deterministic.
//
// Pure function: identical inputs always produce the identical prompt.
func BuildPrompt(template string, p PromptParams) string {
	contextVal := p.Context
	if contextVal == "" {
		contextVal = "None"
	}
	maxLenVal := "No limit"
	if p.MaxLength > 0 {
		maxLenVal = fmt.Sprintf("%d", p.MaxLength)
	}

	prompt := strings.NewReplacer(
		"{text}", p.Text,
		"{source_lang}", p.SourceLang,
		"{target_lang}", p.TargetLang,
		"{target_lang_name}", p.TargetLangName,
		"{context}", contextVal,
		"{max_length}", maxLenVal,
	).Replace(template)

	if len(p.Glossary) > 0 {
		terms := make([]string, 0, len(p.Glossary))
		for src := range p.Glossary {
			terms = append(terms, src)
		}
		sort.Strings(terms)

		var sb strings.Builder
		sb.WriteString(prompt)
		sb.WriteString("\n\nTERMINOLOGY (use these exact translations):\n")
		for _, src := range terms {
			sb.WriteString(fmt.Sprintf("  %s = %s\n", src, p.Glossary[src]))
		}
		prompt = sb.String()
	}

	return prompt
}

// DefaultTemplate is used when no prompt configuration is supplied. The
// phrasing mirrors the shipped config/prompts.yaml default_prompt.
const DefaultTemplate = `Translate the following text from {source_lang} to {target_lang_name} ({target_lang}).

Text: {text}
Context: {context}
Maximum length: {max_length}

Only respond with the translation. No explanations, no quotes, just the translation.`
