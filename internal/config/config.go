// Package config loads and validates all job configuration: the language
// table, LQA scoring criteria, prompt templates, and provider settings.
// Everything is loaded once at job start into an immutable Config that is
// passed explicitly to the components that need it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/valpere/xlifftran/internal/lqa"
	"github.com/valpere/xlifftran/internal/translator"
)

// ConfigError is fatal at load time: the job must not start with an
// invalid configuration.
type ConfigError struct {
	File   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("invalid configuration (%s): %s", e.File, e.Reason)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

// Language describes one configured target language.
type Language struct {
	Code       string `yaml:"code"`
	Name       string `yaml:"name"`
	BCP47      string `yaml:"bcp47"`
	NativeName string `yaml:"native_name"`
}

// Config is the complete, validated job configuration.
type Config struct {
	Languages map[string]Language
	Criteria  lqa.Criteria
	Prompts   map[string]string
	Service   translator.ServiceConfig
	DBPath    string
	BatchSize int
}

const (
	languagesFile = "languages.yaml"
	criteriaFile  = "lqa_criteria.yaml"
	promptsFile   = "prompts.yaml"
)

// Load reads configuration from configDir plus the environment. A missing
// YAML file falls back to built-in defaults; a present-but-invalid file is
// a *ConfigError. Environment variables use the XLIFFTRAN_ prefix
// (XLIFFTRAN_API_KEY, XLIFFTRAN_MODEL, …); OPENAI_API_KEY is honoured as a
// fallback for the API key. A .env file in the working directory is loaded
// first when present.
func Load(configDir string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("XLIFFTRAN")
	v.AutomaticEnv()
	v.SetDefault("provider", "openai")
	v.SetDefault("api_key", "")
	v.SetDefault("model", "gpt-4-turbo-preview")
	v.SetDefault("base_url", "")
	v.SetDefault("credentials", "")
	v.SetDefault("project_id", "")
	v.SetDefault("timeout", 120*time.Second)
	v.SetDefault("max_attempts", 3)
	v.SetDefault("retry_delay", 2*time.Second)
	v.SetDefault("db", "./data/xlifftran.db")
	v.SetDefault("batch_size", 50)

	// Optional settings file alongside the YAML config documents.
	v.SetConfigName("settings")
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, &ConfigError{File: "settings", Reason: err.Error()}
		}
	}

	var svc translator.ServiceConfig
	if err := v.Unmarshal(&svc); err != nil {
		return nil, &ConfigError{File: "settings", Reason: err.Error()}
	}
	if svc.APIKey == "" {
		svc.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	cfg := &Config{
		Service:   svc,
		DBPath:    v.GetString("db"),
		BatchSize: v.GetInt("batch_size"),
	}

	if err := cfg.loadLanguages(filepath.Join(configDir, languagesFile)); err != nil {
		return nil, err
	}
	if err := cfg.loadCriteria(filepath.Join(configDir, criteriaFile)); err != nil {
		return nil, err
	}
	if err := cfg.loadPrompts(filepath.Join(configDir, promptsFile)); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadLanguages(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		c.Languages = defaultLanguages()
		return nil
	}
	if err != nil {
		return &ConfigError{File: languagesFile, Reason: err.Error()}
	}

	var doc struct {
		Languages []Language `yaml:"languages"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &ConfigError{File: languagesFile, Reason: err.Error()}
	}
	if len(doc.Languages) == 0 {
		return &ConfigError{File: languagesFile, Reason: "no languages defined"}
	}

	c.Languages = make(map[string]Language, len(doc.Languages))
	for _, l := range doc.Languages {
		if l.BCP47 == "" {
			l.BCP47 = l.Code
		}
		c.Languages[l.Code] = l
	}
	return nil
}

func (c *Config) loadCriteria(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		c.Criteria = lqa.DefaultCriteria()
		return nil
	}
	if err != nil {
		return &ConfigError{File: criteriaFile, Reason: err.Error()}
	}

	var doc struct {
		Dimensions map[string]lqa.Dimension `yaml:"dimensions"`
		Thresholds struct {
			Approve     float64 `yaml:"approve"`
			RejectFloor float64 `yaml:"reject_floor"`
		} `yaml:"thresholds"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &ConfigError{File: criteriaFile, Reason: err.Error()}
	}

	c.Criteria = lqa.Criteria{
		Dimensions:       doc.Dimensions,
		ApproveThreshold: doc.Thresholds.Approve,
		RejectFloor:      doc.Thresholds.RejectFloor,
	}
	if c.Criteria.ApproveThreshold == 0 {
		c.Criteria.ApproveThreshold = 85
	}
	return nil
}

func (c *Config) loadPrompts(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		c.Prompts = defaultPrompts()
		return nil
	}
	if err != nil {
		return &ConfigError{File: promptsFile, Reason: err.Error()}
	}

	var prompts map[string]string
	if err := yaml.Unmarshal(data, &prompts); err != nil {
		return &ConfigError{File: promptsFile, Reason: err.Error()}
	}
	if prompts["default_prompt"] == "" {
		return &ConfigError{File: promptsFile, Reason: "default_prompt is required"}
	}
	c.Prompts = prompts
	return nil
}

// Validate checks the loaded configuration as a whole. It is called by Load
// and again by the validate stage of every command before any translation
// call is made.
func (c *Config) Validate() error {
	if err := c.Criteria.Validate(); err != nil {
		return &ConfigError{File: criteriaFile, Reason: err.Error()}
	}
	if len(c.Languages) == 0 {
		return &ConfigError{File: languagesFile, Reason: "no languages configured"}
	}
	for code, l := range c.Languages {
		if l.Name == "" {
			return &ConfigError{File: languagesFile, Reason: fmt.Sprintf("language %s has no display name", code)}
		}
		if _, err := language.Parse(l.BCP47); err != nil {
			return &ConfigError{File: languagesFile, Reason: fmt.Sprintf("language %s has invalid BCP-47 tag %q", code, l.BCP47)}
		}
	}
	if c.Prompts["default_prompt"] == "" {
		return &ConfigError{File: promptsFile, Reason: "default_prompt is required"}
	}
	return nil
}

// RequireLanguages returns a ConfigError naming the first unknown code.
func (c *Config) RequireLanguages(codes []string) error {
	for _, code := range codes {
		if _, ok := c.Languages[code]; !ok {
			known := make([]string, 0, len(c.Languages))
			for k := range c.Languages {
				known = append(known, k)
			}
			return &ConfigError{Reason: fmt.Sprintf("unknown target language %q (configured: %s)", code, strings.Join(known, ", "))}
		}
	}
	return nil
}

// TemplateFor selects the prompt template for a content category.
func (c *Config) TemplateFor(category string) string {
	switch category {
	case "ui", "form_label", "button", "section_header":
		if t := c.Prompts["ui_strings"]; t != "" {
			return t
		}
	case "compliance", "legal", "safety":
		if t := c.Prompts["compliance"]; t != "" {
			return t
		}
	}
	return c.Prompts["default_prompt"]
}

// LanguageName returns the display name for a configured language code.
func (c *Config) LanguageName(code string) (string, bool) {
	l, ok := c.Languages[code]
	if !ok {
		return "", false
	}
	return l.Name, true
}

func defaultLanguages() map[string]Language {
	langs := []Language{
		{Code: "zh-CN", Name: "Simplified Chinese", BCP47: "zh-Hans", NativeName: "简体中文"},
		{Code: "ja-JP", Name: "Japanese", BCP47: "ja-JP", NativeName: "日本語"},
		{Code: "fr-FR", Name: "French", BCP47: "fr-FR", NativeName: "Français"},
		{Code: "de-DE", Name: "German", BCP47: "de-DE", NativeName: "Deutsch"},
		{Code: "es-ES", Name: "Spanish", BCP47: "es-ES", NativeName: "Español"},
		{Code: "pt-BR", Name: "Brazilian Portuguese", BCP47: "pt-BR", NativeName: "Português"},
		{Code: "uk-UA", Name: "Ukrainian", BCP47: "uk-UA", NativeName: "Українська"},
	}
	m := make(map[string]Language, len(langs))
	for _, l := range langs {
		m[l.Code] = l
	}
	return m
}

func defaultPrompts() map[string]string {
	return map[string]string{
		"default_prompt": translator.DefaultTemplate,
		"ui_strings": `Translate this user-interface string from {source_lang} to {target_lang_name} ({target_lang}).
Keep it short and action-oriented; UI space is limited.

Text: {text}
Context: {context}
Maximum length: {max_length}

Only respond with the translation. No explanations, no quotes, just the translation.`,
		"compliance": `Translate this compliance text from {source_lang} to {target_lang_name} ({target_lang}).
Use precise, formal register; legal meaning must be preserved exactly.

Text: {text}
Context: {context}
Maximum length: {max_length}

Only respond with the translation. No explanations, no quotes, just the translation.`,
	}
}
