/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/valpere/xlifftran/internal/config"
	"github.com/valpere/xlifftran/internal/record"
	"github.com/valpere/xlifftran/internal/translator"
)

var configDir string

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "./config", "Directory with languages.yaml, lqa_criteria.yaml, prompts.yaml")
}

// buildService constructs the configured translation service with retry
// wrapping applied.
func buildService(cfg *config.Config) (translator.Service, error) {
	var svc translator.Service
	switch cfg.Service.Provider {
	case "openai", "":
		if cfg.Service.APIKey == "" {
			return nil, fmt.Errorf("no API key configured (set XLIFFTRAN_API_KEY or OPENAI_API_KEY)")
		}
		svc = translator.NewOpenAIService(cfg.Service, cfg)
	case "google":
		if cfg.Service.Credentials == "" {
			return nil, fmt.Errorf("no Google credentials file configured (set XLIFFTRAN_CREDENTIALS)")
		}
		svc = translator.NewGoogleService(cfg.Service)
	default:
		return nil, fmt.Errorf("unknown provider %q (want openai or google)", cfg.Service.Provider)
	}
	return translator.WithRetry(svc, cfg.Service.MaxAttempts, cfg.Service.RetryDelay), nil
}

// readRecords loads the source CSV, prints schema warnings to stderr, and
// drops records with empty source text.
func readRecords(path string) ([]record.Record, error) {
	records, warnings, err := record.ReadFile(path)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	kept := records[:0]
	skipped := 0
	for _, r := range records {
		if strings.TrimSpace(r.SourceText) == "" {
			skipped++
			continue
		}
		kept = append(kept, r)
	}
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "Skipping %d record(s) with empty source text\n", skipped)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no translatable records in %s", path)
	}
	return kept, nil
}

// fallbackString resolves a setting that exists both as a flag and in the
// configuration. An explicitly set flag wins, otherwise the config value
// applies, including an empty one.
func fallbackString(flagSet bool, flagVal, cfgVal string) string {
	if flagSet {
		return flagVal
	}
	return cfgVal
}

// fallbackInt is fallbackString for counters; non-positive config values
// leave the flag default in place.
func fallbackInt(flagSet bool, flagVal, cfgVal int) int {
	if flagSet || cfgVal <= 0 {
		return flagVal
	}
	return cfgVal
}

func splitLangs(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
