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
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/valpere/xlifftran/internal/xliff"
)

var (
	evaluateAI       string
	evaluateReviewed string
	evaluateOutput   string
)

// reviewDiff is the JSON shape of one evaluate run: a unit-by-unit
// comparison of the machine translation against the human review.
type reviewDiff struct {
	TargetLang  string      `json:"target_lang"`
	GeneratedAt time.Time   `json:"generated_at"`
	Total       int         `json:"total"`
	Unchanged   int         `json:"unchanged"`
	Changed     []unitDiff  `json:"changed"`
	OnlyAI      []string    `json:"only_in_ai,omitempty"`
	OnlyReview  []string    `json:"only_in_review,omitempty"`
}

type unitDiff struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	AI       string `json:"ai_target"`
	Reviewed string `json:"reviewed_target"`
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Compare machine-translated XLIFF against a reviewed XLIFF",
	Long: `Compare a machine-translated XLIFF file with its human-reviewed
counterpart and report which units the reviewers changed.

The two files are matched unit by unit; units present in only one file
are listed separately. The JSON report shows, for every changed unit,
the source text, the machine translation, and the reviewed translation,
so post-editing effort can be measured and fed back into prompts and
glossary entries.

Example:
  xlifftran evaluate --ai out/translations_zh-CN.xliff \
    --reviewed reviewed/translations_zh-CN.xliff -o review_zh-CN.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		aiDoc, err := xliff.ParseFile(evaluateAI)
		if err != nil {
			return err
		}
		revDoc, err := xliff.ParseFile(evaluateReviewed)
		if err != nil {
			return err
		}
		if aiDoc.TargetLang != revDoc.TargetLang {
			return fmt.Errorf("target language mismatch: %s vs %s", aiDoc.TargetLang, revDoc.TargetLang)
		}

		diff := reviewDiff{
			TargetLang:  aiDoc.TargetLang,
			GeneratedAt: time.Now().UTC(),
		}

		reviewed := make(map[string]xliff.Unit, len(revDoc.Units))
		for _, u := range revDoc.Units {
			reviewed[u.ID] = u
		}

		seen := make(map[string]bool, len(aiDoc.Units))
		for _, u := range aiDoc.Units {
			seen[u.ID] = true
			ru, ok := reviewed[u.ID]
			if !ok {
				diff.OnlyAI = append(diff.OnlyAI, u.ID)
				continue
			}
			diff.Total++
			if u.Target == ru.Target {
				diff.Unchanged++
				continue
			}
			diff.Changed = append(diff.Changed, unitDiff{
				ID:       u.ID,
				Source:   u.Source,
				AI:       u.Target,
				Reviewed: ru.Target,
			})
		}
		for _, u := range revDoc.Units {
			if !seen[u.ID] {
				diff.OnlyReview = append(diff.OnlyReview, u.ID)
			}
		}

		out := os.Stdout
		if evaluateOutput != "" {
			f, err := os.Create(evaluateOutput)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", evaluateOutput, err)
			}
			defer f.Close()
			out = f
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(diff); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "%s: %d units, %d unchanged, %d changed, %d orphaned\n",
			diff.TargetLang, diff.Total, diff.Unchanged, len(diff.Changed),
			len(diff.OnlyAI)+len(diff.OnlyReview))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVar(&evaluateAI, "ai", "", "Machine-translated XLIFF file (required)")
	evaluateCmd.Flags().StringVar(&evaluateReviewed, "reviewed", "", "Human-reviewed XLIFF file (required)")
	evaluateCmd.Flags().StringVarP(&evaluateOutput, "output", "o", "", "Output JSON file (default stdout)")

	evaluateCmd.MarkFlagRequired("ai")
	evaluateCmd.MarkFlagRequired("reviewed")
}
