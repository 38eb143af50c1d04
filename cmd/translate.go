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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/valpere/xlifftran/internal/batch"
	"github.com/valpere/xlifftran/internal/config"
	"github.com/valpere/xlifftran/internal/lqa"
	"github.com/valpere/xlifftran/internal/record"
	"github.com/valpere/xlifftran/internal/store"
	"github.com/valpere/xlifftran/internal/translator"
	"github.com/valpere/xlifftran/internal/validator"
	"github.com/valpere/xlifftran/internal/xliff"
)

var (
	translateInput   string
	translateOutDir  string
	translateSource  string
	translateTargets string
	xliffVersion     string
	runLQA           bool
	reportDir        string
	reportFormat     string
	translateDB      string
	noCache          bool
	batchSize        int
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate a CSV string table into XLIFF files",
	Long: `Translate every record of a CSV string table into one or more target
languages and write one XLIFF file per language.

The CSV must carry the columns _id, ref, object, display_key and en.
Optional max_length and category columns constrain length and select the
prompt template. A record whose translation fails is kept in the output
with a failure marker so reviewers can see exactly what needs rework.

With --lqa each translation is also scored against the configured quality
dimensions and the verdict embedded in the XLIFF notes, with full reports
written next to the XLIFF files.

Example:
  xlifftran translate -i strings.csv -o out/ --targets zh-CN,ja-JP --lqa`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := config.Load(configDir)
		if err != nil {
			return err
		}
		targets := splitLangs(translateTargets)
		if len(targets) == 0 {
			return fmt.Errorf("at least one target language is required (--targets)")
		}
		if err := cfg.RequireLanguages(targets); err != nil {
			return err
		}
		ver, err := xliff.ParseVersion(xliffVersion)
		if err != nil {
			return err
		}

		records, err := readRecords(translateInput)
		if err != nil {
			return err
		}

		svc, err := buildService(cfg)
		if err != nil {
			return err
		}

		// Flags win over configuration; unset flags fall back to the
		// XLIFFTRAN_DB and XLIFFTRAN_BATCH_SIZE settings.
		dbPath := fallbackString(cmd.Flags().Changed("db"), translateDB, cfg.DBPath)
		size := fallbackInt(cmd.Flags().Changed("batch-size"), batchSize, cfg.BatchSize)

		var db *store.Store
		if dbPath != "" {
			if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
			db, err = store.New(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()
			if !noCache {
				svc = db.WrapService(svc)
			}
		}

		glossaryFor := func(lang string) map[string]string {
			if db == nil {
				return nil
			}
			terms, err := db.GetGlossaryTerms(ctx, translateSource, lang)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: glossary lookup failed for %s: %v\n", lang, err)
				return nil
			}
			return terms
		}

		proc := batch.NewProcessor(svc, batch.Config{
			SourceLang: translateSource,
			BatchSize:  size,
			Glossary:   glossaryFor,
			Validator:  validator.New(),
			Progress: func(lang string, done, total int) {
				fmt.Fprintf(os.Stderr, "[%s] %d/%d records translated\n", lang, done, total)
			},
		})

		var jobID string
		if db != nil {
			jobID, err = db.CreateJob(ctx, translateInput, translateSource, targets, cfg.Service.Model)
			if err != nil {
				return fmt.Errorf("failed to create job: %w", err)
			}
		}

		results, summaries, err := proc.Run(ctx, records, targets)
		if err != nil {
			return err
		}

		var evaluator lqa.Evaluator
		if runLQA {
			evaluator = lqa.NewLLMEvaluator(cfg.Service, cfg.Criteria.DimensionNames())
		}

		for _, lang := range targets {
			langResults := results[lang]
			sum := summaries[lang]

			var evals map[string]*lqa.Evaluation
			if runLQA {
				evals = evaluate(ctx, cfg, evaluator, records, langResults, lang)
				if reportDir != "" {
					rep := buildReport(lang, records, evals)
					files, repErr := rep.WriteFiles(reportDir, reportFormat)
					if repErr != nil {
						return repErr
					}
					for _, f := range files {
						fmt.Fprintf(os.Stderr, "Wrote LQA report %s\n", f)
					}
				}
			}

			doc, err := xliff.Generate(records, langResults, translateSource, lang, evals, ver)
			if err != nil {
				return err
			}
			outPath := filepath.Join(translateOutDir, fmt.Sprintf("translations_%s.xliff", lang))
			if err := xliff.WriteFile(doc, outPath); err != nil {
				return err
			}

			if db != nil {
				for i, r := range records {
					if err := db.SaveResult(ctx, jobID, r.ID, langResults[i]); err != nil {
						fmt.Fprintf(os.Stderr, "Warning: failed to persist result for %s: %v\n", r.ID, err)
					}
				}
				for _, ev := range evals {
					if err := db.SaveEvaluation(ctx, jobID, ev); err != nil {
						fmt.Fprintf(os.Stderr, "Warning: failed to persist evaluation for %s: %v\n", ev.RecordID, err)
					}
				}
			}

			fmt.Printf("%s: %d translated, %d failed (%.1fs) -> %s\n",
				lang, sum.Completed, sum.Failed, sum.Elapsed.Seconds(), outPath)
			for _, w := range sum.Warnings {
				fmt.Fprintf(os.Stderr, "Warning: [%s] %s\n", lang, w)
			}
		}

		if db != nil {
			if err := db.CompleteJob(ctx, jobID); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to mark job completed: %v\n", err)
			}
		}
		return nil
	},
}

// evaluate scores every translation for one language. A failed translation
// is auto-rejected without spending evaluator tokens; an evaluator error
// skips the record with a warning rather than aborting the job.
func evaluate(ctx context.Context, cfg *config.Config, evaluator lqa.Evaluator, records []record.Record, results []*translator.Result, lang string) map[string]*lqa.Evaluation {
	evals := make(map[string]*lqa.Evaluation, len(records))
	for i, r := range records {
		res := results[i]
		if res.Failed() {
			evals[r.ID] = &lqa.Evaluation{
				RecordID:   r.ID,
				TargetLang: lang,
				Scores:     map[string]float64{},
				Status:     lqa.StatusRejected,
			}
			continue
		}
		scores, err := evaluator.Evaluate(ctx, r.SourceText, res.TranslatedText, lang, r.DisplayKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LQA evaluation failed for %s (%s): %v\n", r.ID, lang, err)
			continue
		}
		ev := lqa.Score(cfg.Criteria, scores)
		ev.RecordID = r.ID
		ev.TargetLang = lang
		evals[r.ID] = &ev
	}
	return evals
}

// buildReport assembles an LQA report in source record order.
func buildReport(lang string, records []record.Record, evals map[string]*lqa.Evaluation) *lqa.Report {
	rep := &lqa.Report{TargetLang: lang, GeneratedAt: time.Now().UTC()}
	for _, r := range records {
		if ev, ok := evals[r.ID]; ok {
			rep.Results = append(rep.Results, *ev)
		}
	}
	return rep
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&translateInput, "input", "i", "", "Input CSV file (required)")
	translateCmd.Flags().StringVarP(&translateOutDir, "output-dir", "o", "./out", "Directory for generated XLIFF files")
	translateCmd.Flags().StringVarP(&translateSource, "source", "s", "en", "Source language code")
	translateCmd.Flags().StringVarP(&translateTargets, "targets", "t", "", "Comma-separated target language codes (required)")
	translateCmd.Flags().StringVar(&xliffVersion, "xliff-version", "1.2", "XLIFF version to emit (1.2 or 2.0)")
	translateCmd.Flags().BoolVar(&runLQA, "lqa", false, "Run LQA evaluation on each translation")
	translateCmd.Flags().StringVar(&reportDir, "report-dir", "", "Directory for LQA reports (with --lqa)")
	translateCmd.Flags().StringVar(&reportFormat, "report-format", "json", "LQA report format: json, csv, html, or all")
	translateCmd.Flags().StringVar(&translateDB, "db", "./data/xlifftran.db", "Database path for job history and translation memory (overrides XLIFFTRAN_DB; empty to disable)")
	translateCmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the translation memory")
	translateCmd.Flags().IntVar(&batchSize, "batch-size", 50, "Records per progress batch (overrides XLIFFTRAN_BATCH_SIZE)")

	translateCmd.MarkFlagRequired("input")
	translateCmd.MarkFlagRequired("targets")
}
