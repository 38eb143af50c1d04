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

	"github.com/spf13/cobra"

	"github.com/valpere/xlifftran/internal/record"
	"github.com/valpere/xlifftran/internal/xliff"
)

var (
	importSource string
	importOutput string
)

var importCmd = &cobra.Command{
	Use:   "import <xliff-file>...",
	Short: "Merge reviewed XLIFF files back into the source CSV",
	Long: `Merge one or more reviewed XLIFF files back into the source string
table, producing a CSV with one translation column per target language.

Each XLIFF file contributes the column named by its target language.
Units with no matching source record and records with no translation are
reported as warnings but never abort the merge.

Example:
  xlifftran import out/translations_zh-CN.xliff out/translations_ja-JP.xliff \
    --source strings.csv --output merged.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, warnings, err := record.ReadFile(importSource)
		if err != nil {
			return err
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}

		docs := make(map[string]*xliff.Document, len(args))
		for _, path := range args {
			doc, err := xliff.ParseFile(path)
			if err != nil {
				return err
			}
			if doc.TargetLang == "" {
				return fmt.Errorf("%s: missing target language", path)
			}
			if prev, dup := docs[doc.TargetLang]; dup && prev != nil {
				return fmt.Errorf("%s: duplicate XLIFF for target language %s", path, doc.TargetLang)
			}
			docs[doc.TargetLang] = doc
		}

		rows, mergeWarnings := xliff.Merge(records, docs)
		for _, w := range mergeWarnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}

		if err := record.WriteFile(rows, importOutput); err != nil {
			return err
		}
		fmt.Printf("Merged %d language(s) into %s (%d rows, %d warnings)\n",
			len(docs), importOutput, len(rows), len(mergeWarnings))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importSource, "source", "s", "", "Source CSV file (required)")
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "Output CSV file (required)")

	importCmd.MarkFlagRequired("source")
	importCmd.MarkFlagRequired("output")
}
