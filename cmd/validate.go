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
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/xlifftran/internal/config"
	"github.com/valpere/xlifftran/internal/record"
	"github.com/valpere/xlifftran/internal/xliff"
)

var validateVersion string

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate CSV inputs, XLIFF files, and configuration",
	Long: `Validate pipeline inputs without translating anything.

CSV files (.csv) are checked for the required column schema; XLIFF files
(.xliff, .xlf, .xml) are checked for structural soundness. The loaded
configuration (LQA weights, language tags, prompt templates) is always
validated first.

Example:
  xlifftran validate strings.csv out/translations_zh-CN.xliff`,
	Args: cobra.MinimumNArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configDir)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		fmt.Println("Configuration: OK")

		var expected xliff.Version
		if validateVersion != "" {
			expected, err = xliff.ParseVersion(validateVersion)
			if err != nil {
				return err
			}
		}

		failed := 0
		for _, path := range args {
			switch strings.ToLower(filepath.Ext(path)) {
			case ".csv":
				records, warnings, err := record.ReadFile(path)
				if err != nil {
					fmt.Printf("%s: FAIL: %v\n", path, err)
					failed++
					continue
				}
				for _, w := range warnings {
					fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", path, w)
				}
				fmt.Printf("%s: OK (%d records)\n", path, len(records))
			default:
				data, err := os.ReadFile(path)
				if err != nil {
					fmt.Printf("%s: FAIL: %v\n", path, err)
					failed++
					continue
				}
				if err := xliff.Validate(data, expected); err != nil {
					fmt.Printf("%s: FAIL: %v\n", path, err)
					failed++
					continue
				}
				fmt.Printf("%s: OK\n", path)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d file(s) failed validation", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateVersion, "xliff-version", "", "Require a specific XLIFF version (1.2 or 2.0)")
}
