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

	"github.com/spf13/cobra"

	"github.com/valpere/xlifftran/internal/lqa"
)

var (
	reportOutDir string
	reportFmt    string
)

var reportCmd = &cobra.Command{
	Use:   "report <lqa-results.json>...",
	Short: "Render LQA results into reports",
	Long: `Render previously saved LQA result files (the JSON written by
"translate --lqa") into json, csv, or html reports.

Example:
  xlifftran report reports/lqa_report_zh-CN.json --format html -o reports/`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			rep, err := lqa.LoadReport(path)
			if err != nil {
				return err
			}
			files, err := rep.WriteFiles(reportOutDir, reportFmt)
			if err != nil {
				return err
			}
			sum := rep.Summary()
			fmt.Printf("%s: %d results, avg %.1f (%d approved, %d needs review, %d rejected)\n",
				rep.TargetLang, sum.Total, sum.AverageScore, sum.Approved, sum.NeedsReview, sum.Rejected)
			for _, f := range files {
				fmt.Printf("  wrote %s\n", f)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportOutDir, "output-dir", "o", ".", "Directory for rendered reports")
	reportCmd.Flags().StringVar(&reportFmt, "format", "all", "Report format: json, csv, html, or all")
}
