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
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/xlifftran/internal/lqa"
	"github.com/valpere/xlifftran/internal/tms"
	"github.com/valpere/xlifftran/internal/xliff"
)

var (
	uploadTarget    string
	uploadLQAReport string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <xliff-file>",
	Short: "Upload an XLIFF file to Phrase TMS for review",
	Long: `Upload a translated XLIFF file to Phrase TMS as a review job.

Requires PHRASE_API_TOKEN and PHRASE_PROJECT_ID in the environment.
With --lqa-report, units needing review or rejected by LQA are summarised
in a job comment so reviewers can prioritise.

Example:
  xlifftran upload out/translations_zh-CN.xliff --lqa-report reports/lqa_report_zh-CN.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		path := args[0]

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := xliff.Validate(data, ""); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		targetLang := uploadTarget
		if targetLang == "" {
			doc, err := xliff.Parse(data)
			if err != nil {
				return err
			}
			targetLang = doc.TargetLang
		}

		client, err := tms.NewPhraseClient()
		if err != nil {
			return err
		}

		job, err := client.UploadXLIFF(ctx, path, targetLang)
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded %s as job %s (%s)\n", path, job.UID, job.TargetLang)

		if uploadLQAReport != "" {
			rep, err := lqa.LoadReport(uploadLQAReport)
			if err != nil {
				return err
			}
			if comment := lqaComment(rep); comment != "" {
				if err := client.AddJobComment(ctx, job.UID, comment); err != nil {
					return fmt.Errorf("failed to attach LQA comment: %w", err)
				}
				fmt.Println("Attached LQA summary comment")
			}
		}
		return nil
	},
}

// lqaComment summarises the units a reviewer should look at first. Empty
// when everything was approved.
func lqaComment(rep *lqa.Report) string {
	var flagged []string
	for _, e := range rep.Results {
		if e.Status != lqa.StatusApproved {
			flagged = append(flagged, fmt.Sprintf("%s (%s, %.1f)", e.RecordID, e.Status, e.WeightedScore))
		}
	}
	if len(flagged) == 0 {
		return ""
	}
	sum := rep.Summary()
	return fmt.Sprintf("LQA: %d/%d units flagged for review: %s",
		len(flagged), sum.Total, strings.Join(flagged, ", "))
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringVarP(&uploadTarget, "target", "t", "", "Target language (default: from the XLIFF file)")
	uploadCmd.Flags().StringVar(&uploadLQAReport, "lqa-report", "", "LQA report JSON to summarise as a job comment")
}
