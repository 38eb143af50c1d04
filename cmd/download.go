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

	"github.com/spf13/cobra"

	"github.com/valpere/xlifftran/internal/tms"
	"github.com/valpere/xlifftran/internal/xliff"
)

var downloadOutput string

var downloadCmd = &cobra.Command{
	Use:   "download <job-uid>",
	Short: "Download a reviewed XLIFF file from Phrase TMS",
	Long: `Download the reviewed target file of a Phrase TMS job, validate it,
and write it locally for the import step.

Requires PHRASE_API_TOKEN and PHRASE_PROJECT_ID in the environment.

Example:
  xlifftran download AbC123dEf --output reviewed/translations_zh-CN.xliff`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := tms.NewPhraseClient()
		if err != nil {
			return err
		}

		data, err := client.DownloadXLIFF(ctx, args[0])
		if err != nil {
			return err
		}
		if err := xliff.Validate(data, ""); err != nil {
			return fmt.Errorf("downloaded file is not valid XLIFF: %w", err)
		}

		if dir := filepath.Dir(downloadOutput); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(downloadOutput, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", downloadOutput, err)
		}
		fmt.Printf("Downloaded job %s to %s\n", args[0], downloadOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "reviewed.xliff", "Output XLIFF path")
}
