// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func extractCmd(envFile *string) *cobra.Command {
	var flags envFlags
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract the text of the PDF files in every forum directory",
		Long: `Extract the text of every <forum>/*.pdf file in the data directory and write it to
<forum>/*_raw.txt. Hyphenation and line breaks inside paragraphs are removed. Existing outputs are
kept unless --overwrite is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, log, err := loadEnv(cmd, *envFile, &flags)
			if err != nil {
				return err
			}
			r, err := newRunner(env, log)
			if err != nil {
				return err
			}
			log.Info("extracting text", "data_dir", env.DataDir, "workers", r.Workers)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			sum, err := r.ExtractText(ctx, env.DataDir)
			logSummary(log, "extract", sum)
			return err
		},
	}
	flags.register(cmd, "data-dir", "workers", "overwrite")
	return cmd
}
