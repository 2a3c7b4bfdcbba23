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

	"github.com/coconstruct/docdiff/internal/batch"
	"github.com/spf13/cobra"
)

func batchCmd(envFile *string) *cobra.Command {
	var (
		flags      envFlags
		conference string
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Compare initial.txt and final.txt in every forum directory",
		Long: `Compare initial.txt and final.txt in every forum directory of the data directory and
write the result to diffs.json in the same directory.

Forum directories are the direct subdirectories of the data directory, or of its conference
subdirectory if --conference is set. Existing outputs are kept unless --overwrite is set. A diff
that fails validation is written as an empty object.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, log, err := loadEnv(cmd, *envFile, &flags)
			if err != nil {
				return err
			}
			pairs, err := batch.Discover(env.DataDir, conference)
			if err != nil {
				return err
			}
			r, err := newRunner(env, log)
			if err != nil {
				return err
			}
			log.Info("computing diffs", "data_dir", env.DataDir, "conference", conference, "pairs", len(pairs), "workers", r.Workers)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			sum, err := r.Run(ctx, pairs)
			logSummary(log, "batch", sum)
			return err
		},
	}
	flags.register(cmd, "data-dir", "max-block-tokens", "auto-junk", "workers", "overwrite", "tokenizer")
	cmd.Flags().StringVar(&conference, "conference", "", "Conference subdirectory, e.g. iclr_2022")
	return cmd
}
