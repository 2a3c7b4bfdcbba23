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
	"bufio"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func abstractsCmd(envFile *string) *cobra.Command {
	var flags envFlags
	cmd := &cobra.Command{
		Use:   "abstracts INPUT OUTPUT",
		Short: "Compare abstract and introduction versions from a JSON lines file",
		Long: `Compare the abstract and introduction versions of every forum in a JSON lines file.

Every input line holds {"forum_id", "initial_info": {"abstract", "intro"}, "final_info": {...}}.
Every output line holds the diff record of one section with "id" set to <forum_id>_<section>.
Use - to read from stdin or write to stdout.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, log, err := loadEnv(cmd, *envFile, &flags)
			if err != nil {
				return err
			}
			r, err := newRunner(env, log)
			if err != nil {
				return err
			}

			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			var out io.Writer = cmd.OutOrStdout()
			var f *os.File
			if args[1] != "-" {
				f, err = os.Create(args[1])
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			w := bufio.NewWriter(out)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			sum, err := r.Abstracts(ctx, in, w)
			logSummary(log, "abstracts", sum)
			if err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if f != nil {
				return f.Close()
			}
			return nil
		},
	}
	flags.register(cmd, "max-block-tokens", "auto-junk", "workers", "tokenizer")
	return cmd
}
