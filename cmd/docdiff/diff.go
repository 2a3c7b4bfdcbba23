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
	"fmt"
	"os"
	"path/filepath"

	"github.com/coconstruct/docdiff"
	"github.com/coconstruct/docdiff/tokenize"
	"github.com/coconstruct/docdiff/wdiff"
	"github.com/spf13/cobra"
)

func diffCmd(envFile *string) *cobra.Command {
	var (
		flags  envFlags
		id     string
		format string
		color  bool
	)
	cmd := &cobra.Command{
		Use:   "diff INITIAL FINAL",
		Short: "Compare two text files",
		Long: `Compare two text files and print the diffs.

The json format prints the record that the batch command stores as diffs.json, the inline format
prints the initial text with [-removed-] and {+inserted+} tokens marked.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, log, err := loadEnv(cmd, *envFile, &flags)
			if err != nil {
				return err
			}
			tok, err := tokenize.New(env.Tokenizer)
			if err != nil {
				return err
			}
			initial, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			final, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			if id == "" {
				id = filepath.Base(filepath.Dir(args[0]))
			}

			d := docdiff.New(tok.Tokenize(string(initial)), tok.Tokenize(string(final)), id, diffOptions(env)...)
			if !d.Valid() {
				log.Warn("diffs don't reproduce the final version", "id", id)
			}
			stats := d.Stats()
			log.Debug("compared", "id", id,
				"matching_blocks", stats.MatchingBlocks,
				"non_matching_blocks", stats.NonMatchingBlocks,
				"collapsed_blocks", stats.CollapsedBlocks)

			var out string
			switch format {
			case "json":
				b, err := d.Dump()
				if err != nil {
					return err
				}
				out = string(b)
			case "inline":
				var opts []docdiff.Option
				if color {
					opts = append(opts, wdiff.TerminalColors())
				}
				out, err = wdiff.Document(d, opts...)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q, want json or inline", format)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	flags.register(cmd, "max-block-tokens", "auto-junk", "tokenizer")
	cmd.Flags().StringVar(&id, "id", "", "Document identifier (default: directory of INITIAL)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, inline")
	cmd.Flags().BoolVar(&color, "color", false, "Color the inline format")
	return cmd
}
