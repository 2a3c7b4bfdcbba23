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

// Command docdiff computes token level diffs between versions of documents.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/coconstruct/docdiff"
	"github.com/coconstruct/docdiff/internal/batch"
	"github.com/coconstruct/docdiff/internal/config"
	"github.com/coconstruct/docdiff/internal/logging"
	"github.com/coconstruct/docdiff/tokenize"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:   "docdiff",
		Short: "Token level diffs between document versions",
		Long: `docdiff compares two versions of a document token by token and reports the
differences as a list of replacements anchored in the initial version.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  DOCDIFF_DATA_DIR          Root of the forum directories (default: forums)
  DOCDIFF_MAX_BLOCK_TOKENS  Largest non-matching block diffed token by token (default: 3000)
  DOCDIFF_AUTO_JUNK         Ignore popular tokens when matching long documents (default: true)
  DOCDIFF_WORKERS           Documents processed in parallel, 0 for one per CPU (default: 0)
  DOCDIFF_OVERWRITE         Recompute existing outputs (default: false)
  DOCDIFF_TOKENIZER         Tokenizer: uax29, lines (default: uax29)
  DOCDIFF_LOG_LEVEL         Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  DOCDIFF_LOG_FORMAT        Log format: text, json (default: text)`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	cmd.AddCommand(diffCmd(&envFile))
	cmd.AddCommand(batchCmd(&envFile))
	cmd.AddCommand(abstractsCmd(&envFile))
	cmd.AddCommand(extractCmd(&envFile))
	cmd.AddCommand(versionCmd())
	return cmd
}

// envFlags are command line flags that override values of config.Env.
type envFlags struct {
	dataDir        string
	maxBlockTokens int
	autoJunk       bool
	workers        int
	overwrite      bool
	tokenizer      string
}

// register adds the flags with the given names to cmd.
func (f *envFlags) register(cmd *cobra.Command, names ...string) {
	fs := cmd.Flags()
	for _, name := range names {
		switch name {
		case "data-dir":
			fs.StringVarP(&f.dataDir, name, "d", "", "Data directory (default: forums)")
		case "max-block-tokens":
			fs.IntVar(&f.maxBlockTokens, name, config.DefaultMaxBlockTokens, "Largest non-matching block diffed token by token, <= 0 for no limit")
		case "auto-junk":
			fs.BoolVar(&f.autoJunk, name, true, "Ignore popular tokens when matching long documents")
		case "workers":
			fs.IntVarP(&f.workers, name, "j", 0, "Documents processed in parallel, 0 for one per CPU")
		case "overwrite":
			fs.BoolVar(&f.overwrite, name, false, "Recompute existing outputs")
		case "tokenizer":
			fs.StringVar(&f.tokenizer, name, "uax29", "Tokenizer: uax29, lines")
		default:
			panic("never reached")
		}
	}
}

// apply copies the flags that were set on the command line to env.
func (f *envFlags) apply(cmd *cobra.Command, env *config.Env) error {
	fs := cmd.Flags()
	if fs.Changed("data-dir") {
		env.DataDir = f.dataDir
	}
	if fs.Changed("max-block-tokens") {
		env.MaxBlockTokens = f.maxBlockTokens
	}
	if fs.Changed("auto-junk") {
		env.AutoJunk = f.autoJunk
	}
	if fs.Changed("workers") {
		env.Workers = f.workers
	}
	if fs.Changed("overwrite") {
		env.Overwrite = f.overwrite
	}
	if fs.Changed("tokenizer") {
		env.Tokenizer = f.tokenizer
	}
	return env.Validate()
}

// loadEnv loads the configuration and applies the command line overrides.
func loadEnv(cmd *cobra.Command, envFile string, f *envFlags) (config.Env, *slog.Logger, error) {
	env, err := config.LoadEnv(envFile)
	if err != nil {
		return config.Env{}, nil, fmt.Errorf("load config: %w", err)
	}
	if err := f.apply(cmd, &env); err != nil {
		return config.Env{}, nil, err
	}
	return env, logging.New(cmd.ErrOrStderr(), env.LogFormat, env.LogLevel), nil
}

func diffOptions(env config.Env) []docdiff.Option {
	return []docdiff.Option{
		docdiff.MaxBlockTokens(env.MaxBlockTokens),
		docdiff.AutoJunk(env.AutoJunk),
	}
}

func newRunner(env config.Env, log *slog.Logger) (*batch.Runner, error) {
	tok, err := tokenize.New(env.Tokenizer)
	if err != nil {
		return nil, err
	}
	return &batch.Runner{
		Tokenizer: tok,
		Options:   diffOptions(env),
		Workers:   env.WorkerCount(),
		Overwrite: env.Overwrite,
		Logger:    log,
	}, nil
}

func logSummary(log *slog.Logger, what string, sum batch.Summary) {
	log.Info(what+" finished",
		"processed", sum.Processed,
		"skipped", sum.Skipped,
		"invalid", sum.Invalid,
		"failed", sum.Failed)
}
