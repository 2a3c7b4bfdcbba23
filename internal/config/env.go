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

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of all environment variables read by LoadEnv.
const EnvPrefix = "DOCDIFF"

// Env holds the environment based configuration of the docdiff command. Every field maps to an
// environment variable with the DOCDIFF_ prefix, e.g. DOCDIFF_MAX_BLOCK_TOKENS.
type Env struct {
	// DataDir is the root of the forum directories.
	DataDir string `envconfig:"DATA_DIR" default:"forums"`

	// MaxBlockTokens is the large block threshold, see Config.MaxBlockTokens.
	MaxBlockTokens int `envconfig:"MAX_BLOCK_TOKENS" default:"3000"`

	// AutoJunk enables the popular token heuristic of the block matcher.
	AutoJunk bool `envconfig:"AUTO_JUNK" default:"true"`

	// Workers is the number of documents diffed in parallel. 0 means GOMAXPROCS.
	Workers int `envconfig:"WORKERS" default:"0"`

	// Overwrite recomputes outputs that already exist.
	Overwrite bool `envconfig:"OVERWRITE" default:"false"`

	// Tokenizer selects the tokenizer: uax29 or lines.
	Tokenizer string `envconfig:"TOKENIZER" default:"uax29"`

	// LogLevel is one of DEBUG, INFO, WARN, ERROR.
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is text or json.
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// LoadEnv loads the configuration from the environment after loading path as a .env file. If path
// is empty, ".env" is used if it exists. Variables already set in the environment take precedence
// over the .env file.
func LoadEnv(path string) (Env, error) {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Env{}, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Env{}, fmt.Errorf("processing environment: %w", err)
	}
	if err := env.Validate(); err != nil {
		return Env{}, err
	}
	return env, nil
}

// Validate checks the values that can't be validated by their types alone.
func (e Env) Validate() error {
	switch e.Tokenizer {
	case "uax29", "lines":
	default:
		return fmt.Errorf("unknown tokenizer %q, want uax29 or lines", e.Tokenizer)
	}
	switch e.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q, want text or json", e.LogFormat)
	}
	if e.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", e.Workers)
	}
	return nil
}

// WorkerCount returns the effective number of workers.
func (e Env) WorkerCount() int {
	if e.Workers == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return e.Workers
}
