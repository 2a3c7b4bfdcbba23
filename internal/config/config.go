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

// Package config provides shared configuration mechanisms for packages in this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// docdiff.Option and wdiff/color.Option. The environment based configuration of the docdiff
// command lives in env.go.
package config

// Config collects all configurable parameters for document comparisons in this module.
type Config struct {
	// MaxBlockTokens is the largest combined length (source plus destination tokens) of a
	// non-matching block that is diffed token by token. Larger blocks are reported as a single
	// replacement. A value <= 0 disables the limit.
	MaxBlockTokens int

	// If set, the block matcher ignores popular destination tokens when searching for the longest
	// matching block in long inputs.
	AutoJunk bool

	// Colors used by wdiff. The zero value disables coloring.
	Colors ColorConfig
}

// ColorConfig holds ANSI escape sequences for rendering word diffs on a terminal.
type ColorConfig struct {
	Match  string
	Delete string
	Insert string
	Reset  string
}

// DefaultMaxBlockTokens is the default for Config.MaxBlockTokens.
const DefaultMaxBlockTokens = 3000

// Default is the default configuration.
var Default = Config{
	MaxBlockTokens: DefaultMaxBlockTokens,
	AutoJunk:       true,
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by a function.
type Flag int

const (
	MaxBlockTokens Flag = 1 << iota
	AutoJunk
	Colors
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case MaxBlockTokens:
		return "docdiff.MaxBlockTokens"
	case AutoJunk:
		return "docdiff.AutoJunk"
	case Colors:
		return "wdiff.TerminalColors"
	default:
		panic("never reached")
	}
}
