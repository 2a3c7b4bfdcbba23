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

// Package color configures the ANSI colors used by [wdiff.TerminalColors].
package color

import (
	"fmt"
	"strings"

	"github.com/coconstruct/docdiff/internal/config"
)

// A Option makes it possible to configure custom colors in [wdiff.TerminalColors].
type Option func(*config.ColorConfig)

// Matches colors unchanged tokens.
func Matches(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Match = code
	}
}

// Deletes colors removed tokens, including the [- -] markers.
func Deletes(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Delete = code
	}
}

// Inserts colors inserted tokens, including the {+ +} markers.
func Inserts(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Insert = code
	}
}

// Default returns the default terminal colors: removals are red, insertions green and unchanged
// tokens are not colored.
func Default() config.ColorConfig {
	return config.ColorConfig{
		Delete: format([]int{31}),
		Insert: format([]int{32}),
		Reset:  format([]int{0}),
	}
}

func format(params []int) string {
	var sb strings.Builder
	sb.WriteString("\033[")
	for i, v := range params {
		if i > 0 {
			sb.WriteRune(';')
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteRune('m')
	return sb.String()
}
