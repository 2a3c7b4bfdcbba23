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

package wdiff

import (
	"github.com/coconstruct/docdiff"
	"github.com/coconstruct/docdiff/internal/config"
	"github.com/coconstruct/docdiff/wdiff/color"
)

// TerminalColors enables ANSI colors in the output of [Inline]. Without options, removed tokens are
// red and inserted tokens green; use the options in package color to pick other colors.
func TerminalColors(opts ...color.Option) docdiff.Option {
	cc := color.Default()
	for _, opt := range opts {
		opt(&cc)
	}
	return func(cfg *config.Config) config.Flag {
		cfg.Colors = cc
		return config.Colors
	}
}
