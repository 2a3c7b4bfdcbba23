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

// Package tokenize splits text into sentences of tokens, the input format of docdiff.New.
package tokenize

import (
	"fmt"
	"strings"

	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
)

// Tokenizer splits text into sentences and sentences into tokens.
type Tokenizer interface {
	Tokenize(text string) [][]string
}

// New returns the tokenizer with the given name, "uax29" or "lines".
func New(name string) (Tokenizer, error) {
	switch name {
	case "uax29":
		return UAX29{}, nil
	case "lines":
		return Lines{}, nil
	default:
		return nil, fmt.Errorf("unknown tokenizer %q", name)
	}
}

// UAX29 segments text into sentences and words following the Unicode text segmentation rules
// (UAX #29). Whitespace is dropped, punctuation becomes separate tokens.
type UAX29 struct{}

// Tokenize implements [Tokenizer].
func (UAX29) Tokenize(text string) [][]string {
	out := [][]string{}
	sents := sentences.FromString(text)
	for sents.Next() {
		var tokens []string
		ws := words.FromString(sents.Value())
		for ws.Next() {
			if w := ws.Value(); strings.TrimSpace(w) != "" {
				tokens = append(tokens, w)
			}
		}
		if len(tokens) > 0 {
			out = append(out, tokens)
		}
	}
	return out
}

// Lines reads text that is already split: one sentence per line, tokens separated by
// whitespace. Empty lines are skipped.
type Lines struct{}

// Tokenize implements [Tokenizer].
func (Lines) Tokenize(text string) [][]string {
	out := [][]string{}
	for line := range strings.Lines(text) {
		if tokens := strings.Fields(line); len(tokens) > 0 {
			out = append(out, tokens)
		}
	}
	return out
}
