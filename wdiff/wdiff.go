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

// Package wdiff renders document diffs as inline word diffs in the style of wdiff and
// git diff --word-diff=plain: removed tokens appear as [-removed-] and inserted tokens as
// {+inserted+}, everything else is printed as is.
package wdiff

import (
	"fmt"
	"strings"

	"github.com/coconstruct/docdiff"
	"github.com/coconstruct/docdiff/internal/config"
)

const (
	openDelete  = "[-"
	closeDelete = "-]"
	openInsert  = "{+"
	closeInsert = "+}"
)

// Inline renders the flattened source x with diffs applied as a word diff. Tokens are separated
// by single spaces.
//
// Diffs that repeat source tokens in their replacement, like anchored insertions, are rendered
// without marking the repeated tokens as changed.
//
// The following options are supported: [TerminalColors]
//
// An error is returned if diffs can't be applied to x.
func Inline(x []string, diffs []docdiff.Diff, opts ...docdiff.Option) (string, error) {
	cfg := config.FromOptions(opts, config.Colors)
	if _, err := docdiff.Apply(x, diffs); err != nil {
		return "", fmt.Errorf("wdiff: %w", err)
	}

	w := writer{cc: cfg.Colors}
	cursor := 0
	for _, d := range diffs {
		w.match(x[cursor:d.Index])
		o, n := d.Old, d.New
		p := commonPrefix(o, n)
		w.match(o[:p])
		o, n = o[p:], n[p:]
		s := commonSuffix(o, n)
		del := o[:len(o)-s]
		w.write(del, openDelete, closeDelete, w.cc.Delete)
		w.glue = len(del) > 0 // [-old-]{+new+}
		w.write(n[:len(n)-s], openInsert, closeInsert, w.cc.Insert)
		w.glue = false
		w.match(o[len(o)-s:])
		cursor = d.Index + len(d.Old)
	}
	w.match(x[cursor:])
	return w.sb.String(), nil
}

// Document renders the word diff of a valid [docdiff.DocumentDiff]. For an invalid diff, the
// source is rendered unchanged.
func Document(d *docdiff.DocumentDiff, opts ...docdiff.Option) (string, error) {
	return Inline(docdiff.Flatten(d.Source()), d.Diffs(), opts...)
}

type writer struct {
	sb   strings.Builder
	cc   config.ColorConfig
	glue bool // omit the separator before the next group
}

func (w *writer) match(tokens []string) {
	w.write(tokens, "", "", w.cc.Match)
}

func (w *writer) write(tokens []string, open, close, code string) {
	if len(tokens) == 0 {
		return
	}
	if w.sb.Len() > 0 && !w.glue {
		w.sb.WriteByte(' ')
	}
	if code != "" {
		w.sb.WriteString(code)
	}
	w.sb.WriteString(open)
	for i, t := range tokens {
		if i > 0 {
			w.sb.WriteByte(' ')
		}
		w.sb.WriteString(t)
	}
	w.sb.WriteString(close)
	if code != "" {
		w.sb.WriteString(w.cc.Reset)
	}
}

func commonPrefix(x, y []string) int {
	n := min(len(x), len(y))
	for i := range n {
		if x[i] != y[i] {
			return i
		}
	}
	return n
}

func commonSuffix(x, y []string) int {
	n := min(len(x), len(y))
	for i := range n {
		if x[len(x)-1-i] != y[len(y)-1-i] {
			return i
		}
	}
	return n
}
