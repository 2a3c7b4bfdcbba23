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

// Package benchmarks compares docdiff with other diff libraries on token sequences.
package benchmarks

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/coconstruct/docdiff"
	godebug "github.com/kylelemons/godebug/diff"
	mb0 "github.com/mb0/diff"
	gointernal "github.com/rogpeppe/go-internal/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Impl is a diff implementation. Diff returns the number of removed plus inserted tokens.
type Impl struct {
	Name string
	Diff func(x, y []string) int
}

var Impls = []Impl{
	{
		Name: "docdiff",
		Diff: func(x, y []string) int {
			return docdiffEdits(x, y)
		},
	},
	{
		Name: "docdiff-unlimited",
		Diff: func(x, y []string) int {
			return docdiffEdits(x, y, docdiff.MaxBlockTokens(0))
		},
	},
	{
		Name: "docdiff-nojunk",
		Diff: func(x, y []string) int {
			return docdiffEdits(x, y, docdiff.AutoJunk(false))
		},
	},
	{
		Name: "go-internal",
		Diff: func(x, y []string) int {
			return countLines(gointernal.Diff("x", lines(x), "y", lines(y)))
		},
	},
	{
		Name: "diffmatchpatch",
		Diff: func(x, y []string) int {
			dmp := diffmatchpatch.New()
			rx, ry, tokens := dmp.DiffLinesToRunes(string(lines(x)), string(lines(y)))
			diffs := dmp.DiffMainRunes(rx, ry, false)
			diffs = dmp.DiffCharsToLines(diffs, tokens)
			n := 0
			for _, d := range diffs {
				if d.Type != diffmatchpatch.DiffEqual {
					n += strings.Count(d.Text, "\n")
				}
			}
			return n
		},
	},
	{
		Name: "godebug",
		Diff: func(x, y []string) int {
			// Lines in the output are prefixed with "+", "-" or " ".
			return countLines([]byte(godebug.Diff(string(lines(x)), string(lines(y)))))
		},
	},
	{
		Name: "mb0",
		Diff: func(x, y []string) int {
			n := 0
			for _, ch := range mb0.Diff(len(x), len(y), tokens{x, y}) {
				n += ch.Del + ch.Ins
			}
			return n
		},
	},
	{
		Name: "udiff",
		Diff: func(x, y []string) int {
			return countLines([]byte(udiff.Unified("x", "y", string(lines(x)), string(lines(y)))))
		},
	},
}

// docdiffEdits counts the tokens changed by the diffs of docdiff. Tokens that a diff repeats in
// its replacement, like the anchor of an insertion, are not counted.
func docdiffEdits(x, y []string, opts ...docdiff.Option) int {
	d := docdiff.New([][]string{x}, [][]string{y}, "bench", opts...)
	n := 0
	for _, diff := range d.Diffs() {
		o, nw := diff.Old, diff.New
		for len(o) > 0 && len(nw) > 0 && o[0] == nw[0] {
			o, nw = o[1:], nw[1:]
		}
		for len(o) > 0 && len(nw) > 0 && o[len(o)-1] == nw[len(nw)-1] {
			o, nw = o[:len(o)-1], nw[:len(nw)-1]
		}
		n += len(o) + len(nw)
	}
	return n
}

// lines renders tokens one per line for line based diff libraries.
func lines(tokens []string) []byte {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t)
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// countLines counts the removed and inserted lines of a unified diff.
func countLines(out []byte) int {
	n := 0
	for line := range strings.Lines(string(out)) {
		if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
			continue
		}
		if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") {
			n++
		}
	}
	return n
}

type tokens struct {
	x, y []string
}

func (d tokens) Equal(i, j int) bool { return d.x[i] == d.y[j] }
