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

// Package anchor turns the non-matching blocks of a document pair into diffs that are anchored in
// the source token sequence.
package anchor

import (
	"github.com/coconstruct/docdiff/internal/blocks"
	"github.com/coconstruct/docdiff/internal/edits"
)

// Diff replaces the tokens Old at position Index of the source with the tokens New.
//
// Old is never empty, with two exceptions: an insertion at the very start of the source (Index
// is 0) and a non-matching block without source tokens that was too large to be diffed token by
// token.
type Diff struct {
	Index int      `json:"index"`
	Old   []string `json:"old"`
	New   []string `json:"new"`
}

// Builder collects the diffs for a pair of flattened token sequences. Gaps must be added in
// order.
type Builder struct {
	x, y      []string
	maxBlock  int
	diffs     []Diff
	collapsed int // number of gaps replaced as a whole
}

// NewBuilder returns a builder for diffs from x to y. Gaps with more than maxBlock tokens (source
// and destination combined) are replaced as a whole; maxBlock <= 0 means there's no limit.
func NewBuilder(x, y []string, maxBlock int) *Builder {
	return &Builder{x: x, y: y, maxBlock: maxBlock}
}

// Add appends the diffs for gap.
func (b *Builder) Add(gap blocks.Gap) {
	x := b.x[gap.S : gap.S+gap.LenS]
	y := b.y[gap.T : gap.T+gap.LenT]
	if len(x) == 0 && len(y) == 0 {
		return
	}
	if b.maxBlock > 0 && len(x)+len(y) > b.maxBlock {
		b.collapsed++
		b.diffs = append(b.diffs, Diff{
			Index: gap.S,
			Old:   clone(x),
			New:   clone(y),
		})
		return
	}

	script := edits.Script(x, y)
	s := gap.S // position in b.x of the next token consumed by the script
	for i := 0; i < len(script); {
		if script[i].Op == edits.Keep {
			s++
			i++
			continue
		}

		// Collect a maximal run of insertions and removals.
		d := Diff{Index: s, Old: []string{}, New: []string{}}
		for ; i < len(script) && script[i].Op != edits.Keep; i++ {
			switch e := script[i]; e.Op {
			case edits.Remove:
				d.Old = append(d.Old, e.Token)
			case edits.Insert:
				d.New = append(d.New, e.Token)
			default:
				panic("never reached")
			}
		}
		s += len(d.Old)

		// A pure insertion doesn't consume a source token. Anchor it at the token before the
		// insertion point and replace that token with itself followed by the insertion. At the
		// start of the source there's no such token and the diff stays a pure insertion at index
		// 0.
		if len(d.Old) == 0 && d.Index > 0 {
			prev := b.x[d.Index-1]
			d.Index--
			d.Old = append(d.Old, prev)
			d.New = append([]string{prev}, d.New...)
		}
		b.diffs = append(b.diffs, d)
	}
}

// Diffs returns the diffs added so far. The builder must not be used afterwards.
func (b *Builder) Diffs() []Diff {
	diffs := b.diffs
	b.diffs = nil
	if diffs == nil {
		diffs = []Diff{}
	}
	return diffs
}

// Collapsed returns the number of gaps that exceeded the block limit.
func (b *Builder) Collapsed() int { return b.collapsed }

func clone(s []string) []string {
	return append(make([]string, 0, len(s)), s...)
}
