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

// Package replay applies anchored diffs to a source token sequence.
package replay

import (
	"fmt"
	"slices"

	"github.com/coconstruct/docdiff/internal/anchor"
)

// Apply replays diffs against x: it copies x up to the index of a diff, appends the new tokens of
// the diff, skips the old tokens of the diff and repeats; finally it copies the rest of x.
//
// An error is returned if the diffs are not sorted by index, overlap, are out of range or if the
// old tokens of a diff don't match x at its index.
func Apply(x []string, diffs []anchor.Diff) ([]string, error) {
	n := len(x)
	for _, d := range diffs {
		n += len(d.New) - len(d.Old)
	}
	out := make([]string, 0, max(n, 0))
	cursor := 0
	for i, d := range diffs {
		end := d.Index + len(d.Old)
		switch {
		case d.Index < cursor:
			return nil, fmt.Errorf("diff %d at index %d overlaps previous diff ending at %d", i, d.Index, cursor)
		case end > len(x):
			return nil, fmt.Errorf("diff %d at index %d removes %d tokens, but source has only %d", i, d.Index, len(d.Old), len(x))
		case !slices.Equal(x[d.Index:end], d.Old):
			return nil, fmt.Errorf("diff %d at index %d: old tokens %q don't match source %q", i, d.Index, d.Old, x[d.Index:end])
		}
		out = append(out, x[cursor:d.Index]...)
		out = append(out, d.New...)
		cursor = end
	}
	return append(out, x[cursor:]...), nil
}

// Valid reports whether replaying diffs against x reproduces y exactly.
func Valid(x, y []string, diffs []anchor.Diff) bool {
	out, err := Apply(x, diffs)
	return err == nil && slices.Equal(out, y)
}
