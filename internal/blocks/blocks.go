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

// Package blocks splits a pair of token sequences into alternating matching and non-matching
// blocks.
//
// Matching blocks are found with a greedy longest matching block search: The longest common run
// of tokens in a window of x and y is taken as a match and the search recurses into the windows
// on either side of it. The result is not a globally optimal alignment, but every match is
// maximal and all matches are consistent with the order of y.
package blocks

import (
	"cmp"
	"fmt"
	"slices"
)

// Block is either a [Match] or a [Gap].
type Block interface {
	block()
}

// Match is a contiguous run where x[S:S+Len] == y[T:T+Len].
type Match struct {
	S, T int // Start in x and y.
	Len  int // Length of the run.
}

// Gap is the non-matching region between two matches (or before the first and after the last).
// It replaces x[S:S+LenS] with y[T:T+LenT].
type Gap struct {
	S, T       int // Start in x and y.
	LenS, LenT int // Length in x and y.
}

func (Match) block() {}
func (Gap) block()   {}

// autoJunkMinLen is the minimal length of y for the auto junk heuristic to be applied.
const autoJunkMinLen = 200

// Find compares x and y and returns the blocks that cover y exactly once, in order.
//
// If autoJunk is set and y has at least 200 elements, elements that make up more than 1% of y are
// not used to seed matches. They can still be part of a match if they are adjacent to one.
func Find[T comparable](x, y []T, autoJunk bool) []Block {
	matches := matchingRuns(x, y, autoJunk)

	// matches always ends with a zero length match at (len(x), len(y)), so the loop below closes
	// the last gap without any special handling.
	out := make([]Block, 0, 2*len(matches))
	s, t := 0, 0
	for _, m := range matches {
		if m.S != s || m.T != t {
			out = append(out, Gap{S: s, T: t, LenS: m.S - s, LenT: m.T - t})
		}
		if m.Len > 0 {
			out = append(out, m)
		}
		s, t = m.S+m.Len, m.T+m.Len
	}
	return out
}

// Check verifies that blocks covers x and y contiguously and that replaying the blocks
// reconstructs y. A violation is a bug in Find and causes a panic.
func Check[T comparable](blocks []Block, x, y []T) {
	out := make([]T, 0, len(y))
	s, t := 0, 0
	for i, b := range blocks {
		switch b := b.(type) {
		case Match:
			if b.S != s || b.T != t {
				panic(fmt.Sprintf("blocks: match %d starts at (%d,%d), want (%d,%d)", i, b.S, b.T, s, t))
			}
			if !slices.Equal(x[b.S:b.S+b.Len], y[b.T:b.T+b.Len]) {
				panic(fmt.Sprintf("blocks: match %d at (%d,%d) does not match", i, b.S, b.T))
			}
			out = append(out, x[b.S:b.S+b.Len]...)
			s, t = s+b.Len, t+b.Len
		case Gap:
			if b.S != s || b.T != t {
				panic(fmt.Sprintf("blocks: gap %d starts at (%d,%d), want (%d,%d)", i, b.S, b.T, s, t))
			}
			out = append(out, y[b.T:b.T+b.LenT]...)
			s, t = s+b.LenS, t+b.LenT
		default:
			panic("never reached")
		}
	}
	if s != len(x) || !slices.Equal(out, y) {
		panic(fmt.Sprintf("blocks: reconstruction failed, covered %d of %d source elements and %d of %d destination elements", s, len(x), len(out), len(y)))
	}
}

// matchingRuns returns the maximal matching runs of x and y sorted by position, followed by a
// terminating zero length match at (len(x), len(y)).
func matchingRuns[T comparable](x, y []T, autoJunk bool) []Match {
	m := newMatcher(x, y, autoJunk)

	// Use an explicit stack instead of recursion, the order in which windows are processed doesn't
	// matter, because the matches are sorted afterwards.
	type window struct{ smin, smax, tmin, tmax int }
	stack := []window{{0, len(x), 0, len(y)}}
	var found []Match
	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		match := m.longest(w.smin, w.smax, w.tmin, w.tmax)
		if match.Len == 0 {
			continue
		}
		found = append(found, match)
		if w.smin < match.S && w.tmin < match.T {
			stack = append(stack, window{w.smin, match.S, w.tmin, match.T})
		}
		if match.S+match.Len < w.smax && match.T+match.Len < w.tmax {
			stack = append(stack, window{match.S + match.Len, w.smax, match.T + match.Len, w.tmax})
		}
	}
	slices.SortFunc(found, func(a, b Match) int {
		return cmp.Or(cmp.Compare(a.S, b.S), cmp.Compare(a.T, b.T))
	})

	// Merge adjacent runs. These occur when a match is split by the window boundaries of
	// different recursion levels.
	out := make([]Match, 0, len(found)+1)
	for _, match := range found {
		if n := len(out); n > 0 && out[n-1].S+out[n-1].Len == match.S && out[n-1].T+out[n-1].Len == match.T {
			out[n-1].Len += match.Len
			continue
		}
		out = append(out, match)
	}
	return append(out, Match{S: len(x), T: len(y), Len: 0})
}
