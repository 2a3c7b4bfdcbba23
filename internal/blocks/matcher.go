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

package blocks

// matcher finds longest matching runs in windows of x and y.
type matcher[T comparable] struct {
	x, y []T

	// Positions of every element in y, ascending. Popular elements are missing if the auto junk
	// heuristic is enabled.
	index map[T][]int

	// Length of the run ending in y[t] for the previous and the current element of x, stored at
	// t+1 so that the run ending at y[t-1] is found at t without a bounds check. Only the
	// positions in the touched lists are non-zero between calls to longest.
	runs, next           []int
	touched, nextTouched []int
}

func newMatcher[T comparable](x, y []T, autoJunk bool) *matcher[T] {
	index := make(map[T][]int)
	for t, e := range y {
		index[e] = append(index[e], t)
	}
	if autoJunk && len(y) >= autoJunkMinLen {
		limit := len(y)/100 + 1
		for e, ts := range index {
			if len(ts) > limit {
				delete(index, e)
			}
		}
	}
	buf := make([]int, 2*(len(y)+1)) // allocate space for runs and next with a single allocation
	return &matcher[T]{
		x:     x,
		y:     y,
		index: index,
		runs:  buf[:len(y)+1],
		next:  buf[len(y)+1:],
	}
}

// longest returns the longest matching run in x[smin:smax] and y[tmin:tmax].
//
// Of all runs with maximal length, the one that starts earliest in x is returned and of those
// the one that starts earliest in y. If there's no run, the result has length zero.
func (m *matcher[T]) longest(smin, smax, tmin, tmax int) Match {
	best := Match{S: smin, T: tmin}
	runs, next := m.runs, m.next
	touched, nextTouched := m.touched[:0], m.nextTouched[:0]
	for s := smin; s < smax; s++ {
		nextTouched = nextTouched[:0]
		for _, t := range m.index[m.x[s]] {
			if t < tmin {
				continue
			}
			if t >= tmax {
				break
			}
			k := runs[t] + 1
			next[t+1] = k
			nextTouched = append(nextTouched, t+1)
			if k > best.Len {
				best = Match{S: s - k + 1, T: t - k + 1, Len: k}
			}
		}
		for _, i := range touched {
			runs[i] = 0
		}
		runs, next = next, runs
		touched, nextTouched = nextTouched, touched
	}
	for _, i := range touched {
		runs[i] = 0
	}
	m.runs, m.next = runs, next
	m.touched, m.nextTouched = touched, nextTouched

	// Extend the match with elements that were excluded from the index.
	x, y := m.x, m.y
	for best.S > smin && best.T > tmin && x[best.S-1] == y[best.T-1] {
		best.S--
		best.T--
		best.Len++
	}
	for best.S+best.Len < smax && best.T+best.Len < tmax && x[best.S+best.Len] == y[best.T+best.Len] {
		best.Len++
	}
	return best
}
