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

// Package rvecs contains functions to work with result vectors, the representation of an edit
// script used by the myers algorithm: rx[s] is set if x[s] is removed and ry[t] is set if y[t] is
// inserted. Both vectors end in an element that is never set.
package rvecs

import "iter"

// Make allocates the result vectors for x and y with a single allocation.
func Make[T any](x, y []T) (rx, ry []bool) {
	r := make([]bool, (len(x) + len(y) + 2))
	rx = r[: len(x)+1 : len(x)+1]
	ry = r[len(x)+1:]
	return
}

// Region is a maximal run of changes: x[S0:S1] is replaced by y[T0:T1].
type Region struct {
	S0, S1 int
	T0, T1 int
}

// Regions iterates over the change regions of rx and ry in order. Outside of the regions, x and y
// match element by element.
func Regions(rx, ry []bool) iter.Seq[Region] {
	return func(yield func(Region) bool) {
		n, m := len(rx)-1, len(ry)-1
		s, t := 0, 0
		for s < n || t < m {
			if !rx[s] && !ry[t] {
				s++
				t++
				continue
			}
			r := Region{S0: s, T0: t}
			for rx[s] || ry[t] {
				for s < n && rx[s] {
					s++
				}
				for t < m && ry[t] {
					t++
				}
			}
			r.S1, r.T1 = s, t
			if !yield(r) {
				return
			}
		}
	}
}
