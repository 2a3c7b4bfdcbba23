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

// Package myers computes minimal edit scripts with Myers' algorithm.
//
// The implementation uses the linear space variant described in section 4.2 of the paper. It
// always returns a minimal result, there are no heuristics to bound the runtime. The runtime is
// O(ND) where N is the sum of the length of both inputs and D is the number of differences;
// callers that need to bound the cost have to bound N.
//
// # Myers Algorithm
//
// The algorithm is a search on the graph of all edits that transform x into y. For x = "ABCABBA"
// and y = "CBABAC":
//
//	(0,0)   A   B   C   A   B   B   A
//	    ┌───┬───┬───┬───┬───┬───┬───┐ 0
//	    │   │   │ ╲ │   │   │   │   │
//	 C  ├───┼───┼───┼───┼───┼───┼───┤ 1
//	    │   │ ╲ │   │   │ ╲ │ ╲ │   │
//	 B  ├───┼───┼───┼───┼───┼───┼───┤ 2
//	    │ ╲ │   │   │ ╲ │   │   │ ╲ │
//	 A  ├───┼───┼───┼───┼───┼───┼───┤ 3
//	    │   │ ╲ │   │   │ ╲ │ ╲ │   │
//	 B  ├───┼───┼───┼───┼───┼───┼───┤ 4
//	    │ ╲ │   │   │ ╲ │   │   │ ╲ │
//	 A  ├───┼───┼───┼───┼───┼───┼───┤ 5
//	    │   │   │ ╲ │   │   │   │   │
//	 C  └───┴───┴───┴───┴───┴───┴───┘
//	    0   1   2   3   4   5   6     (7,6)
//
// A step to the right removes an element of x, a step down inserts an element of y and a
// diagonal step keeps an element that is identical in both. A minimal edit script is a path from
// (0,0) to (7,6) with the fewest horizontal and vertical steps.
//
// We use s and t for the horizontal and vertical coordinates and k = s - t for diagonals. A
// D-path is a path with exactly D non-diagonal edges.
//
// Lemma 1: A D-path must end on diagonal k in {-D, -D+2, ..., D-2, D}.
//
// Lemma 2: A furthest reaching D-path on diagonal k is a furthest reaching (D-1)-path on diagonal
// k-1 followed by a horizontal edge, or one on diagonal k+1 followed by a vertical edge, followed
// by the longest possible sequence of diagonal edges.
//
// Lemma 3: There is a D-path from (0,0) to (N,M) if and only if there is a ⌈D/2⌉-path from (0,0)
// to some point (s,t) and a ⌊D/2⌋-path from some point (s',t') to (N,M) that overlap on the same
// diagonal.
//
// Lemma 2 gives a greedy search for the furthest reaching paths, Lemma 3 allows us to search from
// both ends at once, split the problem at the overlap and recurse with linear memory.
//
// ## References:
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
package myers
