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

package myers

import (
	"math"

	"github.com/coconstruct/docdiff/internal/rvecs"
)

// Diff compares x and y and returns a minimal set of changes that transforms x into y.
//
// The changes are returned as result vectors: rx[s] is set if x[s] is removed and ry[t] is set if
// y[t] is inserted. Both vectors have one additional element at the end that is never set, this
// makes it easier to iterate over the results.
func Diff[T comparable](x, y []T) (rx, ry []bool) {
	rx, ry = rvecs.Make(x, y)

	smin, smax, tmin, tmax := changeBounds(x, y)
	switch {
	case smin == smax && tmin == tmax:
		return rx, ry
	case tmin == tmax:
		for s := smin; s < smax; s++ {
			rx[s] = true
		}
		return rx, ry
	case smin == smax:
		for t := tmin; t < tmax; t++ {
			ry[t] = true
		}
		return rx, ry
	}

	x0, y0, xidx, yidx := preprocess(rx, ry, smin, smax, tmin, tmax, x, y)

	var m myers
	m.xidx, m.yidx = xidx, yidx
	m.rx, m.ry = rx, ry
	m.compare(m.init(x0, y0))
	return rx, ry
}

// changeBounds returns the upper and lower bounds for the changed portion of the inputs.
func changeBounds[T comparable](x, y []T) (smin, smax, tmin, tmax int) {
	smin, tmin = 0, 0
	smax, tmax = len(x), len(y)

	// Strip common prefix.
	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}

	// Strip common suffix.
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}
	return
}

// preprocess reduces the problem size and maps the elements of x[smin:smax] and y[tmin:tmax] to
// integer IDs.
//
// Elements that appear only in x or only in y can never be part of a match. They are marked as
// removals and insertions right away and are dropped from the input to Myers' algorithm. This
// doesn't change the length of the shortest edit script, but in practice it shrinks the input
// considerably.
//
// The results are:
//   - x0:   x[smin:smax] as IDs without elements that appear only in x
//   - y0:   y[tmin:tmax] as IDs without elements that appear only in y
//   - xidx: a mapping from x0 to x: x0[s] corresponds to x[xidx[s]]
//   - yidx: a mapping from y0 to y: y0[t] corresponds to y[yidx[t]]
func preprocess[T comparable](rx, ry []bool, smin, smax, tmin, tmax int, x, y []T) (x0, y0, xidx, yidx []int) {
	ids := make(map[T]int, smax-smin)
	for _, e := range x[smin:smax] {
		if _, ok := ids[e]; !ok {
			ids[e] = len(ids)
		}
	}
	inY := make([]bool, len(ids))

	buf := make([]int, 2*(smax-smin)+2*(tmax-tmin))
	x0, buf = buf[:0 : smax-smin], buf[smax-smin:]
	xidx, buf = buf[:0 : smax-smin], buf[smax-smin:]
	y0, buf = buf[:0 : tmax-tmin], buf[tmax-tmin:]
	yidx = buf[:0 : tmax-tmin]

	for t := tmin; t < tmax; t++ {
		id, ok := ids[y[t]]
		if !ok {
			ry[t] = true // not in x, always an insertion
			continue
		}
		inY[id] = true
		y0 = append(y0, id)
		yidx = append(yidx, t)
	}
	for s := smin; s < smax; s++ {
		id := ids[x[s]]
		if !inY[id] {
			rx[s] = true // not in y, always a removal
			continue
		}
		x0 = append(x0, id)
		xidx = append(xidx, s)
	}
	return
}

type myers struct {
	// Inputs to compare.
	x, y []int

	// v-arrays for forwards and backwards iteration respectively. A v-array stores the furthest
	// reaching endpoint of a d-path in diagonal k in v[v0+k] where v0 is the offset that
	// translates k in [-d, d] to k0 = v0+k in [0, 2*d]. The endpoints only store the s-coordinate
	// since t = s - k.
	vf, vb []int
	v0     int

	// Mapping of s, t indices to the location in the result vectors.
	xidx, yidx []int

	// Result vectors.
	rx, ry []bool
}

func (m *myers) init(x, y []int) (smin, smax, tmin, tmax int) {
	smin, smax, tmin, tmax = changeBounds(x, y)

	diagonals := (smax - smin) + (tmax - tmin)
	vlen := 2*diagonals + 3    // +1 for the middle point and +2 for the borders
	buf := make([]int, 2*vlen) // allocate space for vf and vb with a single allocation

	m.x, m.y = x, y
	m.vf = buf[:vlen]
	m.vb = buf[vlen:]
	m.v0 = diagonals + 1 // +1 for the middle point
	return
}

// compare finds an optimal d-path from (smin, tmin) to (smax, tmax).
func (m *myers) compare(smin, smax, tmin, tmax int) {
	x, y := m.x, m.y
	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}

	switch {
	case smin == smax:
		// x is empty, therefore everything in tmin to tmax is an insertion.
		for t := tmin; t < tmax; t++ {
			m.ry[m.yidx[t]] = true
		}
	case tmin == tmax:
		// y is empty, therefore everything in smin to smax is a removal.
		for s := smin; s < smax; s++ {
			m.rx[m.xidx[s]] = true
		}
	default:
		// Use split to divide the input into three pieces:
		//
		//   (1) A, possibly empty, rect (smin, tmin) to (s0, t0)
		//   (2) A, possibly empty, sequence of diagonals (matches) (s0, t0) to (s1, t1)
		//   (3) A, possibly empty, rect (s1, t1) to (smax, tmax)
		s0, s1, t0, t1 := m.split(smin, smax, tmin, tmax)
		m.compare(smin, s0, tmin, t0)
		m.compare(s1, smax, t1, tmax)
	}
}

// split finds the endpoints of a, potentially empty, sequence of diagonals in the middle of an
// optimal path from (smin, tmin) to (smax, tmax).
//
// x[smin:smax] and y[tmin:tmax] must both be non-empty and must not have a common prefix or a
// common suffix.
func (m *myers) split(smin, smax, tmin, tmax int) (s0, s1, t0, t1 int) {
	N, M := smax-smin, tmax-tmin
	x, y := m.x, m.y
	vf, vb := m.vf, m.vb
	v0 := m.v0

	// Bounds for k. Since t = s - k, we can determine the min and max for k using: k = s - t.
	kmin, kmax := smin-tmax, smax-tmin

	// All diagonals are numbered with consistent k's by centering the forwards and backwards
	// searches around different midpoints. This way, k's don't need to be converted when checking
	// for overlap.
	fmid, bmid := smin-tmin, smax-tmax
	fmin, fmax := fmid, fmid
	bmin, bmax := bmid, bmid

	// The length of an optimal path is odd or even as (N-M) is odd or even. This decides which of
	// the two searches checks for an overlap.
	odd := (N-M)%2 != 0

	// There is no common prefix or suffix, so there is no 0-path and the search starts at d=1.
	vf[v0+fmid] = smin
	vb[v0+bmid] = smax

	// There's always a d-path with d <= ⌈(N+M)/2⌉ that overlaps, so the loop always terminates.
	for d := 1; ; d++ {
		// Forwards iteration.
		//
		// Only diagonals inside the edit grid are searched. Outside of the grid, the borders of
		// the v-array are initialized such that the k-loop below handles the top and left border
		// with the same logic as any other value.
		if fmin > kmin {
			fmin--
			vf[v0+fmin-1] = math.MinInt
		} else {
			fmin++
		}
		if fmax < kmax {
			fmax++
			vf[v0+fmax+1] = math.MinInt
		} else {
			fmax--
		}
		for k := fmin; k <= fmax; k += 2 {
			k0 := k + v0

			// A furthest reaching d-path on diagonal k is either a furthest reaching (d-1)-path on
			// diagonal k-1 followed by a horizontal edge or one on diagonal k+1 followed by a
			// vertical edge. In both cases, it's followed by the longest possible sequence of
			// diagonals.
			var s int
			if vf[k0-1] < vf[k0+1] {
				s = vf[k0+1] // vertical edge, t = s - k
			} else {
				s = vf[k0-1] + 1 // horizontal edge, prioritizes removals over insertions
			}
			t := s - k

			s0, t0 := s, t
			for s < smax && t < tmax && x[s] == y[t] {
				s++
				t++
			}
			vf[k0] = s

			if odd && bmin <= k && k <= bmax && s >= vb[k0] {
				return s0, s, t0, t
			}
		}

		// Backwards iteration, analogous to the forwards iteration.
		if bmin > kmin {
			bmin--
			vb[v0+bmin-1] = math.MaxInt
		} else {
			bmin++
		}
		if bmax < kmax {
			bmax++
			vb[v0+bmax+1] = math.MaxInt
		} else {
			bmax--
		}
		for k := bmin; k <= bmax; k += 2 {
			k0 := k + v0
			var s int
			if vb[k0-1] < vb[k0+1] {
				s = vb[k0-1]
			} else {
				s = vb[k0+1] - 1
			}
			t := s - k

			s0, t0 := s, t
			for s > smin && t > tmin && x[s-1] == y[t-1] {
				s--
				t--
			}
			vb[k0] = s

			if !odd && fmin <= k && k <= fmax && s <= vf[k0] {
				return s, s0, t, t0
			}
		}
	}
}
