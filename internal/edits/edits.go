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

// Package edits builds edit scripts: linear sequences of keep, insert and remove operations that
// transform one token slice into another.
package edits

import (
	"github.com/coconstruct/docdiff/internal/myers"
	"github.com/coconstruct/docdiff/internal/rvecs"
)

// Op describes an edit operation.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Keep   Op = iota // The token is in both slices
	Insert           // The token is inserted from the destination slice
	Remove           // The token is removed from the source slice
)

// Edit is a single operation of an edit script. For Keep and Remove, Token is from the source
// slice; for Insert, it's from the destination slice.
type Edit struct {
	Op    Op
	Token string
}

// Script returns a shortest edit script that transforms x into y.
//
// Keep and Remove operations consume x in order, Keep and Insert operations consume y in order.
// Within a region of changes, all removals are listed before all insertions.
func Script(x, y []string) []Edit {
	rx, ry := myers.Diff(x, y)

	n, m := len(x), len(y)
	var nedits int
	for s := range n {
		if rx[s] {
			nedits++
		}
	}
	nedits += m // every element of y is either kept or inserted
	if nedits == 0 {
		return nil
	}

	out := make([]Edit, 0, nedits)
	s, t := 0, 0
	for r := range rvecs.Regions(rx, ry) {
		for ; s < r.S0; s, t = s+1, t+1 {
			out = append(out, Edit{Keep, x[s]})
		}
		for ; s < r.S1; s++ {
			out = append(out, Edit{Remove, x[s]})
		}
		for ; t < r.T1; t++ {
			out = append(out, Edit{Insert, y[t]})
		}
	}
	for ; s < n; s++ {
		out = append(out, Edit{Keep, x[s]})
	}
	return out
}
