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

package docdiff

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/coconstruct/docdiff/internal/config"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/tools/txtar"
)

var update = flag.Bool("update", false, "update golden files")

func TestGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatalf("failed to list golden files: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no golden files found")
	}

	for _, filename := range files {
		name := strings.TrimSuffix(filepath.Base(filename), ".txtar")
		t.Run(name, func(t *testing.T) {
			ar, err := txtar.ParseFile(filename)
			if err != nil {
				t.Fatalf("failed to parse golden file: %v", err)
			}
			sections := make(map[string][]byte)
			for _, f := range ar.Files {
				sections[f.Name] = f.Data
			}
			for _, s := range []string{"source", "dest", "diffs"} {
				if _, ok := sections[s]; !ok {
					t.Fatalf("golden file is missing section %q", s)
				}
			}

			source := parseSentences(sections["source"])
			dest := parseSentences(sections["dest"])
			d := New(source, dest, name)
			if !d.Valid() {
				t.Fatalf("New(...) result is invalid")
			}
			got := renderDiffs(t, d.Diffs())
			if diff := cmp.Diff(string(sections["diffs"]), string(got)); diff != "" {
				t.Errorf("New(...).Diffs() are different [-want,+got]:\n%s", diff)
			}

			if *update {
				for i, f := range ar.Files {
					if f.Name == "diffs" {
						ar.Files[i].Data = got
					}
				}
				if err := os.WriteFile(filename, txtar.Format(ar), 0o644); err != nil {
					t.Fatalf("error writing golden file: %v", err)
				}
			}
		})
	}
}

// parseSentences reads one sentence per line with space separated tokens.
func parseSentences(data []byte) [][]string {
	out := [][]string{}
	for line := range strings.Lines(string(data)) {
		out = append(out, strings.Fields(line))
	}
	return out
}

// renderDiffs writes one diff per line as compact JSON.
func renderDiffs(t *testing.T, diffs []Diff) []byte {
	t.Helper()
	var buf bytes.Buffer
	for _, d := range diffs {
		b, err := json.Marshal(d)
		if err != nil {
			t.Fatalf("failed to marshal diff: %v", err)
		}
		buf.Write(b)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func TestNew(t *testing.T) {
	tests := []struct {
		name         string
		source, dest [][]string
		opts         []Option
		want         []Diff
	}{
		{
			name:   "insertion",
			source: [][]string{{"a", "b", "c", "d"}},
			dest:   [][]string{{"a", "x", "b", "c", "d"}},
			want:   []Diff{{Index: 0, Old: []string{"a"}, New: []string{"a", "x"}}},
		},
		{
			name:   "deletion",
			source: [][]string{{"a", "b", "c"}},
			dest:   [][]string{{"a", "c"}},
			want:   []Diff{{Index: 1, Old: []string{"b"}, New: []string{}}},
		},
		{
			name:   "empty",
			source: [][]string{},
			dest:   [][]string{},
			want:   []Diff{},
		},
		{
			name:   "empty-source",
			source: [][]string{},
			dest:   [][]string{{"new", "text"}},
			want:   []Diff{{Index: 0, Old: []string{}, New: []string{"new", "text"}}},
		},
		{
			name:   "empty-dest",
			source: [][]string{{"old", "text"}},
			dest:   [][]string{},
			want:   []Diff{{Index: 0, Old: []string{"old", "text"}, New: []string{}}},
		},
		{
			name:   "insertion-at-start",
			source: [][]string{{"b", "c"}},
			dest:   [][]string{{"a", "b", "c"}},
			want:   []Diff{{Index: 0, Old: []string{}, New: []string{"a"}}},
		},
		{
			name:   "insertions-at-start-and-after-first-token",
			source: [][]string{{"a"}},
			dest:   [][]string{{"x", "a", "y"}},
			want: []Diff{
				{Index: 0, Old: []string{}, New: []string{"x"}},
				{Index: 0, Old: []string{"a"}, New: []string{"a", "y"}},
			},
		},
		{
			name:   "sentence-boundaries-are-ignored",
			source: [][]string{{"a", "b"}, {"c"}},
			dest:   [][]string{{"a"}, {"b", "c"}},
			want:   []Diff{},
		},
		{
			name:   "replacement",
			source: [][]string{{"the", "cat", "sat", "on", "the", "mat"}},
			dest:   [][]string{{"the", "dog", "sat", "on", "a", "mat"}},
			want: []Diff{
				{Index: 1, Old: []string{"cat"}, New: []string{"dog"}},
				{Index: 4, Old: []string{"the"}, New: []string{"a"}},
			},
		},
		{
			name:   "collapsed-insertion",
			source: [][]string{{"a", "b"}},
			dest:   [][]string{{"a", "x", "y", "z", "b"}},
			opts:   []Option{MaxBlockTokens(2)},
			want:   []Diff{{Index: 1, Old: []string{}, New: []string{"x", "y", "z"}}},
		},
		{
			name:   "collapse-disabled",
			source: [][]string{{"a", "b"}},
			dest:   [][]string{{"a", "x", "y", "z", "b"}},
			opts:   []Option{MaxBlockTokens(0)},
			want:   []Diff{{Index: 0, Old: []string{"a"}, New: []string{"a", "x", "y", "z"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.source, tt.dest, tt.name, tt.opts...)
			if !d.Valid() {
				t.Fatal("New(...) result is invalid")
			}
			got := d.Diffs()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("New(...).Diffs() are different [-want,+got]:\n%s", diff)
			}
			if d.Stats().CollapsedBlocks == 0 {
				checkAnchors(t, Flatten(tt.source), got)
			}
		})
	}
}

func TestLargeBlockCollapse(t *testing.T) {
	var source, dest []string
	for i := range 500 {
		source = append(source, fmt.Sprintf("c%d", i))
	}
	dest = slices.Clone(source)
	for i := range 4000 {
		source = append(source, fmt.Sprintf("s%d", i))
		dest = append(dest, fmt.Sprintf("d%d", i))
	}
	for i := 500; i < 1000; i++ {
		source = append(source, fmt.Sprintf("c%d", i))
		dest = append(dest, fmt.Sprintf("c%d", i))
	}

	d := New([][]string{source}, [][]string{dest}, "large")
	if !d.Valid() {
		t.Fatal("New(...) result is invalid")
	}
	want := []Diff{{Index: 500, Old: source[500:4500], New: dest[500:4500]}}
	if diff := cmp.Diff(want, d.Diffs()); diff != "" {
		t.Errorf("New(...).Diffs() are different [-want,+got]:\n%s", diff)
	}
	wantStats := Stats{MatchingBlocks: 2, NonMatchingBlocks: 1, CollapsedBlocks: 1}
	if diff := cmp.Diff(wantStats, d.Stats()); diff != "" {
		t.Errorf("New(...).Stats() are different [-want,+got]:\n%s", diff)
	}
}

func TestIdempotence(t *testing.T) {
	doc := [][]string{{"We", "study", "diffs", "."}, {"They", "are", "useful", "."}}
	d := New(doc, doc, "same")
	if !d.Valid() {
		t.Fatal("New(...) result is invalid")
	}
	if got := d.Diffs(); len(got) != 0 {
		t.Errorf("New(doc, doc).Diffs() = %v, want no diffs", got)
	}
	if got, want := d.Stats(), (Stats{MatchingBlocks: 1}); got != want {
		t.Errorf("New(doc, doc).Stats() = %+v, want %+v", got, want)
	}
}

// TestRoundTrip checks that replaying the diffs of random document pairs reproduces the
// destination and that every diff satisfies the anchoring rules.
func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewChaCha8([32]byte{}))
	vocab := strings.Fields("the a of model we propose results table data show . , and in is")

	randDoc := func(n int) [][]string {
		var doc [][]string
		for n > 0 {
			l := min(n, 1+rng.IntN(12))
			s := make([]string, l)
			for i := range s {
				s[i] = vocab[rng.IntN(len(vocab))]
			}
			doc = append(doc, s)
			n -= l
		}
		return doc
	}
	mutate := func(doc [][]string) [][]string {
		out := cloneSentences(doc)
		for range rng.IntN(6) {
			switch rng.IntN(3) {
			case 0:
				out = slices.Insert(out, rng.IntN(len(out)+1), randDoc(1+rng.IntN(10))...)
			case 1:
				if len(out) > 0 {
					i := rng.IntN(len(out))
					out = slices.Delete(out, i, i+1)
				}
			case 2:
				if len(out) > 0 {
					s := out[rng.IntN(len(out))]
					if len(s) > 0 {
						s[rng.IntN(len(s))] = vocab[rng.IntN(len(vocab))]
					}
				}
			}
		}
		return out
	}

	for i := range 300 {
		source := randDoc(rng.IntN(300))
		dest := mutate(source)
		opts := []Option{}
		if i%3 == 0 {
			opts = append(opts, MaxBlockTokens(1+rng.IntN(20)))
		}
		if i%5 == 0 {
			opts = append(opts, AutoJunk(false))
		}
		d := New(source, dest, fmt.Sprint(i), opts...)
		if !d.Valid() {
			t.Fatalf("case %d: New(...) result is invalid", i)
		}
		x, y := Flatten(source), Flatten(dest)
		got, err := Apply(x, d.Diffs())
		if err != nil {
			t.Fatalf("case %d: Apply(...) failed: %v", i, err)
		}
		if diff := cmp.Diff(y, got, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("case %d: Apply(...) result is different [-want,+got]:\n%s", i, diff)
		}
		if d.Stats().CollapsedBlocks == 0 {
			checkAnchors(t, x, d.Diffs())
		}
	}
}

// checkAnchors verifies that diffs are sorted, don't overlap and follow the insertion anchor
// rule.
func checkAnchors(t *testing.T, x []string, diffs []Diff) {
	t.Helper()
	cursor := 0
	for i, d := range diffs {
		if d.Index < cursor {
			t.Errorf("diff %d at index %d overlaps previous diff ending at %d", i, d.Index, cursor)
		}
		cursor = d.Index + len(d.Old)
		if len(d.Old) == 0 {
			if d.Index != 0 {
				t.Errorf("diff %d at index %d is an insertion without anchor token", i, d.Index)
			}
			continue
		}
		if !slices.Equal(x[d.Index:cursor], d.Old) {
			t.Errorf("diff %d: old tokens %q don't match source %q", i, d.Old, x[d.Index:cursor])
		}
	}
}

func TestInvalidResult(t *testing.T) {
	d := &DocumentDiff{id: "broken", source: [][]string{{"a"}}, dest: [][]string{{"b"}}, diffs: []Diff{}}
	if d.Valid() {
		t.Fatal("Valid() = true, want false")
	}
	if _, ok := d.Record(); ok {
		t.Error("Record() reports a record for an invalid result")
	}
	got, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal(...) failed: %v", err)
	}
	if string(got) != "{}" {
		t.Errorf("json.Marshal(...) = %s, want {}", got)
	}
	_, ok, err := ParseRecord(got)
	if err != nil {
		t.Fatalf("ParseRecord(...) failed: %v", err)
	}
	if ok {
		t.Error("ParseRecord({}) reports a record")
	}
}

func TestSetDiffsRejectsMismatch(t *testing.T) {
	source := [][]string{{"the", "cat", "sat"}}
	dest := [][]string{{"the", "dog", "sat"}}
	x, y := Flatten(source), Flatten(dest)

	tests := []struct {
		name  string
		diffs []Diff
	}{
		{"wrong-replacement", []Diff{{Index: 1, Old: []string{"cat"}, New: []string{"cow"}}}},
		{"old-mismatch", []Diff{{Index: 1, Old: []string{"dog"}, New: []string{"dog"}}}},
		{"out-of-range", []Diff{{Index: 5, Old: []string{"cat"}, New: []string{"dog"}}}},
		{"missing", []Diff{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &DocumentDiff{id: tt.name, source: source, dest: dest}
			d.setDiffs(x, y, tt.diffs)
			if d.Valid() {
				t.Fatal("Valid() = true, want false")
			}
			if diff := cmp.Diff([]Diff{}, d.Diffs()); diff != "" {
				t.Errorf("Diffs() is different [-want,+got]:\n%s", diff)
			}
			got, err := json.Marshal(d)
			if err != nil {
				t.Fatalf("json.Marshal(...) failed: %v", err)
			}
			if string(got) != "{}" {
				t.Errorf("json.Marshal(...) = %s, want {}", got)
			}
		})
	}

	// The diffs New computes pass the same check.
	d := &DocumentDiff{id: "ok", source: source, dest: dest}
	want := New(source, dest, "ok").Diffs()
	d.setDiffs(x, y, want)
	if !d.Valid() {
		t.Fatal("Valid() = false for the diffs computed by New")
	}
	if diff := cmp.Diff(want, d.Diffs()); diff != "" {
		t.Errorf("Diffs() is different [-want,+got]:\n%s", diff)
	}
}

func TestDump(t *testing.T) {
	d := New([][]string{{"a", "b"}}, [][]string{{"a", "c"}}, "dump")
	got, err := d.Dump()
	if err != nil {
		t.Fatalf("Dump() failed: %v", err)
	}
	want := `{
  "tokens": {
    "source": [
      [
        "a",
        "b"
      ]
    ],
    "dest": [
      [
        "a",
        "c"
      ]
    ]
  },
  "diffs": [
    {
      "index": 1,
      "old": [
        "b"
      ],
      "new": [
        "c"
      ]
    }
  ]
}`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Dump() result is different [-want,+got]:\n%s", diff)
	}

	r, ok, err := ParseRecord(got)
	if err != nil || !ok {
		t.Fatalf("ParseRecord(...) = _, %v, %v, want a record", ok, err)
	}
	wantRecord, _ := d.Record()
	if diff := cmp.Diff(wantRecord, r); diff != "" {
		t.Errorf("ParseRecord(...) result is different [-want,+got]:\n%s", diff)
	}
}

func TestEmptyRecordUsesArrays(t *testing.T) {
	got, err := json.Marshal(New(nil, nil, "empty"))
	if err != nil {
		t.Fatalf("json.Marshal(...) failed: %v", err)
	}
	want := `{"tokens":{"source":[],"dest":[]},"diffs":[]}`
	if string(got) != want {
		t.Errorf("json.Marshal(...) = %s, want %s", got, want)
	}
}

func TestResultIsImmutable(t *testing.T) {
	source := [][]string{{"a", "b"}}
	d := New(source, [][]string{{"a", "c"}}, "immutable")
	source[0][0] = "z"
	d.Diffs()[0].Old[0] = "z"
	d.Source()[0][1] = "z"

	want := []Diff{{Index: 1, Old: []string{"b"}, New: []string{"c"}}}
	if diff := cmp.Diff(want, d.Diffs()); diff != "" {
		t.Errorf("Diffs() changed [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"a", "b"}}, d.Source()); diff != "" {
		t.Errorf("Source() changed [-want,+got]:\n%s", diff)
	}
}

func TestApplyErrors(t *testing.T) {
	x := []string{"a", "b", "c"}
	tests := []struct {
		name  string
		diffs []Diff
	}{
		{"out-of-range", []Diff{{Index: 2, Old: []string{"c", "d"}, New: []string{}}}},
		{"mismatch", []Diff{{Index: 1, Old: []string{"c"}, New: []string{}}}},
		{"overlap", []Diff{
			{Index: 0, Old: []string{"a", "b"}, New: []string{}},
			{Index: 1, Old: []string{"b"}, New: []string{}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Apply(x, tt.diffs); err == nil {
				t.Error("Apply(...) succeeded, want error")
			}
		})
	}
}

func TestOptionsNotAllowed(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(...) didn't panic for a disallowed option")
		}
	}()
	New(nil, nil, "colors", func(cfg *config.Config) config.Flag { return config.Colors })
}

func BenchmarkNew(b *testing.B) {
	rng := rand.New(rand.NewChaCha8([32]byte{1}))
	vocab := strings.Fields("the a of model we propose results table data show . , and in is method learning")
	doc := make([][]string, 400)
	for i := range doc {
		s := make([]string, 20)
		for j := range s {
			s[j] = vocab[rng.IntN(len(vocab))]
		}
		doc[i] = s
	}
	dest := cloneSentences(doc)
	for i := 0; i < len(dest); i += 7 {
		dest[i][rng.IntN(20)] = "revised"
	}

	for b.Loop() {
		New(doc, dest, "bench")
	}
}
