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

package wdiff

import (
	"strings"
	"testing"

	"github.com/coconstruct/docdiff"
	"github.com/coconstruct/docdiff/wdiff/color"
	"github.com/google/go-cmp/cmp"
)

func TestInline(t *testing.T) {
	tests := []struct {
		name  string
		x     string
		diffs []docdiff.Diff
		opts  []docdiff.Option
		want  string
	}{
		{
			name: "no-diffs",
			x:    "a b c",
			want: "a b c",
		},
		{
			name: "empty",
			x:    "",
			want: "",
		},
		{
			name:  "replacement",
			x:     "We propose a new method",
			diffs: []docdiff.Diff{{Index: 3, Old: []string{"new"}, New: []string{"novel"}}},
			want:  "We propose a [-new-]{+novel+} method",
		},
		{
			name:  "anchored-insertion",
			x:     "It is fast .",
			diffs: []docdiff.Diff{{Index: 1, Old: []string{"is"}, New: []string{"is", "very"}}},
			want:  "It is {+very+} fast .",
		},
		{
			name:  "insertion-at-start",
			x:     "b c",
			diffs: []docdiff.Diff{{Index: 0, Old: []string{}, New: []string{"a"}}},
			want:  "{+a+} b c",
		},
		{
			name:  "deletion",
			x:     "a b c",
			diffs: []docdiff.Diff{{Index: 1, Old: []string{"b"}, New: []string{}}},
			want:  "a [-b-] c",
		},
		{
			name:  "common-suffix",
			x:     "x a b",
			diffs: []docdiff.Diff{{Index: 1, Old: []string{"a", "b"}, New: []string{"c", "b"}}},
			want:  "x [-a-]{+c+} b",
		},
		{
			name:  "colors",
			x:     "a b",
			diffs: []docdiff.Diff{{Index: 1, Old: []string{"b"}, New: []string{"c"}}},
			opts:  []docdiff.Option{TerminalColors()},
			want:  "a \033[31m[-b-]\033[0m\033[32m{+c+}\033[0m",
		},
		{
			name:  "custom-colors",
			x:     "a b",
			diffs: []docdiff.Diff{{Index: 1, Old: []string{"b"}, New: []string{}}},
			opts:  []docdiff.Option{TerminalColors(color.Matches(2), color.Deletes(1, 31))},
			want:  "\033[2ma\033[0m \033[1;31m[-b-]\033[0m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Inline(strings.Fields(tt.x), tt.diffs, tt.opts...)
			if err != nil {
				t.Fatalf("Inline(...) failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Inline(...) result is different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestInlineInvalidDiffs(t *testing.T) {
	_, err := Inline([]string{"a"}, []docdiff.Diff{{Index: 0, Old: []string{"b"}, New: []string{}}})
	if err == nil {
		t.Error("Inline(...) succeeded, want error")
	}
}

func TestDocument(t *testing.T) {
	d := docdiff.New(
		[][]string{{"We", "propose", "a", "new", "method", "."}, {"It", "is", "fast", "."}},
		[][]string{{"We", "propose", "a", "novel", "method", "."}, {"It", "is", "very", "fast", "."}},
		"doc",
	)
	got, err := Document(d)
	if err != nil {
		t.Fatalf("Document(...) failed: %v", err)
	}
	want := "We propose a [-new-]{+novel+} method . It is {+very+} fast ."
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Document(...) result is different [-want,+got]:\n%s", diff)
	}
}

func TestInlineRejectsDocumentOptions(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Inline(...) didn't panic for a disallowed option")
		}
	}()
	Inline(nil, nil, docdiff.MaxBlockTokens(10))
}
