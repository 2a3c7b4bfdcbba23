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


package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paper_raw.txt")

	for _, data := range []string{"first version", "second"} {
		if err := WriteFile(path, []byte(data)); err != nil {
			t.Fatalf("WriteFile(%q) failed: %v", data, err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != data {
			t.Errorf("content is %q, want %q", got, data)
		}
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := fi.Mode().Perm(); got != 0o644 {
		t.Errorf("mode is %v, want %v", got, os.FileMode(0o644))
	}
	if diff := cmp.Diff([]string{"paper_raw.txt"}, dirNames(t, dir)); diff != "" {
		t.Errorf("directory content is different [-want,+got]:\n%s", diff)
	}
}

func TestWriteFileFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()

	// Renaming a file over a non-empty directory fails after the data was written.
	path := filepath.Join(dir, "out")
	if err := os.MkdirAll(filepath.Join(path, "keep"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, []byte("data")); err == nil {
		t.Fatal("WriteFile(...) succeeded, want error")
	}
	if diff := cmp.Diff([]string{"out"}, dirNames(t, dir)); diff != "" {
		t.Errorf("directory content is different [-want,+got]:\n%s", diff)
	}

	if err := WriteFile(filepath.Join(dir, "missing", "out"), []byte("data")); err == nil {
		t.Error("WriteFile(...) into a missing directory succeeded, want error")
	}
}
