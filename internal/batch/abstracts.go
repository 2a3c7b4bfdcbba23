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

package batch

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/coconstruct/docdiff"
)

// Sections compared by [Runner.Abstracts], in output order.
var Sections = []string{"abstract", "intro"}

// ForumVersions is an input line of [Runner.Abstracts].
type ForumVersions struct {
	ForumID string      `json:"forum_id"`
	Initial SectionText `json:"initial_info"`
	Final   SectionText `json:"final_info"`
}

// SectionText holds the text of the compared sections of one version.
type SectionText struct {
	Abstract string `json:"abstract"`
	Intro    string `json:"intro"`
}

func (s SectionText) get(section string) string {
	switch section {
	case "abstract":
		return s.Abstract
	case "intro":
		return s.Intro
	default:
		panic("never reached")
	}
}

// SectionRecord is an output line of [Runner.Abstracts]. The record is missing if the diff is
// invalid.
type SectionRecord struct {
	ID string `json:"id"`
	*docdiff.Record
}

// Abstracts reads JSON lines of [ForumVersions] from in and writes one [SectionRecord] per forum
// and section to out, in input order. The id of a record is "<forum_id>_<section>".
//
// Malformed input lines are an error, nothing is written in that case.
func (r *Runner) Abstracts(ctx context.Context, in io.Reader, out io.Writer) (Summary, error) {
	var forums []ForumVersions
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for line := 1; sc.Scan(); line++ {
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		var f ForumVersions
		if err := json.Unmarshal(sc.Bytes(), &f); err != nil {
			return Summary{}, fmt.Errorf("line %d: %w", line, err)
		}
		forums = append(forums, f)
	}
	if err := sc.Err(); err != nil {
		return Summary{}, err
	}

	n := len(Sections)
	results := make([]SectionRecord, n*len(forums))
	sum, err := r.each(ctx, len(results), func(i int) (status, error) {
		f, section := forums[i/n], Sections[i%n]
		id := f.ForumID + "_" + section
		d := docdiff.New(
			r.Tokenizer.Tokenize(f.Initial.get(section)),
			r.Tokenizer.Tokenize(f.Final.get(section)),
			id, r.Options...)
		results[i].ID = id
		if rec, ok := d.Record(); ok {
			results[i].Record = &rec
			return processed, nil
		}
		return invalid, nil
	}, func(i int) *slog.Logger {
		return r.logger().With("forum", forums[i/n].ForumID, "section", Sections[i%n])
	})
	if err != nil {
		return sum, err
	}

	enc := json.NewEncoder(out)
	for _, rec := range results {
		if err := enc.Encode(rec); err != nil {
			return sum, fmt.Errorf("writing %s: %w", rec.ID, err)
		}
	}
	return sum, nil
}
