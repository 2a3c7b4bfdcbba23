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
	"encoding/json"
	"slices"

	"github.com/coconstruct/docdiff/internal/anchor"
	"github.com/coconstruct/docdiff/internal/blocks"
	"github.com/coconstruct/docdiff/internal/config"
	"github.com/coconstruct/docdiff/internal/replay"
)

// Diff replaces the tokens Old at position Index of the flattened source with the tokens New.
//
// Diffs of a [DocumentDiff] are sorted by Index and don't overlap. Old is never empty, except
//
//   - for an insertion at the very start of the source, which is reported with Index 0 and an
//     empty Old, and
//   - for a non-matching block larger than [MaxBlockTokens] that doesn't contain any source tokens.
//
// A pure insertion anywhere else is anchored at the token before the insertion point: Old is
// that token and New is the same token followed by the inserted tokens.
type Diff = anchor.Diff

// DocumentDiff is the result of comparing two versions of a document. It's immutable.
type DocumentDiff struct {
	id           string
	source, dest [][]string
	diffs        []Diff
	valid        bool
	stats        Stats
}

// Stats describes how a [DocumentDiff] was computed.
type Stats struct {
	MatchingBlocks    int // Number of matching blocks
	NonMatchingBlocks int // Number of non-matching blocks
	CollapsedBlocks   int // Number of non-matching blocks that exceeded MaxBlockTokens
}

// New compares the sentences of source and dest and returns the diffs that transform source into
// dest. The id identifies the document in diagnostics and output, it doesn't influence the
// comparison.
//
// The following options are supported: [MaxBlockTokens], [AutoJunk]
//
// New panics if the matching blocks it computes internally don't reconstruct dest. This indicates
// a bug in this package, not a problem with the input. If the diffs fail to reconstruct dest, the
// result is marked as invalid instead, see [DocumentDiff.Valid].
func New(source, dest [][]string, id string, opts ...Option) *DocumentDiff {
	cfg := config.FromOptions(opts, config.MaxBlockTokens|config.AutoJunk)

	d := &DocumentDiff{
		id:     id,
		source: cloneSentences(source),
		dest:   cloneSentences(dest),
	}
	x, y := Flatten(source), Flatten(dest)

	bs := blocks.Find(x, y, cfg.AutoJunk)
	blocks.Check(bs, x, y)

	b := anchor.NewBuilder(x, y, cfg.MaxBlockTokens)
	for _, blk := range bs {
		switch blk := blk.(type) {
		case blocks.Match:
			d.stats.MatchingBlocks++
		case blocks.Gap:
			d.stats.NonMatchingBlocks++
			b.Add(blk)
		default:
			panic("never reached")
		}
	}
	d.stats.CollapsedBlocks = b.Collapsed()

	d.setDiffs(x, y, b.Diffs())
	return d
}

// setDiffs stores diffs if they transform x into y. Otherwise, d is marked as invalid and holds no
// diffs.
func (d *DocumentDiff) setDiffs(x, y []string, diffs []Diff) {
	if replay.Valid(x, y, diffs) {
		d.diffs = diffs
		d.valid = true
		return
	}
	d.diffs = []Diff{}
	d.valid = false
}

// ID returns the document identifier passed to [New].
func (d *DocumentDiff) ID() string { return d.id }

// Valid reports whether the diffs reproduce the destination. If not, [DocumentDiff.Diffs] is
// empty and the serialized form is an empty payload.
func (d *DocumentDiff) Valid() bool { return d.valid }

// Diffs returns a copy of the diffs, sorted by index.
func (d *DocumentDiff) Diffs() []Diff {
	out := make([]Diff, len(d.diffs))
	for i, diff := range d.diffs {
		out[i] = Diff{Index: diff.Index, Old: slices.Clone(diff.Old), New: slices.Clone(diff.New)}
	}
	return out
}

// Source returns a copy of the source sentences.
func (d *DocumentDiff) Source() [][]string { return cloneSentences(d.source) }

// Dest returns a copy of the destination sentences.
func (d *DocumentDiff) Dest() [][]string { return cloneSentences(d.dest) }

// Stats returns statistics about the computation.
func (d *DocumentDiff) Stats() Stats { return d.stats }

// Record is the serialized form of a valid [DocumentDiff].
type Record struct {
	Tokens Tokens `json:"tokens"`
	Diffs  []Diff `json:"diffs"`
}

// Tokens holds the sentences of both document versions.
type Tokens struct {
	Source [][]string `json:"source"`
	Dest   [][]string `json:"dest"`
}

// Record returns the serialized form of d. The second result is false if d is not valid, the
// record is empty in that case.
func (d *DocumentDiff) Record() (Record, bool) {
	if !d.valid {
		return Record{}, false
	}
	return Record{
		Tokens: Tokens{Source: d.Source(), Dest: d.Dest()},
		Diffs:  d.Diffs(),
	}, true
}

// MarshalJSON encodes the record of d. An invalid DocumentDiff is encoded as an empty object.
func (d *DocumentDiff) MarshalJSON() ([]byte, error) {
	r, ok := d.Record()
	if !ok {
		return []byte("{}"), nil
	}
	return json.Marshal(r)
}

// Dump returns the record of d as indented JSON.
func (d *DocumentDiff) Dump() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// ParseRecord decodes a record produced by [DocumentDiff.MarshalJSON]. The second result is false
// if data is an empty payload, i.e. the diff is not available for this document.
func ParseRecord(data []byte) (Record, bool, error) {
	var raw struct {
		Tokens *Tokens `json:"tokens"`
		Diffs  *[]Diff `json:"diffs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, false, err
	}
	if raw.Tokens == nil && raw.Diffs == nil {
		return Record{}, false, nil
	}
	var r Record
	if raw.Tokens != nil {
		r.Tokens = *raw.Tokens
	}
	if raw.Diffs != nil {
		r.Diffs = *raw.Diffs
	}
	return r, true, nil
}

// Apply replays diffs against the flattened source x and returns the result. For the diffs of a
// valid [DocumentDiff], the result is the flattened destination.
//
// An error is returned if diffs are not sorted, overlap or don't match x.
func Apply(x []string, diffs []Diff) ([]string, error) {
	return replay.Apply(x, diffs)
}

// Flatten concatenates sentences into a single token sequence.
func Flatten(sentences [][]string) []string {
	n := 0
	for _, s := range sentences {
		n += len(s)
	}
	out := make([]string, 0, n)
	for _, s := range sentences {
		out = append(out, s...)
	}
	return out
}

func cloneSentences(sentences [][]string) [][]string {
	out := make([][]string, len(sentences))
	for i, s := range sentences {
		out[i] = append(make([]string, 0, len(s)), s...)
	}
	return out
}
