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

// Package batch computes document diffs for whole data directories.
//
// A data directory contains one directory per forum, optionally grouped by conference:
//
//	<data>/[<conference>/]<forum>/initial.txt
//	<data>/[<conference>/]<forum>/final.txt
//
// The diff of a pair is written to diffs.json next to the inputs.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/coconstruct/docdiff"
	"github.com/coconstruct/docdiff/internal/fsutil"
	"github.com/coconstruct/docdiff/tokenize"
	"golang.org/x/sync/errgroup"
)

// File names inside a forum directory.
const (
	InitialFile = "initial.txt"
	FinalFile   = "final.txt"
	DiffsFile   = "diffs.json"
)

// ErrInvalidDiff reports a document whose diff doesn't reproduce the final version. Its output is
// written as an empty payload.
var ErrInvalidDiff = errors.New("diff failed validation")

// Conferences lists the conference directories known to contain forum directories.
var Conferences = []string{"iclr_2018", "iclr_2019", "iclr_2020", "iclr_2021", "iclr_2022", "iclr_2023"}

// CheckConference returns an error if name is not one of [Conferences].
func CheckConference(name string) error {
	if !slices.Contains(Conferences, name) {
		return fmt.Errorf("unknown conference %q, want one of %v", name, Conferences)
	}
	return nil
}

// Pair is a document pair in a forum directory.
type Pair struct {
	ID      string // name of the forum directory
	Initial string
	Final   string
	Output  string
}

// Discover returns the pairs in dataDir, or in its conference subdirectory if conference is not
// empty, sorted by path.
func Discover(dataDir, conference string) ([]Pair, error) {
	dir := dataDir
	if conference != "" {
		if err := CheckConference(conference); err != nil {
			return nil, err
		}
		dir = filepath.Join(dataDir, conference)
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("data directory: %w", err)
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*", InitialFile))
	if err != nil {
		return nil, err
	}
	slices.Sort(matches)
	pairs := make([]Pair, len(matches))
	for i, initial := range matches {
		forum := filepath.Dir(initial)
		pairs[i] = Pair{
			ID:      filepath.Base(forum),
			Initial: initial,
			Final:   filepath.Join(forum, FinalFile),
			Output:  filepath.Join(forum, DiffsFile),
		}
	}
	return pairs, nil
}

// Summary counts the outcome of a run.
type Summary struct {
	Processed int // outputs written, including invalid ones
	Skipped   int // outputs that existed already
	Invalid   int // diffs that failed validation
	Failed    int // inputs that couldn't be processed
}

// Runner processes documents in parallel.
type Runner struct {
	Tokenizer tokenize.Tokenizer
	Options   []docdiff.Option
	Workers   int  // <= 0 means one worker
	Overwrite bool // recompute existing outputs
	Logger    *slog.Logger
}

type status int

const (
	processed status = iota
	skipped
	invalid
)

// Run computes the diffs of pairs and writes them to their outputs. Failures of single pairs are
// logged and counted, the returned error is only set if ctx is canceled.
func (r *Runner) Run(ctx context.Context, pairs []Pair) (Summary, error) {
	return r.each(ctx, len(pairs), func(i int) (status, error) {
		return r.diffPair(pairs[i])
	}, func(i int) *slog.Logger {
		return r.logger().With("forum", pairs[i].ID)
	})
}

func (r *Runner) diffPair(p Pair) (status, error) {
	if !r.Overwrite {
		if _, err := os.Stat(p.Output); err == nil {
			return skipped, nil
		}
	}
	d, err := r.Diff(p)
	if err != nil {
		return 0, err
	}
	data, err := d.Dump()
	if err != nil {
		return 0, fmt.Errorf("encoding diff: %w", err)
	}
	if err := fsutil.WriteFile(p.Output, data); err != nil {
		return 0, err
	}
	if !d.Valid() {
		return invalid, nil
	}
	return processed, nil
}

// Diff reads and tokenizes the files of p and compares them.
func (r *Runner) Diff(p Pair) (*docdiff.DocumentDiff, error) {
	initial, err := os.ReadFile(p.Initial)
	if err != nil {
		return nil, err
	}
	final, err := os.ReadFile(p.Final)
	if err != nil {
		return nil, err
	}
	return docdiff.New(r.Tokenizer.Tokenize(string(initial)), r.Tokenizer.Tokenize(string(final)), p.ID, r.Options...), nil
}

// each runs job for 0 <= i < n with at most r.Workers jobs in parallel.
func (r *Runner) each(ctx context.Context, n int, job func(i int) (status, error), logger func(i int) *slog.Logger) (Summary, error) {
	var (
		mu  sync.Mutex
		sum Summary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, r.Workers))
	for i := range n {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			log := logger(i)
			st, err := job(i)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				sum.Failed++
				log.Error("failed", "error", err)
			case st == skipped:
				sum.Skipped++
				log.Debug("skipped, output exists")
			case st == invalid:
				sum.Processed++
				sum.Invalid++
				log.Warn("wrote empty payload", "error", ErrInvalidDiff)
			default:
				sum.Processed++
				log.Debug("done")
			}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return sum, err
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}
