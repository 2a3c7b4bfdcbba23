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
	"context"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/coconstruct/docdiff/internal/pdftext"
)

// ExtractText converts every PDF file in the forum directories of dataDir to text, see
// [pdftext.Convert].
func (r *Runner) ExtractText(ctx context.Context, dataDir string) (Summary, error) {
	pdfs, err := filepath.Glob(filepath.Join(dataDir, "*", "*.pdf"))
	if err != nil {
		return Summary{}, err
	}
	slices.Sort(pdfs)
	return r.each(ctx, len(pdfs), func(i int) (status, error) {
		skip, err := pdftext.Convert(pdfs[i], r.Overwrite)
		if skip {
			return skipped, err
		}
		return processed, err
	}, func(i int) *slog.Logger {
		return r.logger().With("forum", filepath.Base(filepath.Dir(pdfs[i])), "pdf", filepath.Base(pdfs[i]))
	})
}
