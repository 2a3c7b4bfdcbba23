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

// Package pdftext extracts plain text from PDF files.
package pdftext

import (
	"fmt"
	"os"
	"strings"

	"github.com/coconstruct/docdiff/internal/fsutil"
	"github.com/ledongthuc/pdf"
)

// RawSuffix replaces the .pdf extension in the name of extracted text files.
const RawSuffix = "_raw.txt"

// Extract returns the cleaned text of the PDF file at path, see [Clean]. Pages are separated by
// paragraph breaks. Pages without content or with unreadable content are skipped.
func Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}
	return Clean(strings.Join(pages, "\n\n")), nil
}

// Clean removes line breaks that are artifacts of the PDF layout: a hyphen at the end of a line
// is removed together with the line break, other single line breaks become spaces. Blank lines
// separate paragraphs and are kept.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "-\n", "")
	paras := strings.Split(text, "\n\n")
	for i, p := range paras {
		paras[i] = strings.ReplaceAll(p, "\n", " ")
	}
	return strings.Join(paras, "\n\n")
}

// OutputPath returns the path of the text file extracted from the PDF file at path.
func OutputPath(path string) string {
	return strings.TrimSuffix(path, ".pdf") + RawSuffix
}

// Convert extracts the text of the PDF file at path and writes it to [OutputPath]. Existing
// outputs are kept unless overwrite is set, skipped reports whether that happened.
func Convert(path string, overwrite bool) (skipped bool, err error) {
	out := OutputPath(path)
	if !overwrite {
		if _, err := os.Stat(out); err == nil {
			return true, nil
		}
	}
	text, err := Extract(path)
	if err != nil {
		return false, err
	}
	if err := fsutil.WriteFile(out, []byte(text)); err != nil {
		return false, fmt.Errorf("write %s: %w", out, err)
	}
	return false, nil
}
