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

// Package docdiff computes token level diffs between two versions of a document.
//
// A document is an ordered sequence of sentences and every sentence is an ordered sequence of
// tokens. [New] compares two documents and returns a [DocumentDiff]: a list of [Diff] records,
// each replacing a run of source tokens at an anchor index with a run of destination tokens.
// Replaying the diffs against the flattened source reproduces the flattened destination exactly;
// every result is checked for this before it is returned (see [DocumentDiff.Valid]).
//
// The comparison first finds maximal matching blocks of tokens between the documents and then
// computes a minimal edit script within every non-matching block. Non-matching blocks that are
// larger than a threshold (see [MaxBlockTokens]) are reported as a single replacement instead.
//
// Performance: Finding matching blocks is fast for documents that share most of their text.
// Within a non-matching block of N tokens with D differences, the edit script costs O(ND) time;
// the threshold bounds N.
//
// Tokenization is not part of this package, see [github.com/coconstruct/docdiff/tokenize].
package docdiff
