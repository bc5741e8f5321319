// Copyright 2025 Poiesic Systems
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


// Package search provides case-insensitive substring search over the corpus.
//
// Matching is a brute-force scan: every start offset of a text is compared
// against the pattern, and overlapping occurrences are all reported as spans.
// The building blocks are:
//   - FindSpans: all occurrences of one pattern in one text
//   - SearchDocument: FindSpans over a document's title and lines
//   - Combine: AND-merge of two records for the same document
//   - MergeSpans and Render: collapse spans and mark them for display
//
// A Searcher folds SearchDocument and Combine over every word of a query and
// every document of the corpus. A document matches when all words occur in it.
package search
