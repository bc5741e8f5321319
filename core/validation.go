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


package core

import (
	"fmt"
	"strings"
)

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Title must not be blank
//   - Lines must not be empty
//
// NOT validated (assigned by storage):
//   - ID
//   - Number
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if strings.TrimSpace(doc.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyTitle)
	}

	if len(doc.Lines) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrNoLines)
	}

	return nil
}

// ValidateSpan checks that 0 <= Start < End <= textLen.
// textLen is measured in runes.
func ValidateSpan(span Span, textLen int) error {
	if span.Start < 0 || span.Start >= span.End || span.End > textLen {
		return fmt.Errorf("%w: [%d,%d) for text of length %d", ErrInvalidSpan, span.Start, span.End, textLen)
	}
	return nil
}
