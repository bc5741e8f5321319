package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Document is one poem of the corpus.
// Documents are loaded once at startup and never mutated afterwards.
type Document struct {
	Id     ID
	Number int // 1-based position in the corpus
	Title  string
	Lines  []string // Lines are numbered from 1 for display
}

// Content returns the text a document's ID is derived from.
func (d *Document) Content() string {
	return d.Title + "\n" + strings.Join(d.Lines, "\n")
}

// Span is a half-open interval [Start, End) of rune offsets within a text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of runes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// LineMatch holds the spans found in a single line of a document.
type LineMatch struct {
	LineNo int
	Text   string // line as stored, not lowercased
	Spans  []Span
}

// MatchRecord is the result of matching one document against one or more query words.
// Lines without spans are never present in LineMatches.
type MatchRecord struct {
	Title       string
	TitleSpans  []Span
	LineMatches []LineMatch
	Matches     int // |TitleSpans| + sum of line span counts, unless zeroed by a failed AND
}

// CountMatches recomputes the match count from the title and line spans.
func (r *MatchRecord) CountMatches() int {
	total := len(r.TitleSpans)
	for _, lm := range r.LineMatches {
		total += len(lm.Spans)
	}
	return total
}

// Matched reports whether the record counts as a hit.
func (r *MatchRecord) Matched() bool {
	return r.Matches > 0
}
