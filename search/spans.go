package search

import (
	"slices"

	"github.com/poiesic/sonnets/core"
)

// FindSpans returns every occurrence of pattern in text, overlapping ones included,
// ordered by start offset. Offsets are rune offsets.
//
// Both arguments must already be lowercased; no case folding happens here.
// An empty pattern, or one longer than text, yields no spans.
func FindSpans(text, pattern string) []core.Span {
	t := []rune(text)
	p := []rune(pattern)
	if len(p) == 0 || len(p) > len(t) {
		return nil
	}

	var spans []core.Span
	for i := 0; i <= len(t)-len(p); i++ {
		if slices.Equal(t[i:i+len(p)], p) {
			spans = append(spans, core.Span{Start: i, End: i + len(p)})
		}
	}
	return spans
}

// MergeSpans collapses overlapping and touching spans into disjoint intervals.
// Spans separated by a gap stay apart. The input slice is left untouched.
func MergeSpans(spans []core.Span) []core.Span {
	if len(spans) == 0 {
		return nil
	}

	sorted := slices.Clone(spans)
	slices.SortFunc(sorted, func(a, b core.Span) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})

	merged := []core.Span{sorted[0]}
	for _, s := range sorted[1:] {
		last := &merged[len(merged)-1]
		if s.Start <= last.End {
			last.End = max(last.End, s.End)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
