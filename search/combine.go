package search

import (
	"slices"

	"github.com/poiesic/sonnets/core"
)

// Combine AND-merges two records of the same document for two different words.
//
// Title spans are concatenated only when both sides matched the title; if either
// side has none, the result has none, even though the other side did match.
// Lines survive only when present on both sides, with a's spans followed by b's.
// Output lines follow a's order. Matches is recomputed from the result.
func Combine(a, b *core.MatchRecord) *core.MatchRecord {
	combined := &core.MatchRecord{Title: a.Title}

	if len(a.TitleSpans) > 0 && len(b.TitleSpans) > 0 {
		combined.TitleSpans = slices.Concat(a.TitleSpans, b.TitleSpans)
	}

	for _, la := range a.LineMatches {
		for _, lb := range b.LineMatches {
			if la.LineNo != lb.LineNo {
				continue
			}
			combined.LineMatches = append(combined.LineMatches, core.LineMatch{
				LineNo: la.LineNo,
				Text:   la.Text,
				Spans:  slices.Concat(la.Spans, lb.Spans),
			})
		}
	}

	combined.Matches = combined.CountMatches()
	return combined
}
