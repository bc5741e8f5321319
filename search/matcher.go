package search

import (
	"strings"

	"github.com/poiesic/sonnets/core"
)

// SearchDocument matches a single query word against a document's title and lines.
// Matching is case-insensitive. Lines without a match are left out of the record.
// A record is always returned, even when nothing matched.
func SearchDocument(doc *core.Document, query string) *core.MatchRecord {
	q := strings.ToLower(query)

	record := &core.MatchRecord{
		Title:      doc.Title,
		TitleSpans: FindSpans(strings.ToLower(doc.Title), q),
	}

	for i, line := range doc.Lines {
		spans := FindSpans(strings.ToLower(line), q)
		if len(spans) == 0 {
			continue
		}
		record.LineMatches = append(record.LineMatches, core.LineMatch{
			LineNo: i + 1,
			Text:   line,
			Spans:  spans,
		})
	}

	record.Matches = record.CountMatches()
	return record
}
