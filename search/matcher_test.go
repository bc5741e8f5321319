package search

import (
	"testing"

	"github.com/poiesic/sonnets/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() *core.Document {
	return &core.Document{
		Number: 1,
		Title:  "Test",
		Lines:  []string{"a cat sat", "no match here"},
	}
}

func TestSearchDocument(t *testing.T) {
	t.Run("line match", func(t *testing.T) {
		record := SearchDocument(testDocument(), "cat")

		assert.Equal(t, "Test", record.Title)
		assert.Empty(t, record.TitleSpans)
		require.Len(t, record.LineMatches, 1)
		assert.Equal(t, core.LineMatch{LineNo: 1, Text: "a cat sat", Spans: []core.Span{{Start: 2, End: 5}}}, record.LineMatches[0])
		assert.Equal(t, 1, record.Matches)
	})

	t.Run("case insensitive query and text", func(t *testing.T) {
		doc := &core.Document{Title: "The Cat", Lines: []string{"CAT and cat"}}
		record := SearchDocument(doc, "cAt")

		assert.Equal(t, []core.Span{{Start: 4, End: 7}}, record.TitleSpans)
		require.Len(t, record.LineMatches, 1)
		assert.Equal(t, "CAT and cat", record.LineMatches[0].Text)
		assert.Equal(t, []core.Span{{Start: 0, End: 3}, {Start: 8, End: 11}}, record.LineMatches[0].Spans)
		assert.Equal(t, 3, record.Matches)
	})

	t.Run("lines numbered from one and unmatched lines omitted", func(t *testing.T) {
		doc := &core.Document{Title: "T", Lines: []string{"x", "here", "y", "there"}}
		record := SearchDocument(doc, "here")

		require.Len(t, record.LineMatches, 2)
		assert.Equal(t, 2, record.LineMatches[0].LineNo)
		assert.Equal(t, 4, record.LineMatches[1].LineNo)
		for _, lm := range record.LineMatches {
			assert.NotEmpty(t, lm.Spans)
		}
	})

	t.Run("no match still returns a record", func(t *testing.T) {
		record := SearchDocument(testDocument(), "dog")

		require.NotNil(t, record)
		assert.Equal(t, "Test", record.Title)
		assert.Empty(t, record.TitleSpans)
		assert.Empty(t, record.LineMatches)
		assert.Equal(t, 0, record.Matches)
	})

	t.Run("matches invariant", func(t *testing.T) {
		doc := &core.Document{Title: "aa aa", Lines: []string{"aaa", "b", "a"}}
		record := SearchDocument(doc, "a")
		assert.Equal(t, record.CountMatches(), record.Matches)
		assert.Equal(t, 8, record.Matches)
	})

	t.Run("empty query", func(t *testing.T) {
		record := SearchDocument(testDocument(), "")
		assert.Equal(t, 0, record.Matches)
		assert.Empty(t, record.LineMatches)
	})
}
