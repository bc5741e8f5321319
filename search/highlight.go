package search

import (
	"fmt"
	"html"
	"strings"

	"github.com/poiesic/sonnets/core"
)

// Style decorates text for one output medium.
// Plain renders text outside any match, Marked renders a merged matched run.
type Style interface {
	Plain(s string) string
	Marked(s string) string
}

const (
	ansiHighlight = "\x1b[1m\x1b[43m" // bold, yellow background
	ansiReset     = "\x1b[0m"
)

// ANSIStyle marks matches with terminal escape codes.
type ANSIStyle struct{}

func (ANSIStyle) Plain(s string) string  { return s }
func (ANSIStyle) Marked(s string) string { return ansiHighlight + s + ansiReset }

// HTMLStyle wraps matches in <mark> elements and escapes all text.
type HTMLStyle struct{}

func (HTMLStyle) Plain(s string) string  { return html.EscapeString(s) }
func (HTMLStyle) Marked(s string) string { return "<mark>" + html.EscapeString(s) + "</mark>" }

// PlainStyle brackets matches, for terminals without color support.
type PlainStyle struct{}

func (PlainStyle) Plain(s string) string  { return s }
func (PlainStyle) Marked(s string) string { return "[" + s + "]" }

// StyleByName resolves a style name ("ansi", "html" or "plain").
func StyleByName(name string) (Style, error) {
	switch strings.ToLower(name) {
	case "ansi":
		return ANSIStyle{}, nil
	case "html":
		return HTMLStyle{}, nil
	case "plain":
		return PlainStyle{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
}

// Render returns text with the given spans marked in style.
// With no spans, or with highlighting disabled, text is returned unchanged.
// Spans may overlap or touch; they are merged before rendering.
// Spans that do not fit inside text are ignored.
func Render(text string, spans []core.Span, enabled bool, style Style) string {
	if len(spans) == 0 || !enabled {
		return text
	}
	if style == nil {
		style = ANSIStyle{}
	}

	runes := []rune(text)
	valid := make([]core.Span, 0, len(spans))
	for _, s := range spans {
		if core.ValidateSpan(s, len(runes)) == nil {
			valid = append(valid, s)
		}
	}

	var out strings.Builder
	pos := 0
	for _, s := range MergeSpans(valid) {
		if s.Start > pos {
			out.WriteString(style.Plain(string(runes[pos:s.Start])))
		}
		out.WriteString(style.Marked(string(runes[s.Start:s.End])))
		pos = s.End
	}
	out.WriteString(style.Plain(string(runes[pos:])))
	return out.String()
}
