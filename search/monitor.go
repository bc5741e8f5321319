package search

import (
	"log/slog"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track how each query word narrows the result.
type SearchMonitor interface {
	Start(query string, words []string)
	AfterWord(word string, matched int)
	Finish(results *Results)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ []string) {}
func (n *noopMonitor) AfterWord(_ string, _ int)  {}
func (n *noopMonitor) Finish(_ *Results)          {}

// LogMonitor reports search progress at debug level.
type LogMonitor struct {
	Logger *slog.Logger
}

var _ SearchMonitor = (*LogMonitor)(nil)

// NewLogMonitor creates a LogMonitor. A nil logger means slog.Default().
func NewLogMonitor(logger *slog.Logger) *LogMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMonitor{Logger: logger}
}

func (m *LogMonitor) Start(query string, words []string) {
	m.Logger.Debug("search started", "query", query, "words", words)
}

func (m *LogMonitor) AfterWord(word string, matched int) {
	m.Logger.Debug("word applied", "word", word, "matched", matched)
}

func (m *LogMonitor) Finish(results *Results) {
	m.Logger.Debug("search results", "matched", len(results.Matched()), "total", results.Total())
}
