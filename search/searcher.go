package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/sonnets/core"
	"github.com/poiesic/sonnets/storage"
)

// Searcher runs multi-word AND queries over the corpus.
// The corpus is read from the repository once, when the Searcher is created.
type Searcher struct {
	documents []*core.Document
	logger    *slog.Logger
	monitor   SearchMonitor
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMonitor sets the monitor used by Search.
// Default is a no-op monitor.
func WithMonitor(monitor SearchMonitor) Option {
	return func(s *Searcher) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		s.monitor = monitor
		return nil
	}
}

// NewSearcher creates a new searcher over every document in the repository.
func NewSearcher(ctx context.Context, documentRepository storage.DocumentRepository, opts ...Option) (*Searcher, error) {
	if documentRepository == nil {
		return nil, ErrDocumentRepositoryRequired
	}

	s := &Searcher{
		logger:  slog.Default(),
		monitor: &noopMonitor{},
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	docs, err := documentRepository.ListDocuments(ctx)
	if err != nil {
		s.logger.Error("error listing corpus documents", "err", err)
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}
	s.documents = docs

	return s, nil
}

// Documents returns the corpus in order.
func (s *Searcher) Documents() []*core.Document {
	return s.documents
}

// Results holds one record per corpus document for a query.
type Results struct {
	Query   string              // raw query as typed
	Words   []string            // query split on whitespace
	Records []*core.MatchRecord // one per document, in corpus order
}

// Total returns the number of documents searched.
func (r *Results) Total() int {
	return len(r.Records)
}

// Matched returns the records with a positive match count, in corpus order.
func (r *Results) Matched() []*core.MatchRecord {
	matched := make([]*core.MatchRecord, 0, len(r.Records))
	for _, record := range r.Records {
		if record.Matched() {
			matched = append(matched, record)
		}
	}
	return matched
}

// Search runs raw as an AND query across all documents.
func (s *Searcher) Search(ctx context.Context, raw string) (*Results, error) {
	return s.SearchWithMonitor(ctx, raw, s.monitor)
}

// SearchWithMonitor runs raw as an AND query, reporting progress to monitor.
//
// The first word seeds one record per document. For every later word a document
// keeps matching only if both its running record and the new word's record have
// matches; then the two are combined. Otherwise the running record's Matches is
// set to zero and its spans are left as they were. A zeroed document can never
// match again within the same query.
func (s *Searcher) SearchWithMonitor(ctx context.Context, raw string, monitor SearchMonitor) (*Results, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	words := Words(raw)
	monitor.Start(raw, words)

	results := &Results{
		Query: raw,
		Words: words,
	}

	for i, word := range words {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := make([]*core.MatchRecord, len(s.documents))
		for j, doc := range s.documents {
			current[j] = SearchDocument(doc, word)
		}

		if i == 0 {
			results.Records = current
		} else {
			for j, running := range results.Records {
				if running.Matches > 0 && current[j].Matches > 0 {
					results.Records[j] = Combine(running, current[j])
				} else {
					running.Matches = 0
				}
			}
		}
		monitor.AfterWord(word, countMatched(results.Records))
	}

	// No words: every document is reported, none matched.
	if results.Records == nil {
		results.Records = make([]*core.MatchRecord, len(s.documents))
		for j, doc := range s.documents {
			results.Records[j] = &core.MatchRecord{Title: doc.Title}
		}
	}

	monitor.Finish(results)
	s.logger.Debug("search finished", "query", raw, "words", len(words), "matched", countMatched(results.Records))

	return results, nil
}

func countMatched(records []*core.MatchRecord) int {
	n := 0
	for _, record := range records {
		if record.Matched() {
			n++
		}
	}
	return n
}
