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

package sonnets

import (
	"context"
	"io"
	"log/slog"

	"github.com/poiesic/sonnets/core"
	"github.com/poiesic/sonnets/corpus"
	"github.com/poiesic/sonnets/search"
	"github.com/poiesic/sonnets/shell"
	"github.com/poiesic/sonnets/storage"
	"github.com/poiesic/sonnets/storage/badger"
)

// Library is a loaded sonnet corpus ready to be searched.
type Library struct {
	backend   *badger.Backend
	docRepo   storage.DocumentRepository
	documents []*core.Document
	logger    *slog.Logger
}

// Option configures a Library.
type Option func(*libraryOptions)

type libraryOptions struct {
	documents  []*core.Document
	corpusFile string
	logger     *slog.Logger
}

// WithDocuments loads docs instead of the embedded corpus.
func WithDocuments(docs ...*core.Document) Option {
	return func(o *libraryOptions) {
		o.documents = docs
	}
}

// WithCorpusFile loads the corpus from a TOML file instead of the embedded one.
// WithDocuments takes precedence.
func WithCorpusFile(path string) Option {
	return func(o *libraryOptions) {
		o.corpusFile = path
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *libraryOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func Open(ctx context.Context, opts ...Option) (*Library, error) {
	options := &libraryOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	docs, err := resolveDocuments(options)
	if err != nil {
		return nil, err
	}

	// The corpus is rebuilt on every start, nothing is persisted
	backend, err := badger.OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	docRepo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	stored, err := corpus.Load(ctx, docRepo, docs)
	if err != nil {
		docRepo.Close()
		backend.Close()
		return nil, err
	}
	options.logger.Debug("library opened", "documents", len(stored))

	return &Library{
		backend:   backend,
		docRepo:   docRepo,
		documents: stored,
		logger:    options.logger,
	}, nil
}

func resolveDocuments(options *libraryOptions) ([]*core.Document, error) {
	switch {
	case len(options.documents) > 0:
		return options.documents, nil
	case options.corpusFile != "":
		return corpus.ReadFile(options.corpusFile)
	default:
		return corpus.Default()
	}
}

func (l *Library) Close() error {
	if err := l.docRepo.Close(); err != nil {
		l.logger.Error("error closing document repository", "err", err)
		return err
	}
	if err := l.backend.Close(); err != nil {
		l.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Documents returns the stored documents in corpus order.
func (l *Library) Documents() []*core.Document {
	return l.documents
}

func (l *Library) DocumentRepository() storage.DocumentRepository {
	return l.docRepo
}

func (l *Library) NewSearcher(ctx context.Context, opts ...search.Option) (*search.Searcher, error) {
	opts = append([]search.Option{search.WithLogger(l.logger)}, opts...)
	return search.NewSearcher(ctx, l.docRepo, opts...)
}

// NewSession builds an interactive session over the library writing to out.
func (l *Library) NewSession(ctx context.Context, out io.Writer, cfg *shell.Config) (*shell.Session, error) {
	searcher, err := l.NewSearcher(ctx)
	if err != nil {
		return nil, err
	}
	return shell.NewSession(searcher, out, cfg, shell.WithLogger(l.logger))
}
