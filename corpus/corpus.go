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


// Package corpus provides the poems searched by sonnets.
//
// A corpus is a TOML document with one [[sonnet]] table per poem:
//
//	[[sonnet]]
//	title = "Sonnet 18"
//	lines = [
//	  "Shall I compare thee to a summer's day?",
//	  "Thou art more lovely and more temperate:",
//	]
//
// A default corpus is embedded in the binary.
package corpus

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/poiesic/sonnets/core"
	"github.com/poiesic/sonnets/storage"
)

//go:embed sonnets.toml
var defaultCorpus []byte

type corpusFile struct {
	Sonnets []sonnetEntry `toml:"sonnet"`
}

type sonnetEntry struct {
	Title string   `toml:"title"`
	Lines []string `toml:"lines"`
}

// Parse decodes a TOML corpus into documents, in file order.
// Every document is validated; Number and Id are left for storage to assign.
func Parse(data []byte) ([]*core.Document, error) {
	var file corpusFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCorpus, err)
	}
	if len(file.Sonnets) == 0 {
		return nil, ErrEmptyCorpus
	}

	docs := make([]*core.Document, 0, len(file.Sonnets))
	for i, entry := range file.Sonnets {
		doc := &core.Document{
			Title: entry.Title,
			Lines: entry.Lines,
		}
		if err := core.ValidateDocument(doc); err != nil {
			return nil, fmt.Errorf("%w: sonnet %d: %w", ErrInvalidCorpus, i+1, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Default returns the embedded corpus.
func Default() ([]*core.Document, error) {
	return Parse(defaultCorpus)
}

// ReadFile parses the corpus stored at path.
func ReadFile(path string) ([]*core.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Load stores docs in the repository, in order.
func Load(ctx context.Context, repo storage.DocumentRepository, docs []*core.Document) ([]*core.Document, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}
	stored, err := repo.AddDocuments(ctx, docs...)
	if err != nil {
		return nil, fmt.Errorf("loading corpus: %w", err)
	}
	slog.Debug("corpus loaded", "documents", len(stored))
	return stored, nil
}
