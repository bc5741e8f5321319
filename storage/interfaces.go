package storage

import (
	"context"

	"github.com/poiesic/sonnets/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be safe for use from multiple goroutines.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}

// DocumentRepository is the read-mostly corpus provider.
// Documents are written once at startup and read for the lifetime of the process.
type DocumentRepository interface {
	Repository

	// AddDocuments stores one or more documents in the given order.
	// Assigns Number (1-based corpus position) and Id (content hash).
	// Returns ErrDuplicateKey if a document with identical content is already stored;
	// in that case none of the documents in the call are stored.
	AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// GetDocument retrieves a single document by its content ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocumentByNumber retrieves a document by its 1-based corpus position.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocumentByNumber(ctx context.Context, number int) (*core.Document, error)

	// ListDocuments returns every document in corpus order.
	ListDocuments(ctx context.Context) ([]*core.Document, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)
}
