package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/sonnets/core"
	"github.com/poiesic/sonnets/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
type DocumentRepository struct {
	backend *Backend
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) (*DocumentRepository, error) {
	if backend == nil || backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	return &DocumentRepository{
		backend: backend,
	}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *DocumentRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *DocumentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddDocuments stores documents after the ones already present.
// Numbers continue from the current document count inside the same
// transaction, so a rejected batch leaves no gap. Id and Number are set
// on docs only once the batch is committed.
func (r *DocumentRepository) AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stored := make([]core.Document, len(docs))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		count, err := r.countDocuments(tx)
		if err != nil {
			return err
		}

		for i, doc := range docs {
			if err := core.ValidateDocument(doc); err != nil {
				return err
			}

			rec := *doc
			rec.Id = core.IDFromContent(doc.Content())
			sumKey := makeDocumentSumKey(rec.Id)
			_, err := tx.Get(sumKey)
			switch {
			case err == nil:
				return storage.ErrDuplicateKey
			case !errors.Is(err, badger.ErrKeyNotFound):
				return err
			}

			count++
			rec.Number = count

			key := makeDocumentKey(rec.Number)
			if err := tx.Set(key, storage.MarshalDocument(&rec)); err != nil {
				return err
			}
			if err := tx.Set(sumKey, key); err != nil {
				return err
			}
			stored[i] = rec
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	for i, doc := range docs {
		doc.Id = stored[i].Id
		doc.Number = stored[i].Number
	}
	return docs, nil
}

// GetDocument retrieves a document by its content ID.
func (r *DocumentRepository) GetDocument(ctx context.Context, id core.ID) (*core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var doc *core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDocumentSumKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		key, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		doc, err = r.readDocument(tx, key)
		return err
	}, false)

	return doc, err
}

// GetDocumentByNumber retrieves a document by its 1-based corpus position.
func (r *DocumentRepository) GetDocumentByNumber(ctx context.Context, number int) (*core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if number < 1 {
		return nil, storage.ErrNotFound
	}
	var doc *core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		doc, err = r.readDocument(tx, makeDocumentKey(number))
		return err
	}, false)

	return doc, err
}

// ListDocuments returns all documents in corpus order.
func (r *DocumentRepository) ListDocuments(ctx context.Context) ([]*core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var docs []*core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = documentKeyPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				doc, err := storage.UnmarshalDocument(val)
				if err != nil {
					return err
				}
				docs = append(docs, doc)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return docs, nil
}

// Count returns the number of stored documents.
func (r *DocumentRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var count int
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		count, err = r.countDocuments(tx)
		return err
	}, false)
	return count, err
}

// countDocuments counts primary document keys without reading values.
func (r *DocumentRepository) countDocuments(tx *badger.Txn) (int, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = documentKeyPrefix()
	iter := tx.NewIterator(opts)
	defer iter.Close()

	count := 0
	for iter.Rewind(); iter.Valid(); iter.Next() {
		count++
	}
	return count, nil
}

// readDocument reads a document by primary key.
// Returns storage.ErrNotFound if the key doesn't exist.
func (r *DocumentRepository) readDocument(tx *badger.Txn, key []byte) (*core.Document, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var doc *core.Document
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		doc, unmarshalErr = storage.UnmarshalDocument(val)
		return unmarshalErr
	})
	return doc, err
}
