package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/intertext/core"
	"github.com/poiesic/intertext/storage"
)

// TextRepository implements storage.TextRepository for BadgerDB.
type TextRepository struct {
	backend *Backend
}

var _ storage.TextRepository = (*TextRepository)(nil)

// NewTextRepository creates a new TextRepository.
func NewTextRepository(backend *Backend) *TextRepository {
	return &TextRepository{backend: backend}
}

// AddTexts adds one or more texts to storage.
func (r *TextRepository) AddTexts(ctx context.Context, texts ...*core.Text) ([]*core.Text, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, text := range texts {
			if text.Id.IsZero() {
				text.Id = core.NewID()
			}
			if err := tx.Set(makeTextKey(text.Id), storage.MarshalText(text)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	return texts, err
}

// GetText retrieves a single text by ID.
func (r *TextRepository) GetText(ctx context.Context, id core.ID) (*core.Text, error) {
	var result *core.Text
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readRecord(tx, makeTextKey(id), storage.UnmarshalText)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetTexts retrieves texts by their IDs in the requested order.
func (r *TextRepository) GetTexts(ctx context.Context, ids ...core.ID) ([]*core.Text, error) {
	result := make([]*core.Text, 0, len(ids))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			text, err := readRecord(tx, makeTextKey(id), storage.UnmarshalText)
			if err != nil {
				return err
			}
			if text == nil {
				return storage.ErrNotFound
			}
			result = append(result, text)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListTexts returns every stored text ordered by ID.
func (r *TextRepository) ListTexts(ctx context.Context) ([]*core.Text, error) {
	var result []*core.Text
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return scanPrefix(ctx, tx, []byte(textPrefix), func(_, val []byte) error {
			text, err := storage.UnmarshalText(val)
			if err != nil {
				return err
			}
			result = append(result, text)
			return nil
		})
	}, false)
	return result, err
}

// DeleteText removes a text and all of its units.
func (r *TextRepository) DeleteText(ctx context.Context, id core.ID) error {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeTextKey(id)
		if _, err := tx.Get(key); err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}
	return r.backend.DropPrefix(makePartialUnitKey(id, ""))
}
