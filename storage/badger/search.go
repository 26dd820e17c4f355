package badger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/intertext/core"
	"github.com/poiesic/intertext/storage"
)

// SearchRepository implements storage.SearchRepository for BadgerDB.
type SearchRepository struct {
	backend *Backend
}

var _ storage.SearchRepository = (*SearchRepository)(nil)

// NewSearchRepository creates a new SearchRepository.
func NewSearchRepository(backend *Backend) *SearchRepository {
	return &SearchRepository{backend: backend}
}

// AddSearch inserts a new search record.
func (r *SearchRepository) AddSearch(ctx context.Context, search *core.Search) (*core.Search, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if search.Id.IsZero() {
			search.Id = core.NewID()
		}
		key := makeSearchKey(search.Id)
		if _, err := tx.Get(key); err == nil {
			return storage.ErrDuplicateKey
		} else if err != badger.ErrKeyNotFound {
			return err
		}
		if err := checkResultsIDFree(tx, search.ResultsId); err != nil {
			return err
		}
		if err := tx.Set(key, storage.MarshalSearch(search)); err != nil {
			return err
		}
		if search.ResultsId != "" {
			if err := tx.Set(makeSearchResultsKey(search.ResultsId), storage.MarshalID(search.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return search, nil
}

// UpdateSearch replaces a stored search, enforcing the status lifecycle.
func (r *SearchRepository) UpdateSearch(ctx context.Context, search *core.Search) (*core.Search, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSearchKey(search.Id)
		old, err := readRecord(tx, key, storage.UnmarshalSearch)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}
		if old.Status != "" && old.Status != search.Status {
			if err := core.ValidateTransition(old.Status, search.Status); err != nil {
				return err
			}
		}
		if old.ResultsId != search.ResultsId {
			if err := checkResultsIDFree(tx, search.ResultsId); err != nil {
				return err
			}
		}
		if err := tx.Set(key, storage.MarshalSearch(search)); err != nil {
			return err
		}
		if old.ResultsId != search.ResultsId {
			if old.ResultsId != "" {
				if err := tx.Delete(makeSearchResultsKey(old.ResultsId)); err != nil {
					return err
				}
			}
			if search.ResultsId != "" {
				if err := tx.Set(makeSearchResultsKey(search.ResultsId), storage.MarshalID(search.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return search, nil
}

// checkResultsIDFree returns ErrDuplicateKey when another search already
// carries resultsID.
func checkResultsIDFree(tx *badger.Txn, resultsID string) error {
	if resultsID == "" {
		return nil
	}
	_, err := tx.Get(makeSearchResultsKey(resultsID))
	switch {
	case err == nil:
		return fmt.Errorf("%w: results id %q", storage.ErrDuplicateKey, resultsID)
	case err == badger.ErrKeyNotFound:
		return nil
	default:
		return err
	}
}

// GetSearch retrieves a search by ID.
func (r *SearchRepository) GetSearch(ctx context.Context, id core.ID) (*core.Search, error) {
	var result *core.Search
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readRecord(tx, makeSearchKey(id), storage.UnmarshalSearch)
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

// FindByResultsID retrieves a search by its external correlation id.
func (r *SearchRepository) FindByResultsID(ctx context.Context, resultsID string) (*core.Search, error) {
	var result *core.Search
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeSearchResultsKey(resultsID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		var id core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}
		result, err = readRecord(tx, makeSearchKey(id), storage.UnmarshalSearch)
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
