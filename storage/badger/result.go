package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/intertext/core"
	"github.com/poiesic/intertext/storage"
)

// ResultRepository implements storage.ResultRepository for BadgerDB.
type ResultRepository struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.ResultRepository = (*ResultRepository)(nil)

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(backend *Backend) (*ResultRepository, error) {
	seq, err := backend.GetSequence(resultSeq)
	if err != nil {
		return nil, err
	}
	return &ResultRepository{backend: backend, seq: seq}, nil
}

// Close releases the ordering sequence.
func (r *ResultRepository) Close() error {
	return r.seq.Release()
}

// AddMultiResults persists results in one write batch.
func (r *ResultRepository) AddMultiResults(ctx context.Context, results ...*core.MultiResult) error {
	for _, res := range results {
		if err := core.ValidateMultiResult(res); err != nil {
			return err
		}
	}
	return r.backend.WithBatch(func(wb *badger.WriteBatch) error {
		for _, res := range results {
			if res.Id.IsZero() {
				res.Id = core.NewID()
			}
			seq, err := nextID(r.seq)
			if err != nil {
				return err
			}
			if err := wb.Set(makeResultKey(res.SearchId, seq), storage.MarshalMultiResult(res)); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetMultiResults returns the results of a job in insertion order.
func (r *ResultRepository) GetMultiResults(ctx context.Context, searchID core.ID) ([]*core.MultiResult, error) {
	var result []*core.MultiResult
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return scanPrefix(ctx, tx, makePartialResultKey(searchID), func(_, val []byte) error {
			res, err := storage.UnmarshalMultiResult(val)
			if err != nil {
				return err
			}
			result = append(result, res)
			return nil
		})
	}, false)
	return result, err
}
