package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/intertext/core"
	"github.com/poiesic/intertext/storage"
)

// MatchRepository implements storage.MatchRepository for BadgerDB.
type MatchRepository struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.MatchRepository = (*MatchRepository)(nil)

// NewMatchRepository creates a new MatchRepository.
func NewMatchRepository(backend *Backend) (*MatchRepository, error) {
	seq, err := backend.GetSequence(matchSeq)
	if err != nil {
		return nil, err
	}
	return &MatchRepository{backend: backend, seq: seq}, nil
}

// Close releases the ordering sequence.
func (r *MatchRepository) Close() error {
	return r.seq.Release()
}

// AddMatches appends matches, keeping insertion order per search.
func (r *MatchRepository) AddMatches(ctx context.Context, matches ...*core.Match) ([]*core.Match, error) {
	for _, m := range matches {
		if err := core.ValidateMatch(m); err != nil {
			return nil, err
		}
	}
	err := r.backend.WithBatch(func(wb *badger.WriteBatch) error {
		for _, m := range matches {
			if m.Id.IsZero() {
				m.Id = core.NewID()
			}
			seq, err := nextID(r.seq)
			if err != nil {
				return err
			}
			if err := wb.Set(makeMatchKey(m.SearchId, seq), storage.MarshalMatch(m)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// GetMatches returns the matches of a search in insertion order.
func (r *MatchRepository) GetMatches(ctx context.Context, searchID core.ID) ([]*core.Match, error) {
	var result []*core.Match
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return scanPrefix(ctx, tx, makePartialMatchKey(searchID), func(_, val []byte) error {
			m, err := storage.UnmarshalMatch(val)
			if err != nil {
				return err
			}
			result = append(result, m)
			return nil
		})
	}, false)
	return result, err
}
