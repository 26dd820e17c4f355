package badger

import (
	"context"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/intertext/core"
	"github.com/poiesic/intertext/storage"
)

// FeatureRepository implements storage.FeatureRepository for BadgerDB.
// Each (language, feature type) space draws indices from its own sequence.
type FeatureRepository struct {
	backend *Backend
	mu      sync.Mutex
	seqs    map[string]*badger.Sequence
}

var _ storage.FeatureRepository = (*FeatureRepository)(nil)

// NewFeatureRepository creates a new FeatureRepository.
func NewFeatureRepository(backend *Backend) *FeatureRepository {
	return &FeatureRepository{
		backend: backend,
		seqs:    make(map[string]*badger.Sequence),
	}
}

// Close releases the index sequences.
func (r *FeatureRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var firstErr error
	for name, seq := range r.seqs {
		if err := seq.Release(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(r.seqs, name)
	}
	return firstErr
}

// AddFeatures stores features with indices already assigned elsewhere.
func (r *FeatureRepository) AddFeatures(ctx context.Context, features ...*core.Feature) error {
	for _, f := range features {
		if err := core.ValidateFeature(f); err != nil {
			return err
		}
	}
	return r.backend.WithBatch(func(wb *badger.WriteBatch) error {
		for _, f := range features {
			if err := wb.Set(makeFeatureKey(f.Language, f.FeatureType, f.Token), storage.MarshalFeature(f)); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetOrCreateFeature finds or creates the feature for a token.
// Creation is serialized so two callers never assign two indices to one token.
func (r *FeatureRepository) GetOrCreateFeature(ctx context.Context, language, featureType, token string) (*core.Feature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := makeFeatureKey(language, featureType, token)
	var existing *core.Feature
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		existing, err = readRecord(tx, key, storage.UnmarshalFeature)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	seq, err := r.sequence(language, featureType)
	if err != nil {
		return nil, err
	}
	next, err := seq.Next()
	if err != nil {
		return nil, err
	}
	feature := &core.Feature{
		Language:    language,
		FeatureType: featureType,
		Token:       token,
		Index:       core.FeatureIndex(next),
	}
	if err := core.ValidateFeature(feature); err != nil {
		return nil, err
	}

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(key, storage.MarshalFeature(feature)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return feature, nil
}

// FindFeatures resolves tokens to indices; unknown tokens are left out.
func (r *FeatureRepository) FindFeatures(ctx context.Context, language, featureType string, tokens ...string) (map[string]core.FeatureIndex, error) {
	result := make(map[string]core.FeatureIndex, len(tokens))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, token := range tokens {
			if _, seen := result[token]; seen {
				continue
			}
			feature, err := readRecord(tx, makeFeatureKey(language, featureType, token), storage.UnmarshalFeature)
			if err != nil {
				return err
			}
			if feature != nil {
				result[token] = feature.Index
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// sequence returns the cached sequence of a feature space. Caller holds mu.
func (r *FeatureRepository) sequence(language, featureType string) (*badger.Sequence, error) {
	name := makeFeatureSeqName(language, featureType)
	if seq, ok := r.seqs[name]; ok {
		return seq, nil
	}
	seq, err := r.backend.GetSequence(name)
	if err != nil {
		return nil, err
	}
	r.seqs[name] = seq
	return seq, nil
}
