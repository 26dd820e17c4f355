package bigram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/poiesic/intertext/core"
	"github.com/poiesic/intertext/metrics"
	"github.com/poiesic/intertext/storage"
	"github.com/poiesic/intertext/storage/badger"
)

// Store holds the bigram records of one (text, unit type, feature) triple.
type Store struct {
	path     string
	backend  *badger.Backend
	seq      *badgerdb.Sequence
	logger   *slog.Logger
	metrics  *metrics.Metrics
	readOnly bool
	closed   bool
}

func openStore(path string, logger *slog.Logger, m *metrics.Metrics) (*Store, error) {
	backend, err := badger.OpenBackend(path, false)
	if err != nil {
		return nil, fmt.Errorf("opening bigram store %s: %w", path, err)
	}
	seq, err := backend.GetSequence(autoIDSeq)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("opening bigram store %s: %w", path, err)
	}
	return &Store{
		path:    path,
		backend: backend,
		seq:     seq,
		logger:  logger.With("store", path),
		metrics: m,
	}, nil
}

// openReader opens an existing store for lookups only. Any number of readers
// may hold the same store at once.
func openReader(path string, logger *slog.Logger, m *metrics.Metrics) (*Store, error) {
	backend, err := badger.OpenReadOnlyBackend(path)
	if err != nil {
		return nil, fmt.Errorf("opening bigram store %s for reading: %w", path, err)
	}
	return &Store{
		path:     path,
		backend:  backend,
		logger:   logger.With("store", path),
		metrics:  m,
		readOnly: true,
	}, nil
}

// Path returns the directory backing the store.
func (s *Store) Path() string {
	return s.path
}

// Append inserts records in one write batch. Appending invalidates any
// lookup structure built by an earlier Finalize.
func (s *Store) Append(ctx context.Context, records []core.BigramRecord) error {
	if s.closed {
		return ErrStoreClosed
	}
	if s.readOnly {
		return ErrStoreReadOnly
	}
	if len(records) == 0 {
		return nil
	}
	err := s.backend.WithBatch(func(wb *badgerdb.WriteBatch) error {
		if err := wb.Delete(indexedMarker); err != nil {
			return err
		}
		for i := range records {
			if err := ctx.Err(); err != nil {
				return err
			}
			autoID, err := s.seq.Next()
			if err != nil {
				return err
			}
			if err := wb.Set(makeRecordKey(autoID), storage.MarshalBigramRecord(&records[i])); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("appending %d records: %w", len(records), err)
	}
	s.logger.Debug("appended bigram records", "count", len(records))
	return nil
}

// Finalize drops and rebuilds the (word1, word2) lookup structure over every
// stored record. It may be called any number of times, including on a store
// that never received a record.
func (s *Store) Finalize(ctx context.Context) error {
	err := s.finalize(ctx)
	s.metrics.StoreFinalized(err)
	return err
}

func (s *Store) finalize(ctx context.Context) error {
	if s.closed {
		return ErrStoreClosed
	}
	if s.readOnly {
		return ErrStoreReadOnly
	}
	start := time.Now()
	if err := s.backend.DropPrefix([]byte{indexPrefix}, indexedMarker); err != nil {
		return fmt.Errorf("dropping lookup structure: %w", err)
	}

	var indexed int
	err := s.backend.WithBatch(func(wb *badgerdb.WriteBatch) error {
		return s.backend.Scan(ctx, []byte{recordPrefix}, func(key, val []byte) error {
			autoID, err := parseRecordKey(key)
			if err != nil {
				return err
			}
			record, err := storage.UnmarshalBigramRecord(val)
			if err != nil {
				return err
			}
			evidence := core.Evidence{UnitId: record.UnitId, Score: record.Score}
			indexed++
			return wb.Set(makeIndexKey(record.Key, autoID), storage.MarshalEvidence(&evidence))
		})
	})
	if err != nil {
		return fmt.Errorf("building lookup structure: %w", err)
	}

	err = s.backend.WithBatch(func(wb *badgerdb.WriteBatch) error {
		return wb.Set(indexedMarker, []byte{1})
	})
	if err != nil {
		return fmt.Errorf("marking store indexed: %w", err)
	}
	s.logger.Debug("finalized bigram store", "records", indexed, "elapsed", time.Since(start))
	return nil
}

// Indexed reports whether the lookup structure covers every stored record.
func (s *Store) Indexed() (bool, error) {
	if s.closed {
		return false, ErrStoreClosed
	}
	return s.backend.Has(indexedMarker)
}

// Lookup returns, for every requested key, the evidence of every stored
// record with that key in insertion order. Keys must already be canonical.
// Every requested key is present in the result, possibly with an empty list.
func (s *Store) Lookup(ctx context.Context, keys []core.BigramKey) (map[core.BigramKey][]core.Evidence, error) {
	indexed, err := s.Indexed()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	result := emptyResult(keys)
	if indexed {
		err = s.lookupIndexed(ctx, result)
		s.metrics.StoreLookup("indexed", start)
	} else {
		err = s.lookupScan(ctx, result)
		s.metrics.StoreLookup("scan", start)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up %d keys: %w", len(keys), err)
	}
	return result, nil
}

func (s *Store) lookupIndexed(ctx context.Context, result map[core.BigramKey][]core.Evidence) error {
	for key := range result {
		err := s.backend.Scan(ctx, makePartialIndexKey(key), func(_, val []byte) error {
			evidence, err := storage.UnmarshalEvidence(val)
			if err != nil {
				return err
			}
			result[key] = append(result[key], *evidence)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) lookupScan(ctx context.Context, result map[core.BigramKey][]core.Evidence) error {
	return s.backend.Scan(ctx, []byte{recordPrefix}, func(_, val []byte) error {
		record, err := storage.UnmarshalBigramRecord(val)
		if err != nil {
			return err
		}
		if found, ok := result[record.Key]; ok {
			result[record.Key] = append(found, core.Evidence{UnitId: record.UnitId, Score: record.Score})
		}
		return nil
	})
}

// Close releases the store. Closing twice is a no-op.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var seqErr error
	if s.seq != nil {
		seqErr = s.seq.Release()
	}
	if err := s.backend.Close(); err != nil {
		return err
	}
	return seqErr
}

func emptyResult(keys []core.BigramKey) map[core.BigramKey][]core.Evidence {
	result := make(map[core.BigramKey][]core.Evidence, len(keys))
	for _, key := range keys {
		result[key] = []core.Evidence{}
	}
	return result
}
