package badger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/intertext/core"
	"github.com/poiesic/intertext/storage"
)

// UnitRepository implements storage.UnitRepository for BadgerDB.
type UnitRepository struct {
	backend *Backend
}

var _ storage.UnitRepository = (*UnitRepository)(nil)

// NewUnitRepository creates a new UnitRepository.
func NewUnitRepository(backend *Backend) *UnitRepository {
	return &UnitRepository{backend: backend}
}

// AddUnits adds units in one write batch.
func (r *UnitRepository) AddUnits(ctx context.Context, units ...*core.Unit) ([]*core.Unit, error) {
	for _, unit := range units {
		if err := core.ValidateUnit(unit); err != nil {
			return nil, err
		}
	}
	err := r.backend.WithBatch(func(wb *badger.WriteBatch) error {
		for _, unit := range units {
			if unit.Id.IsZero() {
				unit.Id = core.NewID()
			}
			if err := wb.Set(makeUnitKey(unit), storage.MarshalUnit(unit)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return units, nil
}

// ForEachUnit streams the units of a text in position order.
// The scan runs inside one read-only snapshot, which never times out.
func (r *UnitRepository) ForEachUnit(ctx context.Context, textID core.ID, unitType string, fn func(*core.Unit) error) error {
	if err := core.ValidateUnitType(unitType); err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		return scanPrefix(ctx, tx, makePartialUnitKey(textID, unitType), func(_, val []byte) error {
			unit, err := storage.UnmarshalUnit(val)
			if err != nil {
				return err
			}
			return fn(unit)
		})
	}, false)
}

// CountFeatures counts every value of featureType across the text's lines.
// Lines and phrases cover the same tokens, so lines alone give each token
// exactly one count.
func (r *UnitRepository) CountFeatures(ctx context.Context, textID core.ID, featureType string) (map[core.FeatureIndex]int, error) {
	counts := make(map[core.FeatureIndex]int)
	err := r.ForEachUnit(ctx, textID, core.UnitLine, func(unit *core.Unit) error {
		for _, token := range unit.Tokens {
			for _, v := range token.Features[featureType] {
				counts[v]++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("counting %s features: %w", featureType, err)
	}
	return counts, nil
}
