package frequency

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/intertext/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounts struct {
	counts map[string]map[core.FeatureIndex]int
	err    error
	calls  int
}

func (f *fakeCounts) CountFeatures(_ context.Context, _ core.ID, featureType string) (map[core.FeatureIndex]int, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.counts[featureType], nil
}

func TestNewTable(t *testing.T) {
	table := NewTable(map[core.FeatureIndex]int{0: 2, 3: 4, 5: 1})

	require.Len(t, table, 6)
	assert.Equal(t, Table{0.5, 0, 0, 0.25, 0, 1}, table)
}

func TestNewTable_Empty(t *testing.T) {
	assert.Empty(t, NewTable(nil))
}

func TestTable_AtOutOfRange(t *testing.T) {
	table := Table{0.5, 0.25}

	assert.Equal(t, 0.25, table.At(1))
	assert.Zero(t, table.At(2))
	assert.Zero(t, table.At(-1))
	assert.Zero(t, Table(nil).At(0))
}

func TestCalculator_InverseFrequencies(t *testing.T) {
	source := &fakeCounts{counts: map[string]map[core.FeatureIndex]int{
		core.FeatureForm:    {1: 2, 2: 4},
		core.FeatureLemmata: {7: 1},
	}}
	calc := NewCalculator(source)

	forms, err := calc.InverseFrequencies(context.Background(), core.FeatureForm, core.NewID())
	require.NoError(t, err)
	assert.Equal(t, 0.5, forms.At(1))
	assert.Equal(t, 0.25, forms.At(2))
	assert.Zero(t, forms.At(0))

	lemmata, err := calc.InverseFrequencies(context.Background(), core.FeatureLemmata, core.NewID())
	require.NoError(t, err)
	assert.Equal(t, 1.0, lemmata.At(7))
}

func TestCalculator_UnknownFeatureType(t *testing.T) {
	source := &fakeCounts{}
	calc := NewCalculator(source)

	_, err := calc.InverseFrequencies(context.Background(), "semantic", core.NewID())
	assert.ErrorIs(t, err, ErrUnknownFeatureType)
	assert.Zero(t, source.calls, "no counts are read for unknown types")
}

func TestCalculator_SourceError(t *testing.T) {
	boom := errors.New("boom")
	calc := NewCalculator(&fakeCounts{err: boom})

	_, err := calc.InverseFrequencies(context.Background(), core.FeatureForm, core.NewID())
	assert.ErrorIs(t, err, boom)
}
