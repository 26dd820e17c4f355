package core

import (
	"testing"

	"github.com/mus-format/mus-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitMUS_RoundTrip(t *testing.T) {
	unit := Unit{
		Id:       NewID(),
		TextId:   NewID(),
		Index:    42,
		UnitType: UnitPhrase,
		Tokens: []Token{
			{Features: map[string][]FeatureIndex{FeatureForm: {7}, FeatureLemmata: {3, 11}}},
			{Features: map[string][]FeatureIndex{FeatureForm: {0}, FeatureLemmata: {}}},
		},
	}

	bs := make([]byte, UnitMUS.Size(unit))
	n := UnitMUS.Marshal(unit, bs)
	require.Equal(t, len(bs), n)

	got, read, err := UnitMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, n, read)
	assert.Equal(t, unit, got)
}

func TestSearchMUS_RoundTrip(t *testing.T) {
	search := Search{
		Id:         NewID(),
		ResultsId:  "2b5d1b7e-2d43-4b53-9d7a-6d3c2a1e8f00",
		SearchType: SearchTypeMultitext,
		Status:     StatusRun,
		Message:    "",
		Parameters: SearchParameters{
			SearchId: NewID().Hex(),
			TextIds:  []string{NewID().Hex(), NewID().Hex()},
			Feature:  FeatureLemmata,
		},
	}

	bs := make([]byte, SearchMUS.Size(search))
	SearchMUS.Marshal(search, bs)
	got, _, err := SearchMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, search, got)
}

func TestBigramRecordMUS_Truncated(t *testing.T) {
	rec := BigramRecord{Key: NewBigramKey(300, 2), UnitId: NewID(), Score: -1.3862943611198906}
	bs := make([]byte, BigramRecordMUS.Size(rec))
	BigramRecordMUS.Marshal(rec, bs)

	got, _, err := BigramRecordMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, _, err = BigramRecordMUS.Unmarshal(bs[:len(bs)-4])
	assert.Error(t, err)

	_, _, err = BigramRecordMUS.Unmarshal(bs[:6])
	assert.ErrorIs(t, err, mus.ErrTooSmallByteSlice)
}

func TestMultiResultMUS_RoundTrip(t *testing.T) {
	result := *NewMultiResult(NewID(), NewID(), NewTokenBigram("virum", "arma"), []Evidence{
		{UnitId: NewID(), Score: 0.25},
		{UnitId: NewID(), Score: -2},
	})

	bs := make([]byte, MultiResultMUS.Size(result))
	n := MultiResultMUS.Marshal(result, bs)
	require.Equal(t, len(bs), n)

	skipped, err := MultiResultMUS.Skip(bs)
	require.NoError(t, err)
	assert.Equal(t, n, skipped)

	got, _, err := MultiResultMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, result, got)
}

func TestObjectIDMUS_RejectsOversizedArray(t *testing.T) {
	id := NewID()
	bs := make([]byte, ObjectIDMUS.Size(id))
	ObjectIDMUS.Marshal(id, bs)

	got, _, err := ObjectIDMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	bs[0] = 13
	_, _, err = ObjectIDMUS.Unmarshal(bs)
	assert.Error(t, err)
}
