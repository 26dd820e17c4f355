package ingestion

import (
	"context"
	"math"
	"testing"

	"github.com/poiesic/intertext/bigram"
	"github.com/poiesic/intertext/core"
	"github.com/poiesic/intertext/metrics"
	"github.com/poiesic/intertext/storage"
	"github.com/poiesic/intertext/storage/badger"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T, opts ...Option) (*Pipeline, *badger.Repositories, *bigram.Directory) {
	repos, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	dir := bigram.NewDirectory(t.TempDir())

	pipeline, err := NewPipeline(repos.Texts, repos.Units, dir, opts...)
	require.NoError(t, err)

	t.Cleanup(func() {
		pipeline.Release()
		repos.Close()
		backend.Close()
	})
	return pipeline, repos, dir
}

func token(form core.FeatureIndex, lemma core.FeatureIndex) core.Token {
	return core.Token{Features: map[string][]core.FeatureIndex{
		core.FeatureForm:    {form},
		core.FeatureLemmata: {lemma},
	}}
}

// addText stores a text with two lines and one phrase spanning both.
// Form 1 occurs twice, form 2 four times and form 3 once.
func addText(t *testing.T, repos *badger.Repositories) *core.Text {
	ctx := context.Background()
	added, err := repos.Texts.AddTexts(ctx, &core.Text{Language: "latin", Title: "aeneid"})
	require.NoError(t, err)
	text := added[0]

	lines := []*core.Unit{
		{TextId: text.Id, Index: 0, UnitType: core.UnitLine, Tokens: []core.Token{token(1, 10), token(2, 20), token(2, 20)}},
		{TextId: text.Id, Index: 1, UnitType: core.UnitLine, Tokens: []core.Token{token(1, 10), token(2, 20), token(3, 30), token(2, 20)}},
	}
	phrase := &core.Unit{TextId: text.Id, Index: 0, UnitType: core.UnitPhrase, Tokens: append(append([]core.Token{}, lines[0].Tokens...), lines[1].Tokens...)}
	_, err = repos.Units.AddUnits(ctx, append(lines, phrase)...)
	require.NoError(t, err)
	return text
}

func TestNewPipeline_RequiresCollaborators(t *testing.T) {
	repos, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	defer repos.Close()
	dir := bigram.NewDirectory(t.TempDir())

	_, err = NewPipeline(nil, repos.Units, dir)
	assert.ErrorIs(t, err, ErrTextRepositoryRequired)
	_, err = NewPipeline(repos.Texts, nil, dir)
	assert.ErrorIs(t, err, ErrUnitRepositoryRequired)
	_, err = NewPipeline(repos.Texts, repos.Units, nil)
	assert.ErrorIs(t, err, ErrDirectoryRequired)
}

func TestRegister_BuildsEveryStore(t *testing.T) {
	m := metrics.New()
	pipeline, repos, dir := setupTest(t, WithMetrics(m), WithPoolSize(2))
	text := addText(t, repos)
	ctx := context.Background()

	require.NoError(t, pipeline.Register(ctx, text.Id))

	for _, unitType := range core.UnitTypes {
		for _, feature := range core.AcceptedFeatures {
			assert.True(t, dir.Exists(text.Id, unitType, feature), "%s/%s", unitType, feature)
		}
	}

	// line 1 holds forms 1 and 3 two positions apart and nowhere else
	got, err := dir.Lookup(ctx, text.Id, core.UnitLine, core.FeatureForm, []core.BigramKey{{Word1: 1, Word2: 3}})
	require.NoError(t, err)
	evidence := got[core.BigramKey{Word1: 1, Word2: 3}]
	require.Len(t, evidence, 1)
	assert.InDelta(t, math.Log((0.5+1)/2), evidence[0].Score, 1e-9)

	lemmata, err := dir.Lookup(ctx, text.Id, core.UnitLine, core.FeatureLemmata, []core.BigramKey{{Word1: 10, Word2: 30}})
	require.NoError(t, err)
	assert.Len(t, lemmata[core.BigramKey{Word1: 10, Word2: 30}], 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TextsRegisteredTotal.WithLabelValues("ok")))
}

func TestRegister_Idempotent(t *testing.T) {
	pipeline, repos, dir := setupTest(t)
	text := addText(t, repos)
	ctx := context.Background()
	key := core.BigramKey{Word1: 1, Word2: 2}

	require.NoError(t, pipeline.Register(ctx, text.Id))
	first, err := dir.Lookup(ctx, text.Id, core.UnitPhrase, core.FeatureForm, []core.BigramKey{key})
	require.NoError(t, err)

	require.NoError(t, pipeline.Register(ctx, text.Id))
	second, err := dir.Lookup(ctx, text.Id, core.UnitPhrase, core.FeatureForm, []core.BigramKey{key})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRegister_UnknownText(t *testing.T) {
	pipeline, _, _ := setupTest(t)

	err := pipeline.Register(context.Background(), core.NewID())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRegister_MalformedUnitLeavesNoStores(t *testing.T) {
	pipeline, repos, dir := setupTest(t, WithThreshold(1))
	ctx := context.Background()
	added, err := repos.Texts.AddTexts(ctx, &core.Text{Language: "latin"})
	require.NoError(t, err)
	textID := added[0].Id

	_, err = repos.Units.AddUnits(ctx,
		&core.Unit{TextId: textID, Index: 0, UnitType: core.UnitLine, Tokens: []core.Token{token(1, 10), token(2, 20), token(3, 30)}},
		&core.Unit{TextId: textID, Index: 1, UnitType: core.UnitLine, Tokens: []core.Token{token(1, 10), {Features: map[string][]core.FeatureIndex{core.FeatureLemmata: {5}}}}},
	)
	require.NoError(t, err)

	err = pipeline.Register(ctx, textID)
	assert.ErrorIs(t, err, bigram.ErrMissingForm)
	assert.False(t, dir.Exists(textID, core.UnitLine, core.FeatureForm))
}

func TestRegisterAsync_And_Unregister(t *testing.T) {
	pipeline, repos, dir := setupTest(t)
	ctx := context.Background()
	first, second := addText(t, repos), addText(t, repos)

	require.NoError(t, pipeline.RegisterAsync(first.Id, second.Id, core.NewID()))
	pipeline.Wait()

	assert.True(t, dir.Exists(first.Id, core.UnitPhrase, core.FeatureLemmata))
	assert.True(t, dir.Exists(second.Id, core.UnitPhrase, core.FeatureLemmata))

	require.NoError(t, pipeline.Unregister(ctx, first.Id))
	for _, unitType := range core.UnitTypes {
		for _, feature := range core.AcceptedFeatures {
			assert.False(t, dir.Exists(first.Id, unitType, feature))
			assert.True(t, dir.Exists(second.Id, unitType, feature))
		}
	}
}
