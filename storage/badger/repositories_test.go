package badger

import (
	"context"
	"sync"
	"testing"

	"github.com/poiesic/intertext/core"
	"github.com/poiesic/intertext/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepositories(t *testing.T) *Repositories {
	repos, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		repos.Close()
		backend.Close()
	})
	return repos
}

func line(textID core.ID, index int, forms ...core.FeatureIndex) *core.Unit {
	tokens := make([]core.Token, len(forms))
	for i, f := range forms {
		tokens[i] = core.Token{Features: map[string][]core.FeatureIndex{
			core.FeatureForm:    {f},
			core.FeatureLemmata: {f + 100},
		}}
	}
	return &core.Unit{TextId: textID, Index: index, UnitType: core.UnitLine, Tokens: tokens}
}

func TestTextRepository(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	added, err := repos.Texts.AddTexts(ctx,
		&core.Text{Language: "latin", Author: "vergil", Title: "aeneid"},
		&core.Text{Language: "latin", Author: "lucan", Title: "bellum civile"},
	)
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.False(t, added[0].Id.IsZero())

	got, err := repos.Texts.GetText(ctx, added[1].Id)
	require.NoError(t, err)
	assert.Equal(t, "lucan", got.Author)

	ordered, err := repos.Texts.GetTexts(ctx, added[1].Id, added[0].Id)
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, added[1].Id, ordered[0].Id)
	assert.Equal(t, added[0].Id, ordered[1].Id)

	_, err = repos.Texts.GetTexts(ctx, added[0].Id, core.NewID())
	assert.ErrorIs(t, err, storage.ErrNotFound)

	all, err := repos.Texts.ListTexts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = repos.Units.AddUnits(ctx, line(added[0].Id, 0, 1, 2))
	require.NoError(t, err)

	require.NoError(t, repos.Texts.DeleteText(ctx, added[0].Id))
	_, err = repos.Texts.GetText(ctx, added[0].Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, repos.Texts.DeleteText(ctx, added[0].Id), storage.ErrNotFound)

	var units int
	err = repos.Units.ForEachUnit(ctx, added[0].Id, core.UnitLine, func(*core.Unit) error {
		units++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, units)
}

func TestUnitRepository_ForEachUnitOrdered(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()
	textID, otherID := core.NewID(), core.NewID()

	phrase := &core.Unit{TextId: textID, Index: 0, UnitType: core.UnitPhrase, Tokens: line(textID, 0, 9).Tokens}
	_, err := repos.Units.AddUnits(ctx,
		line(textID, 2, 5, 6),
		line(textID, 0, 1, 2),
		line(otherID, 0, 7),
		line(textID, 1, 3, 4),
		phrase,
	)
	require.NoError(t, err)

	var indices []int
	err = repos.Units.ForEachUnit(ctx, textID, core.UnitLine, func(u *core.Unit) error {
		assert.Equal(t, textID, u.TextId)
		assert.Equal(t, core.UnitLine, u.UnitType)
		indices = append(indices, u.Index)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, indices)

	var phrases int
	err = repos.Units.ForEachUnit(ctx, textID, core.UnitPhrase, func(*core.Unit) error {
		phrases++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, phrases)

	err = repos.Units.ForEachUnit(ctx, textID, "paragraph", func(*core.Unit) error { return nil })
	assert.ErrorIs(t, err, core.ErrUnknownUnitType)
}

func TestUnitRepository_CountFeatures(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()
	textID := core.NewID()

	_, err := repos.Units.AddUnits(ctx, line(textID, 0, 1, 2, 1), line(textID, 1, 2, 3))
	require.NoError(t, err)
	// phrases repeat the same tokens and must not be counted twice
	_, err = repos.Units.AddUnits(ctx, &core.Unit{TextId: textID, UnitType: core.UnitPhrase, Tokens: line(textID, 0, 1, 2, 1).Tokens})
	require.NoError(t, err)

	counts, err := repos.Units.CountFeatures(ctx, textID, core.FeatureForm)
	require.NoError(t, err)
	assert.Equal(t, map[core.FeatureIndex]int{1: 2, 2: 2, 3: 1}, counts)

	lemmata, err := repos.Units.CountFeatures(ctx, textID, core.FeatureLemmata)
	require.NoError(t, err)
	assert.Equal(t, map[core.FeatureIndex]int{101: 2, 102: 2, 103: 1}, lemmata)
}

func TestFeatureRepository_DenseIndices(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	arma, err := repos.Features.GetOrCreateFeature(ctx, "latin", core.FeatureForm, "arma")
	require.NoError(t, err)
	virum, err := repos.Features.GetOrCreateFeature(ctx, "latin", core.FeatureForm, "virum")
	require.NoError(t, err)
	again, err := repos.Features.GetOrCreateFeature(ctx, "latin", core.FeatureForm, "arma")
	require.NoError(t, err)
	greek, err := repos.Features.GetOrCreateFeature(ctx, "greek", core.FeatureForm, "arma")
	require.NoError(t, err)

	assert.Equal(t, core.FeatureIndex(0), arma.Index)
	assert.Equal(t, core.FeatureIndex(1), virum.Index)
	assert.Equal(t, arma.Index, again.Index)
	assert.Equal(t, core.FeatureIndex(0), greek.Index, "each language has its own index space")

	found, err := repos.Features.FindFeatures(ctx, "latin", core.FeatureForm, "virum", "cano", "arma")
	require.NoError(t, err)
	assert.Equal(t, map[string]core.FeatureIndex{"arma": 0, "virum": 1}, found)
}

func TestFeatureRepository_ConcurrentCreate(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	indices := make([]core.FeatureIndex, 8)
	for i := range indices {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := repos.Features.GetOrCreateFeature(ctx, "latin", core.FeatureLemmata, "cano")
			assert.NoError(t, err)
			if f != nil {
				indices[i] = f.Index
			}
		}(i)
	}
	wg.Wait()

	for _, idx := range indices {
		assert.Equal(t, indices[0], idx)
	}
}

func TestSearchRepository_Lifecycle(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	search, err := repos.Searches.AddSearch(ctx, &core.Search{
		ResultsId:  "job-1",
		SearchType: core.SearchTypeMultitext,
		Status:     core.StatusInit,
	})
	require.NoError(t, err)
	require.False(t, search.Id.IsZero())

	_, err = repos.Searches.AddSearch(ctx, search)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	found, err := repos.Searches.FindByResultsID(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, search.Id, found.Id)

	search.Status = core.StatusDone
	_, err = repos.Searches.UpdateSearch(ctx, search)
	assert.ErrorIs(t, err, storage.ErrInvalidTransition)

	search.Status = core.StatusRun
	_, err = repos.Searches.UpdateSearch(ctx, search)
	require.NoError(t, err)

	search.Status = core.StatusDone
	search.Message = "Done in 0.1 seconds"
	_, err = repos.Searches.UpdateSearch(ctx, search)
	require.NoError(t, err)

	search.Status = core.StatusFailed
	_, err = repos.Searches.UpdateSearch(ctx, search)
	assert.ErrorIs(t, err, storage.ErrInvalidTransition)

	got, err := repos.Searches.GetSearch(ctx, search.Id)
	require.NoError(t, err)
	assert.Equal(t, core.StatusDone, got.Status)
	assert.Equal(t, "Done in 0.1 seconds", got.Message)

	_, err = repos.Searches.UpdateSearch(ctx, &core.Search{Id: core.NewID()})
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = repos.Searches.FindByResultsID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSearchRepository_RejectsReusedResultsID(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	first, err := repos.Searches.AddSearch(ctx, &core.Search{ResultsId: "job-1", Status: core.StatusInit})
	require.NoError(t, err)

	_, err = repos.Searches.AddSearch(ctx, &core.Search{ResultsId: "job-1", Status: core.StatusInit})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	found, err := repos.Searches.FindByResultsID(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, first.Id, found.Id)

	second, err := repos.Searches.AddSearch(ctx, &core.Search{ResultsId: "job-2", Status: core.StatusInit})
	require.NoError(t, err)
	second.ResultsId = "job-1"
	_, err = repos.Searches.UpdateSearch(ctx, second)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	found, err = repos.Searches.FindByResultsID(ctx, "job-2")
	require.NoError(t, err)
	assert.Equal(t, second.Id, found.Id)
}

func TestMatchAndResultRepositories_KeepOrder(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()
	searchID := core.NewID()

	var matches []*core.Match
	for i := 0; i < 5; i++ {
		matches = append(matches, &core.Match{SearchId: searchID, Index: i, MatchedFeatures: []string{"a", "b"}})
	}
	_, err := repos.Matches.AddMatches(ctx, matches...)
	require.NoError(t, err)
	_, err = repos.Matches.AddMatches(ctx, &core.Match{SearchId: core.NewID(), MatchedFeatures: []string{"x"}})
	require.NoError(t, err)

	got, err := repos.Matches.GetMatches(ctx, searchID)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, m := range got {
		assert.Equal(t, matches[i].Id, m.Id)
		assert.Equal(t, i, m.Index)
	}

	jobID := core.NewID()
	r1 := core.NewMultiResult(jobID, got[0].Id, core.TokenBigram{"a", "b"}, []core.Evidence{{UnitId: core.NewID(), Score: 0.3}})
	r2 := core.NewMultiResult(jobID, got[1].Id, core.TokenBigram{"a", "b"}, nil)
	require.NoError(t, repos.Results.AddMultiResults(ctx, r1, r2))

	results, err := repos.Results.GetMultiResults(ctx, jobID)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, r1, results[0])
	assert.Equal(t, r2.Id, results[1].Id)

	bad := &core.MultiResult{SearchId: jobID, Units: []core.ID{core.NewID()}}
	assert.ErrorIs(t, repos.Results.AddMultiResults(ctx, bad), core.ErrInvalidMultiResult)
}
