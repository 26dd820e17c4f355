package intertext

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/intertext/core"
	"github.com/poiesic/intertext/jobqueue"
	"github.com/poiesic/intertext/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		// Verify components are initialized
		assert.NotNil(t, db.TextRepository())
		assert.NotNil(t, db.UnitRepository())
		assert.NotNil(t, db.FeatureRepository())
		assert.NotNil(t, db.SearchRepository())
		assert.NotNil(t, db.MatchRepository())
		assert.NotNil(t, db.ResultRepository())
		assert.Equal(t, tmpDir+"-bigrams", db.Directory().Base())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a database at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestDatabase_Close(t *testing.T) {
	db, err := NewDatabase(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, db)

	assert.NoError(t, db.Close())
}

func TestDatabase_FactoryMethods(t *testing.T) {
	db, err := NewDatabase("", WithInMemory(), WithIndexDir(t.TempDir()))
	require.NoError(t, err)
	defer db.Close()

	t.Run("can create ingestion pipeline", func(t *testing.T) {
		pipeline, err := db.NewIngestionPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create orchestrator", func(t *testing.T) {
		o, err := db.NewOrchestrator(nil)
		require.NoError(t, err)
		require.NotNil(t, o)
	})

	t.Run("can create reindexer", func(t *testing.T) {
		pipeline, err := db.NewIngestionPipeline()
		require.NoError(t, err)
		defer pipeline.Release()

		r, err := db.NewReindexer(pipeline, nil, &bytes.Buffer{})
		require.NoError(t, err)
		require.NotNil(t, r)
	})
}

// TestDatabase_IndexAndSearch runs a text through registration and a
// multitext job.
func TestDatabase_IndexAndSearch(t *testing.T) {
	m := metrics.New()
	db, err := NewDatabase("", WithInMemory(), WithIndexDir(t.TempDir()), WithMetrics(m))
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	feature := func(token string) core.FeatureIndex {
		f, err := db.FeatureRepository().GetOrCreateFeature(ctx, "latin", core.FeatureLemmata, token)
		require.NoError(t, err)
		return f.Index
	}
	arma, vir, cano := feature("arma"), feature("vir"), feature("cano")

	added, err := db.TextRepository().AddTexts(ctx, &core.Text{Language: "latin", Author: "vergil", Title: "aeneid"})
	require.NoError(t, err)
	text := added[0]

	tok := func(form core.FeatureIndex, lemma core.FeatureIndex) core.Token {
		return core.Token{Features: map[string][]core.FeatureIndex{
			core.FeatureForm:    {form},
			core.FeatureLemmata: {lemma},
		}}
	}
	tokens := []core.Token{tok(100, arma), tok(101, vir), tok(102, cano)}
	_, err = db.UnitRepository().AddUnits(ctx,
		&core.Unit{TextId: text.Id, UnitType: core.UnitLine, Tokens: tokens},
		&core.Unit{TextId: text.Id, UnitType: core.UnitPhrase, Tokens: tokens},
	)
	require.NoError(t, err)

	pipeline, err := db.NewIngestionPipeline()
	require.NoError(t, err)
	defer pipeline.Release()
	require.NoError(t, pipeline.Register(ctx, text.Id))

	parent, err := db.SearchRepository().AddSearch(ctx, &core.Search{
		ResultsId:  "primary",
		Status:     core.StatusDone,
		Parameters: core.SearchParameters{Feature: core.FeatureLemmata},
	})
	require.NoError(t, err)
	_, err = db.MatchRepository().AddMatches(ctx, &core.Match{SearchId: parent.Id, MatchedFeatures: []string{"cano", "arma"}})
	require.NoError(t, err)

	dispatcher := jobqueue.NewDispatcher(nil)
	queue, err := jobqueue.NewPoolQueue(dispatcher)
	require.NoError(t, err)
	defer queue.Close()

	o, err := db.NewOrchestrator(queue)
	require.NoError(t, err)
	o.Register(dispatcher)

	require.NoError(t, o.Submit(ctx, "multi-1", parent.Id.Hex(), []string{text.Id.Hex()}))
	queue.Wait()

	status, err := o.Status(ctx, "multi-1")
	require.NoError(t, err)
	require.Equal(t, core.StatusDone, status.Status, status.Message)

	results, err := o.Results(ctx, "multi-1")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, core.TokenBigram{"arma", "cano"}, results[0].Bigram)
	assert.Len(t, results[0].Units, 1)
}
