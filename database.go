// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package intertext

import (
	"io"
	"log/slog"

	"github.com/poiesic/intertext/bigram"
	"github.com/poiesic/intertext/ingestion"
	"github.com/poiesic/intertext/jobqueue"
	"github.com/poiesic/intertext/metrics"
	"github.com/poiesic/intertext/multitext"
	"github.com/poiesic/intertext/reindex"
	"github.com/poiesic/intertext/storage"
	"github.com/poiesic/intertext/storage/badger"
)

// Database ties the corpus database to the bigram stores built from it.
type Database struct {
	backend   *badger.Backend
	repos     *badger.Repositories
	directory *bigram.Directory
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	indexDir string
	inMemory bool
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// WithIndexDir sets the base directory of the bigram stores.
// Default is the database path with a "-bigrams" suffix.
func WithIndexDir(dir string) DatabaseOption {
	return func(o *databaseOptions) {
		o.indexDir = dir
	}
}

// WithInMemory keeps the corpus database in memory. Bigram stores still
// live under the index directory.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

// WithMetrics instruments every component.
func WithMetrics(m *metrics.Metrics) DatabaseOption {
	return func(o *databaseOptions) {
		o.metrics = m
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		indexDir: filePath + "-bigrams",
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repos, err := badger.NewRepositories(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	directory := bigram.NewDirectory(options.indexDir,
		bigram.WithDirectoryLogger(options.logger),
		bigram.WithDirectoryMetrics(options.metrics),
	)

	return &Database{
		backend:   backend,
		repos:     repos,
		directory: directory,
		metrics:   options.metrics,
		logger:    options.logger,
	}, nil
}

func (db *Database) Close() error {
	// Close repositories
	if err := db.repos.Close(); err != nil {
		db.logger.Error("error closing repositories", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) TextRepository() storage.TextRepository {
	return db.repos.Texts
}

func (db *Database) UnitRepository() storage.UnitRepository {
	return db.repos.Units
}

func (db *Database) FeatureRepository() storage.FeatureRepository {
	return db.repos.Features
}

func (db *Database) SearchRepository() storage.SearchRepository {
	return db.repos.Searches
}

func (db *Database) MatchRepository() storage.MatchRepository {
	return db.repos.Matches
}

func (db *Database) ResultRepository() storage.ResultRepository {
	return db.repos.Results
}

// Directory returns the bigram store directory.
func (db *Database) Directory() *bigram.Directory {
	return db.directory
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	defaults := []ingestion.Option{
		ingestion.WithLogger(db.logger),
		ingestion.WithMetrics(db.metrics),
	}
	return ingestion.NewPipeline(db.repos.Texts, db.repos.Units, db.directory, append(defaults, opts...)...)
}

func (db *Database) NewEngine() *multitext.Engine {
	return multitext.NewEngine(db.repos.Features, db.directory, db.logger)
}

// NewOrchestrator wires a job orchestrator to queue. queue may be nil in
// processes that only run jobs.
func (db *Database) NewOrchestrator(queue jobqueue.Queue, opts ...multitext.Option) (*multitext.Orchestrator, error) {
	defaults := []multitext.Option{
		multitext.WithLogger(db.logger),
		multitext.WithMetrics(db.metrics),
	}
	return multitext.NewOrchestrator(multitext.Repositories{
		Texts:    db.repos.Texts,
		Searches: db.repos.Searches,
		Matches:  db.repos.Matches,
		Results:  db.repos.Results,
	}, db.NewEngine(), queue, append(defaults, opts...)...)
}

func (db *Database) NewReindexer(registrar reindex.Registrar, config *reindex.Config, progress io.Writer) (*reindex.Reindexer, error) {
	return reindex.NewReindexer(db.repos.Texts, registrar, config, progress, db.logger)
}
