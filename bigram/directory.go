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


package bigram

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/poiesic/intertext/core"
	"github.com/poiesic/intertext/metrics"
)

// Directory addresses the bigram stores kept under one base directory.
// Path is the only place a store location is derived, so writers and readers
// always agree on it.
type Directory struct {
	base    string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// DirectoryOption configures a Directory.
type DirectoryOption func(*Directory)

// WithDirectoryLogger sets the logger handed to every opened store.
func WithDirectoryLogger(logger *slog.Logger) DirectoryOption {
	return func(d *Directory) {
		d.logger = logger
	}
}

// WithDirectoryMetrics instruments every opened store.
func WithDirectoryMetrics(m *metrics.Metrics) DirectoryOption {
	return func(d *Directory) {
		d.metrics = m
	}
}

// NewDirectory returns a Directory rooted at base. Nothing is created until
// a store is first opened.
func NewDirectory(base string, opts ...DirectoryOption) *Directory {
	d := &Directory{
		base:   base,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("component", "bigram")
	return d
}

// Base returns the base directory.
func (d *Directory) Base() string {
	return d.base
}

// Path returns {base}/{textId}_{unitType}_{feature}.db.
func (d *Directory) Path(textID core.ID, unitType, feature string) string {
	return filepath.Join(d.base, fmt.Sprintf("%s_%s_%s.db", textID.Hex(), unitType, feature))
}

// Open opens the store of a triple, creating it and the base directory when
// missing.
func (d *Directory) Open(textID core.ID, unitType, feature string) (*Store, error) {
	return d.open(textID, unitType, feature, d.metrics)
}

func (d *Directory) open(textID core.ID, unitType, feature string, m *metrics.Metrics) (*Store, error) {
	if err := core.ValidateUnitType(unitType); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(d.base, 0755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}
	return openStore(d.Path(textID, unitType, feature), d.logger, m)
}

// Exists reports whether the store of a triple has been created.
func (d *Directory) Exists(textID core.ID, unitType, feature string) bool {
	info, err := os.Stat(d.Path(textID, unitType, feature))
	return err == nil && info.IsDir()
}

// Lookup opens the store of a triple read-only, looks keys up and closes it
// again. Concurrent lookups on one store do not block each other. A store
// that was never created yields an empty list for every key and is not
// created by the call.
func (d *Directory) Lookup(ctx context.Context, textID core.ID, unitType, feature string, keys []core.BigramKey) (map[core.BigramKey][]core.Evidence, error) {
	if !d.Exists(textID, unitType, feature) {
		d.metrics.StoreLookup("missing", time.Now())
		return emptyResult(keys), nil
	}
	if err := core.ValidateUnitType(unitType); err != nil {
		return nil, err
	}
	store, err := openReader(d.Path(textID, unitType, feature), d.logger, d.metrics)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Lookup(ctx, keys)
}

// Delete removes every store of a text, across unit types and features.
func (d *Directory) Delete(textID core.ID) error {
	paths, err := filepath.Glob(filepath.Join(d.base, textID.Hex()+"_*.db"))
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("removing %s: %w", path, err)
		}
	}
	if len(paths) > 0 {
		d.logger.Info("deleted bigram stores", "text", textID.Hex(), "stores", len(paths))
	}
	return nil
}
