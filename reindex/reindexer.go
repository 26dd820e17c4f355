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


package reindex

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/intertext/core"
)

// Registrar rebuilds the stores of one text.
type Registrar interface {
	Register(ctx context.Context, textID core.ID) error
}

// Config holds configuration for a reindexing run.
type Config struct {
	// BatchSize is the number of texts fetched per batch
	BatchSize int

	// ReportInterval is how often to report progress (number of texts)
	ReportInterval int

	// MaxRetries is the number of attempts per text
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// ContinueOnError keeps going after a text fails all its attempts
	ContinueOnError bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: 10,
		MaxRetries:     3,
		RetryDelay:     time.Second,
	}
}

// Summary reports the outcome of a run.
type Summary struct {
	Total   int
	Failed  []core.ID
	Elapsed time.Duration
}

// Reindexer rebuilds the stores of every text.
type Reindexer struct {
	registrar Registrar
	iterator  *TextIterator
	config    *Config
	progress  io.Writer
	logger    *slog.Logger
}

// NewReindexer creates a reindexer.
// progress: where to write progress output (typically os.Stderr)
func NewReindexer(lister TextLister, registrar Registrar, config *Config, progress io.Writer, logger *slog.Logger) (*Reindexer, error) {
	if registrar == nil {
		return nil, ErrRegistrarRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reindexer{
		registrar: registrar,
		iterator:  NewTextIterator(lister, config.BatchSize),
		config:    config,
		progress:  progress,
		logger:    logger.With("component", "reindex"),
	}, nil
}

// Run rebuilds every text's stores. Unless ContinueOnError is set, the first
// text that fails every attempt stops the run.
func (r *Reindexer) Run(ctx context.Context) (*Summary, error) {
	texts, err := r.iterator.Texts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing texts: %w", err)
	}
	summary := &Summary{Total: len(texts)}
	if len(texts) == 0 {
		fmt.Fprintf(r.progress, "No texts found in database\n")
		return summary, nil
	}
	fmt.Fprintf(r.progress, "Reindexing %d texts (batch size: %d)\n", len(texts), r.iterator.batchSize)

	tracker := NewProgressTracker(r.progress, "texts", len(texts), r.config.ReportInterval)
	tracker.Start()

	err = r.iterator.ForEach(ctx, func(batch []*core.Text) error {
		for _, text := range batch {
			err := RetryWithBackoff(ctx, r.logger, r.config.MaxRetries, r.config.RetryDelay, func(ctx context.Context) error {
				return r.registrar.Register(ctx, text.Id)
			})
			tracker.Done(err != nil)
			if err == nil {
				continue
			}
			summary.Failed = append(summary.Failed, text.Id)
			r.logger.Error("failed to reindex text", "text", text.Id.Hex(), "title", text.Title, "err", err)
			if !r.config.ContinueOnError {
				return fmt.Errorf("reindexing %s: %w", text.Id.Hex(), err)
			}
		}
		return nil
	})
	tracker.Finish()
	summary.Elapsed = tracker.Elapsed()
	if err != nil {
		return summary, err
	}

	fmt.Fprintf(r.progress, "Reindex complete. %d texts in %v, %d failed\n",
		summary.Total, summary.Elapsed.Round(time.Millisecond), len(summary.Failed))
	return summary, nil
}
