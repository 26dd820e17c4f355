package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/intertext/bigram"
	"github.com/poiesic/intertext/core"
	"github.com/poiesic/intertext/frequency"
	"github.com/poiesic/intertext/metrics"
	"github.com/poiesic/intertext/storage"
)

// Pipeline builds and removes the bigram stores of texts.
// A text's stores must only be written by one pipeline at a time.
type Pipeline struct {
	textRepository storage.TextRepository
	unitRepository storage.UnitRepository
	directory      *bigram.Directory
	frequencies    *frequency.Calculator
	pool           *ants.Pool
	threshold      int
	logger         *slog.Logger
	metrics        *metrics.Metrics
	wg             sync.WaitGroup
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for asynchronous registration.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithThreshold sets the builders' flush threshold.
// Default is bigram.DefaultFlushThreshold.
func WithThreshold(n int) Option {
	return func(p *Pipeline) error {
		p.threshold = n
		return nil
	}
}

// WithMetrics instruments registrations and the builders they run.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) error {
		p.metrics = m
		return nil
	}
}

// NewPipeline creates a new registration pipeline.
func NewPipeline(
	textRepository storage.TextRepository,
	unitRepository storage.UnitRepository,
	directory *bigram.Directory,
	opts ...Option,
) (*Pipeline, error) {
	if textRepository == nil {
		return nil, ErrTextRepositoryRequired
	}
	if unitRepository == nil {
		return nil, ErrUnitRepositoryRequired
	}
	if directory == nil {
		return nil, ErrDirectoryRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		textRepository: textRepository,
		unitRepository: unitRepository,
		directory:      directory,
		pool:           pool,
		threshold:      bigram.DefaultFlushThreshold,
		logger:         slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	p.frequencies = frequency.NewCalculator(unitRepository, frequency.WithLogger(p.logger))
	p.logger = p.logger.With("component", "ingestion")
	return p, nil
}

// Register builds every store of a text, replacing any existing ones.
// On failure the text is left with no stores at all.
func (p *Pipeline) Register(ctx context.Context, textID core.ID) error {
	err := p.register(ctx, textID)
	p.metrics.TextRegistered(err)
	return err
}

func (p *Pipeline) register(ctx context.Context, textID core.ID) error {
	start := time.Now()
	text, err := p.textRepository.GetText(ctx, textID)
	if err != nil {
		return fmt.Errorf("loading text %s: %w", textID.Hex(), err)
	}

	formFreqs, err := p.frequencies.InverseFrequencies(ctx, core.FeatureForm, textID)
	if err != nil {
		return err
	}

	if err := p.directory.Delete(textID); err != nil {
		return err
	}
	for _, unitType := range core.UnitTypes {
		if err := p.build(ctx, textID, unitType, formFreqs); err != nil {
			if derr := p.directory.Delete(textID); derr != nil {
				p.logger.Error("error removing partial stores", "text", textID.Hex(), "err", derr)
			}
			return fmt.Errorf("building %s bigrams of %s: %w", unitType, textID.Hex(), err)
		}
	}

	p.logger.Info("text registered",
		"text", textID.Hex(),
		"title", text.Title,
		"elapsed", time.Since(start),
	)
	return nil
}

// build streams the units of one granularity into a builder.
func (p *Pipeline) build(ctx context.Context, textID core.ID, unitType string, formFreqs frequency.Table) error {
	builder, err := bigram.NewBuilder(p.directory, textID, unitType,
		bigram.WithThreshold(p.threshold),
		bigram.WithLogger(p.logger),
		bigram.WithMetrics(p.metrics),
	)
	if err != nil {
		return err
	}
	err = p.unitRepository.ForEachUnit(ctx, textID, unitType, func(unit *core.Unit) error {
		return builder.Record(ctx, unit, formFreqs)
	})
	if err != nil {
		if aerr := builder.Abort(); aerr != nil {
			p.logger.Error("error closing aborted builder", "err", aerr)
		}
		return err
	}
	return builder.Close(ctx)
}

// RegisterAsync registers texts on the worker pool and returns once they
// are submitted. Errors are logged.
func (p *Pipeline) RegisterAsync(textIDs ...core.ID) error {
	for _, textID := range textIDs {
		p.wg.Add(1)
		err := p.pool.Submit(func() {
			defer p.wg.Done()
			if err := p.Register(context.Background(), textID); err != nil {
				p.logger.Error("error registering text", "text", textID.Hex(), "err", err)
			}
		})
		if err != nil {
			p.wg.Done()
			return err
		}
	}
	return nil
}

// Wait blocks until every asynchronous registration has finished.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// Unregister removes every store of a text.
func (p *Pipeline) Unregister(ctx context.Context, textID core.ID) error {
	if err := p.directory.Delete(textID); err != nil {
		return fmt.Errorf("unregistering %s: %w", textID.Hex(), err)
	}
	return nil
}

// Release waits for pending registrations and releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	p.wg.Wait()
	if p.pool != nil {
		p.pool.Release()
	}
}
