package bigram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/intertext/core"
	"github.com/poiesic/intertext/metrics"
)

// DefaultFlushThreshold is the number of buffered records, summed over all
// features, above which a builder flushes.
const DefaultFlushThreshold = 10000

// Builder indexes the units of one text at one granularity.
//
// Records are buffered per feature. Once the total buffered count exceeds
// the threshold, the buffer of the feature that crossed it is appended to its
// store. Close flushes what is left and finalizes every store it touched,
// once, after the last write.
type Builder struct {
	dir       *Directory
	textID    core.ID
	unitType  string
	features  []string
	threshold int
	logger    *slog.Logger
	metrics   *metrics.Metrics

	buffers  map[string][]core.BigramRecord
	buffered int
	stores   map[string]*Store
	touched  []string
	closed   bool
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithThreshold overrides DefaultFlushThreshold.
func WithThreshold(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.threshold = n
		}
	}
}

// WithLogger sets the builder's logger.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithMetrics instruments the builder and the stores it writes. Defaults to
// the directory's metrics.
func WithMetrics(m *metrics.Metrics) BuilderOption {
	return func(b *Builder) {
		b.metrics = m
	}
}

// WithFeatures restricts the feature types indexed. Defaults to
// core.AcceptedFeatures.
func WithFeatures(features ...string) BuilderOption {
	return func(b *Builder) {
		b.features = features
	}
}

// NewBuilder returns a builder writing the stores of (textID, unitType) under dir.
func NewBuilder(dir *Directory, textID core.ID, unitType string, opts ...BuilderOption) (*Builder, error) {
	if err := core.ValidateUnitType(unitType); err != nil {
		return nil, err
	}
	b := &Builder{
		dir:       dir,
		textID:    textID,
		unitType:  unitType,
		features:  core.AcceptedFeatures,
		threshold: DefaultFlushThreshold,
		logger:    slog.Default(),
		metrics:   dir.metrics,
		buffers:   make(map[string][]core.BigramRecord),
		stores:    make(map[string]*Store),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("component", "bigram-builder", "text", textID.Hex(), "unit_type", unitType)
	return b, nil
}

// Record scores the bigrams of unit for every feature and buffers them.
// formFreqs holds the inverse frequencies of the text's form values.
func (b *Builder) Record(ctx context.Context, unit *core.Unit, formFreqs InverseFrequencies) error {
	if b.closed {
		return ErrBuilderClosed
	}
	forms, values, err := positionedValues(unit, b.features)
	if err != nil {
		return err
	}
	for _, feature := range b.features {
		records := scoreUnit(unit.Id, forms, values[feature], formFreqs)
		if len(records) == 0 {
			continue
		}
		b.buffers[feature] = append(b.buffers[feature], records...)
		b.buffered += len(records)
		if b.buffered > b.threshold {
			if err := b.flush(ctx, feature, "threshold"); err != nil {
				return err
			}
		}
	}
	return nil
}

// Buffered returns the number of records not yet written.
func (b *Builder) Buffered() int {
	return b.buffered
}

func (b *Builder) flush(ctx context.Context, feature, reason string) error {
	records := b.buffers[feature]
	if len(records) == 0 {
		return nil
	}
	store, err := b.store(feature)
	if err != nil {
		return err
	}
	if err := store.Append(ctx, records); err != nil {
		return fmt.Errorf("flushing %s bigrams: %w", feature, err)
	}
	b.buffered -= len(records)
	b.buffers[feature] = records[:0]
	b.metrics.BufferFlushed(feature, reason)
	b.metrics.BigramsWritten(feature, len(records))
	b.logger.Debug("flushed bigram buffer", "feature", feature, "records", len(records), "reason", reason)
	return nil
}

// store opens the feature's store on first use.
func (b *Builder) store(feature string) (*Store, error) {
	if store, ok := b.stores[feature]; ok {
		return store, nil
	}
	store, err := b.dir.open(b.textID, b.unitType, feature, b.metrics)
	if err != nil {
		return nil, err
	}
	b.stores[feature] = store
	b.touched = append(b.touched, feature)
	return store, nil
}

// Close flushes every remaining buffer, finalizes each touched store and
// closes them. The builder cannot be used afterwards.
func (b *Builder) Close(ctx context.Context) error {
	if b.closed {
		return nil
	}
	var errs []error
	for _, feature := range b.features {
		if err := b.flush(ctx, feature, "close"); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		for _, feature := range b.touched {
			if err := b.stores[feature].Finalize(ctx); err != nil {
				errs = append(errs, fmt.Errorf("finalizing %s store: %w", feature, err))
			}
		}
	}
	errs = append(errs, b.release())
	if err := errors.Join(errs...); err != nil {
		return err
	}
	b.logger.Info("bigram index built", "stores", len(b.touched))
	return nil
}

// Abort closes every opened store without flushing or finalizing.
func (b *Builder) Abort() error {
	if b.closed {
		return nil
	}
	return b.release()
}

func (b *Builder) release() error {
	b.closed = true
	var errs []error
	for _, feature := range b.touched {
		if err := b.stores[feature].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	b.buffers = nil
	b.buffered = 0
	return errors.Join(errs...)
}
