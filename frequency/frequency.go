// Package frequency computes inverse text frequencies of feature values.
package frequency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/intertext/core"
)

// ErrUnknownFeatureType is returned for feature types with no registered
// computation path.
var ErrUnknownFeatureType = errors.New("unknown feature type")

// CountSource supplies raw occurrence counts of feature values in a text.
type CountSource interface {
	CountFeatures(ctx context.Context, textID core.ID, featureType string) (map[core.FeatureIndex]int, error)
}

// Table is a dense inverse frequency table indexed by FeatureIndex.
type Table []float64

// At returns the inverse frequency of i, or 0 when i is outside the table.
func (t Table) At(i core.FeatureIndex) float64 {
	if i < 0 || int64(i) >= int64(len(t)) {
		return 0
	}
	return t[i]
}

// NewTable builds a table sized max(index)+1 from raw counts.
// Entries that never occurred, or occurred a non-positive number of times,
// stay 0.
func NewTable(counts map[core.FeatureIndex]int) Table {
	var size core.FeatureIndex
	for i := range counts {
		if i >= size {
			size = i + 1
		}
	}
	table := make(Table, size)
	for i, n := range counts {
		if i >= 0 && n > 0 {
			table[i] = 1 / float64(n)
		}
	}
	return table
}

// Calculator turns counts from a CountSource into Tables.
type Calculator struct {
	source     CountSource
	registered map[string]bool
	logger     *slog.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger sets the calculator's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Calculator) {
		c.logger = logger
	}
}

// NewCalculator returns a calculator for the form and lemmata feature types.
func NewCalculator(source CountSource, opts ...Option) *Calculator {
	c := &Calculator{
		source: source,
		registered: map[string]bool{
			core.FeatureForm:    true,
			core.FeatureLemmata: true,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "frequency")
	return c
}

// InverseFrequencies returns the inverse frequency table of featureType
// within a text.
func (c *Calculator) InverseFrequencies(ctx context.Context, featureType string, textID core.ID) (Table, error) {
	if !c.registered[featureType] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeatureType, featureType)
	}
	counts, err := c.source.CountFeatures(ctx, textID, featureType)
	if err != nil {
		return nil, err
	}
	table := NewTable(counts)
	c.logger.Debug("computed inverse frequencies", "text", textID.Hex(), "feature", featureType, "distinct", len(counts), "size", len(table))
	return table, nil
}
