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

	"github.com/poiesic/intertext/core"
)

// DefaultBatchSize is the default number of texts handed out per batch.
const DefaultBatchSize = 50

// TextLister lists every stored text.
type TextLister interface {
	ListTexts(ctx context.Context) ([]*core.Text, error)
}

// TextIterator hands out the stored texts in batches.
type TextIterator struct {
	lister    TextLister
	batchSize int
}

// NewTextIterator creates an iterator; non-positive batch sizes fall back
// to DefaultBatchSize.
func NewTextIterator(lister TextLister, batchSize int) *TextIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &TextIterator{lister: lister, batchSize: batchSize}
}

// Texts returns every stored text.
func (it *TextIterator) Texts(ctx context.Context) ([]*core.Text, error) {
	return it.lister.ListTexts(ctx)
}

// ForEach calls fn with consecutive batches of texts, stopping at the first
// error from fn or on cancellation between batches.
func (it *TextIterator) ForEach(ctx context.Context, fn func([]*core.Text) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	texts, err := it.lister.ListTexts(ctx)
	if err != nil {
		return err
	}
	for start := 0; start < len(texts); start += it.batchSize {
		end := min(start+it.batchSize, len(texts))
		if err := fn(texts[start:end]); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}
