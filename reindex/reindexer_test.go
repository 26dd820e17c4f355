package reindex

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/intertext/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	texts []*core.Text
	err   error
}

func (f *fakeLister) ListTexts(context.Context) ([]*core.Text, error) {
	return f.texts, f.err
}

type fakeRegistrar struct {
	mu       sync.Mutex
	calls    map[core.ID]int
	failures map[core.ID]int // remaining failures per text, -1 for always
}

func (f *fakeRegistrar) Register(_ context.Context, textID core.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[core.ID]int)
	}
	f.calls[textID]++
	switch n := f.failures[textID]; {
	case n < 0:
		return errors.New("corrupt units")
	case n > 0:
		f.failures[textID] = n - 1
		return errors.New("transient")
	}
	return nil
}

func texts(n int) []*core.Text {
	out := make([]*core.Text, n)
	for i := range out {
		out[i] = &core.Text{Id: core.NewID(), Title: "t"}
	}
	return out
}

func fastConfig() *Config {
	return &Config{BatchSize: 2, ReportInterval: 1, MaxRetries: 3, RetryDelay: time.Millisecond}
}

func TestTextIterator_Batches(t *testing.T) {
	all := texts(5)
	it := NewTextIterator(&fakeLister{texts: all}, 2)

	var sizes []int
	var seen []*core.Text
	err := it.ForEach(context.Background(), func(batch []*core.Text) error {
		sizes = append(sizes, len(batch))
		seen = append(seen, batch...)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 1}, sizes)
	assert.Equal(t, all, seen)
}

func TestTextIterator_DefaultBatchSize(t *testing.T) {
	it := NewTextIterator(&fakeLister{}, 0)
	assert.Equal(t, DefaultBatchSize, it.batchSize)
}

func TestReindexer_RunRetriesTransientFailures(t *testing.T) {
	all := texts(3)
	registrar := &fakeRegistrar{failures: map[core.ID]int{all[1].Id: 2}}
	var out bytes.Buffer

	r, err := NewReindexer(&fakeLister{texts: all}, registrar, fastConfig(), &out, nil)
	require.NoError(t, err)

	summary, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Empty(t, summary.Failed)
	assert.Equal(t, 3, registrar.calls[all[1].Id])
	assert.Equal(t, 1, registrar.calls[all[0].Id])
	assert.Contains(t, out.String(), "Reindex complete. 3 texts")
}

func TestReindexer_StopsOnPersistentFailure(t *testing.T) {
	all := texts(3)
	registrar := &fakeRegistrar{failures: map[core.ID]int{all[0].Id: -1}}

	r, err := NewReindexer(&fakeLister{texts: all}, registrar, fastConfig(), &bytes.Buffer{}, nil)
	require.NoError(t, err)

	summary, err := r.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, []core.ID{all[0].Id}, summary.Failed)
	assert.Zero(t, registrar.calls[all[1].Id])
}

func TestReindexer_ContinueOnError(t *testing.T) {
	all := texts(3)
	registrar := &fakeRegistrar{failures: map[core.ID]int{all[0].Id: -1}}
	config := fastConfig()
	config.ContinueOnError = true

	r, err := NewReindexer(&fakeLister{texts: all}, registrar, config, &bytes.Buffer{}, nil)
	require.NoError(t, err)

	summary, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []core.ID{all[0].Id}, summary.Failed)
	assert.Equal(t, 1, registrar.calls[all[2].Id])
}

func TestReindexer_EmptyDatabase(t *testing.T) {
	var out bytes.Buffer
	r, err := NewReindexer(&fakeLister{}, &fakeRegistrar{}, nil, &out, nil)
	require.NoError(t, err)

	summary, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
	assert.Contains(t, out.String(), "No texts found")
}

func TestReindexer_ListError(t *testing.T) {
	r, err := NewReindexer(&fakeLister{err: errors.New("closed")}, &fakeRegistrar{}, nil, &bytes.Buffer{}, nil)
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	assert.Error(t, err)
}

func TestNewReindexer_RequiresRegistrar(t *testing.T) {
	_, err := NewReindexer(&fakeLister{}, nil, nil, &bytes.Buffer{}, nil)
	assert.ErrorIs(t, err, ErrRegistrarRequired)
}
