package jobqueue

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
)

// PoolQueue runs tasks in-process on an ants worker pool.
// Tasks run detached from the context passed to Enqueue.
type PoolQueue struct {
	pool       *ants.Pool
	dispatcher *Dispatcher
	logger     *slog.Logger
	wg         sync.WaitGroup
	closed     atomic.Bool
}

var _ Queue = (*PoolQueue)(nil)

// PoolOption configures a PoolQueue.
type PoolOption func(*poolOptions)

type poolOptions struct {
	size   int
	logger *slog.Logger
}

// WithPoolSize sets the number of workers.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) PoolOption {
	return func(o *poolOptions) {
		o.size = size
	}
}

// WithPoolLogger sets the queue's logger.
func WithPoolLogger(logger *slog.Logger) PoolOption {
	return func(o *poolOptions) {
		o.logger = logger
	}
}

// NewPoolQueue creates a queue feeding dispatcher from a worker pool.
func NewPoolQueue(dispatcher *Dispatcher, opts ...PoolOption) (*PoolQueue, error) {
	options := &poolOptions{
		size:   runtime.NumCPU() / 2,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.size < 1 {
		options.size = 1
	}

	pool, err := ants.NewPool(options.size)
	if err != nil {
		return nil, err
	}
	return &PoolQueue{
		pool:       pool,
		dispatcher: dispatcher,
		logger:     options.logger.With("component", "pool-queue"),
	}, nil
}

// Enqueue submits task to the pool. It blocks only while every worker is busy.
func (q *PoolQueue) Enqueue(ctx context.Context, task Task) error {
	if q.closed.Load() {
		return ErrQueueClosed
	}
	q.wg.Add(1)
	err := q.pool.Submit(func() {
		defer q.wg.Done()
		if err := q.dispatcher.Dispatch(context.Background(), task); err != nil {
			q.logger.Error("task failed", "kind", task.Kind, "key", task.Key, "err", err)
		}
	})
	if err != nil {
		q.wg.Done()
		return fmt.Errorf("submitting %s task: %w", task.Kind, err)
	}
	return nil
}

// Wait blocks until every submitted task has finished.
func (q *PoolQueue) Wait() {
	q.wg.Wait()
}

// Close stops accepting tasks, waits for running ones and releases the pool.
func (q *PoolQueue) Close() error {
	if q.closed.Swap(true) {
		return nil
	}
	q.wg.Wait()
	q.pool.Release()
	return nil
}
