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


// Package jobqueue moves background tasks from the process that submits them
// to the workers that run them.
//
// A Task carries only plain data; handlers look up whatever they need on the
// worker side. PoolQueue runs tasks in-process on an ants worker pool;
// KafkaQueue publishes them to a topic and a Consume loop feeds them to a
// Dispatcher in the worker process.
package jobqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

var (
	// ErrUnknownKind is returned when no handler is registered for a task kind.
	ErrUnknownKind = errors.New("no handler for task kind")

	// ErrQueueClosed is returned when enqueueing on a closed queue.
	ErrQueueClosed = errors.New("queue is closed")

	// ErrMalformedTask is returned when a task cannot be decoded.
	ErrMalformedTask = errors.New("malformed task")
)

// Task is one unit of background work.
type Task struct {
	Kind    string          `json:"kind"`
	Key     string          `json:"key,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

// NewTask builds a task whose payload is the JSON encoding of payload.
func NewTask(kind, key string, payload any) (Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Task{}, fmt.Errorf("%w: encoding payload: %w", ErrMalformedTask, err)
	}
	return Task{Kind: kind, Key: key, Payload: raw}, nil
}

// Decode unmarshals a task payload into T.
func Decode[T any](payload []byte) (T, error) {
	var result T
	if err := json.Unmarshal(payload, &result); err != nil {
		return result, fmt.Errorf("%w: decoding payload: %w", ErrMalformedTask, err)
	}
	return result, nil
}

// Queue accepts tasks for asynchronous execution.
type Queue interface {
	Enqueue(ctx context.Context, task Task) error
	Close() error
}

// Handler runs one task payload.
type Handler func(ctx context.Context, payload []byte) error

// Dispatcher routes tasks to the handler registered for their kind.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	logger   *slog.Logger
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		handlers: make(map[string]Handler),
		logger:   logger.With("component", "dispatcher"),
	}
}

// Handle registers h for kind, replacing any earlier handler.
func (d *Dispatcher) Handle(kind string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[kind] = h
}

// Kinds lists the registered kinds in sorted order.
func (d *Dispatcher) Kinds() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	kinds := make([]string, 0, len(d.handlers))
	for kind := range d.handlers {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Dispatch runs the handler of task.Kind.
func (d *Dispatcher) Dispatch(ctx context.Context, task Task) error {
	d.mu.RLock()
	h, ok := d.handlers[task.Kind]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, task.Kind)
	}
	d.logger.Debug("dispatching task", "kind", task.Kind, "key", task.Key)
	return h(ctx, task.Payload)
}
