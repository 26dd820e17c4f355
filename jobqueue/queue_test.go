package jobqueue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ResultsID string   `json:"results_id"`
	TextIDs   []string `json:"text_ids"`
}

func TestNewTaskAndDecode(t *testing.T) {
	task, err := NewTask("multitext", "job-1", payload{ResultsID: "job-1", TextIDs: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "multitext", task.Kind)
	assert.Equal(t, "job-1", task.Key)

	got, err := Decode[payload](task.Payload)
	require.NoError(t, err)
	assert.Equal(t, payload{ResultsID: "job-1", TextIDs: []string{"a", "b"}}, got)

	_, err = Decode[payload]([]byte("{not json"))
	assert.ErrorIs(t, err, ErrMalformedTask)
}

func TestDispatcher(t *testing.T) {
	d := NewDispatcher(nil)
	var got []byte
	d.Handle("echo", func(_ context.Context, p []byte) error {
		got = p
		return nil
	})
	d.Handle("fail", func(context.Context, []byte) error {
		return errors.New("boom")
	})

	assert.Equal(t, []string{"echo", "fail"}, d.Kinds())
	require.NoError(t, d.Dispatch(context.Background(), Task{Kind: "echo", Payload: []byte(`"hi"`)}))
	assert.Equal(t, `"hi"`, string(got))
	assert.EqualError(t, d.Dispatch(context.Background(), Task{Kind: "fail"}), "boom")
	assert.ErrorIs(t, d.Dispatch(context.Background(), Task{Kind: "missing"}), ErrUnknownKind)
}

func TestPoolQueue_RunsEveryTask(t *testing.T) {
	d := NewDispatcher(nil)
	var count atomic.Int32
	var mu sync.Mutex
	seen := make(map[string]bool)
	d.Handle("count", func(_ context.Context, p []byte) error {
		count.Add(1)
		mu.Lock()
		seen[string(p)] = true
		mu.Unlock()
		return nil
	})

	q, err := NewPoolQueue(d, WithPoolSize(3))
	require.NoError(t, err)

	for _, p := range []string{`1`, `2`, `3`, `4`, `5`, `6`, `7`} {
		require.NoError(t, q.Enqueue(context.Background(), Task{Kind: "count", Payload: []byte(p)}))
	}
	q.Wait()

	assert.Equal(t, int32(7), count.Load())
	assert.Len(t, seen, 7)
	require.NoError(t, q.Close())
}

func TestPoolQueue_FailingTaskDoesNotStopQueue(t *testing.T) {
	d := NewDispatcher(nil)
	var ran atomic.Int32
	d.Handle("ok", func(context.Context, []byte) error {
		ran.Add(1)
		return nil
	})

	q, err := NewPoolQueue(d, WithPoolSize(1))
	require.NoError(t, err)
	defer q.Close()

	require.NoError(t, q.Enqueue(context.Background(), Task{Kind: "unknown"}))
	require.NoError(t, q.Enqueue(context.Background(), Task{Kind: "ok"}))
	q.Wait()

	assert.Equal(t, int32(1), ran.Load())
}

func TestPoolQueue_TasksOutliveEnqueueContext(t *testing.T) {
	d := NewDispatcher(nil)
	done := make(chan error, 1)
	d.Handle("ctx", func(ctx context.Context, _ []byte) error {
		done <- ctx.Err()
		return nil
	})

	q, err := NewPoolQueue(d)
	require.NoError(t, err)
	defer q.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, q.Enqueue(ctx, Task{Kind: "ctx"}))
	assert.NoError(t, <-done)
}

func TestPoolQueue_Closed(t *testing.T) {
	q, err := NewPoolQueue(NewDispatcher(nil))
	require.NoError(t, err)

	require.NoError(t, q.Close())
	require.NoError(t, q.Close())
	assert.ErrorIs(t, q.Enqueue(context.Background(), Task{Kind: "x"}), ErrQueueClosed)
}

func TestKafkaMessageRoundTrip(t *testing.T) {
	task, err := NewTask("multitext", "job-9", payload{ResultsID: "job-9"})
	require.NoError(t, err)

	msg, err := encodeMessage(task)
	require.NoError(t, err)
	assert.Equal(t, "job-9", string(msg.Key))

	decoded, err := decodeMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, task.Kind, decoded.Kind)
	assert.JSONEq(t, string(task.Payload), string(decoded.Payload))
}

func TestKafkaQueue_HandleDispatches(t *testing.T) {
	d := NewDispatcher(nil)
	var got payload
	d.Handle("multitext", func(_ context.Context, p []byte) error {
		var err error
		got, err = Decode[payload](p)
		return err
	})
	q := NewKafkaQueue(KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "jobs"}, d, nil)
	defer q.Close()

	task, err := NewTask("multitext", "job-2", payload{ResultsID: "job-2"})
	require.NoError(t, err)
	msg, err := encodeMessage(task)
	require.NoError(t, err)

	require.NoError(t, q.handle(context.Background(), msg))
	assert.Equal(t, "job-2", got.ResultsID)

	assert.ErrorIs(t, q.handle(context.Background(), kafka.Message{Value: []byte(`{"payload":{}}`)}), ErrMalformedTask)
	assert.ErrorIs(t, q.handle(context.Background(), kafka.Message{Value: []byte(`garbage`)}), ErrMalformedTask)
}
