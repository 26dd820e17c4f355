package jobqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaConfig addresses the topic tasks travel through.
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// KafkaQueue publishes tasks to a Kafka topic. Consume runs them on the
// worker side.
type KafkaQueue struct {
	cfg        KafkaConfig
	writer     *kafka.Writer
	dispatcher *Dispatcher
	logger     *slog.Logger
}

var _ Queue = (*KafkaQueue)(nil)

// NewKafkaQueue creates a queue writing to cfg.Topic. dispatcher may be nil
// in processes that only submit.
func NewKafkaQueue(cfg KafkaConfig, dispatcher *Dispatcher, logger *slog.Logger) *KafkaQueue {
	if logger == nil {
		logger = slog.Default()
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		MaxAttempts:  3,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &KafkaQueue{
		cfg:        cfg,
		writer:     w,
		dispatcher: dispatcher,
		logger:     logger.With("component", "kafka-queue", "topic", cfg.Topic),
	}
}

// Enqueue publishes task synchronously.
func (q *KafkaQueue) Enqueue(ctx context.Context, task Task) error {
	msg, err := encodeMessage(task)
	if err != nil {
		return err
	}
	if err := q.writer.WriteMessages(ctx, msg); err != nil {
		q.logger.Error("failed to publish task", "kind", task.Kind, "key", task.Key, "err", err)
		return fmt.Errorf("publishing to kafka: %w", err)
	}
	q.logger.Debug("task published", "kind", task.Kind, "key", task.Key, "value_size", len(msg.Value))
	return nil
}

// Consume fetches tasks and dispatches them until ctx is cancelled. A message
// is committed once its handler returns; handler errors are logged and the
// message is left uncommitted.
func (q *KafkaQueue) Consume(ctx context.Context) error {
	if q.dispatcher == nil {
		return fmt.Errorf("%w: no dispatcher configured", ErrUnknownKind)
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     q.cfg.Brokers,
		Topic:       q.cfg.Topic,
		GroupID:     q.cfg.GroupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})
	defer reader.Close()

	q.logger.Info("consumer started", "group", q.cfg.GroupID)
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				q.logger.Info("consumer stopping", "reason", ctx.Err())
				return nil
			}
			q.logger.Error("failed to fetch message", "err", err)
			continue
		}
		if err := q.handle(ctx, msg); err != nil {
			q.logger.Error("failed to process message",
				"partition", msg.Partition,
				"offset", msg.Offset,
				"err", err,
			)
			continue
		}
		if err := reader.CommitMessages(ctx, msg); err != nil {
			q.logger.Error("failed to commit message",
				"partition", msg.Partition,
				"offset", msg.Offset,
				"err", err,
			)
		}
	}
}

func (q *KafkaQueue) handle(ctx context.Context, msg kafka.Message) error {
	task, err := decodeMessage(msg)
	if err != nil {
		return err
	}
	return q.dispatcher.Dispatch(ctx, task)
}

// Close flushes pending writes and closes the writer.
func (q *KafkaQueue) Close() error {
	return q.writer.Close()
}

func encodeMessage(task Task) (kafka.Message, error) {
	value, err := json.Marshal(task)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("%w: %w", ErrMalformedTask, err)
	}
	return kafka.Message{Key: []byte(task.Key), Value: value}, nil
}

func decodeMessage(msg kafka.Message) (Task, error) {
	task, err := Decode[Task](msg.Value)
	if err != nil {
		return Task{}, err
	}
	if task.Kind == "" {
		return Task{}, fmt.Errorf("%w: missing kind", ErrMalformedTask)
	}
	return task, nil
}
