// Package config loads intertext configuration from a YAML file with IT_*
// environment-variable overrides on top of defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Queue backends.
const (
	QueuePool  = "pool"
	QueueKafka = "kafka"
)

// Config is the top-level configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Index   IndexConfig   `yaml:"index"`
	Queue   QueueConfig   `yaml:"queue"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Reindex ReindexConfig `yaml:"reindex"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	API     APIConfig     `yaml:"api"`
}

// StorageConfig locates the main database.
type StorageConfig struct {
	DataDir string `yaml:"dataDir"`
}

// IndexConfig locates and tunes the bigram stores.
type IndexConfig struct {
	Dir            string `yaml:"dir"`
	FlushThreshold int    `yaml:"flushThreshold"`
	PoolSize       int    `yaml:"poolSize"`
}

// QueueConfig selects and sizes the job queue.
type QueueConfig struct {
	Backend  string `yaml:"backend"`
	PoolSize int    `yaml:"poolSize"`
}

// KafkaConfig holds Kafka broker and topic settings.
type KafkaConfig struct {
	Brokers       []string `yaml:"brokers"`
	Topic         string   `yaml:"topic"`
	ConsumerGroup string   `yaml:"consumerGroup"`
}

// ReindexConfig tunes full reindexing runs.
type ReindexConfig struct {
	BatchSize      int           `yaml:"batchSize"`
	ReportInterval int           `yaml:"reportInterval"`
	MaxRetries     int           `yaml:"maxRetries"`
	RetryDelay     time.Duration `yaml:"retryDelay"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. Missing values keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// APIConfig holds the job API served next to a worker. Port is where serve
// listens; URL is where clients reach it.
type APIConfig struct {
	Port int    `yaml:"port"`
	URL  string `yaml:"url"`
}

// Default returns the configuration used for local development.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir: "./data/intertext",
		},
		Index: IndexConfig{
			Dir:            "./data/bigrams",
			FlushThreshold: 10000,
			PoolSize:       2,
		},
		Queue: QueueConfig{
			Backend:  QueuePool,
			PoolSize: 4,
		},
		Kafka: KafkaConfig{
			Brokers:       []string{"localhost:9092"},
			Topic:         "intertext-jobs",
			ConsumerGroup: "intertext-workers",
		},
		Reindex: ReindexConfig{
			BatchSize:      50,
			ReportInterval: 10,
			MaxRetries:     3,
			RetryDelay:     time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
		API: APIConfig{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}
}

// Validate checks values that have no sensible fallback.
func (c *Config) Validate() error {
	var errs []error
	if c.Storage.DataDir == "" {
		errs = append(errs, errors.New("storage.dataDir is empty"))
	}
	if c.Index.Dir == "" {
		errs = append(errs, errors.New("index.dir is empty"))
	}
	if c.Index.FlushThreshold < 1 {
		errs = append(errs, fmt.Errorf("index.flushThreshold must be positive, got %d", c.Index.FlushThreshold))
	}
	if !slices.Contains([]string{QueuePool, QueueKafka}, c.Queue.Backend) {
		errs = append(errs, fmt.Errorf("queue.backend must be %s or %s, got %q", QueuePool, QueueKafka, c.Queue.Backend))
	}
	if c.Queue.Backend == QueueKafka && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		errs = append(errs, errors.New("kafka queue needs brokers and a topic"))
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// applyEnvOverrides reads IT_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("IT_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("IT_INDEX_DIR"); v != "" {
		cfg.Index.Dir = v
	}
	if v := os.Getenv("IT_FLUSH_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Index.FlushThreshold = n
		}
	}
	if v := os.Getenv("IT_QUEUE_BACKEND"); v != "" {
		cfg.Queue.Backend = v
	}
	if v := os.Getenv("IT_QUEUE_POOL_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Queue.PoolSize = n
		}
	}
	if v := os.Getenv("IT_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("IT_KAFKA_TOPIC"); v != "" {
		cfg.Kafka.Topic = v
	}
	if v := os.Getenv("IT_KAFKA_GROUP"); v != "" {
		cfg.Kafka.ConsumerGroup = v
	}
	if v := os.Getenv("IT_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("IT_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("IT_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if v := os.Getenv("IT_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
		}
	}
	if v := os.Getenv("IT_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}
	if v := os.Getenv("IT_API_URL"); v != "" {
		cfg.API.URL = v
	}
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", level)
	}
}

// NewLogger builds a text or JSON logger writing to w.
func (l LoggingConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch l.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}
