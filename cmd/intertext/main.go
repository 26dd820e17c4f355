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


package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/poiesic/intertext"
	"github.com/poiesic/intertext/api"
	"github.com/poiesic/intertext/config"
	"github.com/poiesic/intertext/core"
	"github.com/poiesic/intertext/ingestion"
	"github.com/poiesic/intertext/jobqueue"
	"github.com/poiesic/intertext/metrics"
	"github.com/poiesic/intertext/multitext"
	"github.com/poiesic/intertext/reindex"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const configKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	dbFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory (overrides storage.dataDir)",
		},
		&cli.StringFlag{
			Name:  "index-dir",
			Usage: "Base directory of the bigram stores (overrides index.dir)",
		},
	}

	pollFlags := append([]cli.Flag{
		&cli.StringFlag{
			Name:  "server",
			Usage: "Base URL of a running worker to query instead of the database (default with kafka: api.url)",
		},
	}, dbFlags...)

	return &cli.App{
		Name:  "intertext",
		Usage: "Bigram index and multitext search over featurized corpora",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "index",
				Usage:     "Build the bigram stores of one or more texts",
				ArgsUsage: "TEXT_ID...",
				Action:    indexCommand,
				Flags:     dbFlags,
			},
			{
				Name:      "unindex",
				Usage:     "Remove the bigram stores of one or more texts",
				ArgsUsage: "TEXT_ID...",
				Action:    unindexCommand,
				Flags:     dbFlags,
			},
			{
				Name:   "reindex",
				Usage:  "Rebuild the bigram stores of every text",
				Action: reindexCommand,
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:  "continue-on-error",
						Usage: "Keep going after a text fails every retry",
					},
				}, dbFlags...),
			},
			{
				Name:   "submit",
				Usage:  "Submit a multitext job over the matches of a finished search",
				Action: submitCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "search",
						Aliases:  []string{"s"},
						Usage:    "Id of the finished primary search",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:     "text",
						Aliases:  []string{"t"},
						Usage:    "Id of a text to search (repeatable)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "results-id",
						Usage: "Correlation id of the job (default: a new UUID)",
					},
				}, dbFlags...),
			},
			{
				Name:      "status",
				Usage:     "Show the status of a multitext job",
				ArgsUsage: "RESULTS_ID",
				Action:    statusCommand,
				Flags:     pollFlags,
			},
			{
				Name:      "results",
				Usage:     "List the results of a finished multitext job",
				ArgsUsage: "RESULTS_ID",
				Action:    resultsCommand,
				Flags:     pollFlags,
			},
			{
				Name:   "serve",
				Usage:  "Consume multitext jobs from Kafka and answer job queries over HTTP",
				Action: serveCommand,
				Flags:  dbFlags,
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}

	logger, err := cfg.Logging.NewLogger(os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

// appConfig returns the config loaded by setupLogger with command flag
// overrides applied.
func appConfig(c *cli.Context) *config.Config {
	cfg, ok := c.App.Metadata[configKey].(*config.Config)
	if !ok {
		cfg = config.Default()
	}
	if dir := c.String("db"); dir != "" {
		cfg.Storage.DataDir = dir
	}
	if dir := c.String("index-dir"); dir != "" {
		cfg.Index.Dir = dir
	}
	return cfg
}

func openDatabase(cfg *config.Config, m *metrics.Metrics) (*intertext.Database, error) {
	db, err := intertext.NewDatabase(cfg.Storage.DataDir,
		intertext.WithIndexDir(cfg.Index.Dir),
		intertext.WithLogger(slog.Default()),
		intertext.WithMetrics(m),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func newPipeline(db *intertext.Database, cfg *config.Config) (*ingestion.Pipeline, error) {
	pipeline, err := db.NewIngestionPipeline(
		ingestion.WithPoolSize(cfg.Index.PoolSize),
		ingestion.WithThreshold(cfg.Index.FlushThreshold),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}
	return pipeline, nil
}

func parseIDs(args []string) ([]core.ID, error) {
	if len(args) == 0 {
		return nil, errors.New("at least one text id is required")
	}
	ids := make([]core.ID, 0, len(args))
	for _, arg := range args {
		id, err := core.ParseID(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid text id %q: %w", arg, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func singleArg(c *cli.Context, name string) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("exactly one %s is required", name)
	}
	return c.Args().First(), nil
}

func indexCommand(c *cli.Context) error {
	ids, err := parseIDs(c.Args().Slice())
	if err != nil {
		return err
	}
	cfg := appConfig(c)
	db, err := openDatabase(cfg, nil)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := newPipeline(db, cfg)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	var errs []error
	for _, id := range ids {
		if err := pipeline.Register(c.Context, id); err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(c.App.Writer, "indexed %s\n", id.Hex())
	}
	return errors.Join(errs...)
}

func unindexCommand(c *cli.Context) error {
	ids, err := parseIDs(c.Args().Slice())
	if err != nil {
		return err
	}
	cfg := appConfig(c)
	db, err := openDatabase(cfg, nil)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := newPipeline(db, cfg)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	for _, id := range ids {
		if err := pipeline.Unregister(c.Context, id); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "unindexed %s\n", id.Hex())
	}
	return nil
}

func reindexCommand(c *cli.Context) error {
	cfg := appConfig(c)
	db, err := openDatabase(cfg, nil)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := newPipeline(db, cfg)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	reindexConfig := &reindex.Config{
		BatchSize:       cfg.Reindex.BatchSize,
		ReportInterval:  cfg.Reindex.ReportInterval,
		MaxRetries:      cfg.Reindex.MaxRetries,
		RetryDelay:      cfg.Reindex.RetryDelay,
		ContinueOnError: c.Bool("continue-on-error"),
	}
	reindexer, err := db.NewReindexer(pipeline, reindexConfig, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create reindexer: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", cfg.Storage.DataDir)
	fmt.Fprintf(os.Stderr, "Index: %s\n", cfg.Index.Dir)
	fmt.Fprintln(os.Stderr)

	summary, err := reindexer.Run(c.Context)
	if err != nil {
		return fmt.Errorf("reindexing failed: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "reindexed %d texts in %s, %d failed\n", summary.Total, summary.Elapsed, len(summary.Failed))
	for _, id := range summary.Failed {
		fmt.Fprintf(c.App.Writer, "failed %s\n", id.Hex())
	}
	return nil
}

func submitCommand(c *cli.Context) error {
	cfg := appConfig(c)
	resultsID := c.String("results-id")
	if resultsID == "" {
		resultsID = uuid.NewString()
	}
	req := multitext.Request{
		ResultsID: resultsID,
		SearchID:  c.String("search"),
		TextIDs:   c.StringSlice("text"),
	}

	dispatcher := jobqueue.NewDispatcher(slog.Default())
	queue, err := newQueue(cfg, dispatcher)
	if err != nil {
		return err
	}
	defer queue.Close()

	// A remote worker owns the database; only the ids travel.
	if cfg.Queue.Backend == config.QueueKafka {
		if err := multitext.Enqueue(c.Context, queue, req); err != nil {
			return fmt.Errorf("failed to submit job: %w", err)
		}
		fmt.Fprintln(c.App.Writer, resultsID)
		return nil
	}

	db, err := openDatabase(cfg, nil)
	if err != nil {
		return err
	}
	defer db.Close()

	orchestrator, err := db.NewOrchestrator(queue)
	if err != nil {
		return err
	}
	orchestrator.Register(dispatcher)

	if err := orchestrator.Submit(c.Context, req.ResultsID, req.SearchID, req.TextIDs); err != nil {
		return fmt.Errorf("failed to submit job: %w", err)
	}

	// The pool runs the job in this process; wait so the status is final.
	if pool, ok := queue.(*jobqueue.PoolQueue); ok {
		pool.Wait()
	}
	search, err := orchestrator.Status(c.Context, resultsID)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\n", resultsID, search.Status, search.Message)
	return nil
}

func newQueue(cfg *config.Config, dispatcher *jobqueue.Dispatcher) (jobqueue.Queue, error) {
	switch cfg.Queue.Backend {
	case config.QueueKafka:
		return jobqueue.NewKafkaQueue(jobqueue.KafkaConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.ConsumerGroup,
		}, dispatcher, slog.Default()), nil
	default:
		return jobqueue.NewPoolQueue(dispatcher,
			jobqueue.WithPoolSize(cfg.Queue.PoolSize),
			jobqueue.WithPoolLogger(slog.Default()),
		)
	}
}

// jobSource returns what status and results read from: a worker's HTTP api
// when one is named or the queue is remote, the local database otherwise.
// The returned close function is never nil.
func jobSource(c *cli.Context) (api.Jobs, func() error, error) {
	cfg := appConfig(c)
	server := c.String("server")
	if server == "" && cfg.Queue.Backend == config.QueueKafka {
		server = cfg.API.URL
	}
	if server != "" {
		return api.NewClient(server), func() error { return nil }, nil
	}

	db, err := openDatabase(cfg, nil)
	if err != nil {
		return nil, nil, err
	}
	orchestrator, err := db.NewOrchestrator(nil)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return orchestrator, db.Close, nil
}

func statusCommand(c *cli.Context) error {
	resultsID, err := singleArg(c, "results id")
	if err != nil {
		return err
	}
	jobs, closeJobs, err := jobSource(c)
	if err != nil {
		return err
	}
	defer closeJobs()

	search, err := jobs.Status(c.Context, resultsID)
	if err != nil {
		return fmt.Errorf("failed to load job %s: %w", resultsID, err)
	}
	fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\n", resultsID, search.Status, search.Message)
	return nil
}

func resultsCommand(c *cli.Context) error {
	resultsID, err := singleArg(c, "results id")
	if err != nil {
		return err
	}
	jobs, closeJobs, err := jobSource(c)
	if err != nil {
		return err
	}
	defer closeJobs()

	results, err := jobs.Results(c.Context, resultsID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MATCH\tBIGRAM\tUNIT\tSCORE")
	for _, result := range results {
		for _, e := range result.Evidence() {
			fmt.Fprintf(w, "%s\t%s %s\t%s\t%.4f\n", result.MatchId.Hex(), result.Bigram[0], result.Bigram[1], e.UnitId.Hex(), e.Score)
		}
	}
	return w.Flush()
}

func serveCommand(c *cli.Context) error {
	cfg := appConfig(c)
	if cfg.Queue.Backend != config.QueueKafka {
		return fmt.Errorf("serve needs the %s queue backend, got %s", config.QueueKafka, cfg.Queue.Backend)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}
	db, err := openDatabase(cfg, m)
	if err != nil {
		return err
	}
	defer db.Close()

	dispatcher := jobqueue.NewDispatcher(slog.Default())
	queue := jobqueue.NewKafkaQueue(jobqueue.KafkaConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.ConsumerGroup,
	}, dispatcher, slog.Default())
	defer queue.Close()

	orchestrator, err := db.NewOrchestrator(queue)
	if err != nil {
		return err
	}
	orchestrator.Register(dispatcher)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return queue.Consume(ctx)
	})

	mounts := []func(*http.ServeMux){api.NewHandler(orchestrator, slog.Default()).Mount}
	shutdowns := []func(context.Context) error{}
	if m != nil {
		if cfg.Metrics.Port == cfg.API.Port {
			mounts = append(mounts, m.Mount)
		} else {
			shutdowns = append(shutdowns, api.StartServer(cfg.Metrics.Port, slog.Default(), m.Mount))
		}
	}
	shutdowns = append(shutdowns, api.StartServer(cfg.API.Port, slog.Default(), mounts...))
	for _, shutdown := range shutdowns {
		g.Go(func() error {
			<-ctx.Done()
			return shutdown(context.Background())
		})
	}

	slog.Info("serving multitext jobs", "topic", cfg.Kafka.Topic, "group", cfg.Kafka.ConsumerGroup)
	return g.Wait()
}
