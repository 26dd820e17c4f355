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


package multitext

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/poiesic/intertext/core"
	"github.com/poiesic/intertext/jobqueue"
	"github.com/poiesic/intertext/metrics"
	"github.com/poiesic/intertext/storage"
)

// JobKind is the task kind of multitext jobs.
const JobKind = core.SearchTypeMultitext

// Request is the queued payload of a multitext job. It carries identifiers
// only.
type Request struct {
	ResultsID string   `json:"results_id"`
	SearchID  string   `json:"search_id"`
	TextIDs   []string `json:"text_ids"`
}

// Repositories are the collaborators a job reads from and writes to.
type Repositories struct {
	Texts    storage.TextRepository
	Searches storage.SearchRepository
	Matches  storage.MatchRepository
	Results  storage.ResultRepository
}

// Orchestrator submits multitext jobs and runs them on the worker side.
type Orchestrator struct {
	repos    Repositories
	engine   Searcher
	queue    jobqueue.Queue
	unitType string
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the orchestrator's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithMetrics instruments job execution.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// NewOrchestrator creates an Orchestrator. queue may be nil in processes
// that only run jobs.
func NewOrchestrator(repos Repositories, engine Searcher, queue jobqueue.Queue, opts ...Option) (*Orchestrator, error) {
	if repos.Texts == nil || repos.Searches == nil || repos.Matches == nil || repos.Results == nil {
		return nil, ErrRepositoryRequired
	}
	if engine == nil {
		return nil, ErrEngineRequired
	}
	o := &Orchestrator{
		repos:    repos,
		engine:   engine,
		queue:    queue,
		unitType: core.UnitPhrase,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With("component", "multitext-orchestrator")
	return o, nil
}

// Register installs the job handler on d.
func (o *Orchestrator) Register(d *jobqueue.Dispatcher) {
	d.Handle(JobKind, o.Handle)
}

// Submit enqueues a job and returns without waiting for it. The status
// record is created by the worker when the job starts.
func (o *Orchestrator) Submit(ctx context.Context, resultsID, searchID string, textIDs []string) error {
	if o.queue == nil {
		return ErrQueueRequired
	}
	if err := Enqueue(ctx, o.queue, Request{ResultsID: resultsID, SearchID: searchID, TextIDs: textIDs}); err != nil {
		return err
	}
	o.logger.Info("job submitted", "results_id", resultsID, "search_id", searchID, "texts", len(textIDs))
	return nil
}

// Enqueue puts req on queue as a multitext task keyed by its results id.
// It touches no repository, so submitters need no database of their own.
func Enqueue(ctx context.Context, queue jobqueue.Queue, req Request) error {
	if queue == nil {
		return ErrQueueRequired
	}
	task, err := jobqueue.NewTask(JobKind, req.ResultsID, req)
	if err != nil {
		return err
	}
	if err := queue.Enqueue(ctx, task); err != nil {
		return fmt.Errorf("submitting job %s: %w", req.ResultsID, err)
	}
	return nil
}

// Handle decodes a queued Request and runs it. Only undecodable payloads
// return an error.
func (o *Orchestrator) Handle(ctx context.Context, payload []byte) error {
	req, err := jobqueue.Decode[Request](payload)
	if err != nil {
		return err
	}
	o.Run(ctx, req)
	return nil
}

// Run drives one job to a terminal state and returns its final status
// record. Nothing raised while the job runs escapes: errors and panics are
// recorded as FAILED with a diagnostic message.
func (o *Orchestrator) Run(ctx context.Context, req Request) *core.Search {
	start := time.Now()
	o.metrics.JobStarted()
	logger := o.logger.With("results_id", req.ResultsID)

	search := &core.Search{
		ResultsId:  req.ResultsID,
		SearchType: core.SearchTypeMultitext,
		Status:     core.StatusInit,
		Parameters: core.SearchParameters{
			SearchId: req.SearchID,
			TextIds:  req.TextIDs,
		},
	}

	var parent *core.Search
	err := protect(func() error {
		var perr error
		parent, perr = o.loadParent(ctx, req.SearchID)
		return perr
	})
	if err == nil {
		search.Parameters.Feature = parent.Parameters.Feature
	}
	addErr := protect(func() error {
		_, aerr := o.repos.Searches.AddSearch(ctx, search)
		return aerr
	})
	if addErr != nil {
		logger.Error("failed to record job", "err", addErr)
		search.Status = core.StatusFailed
		search.Message = diagnostic(addErr)
		o.metrics.JobFinished(string(search.Status), time.Since(start))
		return search
	}

	if err == nil {
		err = protect(func() error {
			return o.execute(ctx, search, parent, start)
		})
	}
	if err != nil {
		o.fail(ctx, search, err)
		logger.Error("multitext job failed", "err", err, "elapsed", time.Since(start))
	} else {
		logger.Info("multitext job done", "elapsed", time.Since(start))
	}
	o.metrics.JobFinished(string(search.Status), time.Since(start))
	return search
}

// protect runs fn and turns a panic into ErrJobPanicked.
func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrJobPanicked, r)
		}
	}()
	return fn()
}

func (o *Orchestrator) loadParent(ctx context.Context, searchID string) (*core.Search, error) {
	id, err := core.ParseID(searchID)
	if err != nil {
		return nil, fmt.Errorf("parsing search id %q: %w", searchID, err)
	}
	parent, err := o.repos.Searches.GetSearch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading search %s: %w", searchID, err)
	}
	return parent, nil
}

// execute runs the job body from loading inputs to DONE.
func (o *Orchestrator) execute(ctx context.Context, search, parent *core.Search, start time.Time) error {
	matches, err := o.repos.Matches.GetMatches(ctx, parent.Id)
	if err != nil {
		return fmt.Errorf("loading matches: %w", err)
	}
	texts, err := o.loadTexts(ctx, search.Parameters.TextIds)
	if err != nil {
		return err
	}

	search.Status = core.StatusRun
	if _, err := o.repos.Searches.UpdateSearch(ctx, search); err != nil {
		return fmt.Errorf("marking job running: %w", err)
	}

	results, err := o.engine.Search(ctx, matches, search.Parameters.Feature, o.unitType, texts)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}
	if len(results) != len(matches) {
		return fmt.Errorf("%w: %d results for %d matches", ErrResultCount, len(results), len(matches))
	}

	records := materialize(search.Id, matches, results)
	if len(records) > 0 {
		if err := o.repos.Results.AddMultiResults(ctx, records...); err != nil {
			return fmt.Errorf("saving results: %w", err)
		}
	}

	search.Status = core.StatusDone
	search.Message = fmt.Sprintf("Done in %f seconds", time.Since(start).Seconds())
	if _, err := o.repos.Searches.UpdateSearch(ctx, search); err != nil {
		return fmt.Errorf("marking job done: %w", err)
	}
	return nil
}

func (o *Orchestrator) loadTexts(ctx context.Context, textIDs []string) ([]*core.Text, error) {
	ids := make([]core.ID, len(textIDs))
	for i, s := range textIDs {
		id, err := core.ParseID(s)
		if err != nil {
			return nil, fmt.Errorf("parsing text id %q: %w", s, err)
		}
		ids[i] = id
	}
	texts, err := o.repos.Texts.GetTexts(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("loading texts: %w", err)
	}
	return texts, nil
}

// fail records err as the terminal FAILED state. The write is detached from
// ctx so a cancelled job still reaches a terminal state.
func (o *Orchestrator) fail(ctx context.Context, search *core.Search, err error) {
	search.Status = core.StatusFailed
	search.Message = diagnostic(err)
	uerr := protect(func() error {
		_, uerr := o.repos.Searches.UpdateSearch(context.WithoutCancel(ctx), search)
		return uerr
	})
	if uerr != nil {
		o.logger.Error("failed to record job failure", "results_id", search.ResultsId, "err", uerr)
	}
}

// Status returns the status record of a job.
func (o *Orchestrator) Status(ctx context.Context, resultsID string) (*core.Search, error) {
	return o.repos.Searches.FindByResultsID(ctx, resultsID)
}

// Results returns the persisted results of a DONE job.
func (o *Orchestrator) Results(ctx context.Context, resultsID string) ([]*core.MultiResult, error) {
	search, err := o.Status(ctx, resultsID)
	if err != nil {
		return nil, err
	}
	if search.Status != core.StatusDone {
		return nil, fmt.Errorf("%w: %s is %s", ErrJobNotDone, resultsID, search.Status)
	}
	return o.repos.Results.GetMultiResults(ctx, search.Id)
}

// materialize turns engine output into one record per (match, bigram),
// bigrams in lexical order within a match.
func materialize(searchID core.ID, matches []*core.Match, results []MatchResult) []*core.MultiResult {
	var records []*core.MultiResult
	for i, match := range matches {
		bigrams := make([]core.TokenBigram, 0, len(results[i]))
		for bigram := range results[i] {
			bigrams = append(bigrams, bigram)
		}
		sort.Slice(bigrams, func(a, b int) bool {
			if bigrams[a][0] != bigrams[b][0] {
				return bigrams[a][0] < bigrams[b][0]
			}
			return bigrams[a][1] < bigrams[b][1]
		})
		for _, bigram := range bigrams {
			records = append(records, core.NewMultiResult(searchID, match.Id, bigram, results[i][bigram]))
		}
	}
	return records
}

func diagnostic(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fmt.Sprintf("unexplained %T", err)
}
