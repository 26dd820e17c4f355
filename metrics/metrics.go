// Package metrics defines the Prometheus collectors used across intertext
// and exposes an HTTP handler for scraping.
//
// Every helper method is safe on a nil *Metrics, so components can be built
// without instrumentation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for one process.
type Metrics struct {
	registry *prometheus.Registry

	BigramsWrittenTotal  *prometheus.CounterVec
	BufferFlushesTotal   *prometheus.CounterVec
	StoreFinalizeTotal   *prometheus.CounterVec
	StoreLookupsTotal    *prometheus.CounterVec
	StoreLookupDuration  *prometheus.HistogramVec
	TextsRegisteredTotal *prometheus.CounterVec
	JobsTotal            *prometheus.CounterVec
	JobDuration          prometheus.Histogram
	JobsInFlight         prometheus.Gauge
}

// New creates all collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		BigramsWrittenTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intertext_bigrams_written_total",
				Help: "Total bigram records appended to index stores by feature type.",
			},
			[]string{"feature"},
		),
		BufferFlushesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intertext_buffer_flushes_total",
				Help: "Total builder buffer flushes by feature type and reason (threshold, close).",
			},
			[]string{"feature", "reason"},
		),
		StoreFinalizeTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intertext_store_finalize_total",
				Help: "Total store finalizations by status.",
			},
			[]string{"status"},
		),
		StoreLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intertext_store_lookups_total",
				Help: "Total store lookups by access path (indexed, scan, missing).",
			},
			[]string{"path"},
		),
		StoreLookupDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "intertext_store_lookup_duration_seconds",
				Help:    "Store lookup latency in seconds.",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"path"},
		),
		TextsRegisteredTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intertext_texts_registered_total",
				Help: "Total text registrations by status.",
			},
			[]string{"status"},
		),
		JobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intertext_jobs_total",
				Help: "Total multitext jobs by terminal status.",
			},
			[]string{"status"},
		),
		JobDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "intertext_job_duration_seconds",
				Help:    "Multitext job wall-clock duration in seconds.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		JobsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "intertext_jobs_in_flight",
				Help: "Number of multitext jobs currently running.",
			},
		),
	}

	m.registry.MustRegister(
		m.BigramsWrittenTotal,
		m.BufferFlushesTotal,
		m.StoreFinalizeTotal,
		m.StoreLookupsTotal,
		m.StoreLookupDuration,
		m.TextsRegisteredTotal,
		m.JobsTotal,
		m.JobDuration,
		m.JobsInFlight,
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus scrape HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Mount registers /metrics on mux.
func (m *Metrics) Mount(mux *http.ServeMux) {
	mux.Handle("/metrics", m.Handler())
}

// BigramsWritten counts n records appended for feature.
func (m *Metrics) BigramsWritten(feature string, n int) {
	if m == nil {
		return
	}
	m.BigramsWrittenTotal.WithLabelValues(feature).Add(float64(n))
}

// BufferFlushed counts one builder flush.
func (m *Metrics) BufferFlushed(feature, reason string) {
	if m == nil {
		return
	}
	m.BufferFlushesTotal.WithLabelValues(feature, reason).Inc()
}

// StoreFinalized counts one finalization outcome.
func (m *Metrics) StoreFinalized(err error) {
	if m == nil {
		return
	}
	m.StoreFinalizeTotal.WithLabelValues(statusLabel(err)).Inc()
}

// StoreLookup records one lookup and its latency.
func (m *Metrics) StoreLookup(path string, started time.Time) {
	if m == nil {
		return
	}
	m.StoreLookupsTotal.WithLabelValues(path).Inc()
	m.StoreLookupDuration.WithLabelValues(path).Observe(time.Since(started).Seconds())
}

// TextRegistered counts one registration outcome.
func (m *Metrics) TextRegistered(err error) {
	if m == nil {
		return
	}
	m.TextsRegisteredTotal.WithLabelValues(statusLabel(err)).Inc()
}

// JobStarted marks a job as running.
func (m *Metrics) JobStarted() {
	if m == nil {
		return
	}
	m.JobsInFlight.Inc()
}

// JobFinished records the terminal status and duration of a job.
func (m *Metrics) JobFinished(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.JobsInFlight.Dec()
	m.JobsTotal.WithLabelValues(status).Inc()
	m.JobDuration.Observe(elapsed.Seconds())
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
