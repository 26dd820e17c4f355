package reindex

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker writes a single updating progress line for a run over a
// known number of items.
type ProgressTracker struct {
	mu       sync.Mutex
	writer   io.Writer
	unit     string
	total    int
	done     int
	failed   int
	every    int
	reported int
	start    time.Time
	running  bool
}

// NewProgressTracker reports to writer every `every` items. unit names the
// items in the output ("texts").
func NewProgressTracker(writer io.Writer, unit string, total, every int) *ProgressTracker {
	if every < 1 {
		every = 1
	}
	return &ProgressTracker{writer: writer, unit: unit, total: total, every: every}
}

// Start resets the counters and the clock.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.start = time.Now()
	p.running = true
	p.done, p.failed, p.reported = 0, 0, 0
}

// Done records one finished item; failed items still count as done.
func (p *ProgressTracker) Done(failed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	if p.done < p.total {
		p.done++
	}
	if failed {
		p.failed++
	}
	if p.done-p.reported >= p.every {
		p.print()
		p.reported = p.done
	}
}

// Finish prints the final line and stops the tracker.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	p.print()
	fmt.Fprintln(p.writer)
	p.running = false
}

// Counts returns the finished and failed item counts.
func (p *ProgressTracker) Counts() (done, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done, p.failed
}

// Elapsed returns the time since Start, or 0 before it.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.start.IsZero() {
		return 0
	}
	return time.Since(p.start)
}

// print writes the progress line. Caller holds mu.
func (p *ProgressTracker) print() {
	percent := 100.0
	if p.total > 0 {
		percent = float64(p.done) / float64(p.total) * 100
	}
	rate := float64(p.done) / time.Since(p.start).Seconds()
	fmt.Fprintf(p.writer, "\rReindexed %d/%d %s (%.1f%%, %d failed) - %.1f %s/s",
		p.done, p.total, p.unit, percent, p.failed, rate, p.unit)
}
