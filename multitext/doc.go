// Package multitext finds co-occurrences of a primary search's matched words
// inside other texts, and runs that search as a background job.
//
// Engine is the synchronous search over the bigram index. Orchestrator
// submits jobs to a queue and, on the worker side, drives each job from
// INIT through RUN to DONE or FAILED, persisting one MultiResult per
// (match, bigram) pair. Errors and panics inside a job never leave Run; they
// are recorded as a FAILED status with a diagnostic message.
package multitext
