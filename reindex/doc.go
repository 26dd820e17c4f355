// Package reindex rebuilds the bigram stores of every text in a database.
//
// Texts are walked in batches. Each text's stores are dropped and rebuilt
// through the ingestion pipeline, retrying with exponential backoff, while a
// ProgressTracker reports throughput.
package reindex
