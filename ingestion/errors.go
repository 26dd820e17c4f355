package ingestion

import "errors"

var (
	// ErrTextRepositoryRequired is returned when a text repository is not provided.
	ErrTextRepositoryRequired = errors.New("text repository required")

	// ErrUnitRepositoryRequired is returned when a unit repository is not provided.
	ErrUnitRepositoryRequired = errors.New("unit repository required")

	// ErrDirectoryRequired is returned when a bigram directory is not provided.
	ErrDirectoryRequired = errors.New("bigram directory required")
)
