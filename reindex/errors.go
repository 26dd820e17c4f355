package reindex

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrRegistrarRequired is returned when no registrar is provided.
	ErrRegistrarRequired = errors.New("registrar required")
)
