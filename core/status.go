package core

import "fmt"

// Status is the lifecycle state of a search job.
type Status string

const (
	StatusInit   Status = "INIT"
	StatusRun    Status = "RUN"
	StatusDone   Status = "DONE"
	StatusFailed Status = "FAILED"
)

// SearchTypeMultitext marks status records written by multitext jobs.
const SearchTypeMultitext = "multitext"

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusFailed
}

// CanTransition reports whether moving from s to next is legal.
// The only legal paths are INIT -> RUN -> DONE and INIT -> RUN -> FAILED,
// plus INIT -> FAILED for jobs that die before running.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusInit:
		return next == StatusRun || next == StatusFailed
	case StatusRun:
		return next == StatusDone || next == StatusFailed
	default:
		return false
	}
}

// ValidateTransition returns ErrInvalidTransition when s cannot move to next.
func ValidateTransition(s, next Status) error {
	if s == next && !s.IsTerminal() {
		return nil
	}
	if !s.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}
	return nil
}
