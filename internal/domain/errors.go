package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Expected, recoverable outcomes. Callers branch with errors.Is; none of
// these should ever escalate to a panic or process exit.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidRange     = errors.New("check-out must be after check-in")
	ErrUnavailable      = errors.New("room is not available")
	ErrConflict         = errors.New("conflicting booking exists")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
)

// ConflictError carries the ranges that blocked a commit.
type ConflictError struct {
	RoomID string
	Ranges []Stay
}

func (e *ConflictError) Error() string {
	parts := make([]string, len(e.Ranges))
	for i, r := range e.Ranges {
		parts[i] = r.String()
	}
	return fmt.Sprintf("room %s already booked for %s", e.RoomID, strings.Join(parts, ", "))
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// UpstreamError marks a collaborator call (date/intent extraction) that
// failed or timed out. The orchestrator decides fallback vs terminal error.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *UpstreamError) Unwrap() error { return e.Err }
