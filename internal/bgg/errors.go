package bgg

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every failure of a public operation matches exactly one of
// ErrSearchFailed or ErrDetailsFailed; a missing game additionally matches ErrNotFound.
var (
	ErrSearchFailed  = errors.New("search failed")
	ErrDetailsFailed = errors.New("details fetch failed")
	ErrNotFound      = errors.New("game not found")
)

// Error is returned by the client's public operations. Its message stays coarse;
// the underlying cause is kept for errors.Is / errors.As and for logs.
type Error struct {
	Op   string // "search" or "thing"
	ID   string // query or game id
	Kind error  // ErrSearchFailed or ErrDetailsFailed
	Err  error  // underlying cause
}

func (e *Error) Error() string {
	if errors.Is(e.Err, ErrNotFound) {
		return fmt.Sprintf("%v: %v", e.Kind, ErrNotFound)
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Cause returns the underlying error without the coarse kind.
func (e *Error) Cause() error {
	return e.Err
}

// StatusError reports a non-2xx response from BGG.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bgg api error: %s", e.Status)
}
