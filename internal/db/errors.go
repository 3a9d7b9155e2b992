package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions.
var (
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("duplicate entry")
	ErrDatabase   = errors.New("database error")
	ErrInvalidArg = errors.New("invalid argument")
)

// Error provides context for a failed storage operation.
type Error struct {
	Op     string // Operation that failed (e.g., "create game")
	Entity string // Name or id of the row, if known
	Err    error  // Underlying error
}

func (e *Error) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("%s '%s': %v", e.Op, e.Entity, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WrapDBError converts a database error to one matching the sentinels above.
func WrapDBError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &Error{Op: op, Err: ErrNotFound}
	}

	// SQLite reports constraint violations only in the message.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return &Error{Op: op, Err: fmt.Errorf("%w: entry already exists", ErrDuplicate)}
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &Error{Op: op, Err: fmt.Errorf("%w: referenced item does not exist", ErrInvalidArg)}
	case strings.Contains(msg, "no such table"):
		return &Error{Op: op, Err: fmt.Errorf("%w: database not initialized", ErrDatabase)}
	}

	return &Error{Op: op, Err: fmt.Errorf("%w: %v", ErrDatabase, err)}
}

// NotFoundError returns a "not found" error for a missing row.
func NotFoundError(itemType string, id int64) error {
	return &Error{
		Op:     fmt.Sprintf("find %s", itemType),
		Entity: fmt.Sprint(id),
		Err:    ErrNotFound,
	}
}
