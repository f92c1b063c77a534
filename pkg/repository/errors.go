package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound returned when the requested record doesn't exist or is filtered out
	ErrNotFound = errors.New("not found")
	// ErrHidden returned when a hidden article is requested without the allow flag
	ErrHidden = errors.New("article is hidden")
	// ErrMainFeed returned on attempt to delete the main feed
	ErrMainFeed = errors.New("can't delete main feed")

	errCritical = errors.New("critical")
)

// Kind classifies query failures
type Kind string

// enum of query error kinds
const (
	KindAccessDenied      Kind = "access_denied"
	KindTimeout           Kind = "timeout"
	KindConnectionRefused Kind = "connection_refused"
	KindValidation        Kind = "validation"
	KindUniqueConstraint  Kind = "unique_constraint"
	KindUnexpected        Kind = "unexpected"
)

// QueryError wraps a driver error with the operation and its classification
type QueryError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// newQueryError classifies err, sql.ErrNoRows becomes ErrNotFound
func newQueryError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return &QueryError{Kind: classify(err), Op: op, Err: err}
}

// classify maps a driver error to a kind by its text, the sqlite driver reports
// result codes in the message
func classify(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	if errors.Is(err, sql.ErrConnDone) {
		return KindConnectionRefused
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return KindUniqueConstraint
	case strings.Contains(msg, "FOREIGN KEY constraint failed"),
		strings.Contains(msg, "NOT NULL constraint failed"),
		strings.Contains(msg, "CHECK constraint failed"),
		strings.Contains(msg, "datatype mismatch"):
		return KindValidation
	case isLockError(err), strings.Contains(msg, "timeout"):
		return KindTimeout
	case strings.Contains(msg, "unable to open database"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "database is closed"):
		return KindConnectionRefused
	case strings.Contains(msg, "readonly database"),
		strings.Contains(msg, "access permission denied"),
		strings.Contains(msg, "authorization denied"),
		strings.Contains(msg, "permission denied"):
		return KindAccessDenied
	default:
		return KindUnexpected
	}
}

// IsKind reports whether err is a QueryError of the given kind
func IsKind(err error, kind Kind) bool {
	var qe *QueryError
	return errors.As(err, &qe) && qe.Kind == kind
}

// criticalError holds a non-retryable error seen inside a retried func
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}
