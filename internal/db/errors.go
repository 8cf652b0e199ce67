// internal/db/errors.go
package db

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned by every catalog and query operation
	// attempted before a successful Connect.
	ErrNotConnected = errors.New("Not connected to database")

	// ErrInvalidSortOrder is returned when a sort direction is neither ASC nor DESC.
	ErrInvalidSortOrder = errors.New("invalid sort order")
)

// ConnectionError wraps connection string and server reachability failures
type ConnectionError struct {
	Underlying error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection failed: %v", e.Underlying)
}

func (e *ConnectionError) Unwrap() error { return e.Underlying }

// QueryError wraps statement failures reported by the server
type QueryError struct {
	Statement  string
	Underlying error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v", e.Underlying)
}

func (e *QueryError) Unwrap() error { return e.Underlying }

// WrapConnectionError creates a ConnectionError from underlying error
func WrapConnectionError(err error) error {
	if err == nil {
		return nil
	}
	return &ConnectionError{Underlying: err}
}

// WrapQueryError creates a QueryError from underlying error
func WrapQueryError(statement string, err error) error {
	if err == nil {
		return nil
	}
	return &QueryError{Statement: statement, Underlying: err}
}

// Message returns the text shown to API callers: the driver's own message,
// without the wrapper prefix.
func Message(err error) string {
	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return connErr.Underlying.Error()
	}
	var queryErr *QueryError
	if errors.As(err, &queryErr) {
		return queryErr.Underlying.Error()
	}
	return err.Error()
}
