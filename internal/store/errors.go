package store

import (
	"errors"
	"fmt"
)

// ConnectionError indicates the backing database could not be reached
// or prepared. It is fatal at startup (the process reports it and exits
// non-zero) and surfaced to the caller of the triggering operation
// thereafter. No retries are attempted at this layer.
type ConnectionError struct {
	Path string // database path that failed
	Err  error  // underlying failure
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("store connection failed (path=%s): %v", e.Path, e.Err)
}

// Unwrap returns the underlying failure.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsConnectionError reports whether err is (or wraps) a ConnectionError.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}
