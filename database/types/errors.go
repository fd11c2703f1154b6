//revive:disable-next-line:var-naming // Package name "types" avoids circular imports.
package types

import (
	"errors"
	"fmt"
)

// ErrTableNotSet is returned when a statement is rendered before a source table was supplied.
// Match it with errors.Is; the concrete error is a *ConstructionError.
var ErrTableNotSet = errors.New("source table is required")

// ConstructionError reports a statement that cannot be rendered from the accumulated clauses.
// It is fatal to the build attempt only; the caller can fix the builder state and build again.
type ConstructionError struct {
	Clause string // clause that failed the precondition, e.g. "FROM"
	Err    error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("query construction failed at %s: %v", e.Clause, e.Err)
}

// Unwrap returns the underlying sentinel for errors.Is support.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// NewConstructionError creates a ConstructionError for the given clause.
func NewConstructionError(clause string, err error) *ConstructionError {
	return &ConstructionError{Clause: clause, Err: err}
}

// IsConstructionError reports whether err (or anything it wraps) is a ConstructionError.
func IsConstructionError(err error) bool {
	var ce *ConstructionError
	return errors.As(err, &ce)
}
