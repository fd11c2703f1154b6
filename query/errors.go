package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/gaborage/salesquery/database/types"
)

const maxStatementInError = 200

// ExecutionError wraps a failed execution with the statement that caused it.
// The statement is truncated for readability; the cause stays reachable
// through errors.Is and errors.As.
type ExecutionError struct {
	Op        string
	Statement string
	Err       error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s failed: %v [statement: %s]", e.Op, e.Err, e.Statement)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// IsExecutionError reports whether err is or wraps an *ExecutionError.
func IsExecutionError(err error) bool {
	var execErr *ExecutionError
	return errors.As(err, &execErr)
}

// WithErrorWrapping returns middleware that wraps failures in *ExecutionError.
// Construction errors and context errors are returned unchanged, as are errors
// that are already wrapped.
func WithErrorWrapping() Middleware {
	return func(next Executor) Executor {
		return ExecutorFunc(func(ctx context.Context, statement string, args ...any) (*Result, error) {
			res, err := next.Execute(ctx, statement, args...)
			if err == nil {
				return res, nil
			}
			if types.IsConstructionError(err) || isContextError(err) || IsExecutionError(err) {
				return nil, err
			}
			return nil, &ExecutionError{
				Op:        operationName(err),
				Statement: truncate(statement, maxStatementInError),
				Err:       err,
			}
		})
	}
}

func operationName(err error) string {
	if errors.Is(err, ErrNotQuery) {
		return "connect"
	}
	return "query"
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
