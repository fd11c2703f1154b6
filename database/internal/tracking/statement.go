package tracking

import (
	"context"
	"database/sql"
	"time"

	"github.com/gaborage/salesquery/database/types"
)

// Statement wraps types.Statement and tracks each execution under the
// prepared query text.
type Statement struct {
	stmt  types.Statement
	tc    *Context
	query string
}

// NewStatement wraps stmt. query is the prepared text used in logs and spans.
func NewStatement(stmt types.Statement, tc *Context, query string) types.Statement {
	return &Statement{stmt: stmt, tc: tc, query: query}
}

func (s *Statement) Query(ctx context.Context, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := s.stmt.Query(ctx, args...)

	s.track(ctx, "STMT_QUERY", args, start, err)
	return rows, err
}

func (s *Statement) QueryRow(ctx context.Context, args ...any) types.Row {
	start := time.Now()
	row := s.stmt.QueryRow(ctx, args...)

	return wrapRow(row, func(err error) {
		s.track(ctx, "STMT_QUERY_ROW", args, start, err)
	})
}

func (s *Statement) Exec(ctx context.Context, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := s.stmt.Exec(ctx, args...)

	s.track(ctx, "STMT_EXEC", args, start, err)
	return result, err
}

func (s *Statement) Close() error {
	return s.stmt.Close()
}

func (s *Statement) track(ctx context.Context, operation string, args []any, start time.Time, err error) {
	if s.query != "" {
		operation += ": " + s.query
	}
	TrackDBOperation(ctx, s.tc, operation, args, start, err)
}
