// Package query executes rendered SQL and returns materialized result sets.
// Executors compose through Middleware, which adds logging, timing, caching,
// retries and error wrapping around the database call.
package query

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"time"

	"github.com/gaborage/salesquery/database/types"
)

// ErrNotQuery is returned when an executor has no database to query.
var ErrNotQuery = errors.New("query: no database connection")

// Row is a single result row keyed by column name. Byte slices returned by
// the driver are stored as strings.
type Row map[string]any

// Result is a fully read result set.
type Result struct {
	Columns []string `cbor:"columns"`
	Rows    []Row    `cbor:"rows"`

	// Elapsed is set by the timing middleware; it is not cached.
	Elapsed time.Duration `cbor:"-"`
}

// Len returns the number of rows.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Column returns the values of the named column in row order, or nil when the
// result has no such column.
func (r *Result) Column(name string) []any {
	if r == nil {
		return nil
	}
	if !slices.Contains(r.Columns, name) {
		return nil
	}

	values := make([]any, len(r.Rows))
	for i, row := range r.Rows {
		values[i] = row[name]
	}
	return values
}

// Executor runs a statement and returns its rows.
type Executor interface {
	Execute(ctx context.Context, sql string, args ...any) (*Result, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, sql string, args ...any) (*Result, error)

func (f ExecutorFunc) Execute(ctx context.Context, sql string, args ...any) (*Result, error) {
	return f(ctx, sql, args...)
}

type dbExecutor struct {
	db types.Querier
}

// NewExecutor returns an Executor that queries db and reads every row into
// memory before returning.
func NewExecutor(db types.Querier) Executor {
	return &dbExecutor{db: db}
}

func (e *dbExecutor) Execute(ctx context.Context, statement string, args ...any) (*Result, error) {
	if e.db == nil {
		return nil, ErrNotQuery
	}

	rows, err := e.db.Query(ctx, statement, args...)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

func scanRows(rows *sql.Rows) (*Result, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &Result{Columns: columns, Rows: make([]Row, 0)}
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row := make(Row, len(columns))
		for i, col := range columns {
			row[col] = normalize(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
