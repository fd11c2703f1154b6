package tracking

import (
	"context"
	"database/sql"
	"time"

	"github.com/gaborage/salesquery/database/types"
)

// Transaction wraps types.Tx and tracks every operation including commit and
// rollback, which are attributed to the context the transaction began with.
type Transaction struct {
	tx  types.Tx
	tc  *Context
	ctx context.Context
}

// NewTransaction wraps tx. ctx is the context passed to Begin.
func NewTransaction(ctx context.Context, tx types.Tx, tc *Context) types.Tx {
	return &Transaction{tx: tx, tc: tc, ctx: ctx}
}

func (t *Transaction) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.Query(ctx, query, args...)

	TrackDBOperation(ctx, t.tc, query, args, start, err)
	return rows, err
}

func (t *Transaction) QueryRow(ctx context.Context, query string, args ...any) types.Row {
	start := time.Now()
	row := t.tx.QueryRow(ctx, query, args...)

	return wrapRow(row, func(err error) {
		TrackDBOperation(ctx, t.tc, query, args, start, err)
	})
}

func (t *Transaction) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := t.tx.Exec(ctx, query, args...)

	TrackDBOperation(ctx, t.tc, query, args, start, err)
	return result, err
}

func (t *Transaction) Prepare(ctx context.Context, query string) (types.Statement, error) {
	start := time.Now()
	stmt, err := t.tx.Prepare(ctx, query)

	TrackDBOperation(ctx, t.tc, "TX_PREPARE: "+query, nil, start, err)
	if err != nil {
		return nil, err
	}

	return NewStatement(stmt, t.tc, query), nil
}

func (t *Transaction) Commit() error {
	start := time.Now()
	err := t.tx.Commit()

	TrackDBOperation(t.ctx, t.tc, "TX_COMMIT", nil, start, err)
	return err
}

func (t *Transaction) Rollback() error {
	start := time.Now()
	err := t.tx.Rollback()

	TrackDBOperation(t.ctx, t.tc, "TX_ROLLBACK", nil, start, err)
	return err
}

var (
	_ types.Tx        = (*Transaction)(nil)
	_ types.Statement = (*Statement)(nil)
	_ types.Interface = (*Connection)(nil)
)
