package tracking

import (
	"context"
	"database/sql"
	"time"

	"github.com/gaborage/salesquery/config"
	"github.com/gaborage/salesquery/database/types"
	"github.com/gaborage/salesquery/logger"
)

// Connection wraps types.Interface and tracks every query, exec, prepare and
// transaction start. Health, Stats and Close are passed through untracked.
type Connection struct {
	conn types.Interface
	tc   *Context
}

// NewConnection wraps conn, using conn.DatabaseType() as the vendor and
// deriving settings from cfg.
func NewConnection(conn types.Interface, log logger.Logger, cfg *config.DatabaseConfig) types.Interface {
	return &Connection{
		conn: conn,
		tc: &Context{
			Logger:   log,
			Vendor:   conn.DatabaseType(),
			Settings: NewSettings(cfg),
		},
	}
}

// Unwrap returns the wrapped connection.
func (c *Connection) Unwrap() types.Interface {
	return c.conn
}

// Query executes a query with performance tracking
func (c *Connection) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := c.conn.Query(ctx, query, args...)

	TrackDBOperation(ctx, c.tc, query, args, start, err)
	return rows, err
}

// QueryRow executes a single row query; tracking completes when the row is scanned.
func (c *Connection) QueryRow(ctx context.Context, query string, args ...any) types.Row {
	start := time.Now()
	row := c.conn.QueryRow(ctx, query, args...)

	return wrapRow(row, func(err error) {
		TrackDBOperation(ctx, c.tc, query, args, start, err)
	})
}

// Exec executes a statement with performance tracking
func (c *Connection) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := c.conn.Exec(ctx, query, args...)

	TrackDBOperation(ctx, c.tc, query, args, start, err)
	return result, err
}

// Prepare prepares a statement and returns a tracked statement.
func (c *Connection) Prepare(ctx context.Context, query string) (types.Statement, error) {
	start := time.Now()
	stmt, err := c.conn.Prepare(ctx, query)

	TrackDBOperation(ctx, c.tc, "PREPARE: "+query, nil, start, err)
	if err != nil {
		return nil, err
	}

	return NewStatement(stmt, c.tc, query), nil
}

// Begin starts a tracked transaction
func (c *Connection) Begin(ctx context.Context) (types.Tx, error) {
	start := time.Now()
	tx, err := c.conn.Begin(ctx)

	TrackDBOperation(ctx, c.tc, "BEGIN", nil, start, err)
	if err != nil {
		return nil, err
	}

	return NewTransaction(ctx, tx, c.tc), nil
}

// BeginTx starts a tracked transaction with options
func (c *Connection) BeginTx(ctx context.Context, opts *sql.TxOptions) (types.Tx, error) {
	start := time.Now()
	tx, err := c.conn.BeginTx(ctx, opts)

	TrackDBOperation(ctx, c.tc, "BEGIN_TX", nil, start, err)
	if err != nil {
		return nil, err
	}

	return NewTransaction(ctx, tx, c.tc), nil
}

func (c *Connection) Health(ctx context.Context) error {
	return c.conn.Health(ctx)
}

func (c *Connection) Stats() (map[string]any, error) {
	return c.conn.Stats()
}

func (c *Connection) Close() error {
	return c.conn.Close()
}

func (c *Connection) DatabaseType() string {
	return c.conn.DatabaseType()
}
