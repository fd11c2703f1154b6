// Package sqldb adapts *sql.DB to types.Interface. The vendor packages open a
// driver-specific pool and hand it to Open, which applies pool settings and
// verifies connectivity.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gaborage/salesquery/config"
	"github.com/gaborage/salesquery/database/types"
	"github.com/gaborage/salesquery/logger"
)

const (
	// PingTimeout bounds the connectivity check performed by Open.
	PingTimeout = 10 * time.Second

	healthTimeout = 5 * time.Second
)

// PingFunc verifies a freshly opened pool. Vendors override it in tests.
type PingFunc func(ctx context.Context, db *sql.DB) error

// DefaultPing pings db.
func DefaultPing(ctx context.Context, db *sql.DB) error {
	return db.PingContext(ctx)
}

// Conn implements types.Interface over a *sql.DB.
type Conn struct {
	db     *sql.DB
	vendor string
	name   string
	logger logger.Logger
}

// Open configures the pool from cfg and pings it within PingTimeout. The pool
// is closed when the ping fails. name is the human readable vendor name used
// in log and error messages.
func Open(db *sql.DB, vendor, name string, cfg *config.DatabaseConfig, log logger.Logger, ping PingFunc) (*Conn, error) {
	ApplyPool(db, &cfg.Pool)

	if ping == nil {
		ping = DefaultPing
	}

	ctx, cancel := context.WithTimeout(context.Background(), PingTimeout)
	defer cancel()

	if err := ping(ctx, db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msgf("Failed to close %s database connection after ping failure", name)
		}
		return nil, fmt.Errorf("failed to ping %s database: %w", name, err)
	}

	return New(db, vendor, name, log), nil
}

// New wraps an already verified pool.
func New(db *sql.DB, vendor, name string, log logger.Logger) *Conn {
	return &Conn{db: db, vendor: vendor, name: name, logger: log}
}

// ApplyPool copies the configured pool limits onto db. Zero values keep the
// database/sql defaults.
func ApplyPool(db *sql.DB, pool *config.PoolConfig) {
	if pool.Max.Connections > 0 {
		db.SetMaxOpenConns(int(pool.Max.Connections))
	}
	if pool.Idle.Connections > 0 {
		db.SetMaxIdleConns(int(pool.Idle.Connections))
	}
	if pool.Idle.Time > 0 {
		db.SetConnMaxIdleTime(pool.Idle.Time)
	}
	if pool.Lifetime.Max > 0 {
		db.SetConnMaxLifetime(pool.Lifetime.Max)
	}
}

// DB returns the underlying pool.
func (c *Conn) DB() *sql.DB {
	return c.db
}

// Query executes a query that returns rows
func (c *Conn) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, query, args...)
}

// QueryRow executes a query that returns at most one row
func (c *Conn) QueryRow(ctx context.Context, query string, args ...any) types.Row {
	return types.NewRowFromSQL(c.db.QueryRowContext(ctx, query, args...))
}

// Exec executes a query without returning any rows
func (c *Conn) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.db.ExecContext(ctx, query, args...)
}

// Prepare creates a prepared statement for later queries or executions
func (c *Conn) Prepare(ctx context.Context, query string) (types.Statement, error) {
	stmt, err := c.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return &Statement{stmt: stmt}, nil
}

// Begin starts a transaction
func (c *Conn) Begin(ctx context.Context) (types.Tx, error) {
	return c.BeginTx(ctx, nil)
}

// BeginTx starts a transaction with options
func (c *Conn) BeginTx(ctx context.Context, opts *sql.TxOptions) (types.Tx, error) {
	tx, err := c.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Transaction{tx: tx}, nil
}

// Health pings the database with a short timeout.
func (c *Conn) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	return c.db.PingContext(ctx)
}

// Stats returns database connection pool statistics
func (c *Conn) Stats() (map[string]any, error) {
	stats := c.db.Stats()
	return map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration":        stats.WaitDuration.String(),
		"max_idle_closed":      stats.MaxIdleClosed,
		"max_idle_time_closed": stats.MaxIdleTimeClosed,
		"max_lifetime_closed":  stats.MaxLifetimeClosed,
	}, nil
}

// Close closes the pool.
func (c *Conn) Close() error {
	c.logger.Info().Msgf("Closing %s database connection", c.name)
	return c.db.Close()
}

// DatabaseType returns the vendor identifier.
func (c *Conn) DatabaseType() string {
	return c.vendor
}

// Statement wraps sql.Stmt to implement types.Statement
type Statement struct {
	stmt *sql.Stmt
}

func (s *Statement) Query(ctx context.Context, args ...any) (*sql.Rows, error) {
	return s.stmt.QueryContext(ctx, args...)
}

func (s *Statement) QueryRow(ctx context.Context, args ...any) types.Row {
	return types.NewRowFromSQL(s.stmt.QueryRowContext(ctx, args...))
}

func (s *Statement) Exec(ctx context.Context, args ...any) (sql.Result, error) {
	return s.stmt.ExecContext(ctx, args...)
}

func (s *Statement) Close() error {
	return s.stmt.Close()
}

// Transaction wraps sql.Tx to implement types.Tx
type Transaction struct {
	tx *sql.Tx
}

func (t *Transaction) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, query, args...)
}

func (t *Transaction) QueryRow(ctx context.Context, query string, args ...any) types.Row {
	return types.NewRowFromSQL(t.tx.QueryRowContext(ctx, query, args...))
}

func (t *Transaction) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

func (t *Transaction) Prepare(ctx context.Context, query string) (types.Statement, error) {
	stmt, err := t.tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return &Statement{stmt: stmt}, nil
}

func (t *Transaction) Commit() error {
	return t.tx.Commit()
}

func (t *Transaction) Rollback() error {
	return t.tx.Rollback()
}

var _ types.Interface = (*Conn)(nil)
