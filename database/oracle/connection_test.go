package oracle

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/salesquery/config"
	"github.com/gaborage/salesquery/database/types"
	"github.com/gaborage/salesquery/logger"
)

func testConfig() *config.DatabaseConfig {
	return &config.DatabaseConfig{
		Type:     types.Oracle,
		Host:     "ora.local",
		Port:     1521,
		Username: "sales",
		Password: "pw",
	}
}

func stubDriver(t *testing.T, open func(string) (*sql.DB, error), ping func(context.Context, *sql.DB) error) {
	t.Helper()
	origOpen, origPing := openOracleDB, pingOracleDB
	openOracleDB, pingOracleDB = open, ping
	t.Cleanup(func() { openOracleDB, pingOracleDB = origOpen, origPing })
}

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*config.DatabaseConfig)
		contains string
	}{
		{
			name:     "service name",
			mutate:   func(c *config.DatabaseConfig) { c.Oracle.Service.Name = "SALESPDB" },
			contains: "ora.local:1521/SALESPDB",
		},
		{
			name:     "sid",
			mutate:   func(c *config.DatabaseConfig) { c.Oracle.Service.SID = "ORCL" },
			contains: "ORCL",
		},
		{
			name:     "database fallback",
			mutate:   func(c *config.DatabaseConfig) { c.Database = "XEPDB1" },
			contains: "ora.local:1521/XEPDB1",
		},
		{
			name: "service name wins over sid",
			mutate: func(c *config.DatabaseConfig) {
				c.Oracle.Service.Name = "SALESPDB"
				c.Oracle.Service.SID = "ORCL"
			},
			contains: "/SALESPDB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)

			dsn := buildDSN(cfg)
			assert.Contains(t, dsn, "oracle://sales:pw@")
			assert.Contains(t, dsn, tt.contains)
		})
	}

	t.Run("connection string", func(t *testing.T) {
		cfg := testConfig()
		cfg.ConnectionString = "oracle://u:p@h:1521/svc"
		assert.Equal(t, "oracle://u:p@h:1521/svc", buildDSN(cfg))
	})
}

func TestNewConnectionSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	stubDriver(t,
		func(string) (*sql.DB, error) { return db, nil },
		func(context.Context, *sql.DB) error { return nil },
	)

	cfg := testConfig()
	cfg.Oracle.Service.SID = "ORCL"

	conn, err := NewConnection(cfg, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, types.Oracle, conn.DatabaseType())

	mock.ExpectClose()
	require.NoError(t, conn.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewConnectionOpenFailure(t *testing.T) {
	openErr := errors.New("bad dsn")
	stubDriver(t,
		func(string) (*sql.DB, error) { return nil, openErr },
		func(context.Context, *sql.DB) error { return nil },
	)

	_, err := NewConnection(testConfig(), logger.Nop())
	require.ErrorIs(t, err, openErr)
	assert.Contains(t, err.Error(), "failed to open Oracle connection")
}

func TestNewConnectionPingFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	pingErr := errors.New("ORA-12541: no listener")
	stubDriver(t,
		func(string) (*sql.DB, error) { return db, nil },
		func(context.Context, *sql.DB) error { return pingErr },
	)

	conn, err := NewConnection(testConfig(), logger.Nop())
	assert.Nil(t, conn)
	require.ErrorIs(t, err, pingErr)
	require.NoError(t, mock.ExpectationsWereMet())
}
