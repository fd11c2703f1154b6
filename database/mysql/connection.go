// Package mysql opens MySQL connections through go-sql-driver/mysql.
package mysql

import (
	"database/sql"
	"fmt"
	"net"
	"strconv"

	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/gaborage/salesquery/config"
	"github.com/gaborage/salesquery/database/internal/sqldb"
	"github.com/gaborage/salesquery/database/types"
	"github.com/gaborage/salesquery/logger"
)

var (
	openMySQLDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("mysql", dsn)
	}
	pingMySQLDB sqldb.PingFunc = sqldb.DefaultPing
)

// buildDSN returns cfg.ConnectionString when set, otherwise a TCP DSN with
// parseTime enabled so DATE and DATETIME columns scan into time.Time.
func buildDSN(cfg *config.DatabaseConfig) string {
	if cfg.ConnectionString != "" {
		return cfg.ConnectionString
	}

	mc := mysqldriver.NewConfig()
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Database
	mc.ParseTime = true

	return mc.FormatDSN()
}

// NewConnection creates a new MySQL connection
func NewConnection(cfg *config.DatabaseConfig, log logger.Logger) (types.Interface, error) {
	dsn := buildDSN(cfg)
	if _, err := mysqldriver.ParseDSN(dsn); err != nil {
		return nil, fmt.Errorf("failed to parse MySQL config: %w", err)
	}

	db, err := openMySQLDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	conn, err := sqldb.Open(db, types.MySQL, "MySQL", cfg, log, pingMySQLDB)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("Connected to MySQL database")

	return conn, nil
}
