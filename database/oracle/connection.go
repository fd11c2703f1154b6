// Package oracle opens Oracle connections through the go-ora driver.
package oracle

import (
	"database/sql"
	"fmt"

	go_ora "github.com/sijms/go-ora/v2"

	"github.com/gaborage/salesquery/config"
	"github.com/gaborage/salesquery/database/internal/sqldb"
	"github.com/gaborage/salesquery/database/types"
	"github.com/gaborage/salesquery/logger"
)

var (
	openOracleDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("oracle", dsn)
	}
	pingOracleDB sqldb.PingFunc = sqldb.DefaultPing
)

// buildDSN returns cfg.ConnectionString when set. Otherwise the service name
// wins over the SID, and the database name is the last fallback.
func buildDSN(cfg *config.DatabaseConfig) string {
	if cfg.ConnectionString != "" {
		return cfg.ConnectionString
	}

	service := cfg.Oracle.Service
	switch {
	case service.Name != "":
		return go_ora.BuildUrl(cfg.Host, cfg.Port, service.Name, cfg.Username, cfg.Password, nil)
	case service.SID != "":
		return go_ora.BuildUrl(cfg.Host, cfg.Port, "", cfg.Username, cfg.Password, map[string]string{"SID": service.SID})
	default:
		return go_ora.BuildUrl(cfg.Host, cfg.Port, cfg.Database, cfg.Username, cfg.Password, nil)
	}
}

// NewConnection creates a new Oracle connection
func NewConnection(cfg *config.DatabaseConfig, log logger.Logger) (types.Interface, error) {
	db, err := openOracleDB(buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open Oracle connection: %w", err)
	}

	conn, err := sqldb.Open(db, types.Oracle, "Oracle", cfg, log, pingOracleDB)
	if err != nil {
		return nil, err
	}

	ev := log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port)
	switch {
	case cfg.Oracle.Service.Name != "":
		ev = ev.Str("service_name", cfg.Oracle.Service.Name)
	case cfg.Oracle.Service.SID != "":
		ev = ev.Str("sid", cfg.Oracle.Service.SID)
	default:
		ev = ev.Str("database", cfg.Database)
	}
	ev.Msg("Connected to Oracle database")

	return conn, nil
}
