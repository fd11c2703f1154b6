package database

import (
	"context"
	"fmt"
	"slices"

	"github.com/gaborage/salesquery/config"
	"github.com/gaborage/salesquery/database/mysql"
	"github.com/gaborage/salesquery/database/oracle"
	"github.com/gaborage/salesquery/database/postgresql"
	"github.com/gaborage/salesquery/logger"
)

// connector opens an untracked vendor connection.
type connector func(cfg *config.DatabaseConfig, log logger.Logger) (Interface, error)

var connectors = map[string]connector{
	MySQL:      mysql.NewConnection,
	PostgreSQL: postgresql.NewConnection,
	Oracle:     oracle.NewConnection,
}

// NewConnection creates a new database connection according to cfg and returns it wrapped
// with performance tracking. The concrete driver is selected by cfg.Type. If cfg.Type is
// unsupported an error is returned; if the chosen driver fails to initialize, that
// underlying error is returned.
func NewConnection(cfg *config.DatabaseConfig, log logger.Logger) (Interface, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration is required")
	}
	if err := ValidateDatabaseType(cfg.Type); err != nil {
		return nil, err
	}

	conn, err := connectors[cfg.Type](cfg, log)
	if err != nil {
		return nil, err
	}

	return NewTrackedConnection(conn, log, cfg), nil
}

// WithConnection opens a connection, passes it to fn and closes it once fn
// returns. A close failure is logged; fn's error is returned unchanged.
func WithConnection(ctx context.Context, cfg *config.DatabaseConfig, log logger.Logger, fn func(context.Context, Interface) error) error {
	conn, err := NewConnection(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close database connection")
		}
	}()

	return fn(ctx, conn)
}

// ValidateDatabaseType returns nil if dbType is one of the supported database types.
// If dbType is not supported, it returns an error describing the invalid value and listing the supported types.
func ValidateDatabaseType(dbType string) error {
	supportedTypes := GetSupportedDatabaseTypes()
	if !slices.Contains(supportedTypes, dbType) {
		return fmt.Errorf("unsupported database type: %s (supported: %v)", dbType, supportedTypes)
	}
	return nil
}

// GetSupportedDatabaseTypes returns a list of supported database types
func GetSupportedDatabaseTypes() []string {
	return config.SupportedDatabaseTypes()
}
