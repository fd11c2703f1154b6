package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gaborage/salesquery/validation"
)

const (
	defaultSlowQueryThreshold = 200 * time.Millisecond
	defaultMaxQueryLength     = 1000
	defaultCacheTTL           = 300 * time.Second
	defaultCacheMaxEntries    = 100

	maskedValue = "****"
)

// Database type constants
const (
	PostgreSQL = "postgresql"
	Oracle     = "oracle"
	MySQL      = "mysql"
)

// Cache backend constants
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// SupportedDatabaseTypes returns the accepted values of database.type.
func SupportedDatabaseTypes() []string {
	return []string{PostgreSQL, Oracle, MySQL}
}

// Validate checks cfg and applies defaults for zero-valued optional settings.
func Validate(cfg *Config) error {
	if err := validation.Struct(cfg); err != nil {
		return err
	}

	if err := validateApp(&cfg.App); err != nil {
		return fmt.Errorf("app config: %w", err)
	}

	if err := validateDatabase(&cfg.Database); err != nil {
		return fmt.Errorf("database config: %w", err)
	}

	if err := validateLog(&cfg.Log); err != nil {
		return fmt.Errorf("log config: %w", err)
	}

	if err := validateCache(&cfg.Cache); err != nil {
		return fmt.Errorf("cache config: %w", err)
	}

	return nil
}

func validateApp(cfg *AppConfig) error {
	validEnvs := []string{EnvDevelopment, EnvStaging, EnvProduction}
	if !slices.Contains(validEnvs, cfg.Env) {
		return NewInvalidFieldError("app.env", fmt.Sprintf("invalid environment: %s", cfg.Env), validEnvs)
	}
	return nil
}

func validateDatabase(cfg *DatabaseConfig) error {
	if cfg.ConnectionString != "" {
		if cfg.Type == "" {
			return NewMissingFieldError("database.type", "DATABASE_TYPE", "database.type")
		}
		if err := validateDatabaseType(cfg.Type); err != nil {
			return err
		}
		return applyDatabasePoolDefaults(cfg)
	}

	if err := validateDatabaseType(cfg.Type); err != nil {
		return err
	}

	if err := validateDatabaseCoreFields(cfg); err != nil {
		return err
	}

	if err := validateVendorSpecificFields(cfg); err != nil {
		return err
	}

	return applyDatabasePoolDefaults(cfg)
}

// validateDatabaseType validates that dbType is one of the supported database type
// constants (PostgreSQL, Oracle or MySQL).
func validateDatabaseType(dbType string) error {
	if !slices.Contains(SupportedDatabaseTypes(), dbType) {
		return NewInvalidFieldError("database.type",
			fmt.Sprintf("invalid database type: %s", dbType), SupportedDatabaseTypes())
	}
	return nil
}

func validateDatabaseCoreFields(cfg *DatabaseConfig) error {
	if cfg.Host == "" {
		return NewMissingFieldError("database.host", "DATABASE_HOST", "database.host")
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return NewInvalidFieldError("database.port", fmt.Sprintf("invalid database port: %d", cfg.Port), nil)
	}

	if cfg.Database == "" && cfg.Type != Oracle {
		return NewMissingFieldError("database.database", "DATABASE_DATABASE", "database.database")
	}

	if cfg.Username == "" {
		return NewMissingFieldError("database.username", "DATABASE_USERNAME", "database.username")
	}

	return nil
}

// validateVendorSpecificFields requires Oracle connections to name a service,
// a SID or a database.
func validateVendorSpecificFields(cfg *DatabaseConfig) error {
	if cfg.Type != Oracle {
		return nil
	}
	if cfg.Oracle.Service.Name == "" && cfg.Oracle.Service.SID == "" && cfg.Database == "" {
		return NewMissingFieldError("database.oracle.service.name", "DATABASE_ORACLE_SERVICE_NAME", "database.oracle.service.name")
	}
	return nil
}

// applyDatabasePoolDefaults sets defaults for zero pool and query settings and
// rejects negative ones. cfg is modified in place.
func applyDatabasePoolDefaults(cfg *DatabaseConfig) error {
	if cfg.Pool.Max.Connections == 0 {
		cfg.Pool.Max.Connections = 25
	} else if cfg.Pool.Max.Connections < 0 {
		return NewValidationError("database.pool.max.connections", "max connections must be positive")
	}

	if cfg.Pool.Idle.Connections < 0 {
		return NewValidationError("database.pool.idle.connections", "idle connections must be zero or positive")
	}

	if cfg.Query.Log.MaxLength < 0 {
		return NewValidationError("database.query.log.max", "max query length must be zero or positive")
	}
	if cfg.Query.Log.MaxLength == 0 {
		cfg.Query.Log.MaxLength = defaultMaxQueryLength
	}

	if cfg.Query.Slow.Threshold < 0 {
		return NewValidationError("database.query.slow.threshold", "slow query threshold must be zero or positive")
	}
	if cfg.Query.Slow.Threshold == 0 {
		cfg.Query.Slow.Threshold = defaultSlowQueryThreshold
	}

	return nil
}

// validateLog validates that cfg.Level is one of the supported log levels.
func validateLog(cfg *LogConfig) error {
	validLevels := []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}
	if !slices.Contains(validLevels, strings.ToLower(cfg.Level)) {
		return NewInvalidFieldError("log.level", fmt.Sprintf("invalid log level: %s", cfg.Level), validLevels)
	}
	return nil
}

func validateCache(cfg *CacheConfig) error {
	if !cfg.Enabled {
		return nil
	}

	validTypes := []string{CacheMemory, CacheRedis}
	if !slices.Contains(validTypes, cfg.Type) {
		return NewInvalidFieldError("cache.type", fmt.Sprintf("invalid cache type: %s", cfg.Type), validTypes)
	}

	if cfg.TTL < 0 {
		return NewValidationError("cache.ttl", "ttl must be zero or positive")
	}
	if cfg.TTL == 0 {
		cfg.TTL = defaultCacheTTL
	}
	if cfg.MaxEntries == 0 {
		cfg.MaxEntries = defaultCacheMaxEntries
	}

	if cfg.Type == CacheRedis && cfg.Redis.Host == "" {
		return NewMissingFieldError("cache.redis.host", "CACHE_REDIS_HOST", "cache.redis.host")
	}

	return nil
}
