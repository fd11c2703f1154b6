package config

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/v2"
)

// Config represents the overall application configuration structure.
// It includes sections for application settings, database connection details,
// logging preferences, result caching and retry behaviour.
// The embedded koanf.Koanf instance allows access to keys not mapped to a field.
type Config struct {
	App      AppConfig      `koanf:"app" json:"app" yaml:"app"`
	Database DatabaseConfig `koanf:"database" json:"database" yaml:"database"`
	Log      LogConfig      `koanf:"log" json:"log" yaml:"log"`
	Cache    CacheConfig    `koanf:"cache" json:"cache" yaml:"cache"`
	Retry    RetryConfig    `koanf:"retry" json:"retry" yaml:"retry"`

	// k holds the underlying Koanf instance
	k *koanf.Koanf `json:"-" yaml:"-"`
}

// Koanf returns the instance the configuration was loaded from.
// It is nil for configs built by hand.
func (c *Config) Koanf() *koanf.Koanf {
	return c.k
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name string `koanf:"name" json:"name" yaml:"name" validate:"required"`
	Env  string `koanf:"env" json:"env" yaml:"env" validate:"required"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Type     string `koanf:"type" json:"type" yaml:"type"`
	Host     string `koanf:"host" json:"host" yaml:"host"`
	Port     int    `koanf:"port" json:"port" yaml:"port" validate:"gte=0,lte=65535"`
	Database string `koanf:"database" json:"database" yaml:"database"`
	Username string `koanf:"username" json:"username" yaml:"username"`
	Password string `koanf:"password" json:"-" yaml:"password"`

	ConnectionString string `koanf:"connectionstring" json:"-" yaml:"connectionstring"`

	Pool   PoolConfig   `koanf:"pool" json:"pool" yaml:"pool"`
	Query  QueryConfig  `koanf:"query" json:"query" yaml:"query"`
	Oracle OracleConfig `koanf:"oracle" json:"oracle" yaml:"oracle"`
}

// String renders the connection settings with the password masked.
func (c DatabaseConfig) String() string {
	password := ""
	if c.Password != "" {
		password = maskedValue
	}
	return fmt.Sprintf("DatabaseConfig(type=%s host=%s port=%d database=%s user=%s password=%s)",
		c.Type, c.Host, c.Port, c.Database, c.Username, password)
}

// PoolConfig holds connection pool settings.
// Defaults applied during validation:
//   - Max.Connections: 25
//   - Idle.Connections: 2
//   - Idle.Time: 5m
//   - Lifetime.Max: 30m
type PoolConfig struct {
	Max      PoolMaxConfig  `koanf:"max" json:"max" yaml:"max"`
	Idle     PoolIdleConfig `koanf:"idle" json:"idle" yaml:"idle"`
	Lifetime LifetimeConfig `koanf:"lifetime" json:"lifetime" yaml:"lifetime"`
}

// PoolMaxConfig holds maximum connections settings.
type PoolMaxConfig struct {
	Connections int32 `koanf:"connections" json:"connections" yaml:"connections"`
}

// PoolIdleConfig holds idle connections settings.
type PoolIdleConfig struct {
	Connections int32         `koanf:"connections" json:"connections" yaml:"connections"`
	Time        time.Duration `koanf:"time" json:"time" yaml:"time"`
}

// LifetimeConfig holds maximum lifetime settings for connections.
type LifetimeConfig struct {
	Max time.Duration `koanf:"max" json:"max" yaml:"max"`
}

// QueryConfig holds settings related to query logging and slow query detection.
type QueryConfig struct {
	Slow SlowQueryConfig `koanf:"slow" json:"slow" yaml:"slow"`
	Log  QueryLogConfig  `koanf:"log" json:"log" yaml:"log"`
}

// SlowQueryConfig holds settings for slow query detection.
type SlowQueryConfig struct {
	Threshold time.Duration `koanf:"threshold" json:"threshold" yaml:"threshold"`
	Enabled   bool          `koanf:"enabled" json:"enabled" yaml:"enabled"`
}

// QueryLogConfig holds settings for query logging.
type QueryLogConfig struct {
	Parameters bool `koanf:"parameters" json:"parameters" yaml:"parameters"`
	MaxLength  int  `koanf:"max" json:"max" yaml:"max"`
}

// OracleConfig holds Oracle-specific database settings.
type OracleConfig struct {
	Service ServiceConfig `koanf:"service" json:"service" yaml:"service"`
}

// ServiceConfig holds Oracle service connection settings.
type ServiceConfig struct {
	Name string `koanf:"name" json:"name" yaml:"name"`
	SID  string `koanf:"sid" json:"sid" yaml:"sid"`
}

// CacheConfig holds query result cache settings.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled" json:"enabled" yaml:"enabled"`
	Type       string        `koanf:"type" json:"type" yaml:"type"` // memory, redis
	TTL        time.Duration `koanf:"ttl" json:"ttl" yaml:"ttl"`
	MaxEntries int           `koanf:"maxentries" json:"maxentries" yaml:"maxentries" validate:"gte=0"`
	Redis      RedisConfig   `koanf:"redis" json:"redis" yaml:"redis"`
}

// RedisConfig holds Redis-specific cache settings.
type RedisConfig struct {
	Host         string        `koanf:"host" json:"host" yaml:"host"`
	Port         int           `koanf:"port" json:"port" yaml:"port"`
	Password     string        `koanf:"password" json:"-" yaml:"password"`
	Database     int           `koanf:"database" json:"database" yaml:"database"`
	PoolSize     int           `koanf:"poolsize" json:"poolsize" yaml:"poolsize"`
	DialTimeout  time.Duration `koanf:"dialtimeout" json:"dialtimeout" yaml:"dialtimeout"`
	ReadTimeout  time.Duration `koanf:"readtimeout" json:"readtimeout" yaml:"readtimeout"`
	WriteTimeout time.Duration `koanf:"writetimeout" json:"writetimeout" yaml:"writetimeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level" json:"level" yaml:"level"`
	Pretty bool   `koanf:"pretty" json:"pretty" yaml:"pretty"`
}

// RetryConfig holds retry settings for query execution.
type RetryConfig struct {
	MaxRetries int           `koanf:"maxretries" json:"maxretries" yaml:"maxretries" validate:"gte=0,lte=10"`
	Delay      time.Duration `koanf:"delay" json:"delay" yaml:"delay" validate:"gte=0"`
}
