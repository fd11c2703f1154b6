package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testDatabaseHost     = "DATABASE_HOST"
	testDatabaseType     = "DATABASE_TYPE"
	testDatabasePassword = "DATABASE_PASSWORD"
	appName              = "salesquery"
	defaultDatabase      = "sales_manager"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := LoadWithOverrides(nil)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, appName, cfg.App.Name)
	assert.Equal(t, EnvDevelopment, cfg.App.Env)

	assert.Equal(t, MySQL, cfg.Database.Type)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, defaultDatabase, cfg.Database.Database)
	assert.Equal(t, "root", cfg.Database.Username)
	assert.Empty(t, cfg.Database.Password)
	assert.Equal(t, int32(25), cfg.Database.Pool.Max.Connections)
	assert.Equal(t, int32(2), cfg.Database.Pool.Idle.Connections)
	assert.Equal(t, 5*time.Minute, cfg.Database.Pool.Idle.Time)
	assert.Equal(t, 30*time.Minute, cfg.Database.Pool.Lifetime.Max)
	assert.Equal(t, 200*time.Millisecond, cfg.Database.Query.Slow.Threshold)
	assert.Equal(t, 1000, cfg.Database.Query.Log.MaxLength)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)

	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, CacheMemory, cfg.Cache.Type)
	assert.Equal(t, 300*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 100, cfg.Cache.MaxEntries)

	assert.Equal(t, 3, cfg.Retry.MaxRetries)
	assert.Equal(t, time.Second, cfg.Retry.Delay)

	require.NotNil(t, cfg.Koanf())
	assert.Equal(t, "localhost", cfg.Koanf().String("database.host"))
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	t.Setenv(testDatabaseType, PostgreSQL)
	t.Setenv(testDatabaseHost, "db.internal")
	t.Setenv("DATABASE_PORT", "5432")
	t.Setenv(testDatabasePassword, "s3cret")
	t.Setenv("DATABASE_POOL_MAX_CONNECTIONS", "10")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RETRY_MAXRETRIES", "5")
	t.Setenv("UNRELATED_SETTING", "ignored")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, PostgreSQL, cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, int32(10), cfg.Database.Pool.Max.Connections)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Retry.MaxRetries)
	assert.False(t, cfg.Koanf().Exists("unrelated"))

	// untouched values keep their defaults
	assert.Equal(t, defaultDatabase, cfg.Database.Database)
}

func TestLoadFileWithEnvironmentOverlay(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(base, []byte(`
app:
  env: staging
database:
  host: base-host
  database: reporting
cache:
  enabled: true
  type: memory
  maxentries: 10
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.staging.yaml"), []byte(`
database:
  host: staging-host
`), 0o600))

	cfg, err := LoadFile(base)
	require.NoError(t, err)

	assert.Equal(t, EnvStaging, cfg.App.Env)
	assert.Equal(t, "staging-host", cfg.Database.Host)
	assert.Equal(t, "reporting", cfg.Database.Database)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 10, cfg.Cache.MaxEntries)

	t.Setenv(testDatabaseHost, "env-host")
	cfg, err = LoadFile(base)
	require.NoError(t, err)
	assert.Equal(t, "env-host", cfg.Database.Host)
}

func TestLoadFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unterminated"), 0o600))

	cfg, err := LoadFile(path)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to load")
}

func TestLoadDisabledLogLevel(t *testing.T) {
	cfg, err := LoadWithOverrides(map[string]any{"log.level": "disabled"})
	require.NoError(t, err)
	assert.Equal(t, "disabled", cfg.Log.Level)
}

func TestLoadBytes(t *testing.T) {
	t.Setenv(testDatabaseHost, "env-host")

	cfg, err := LoadBytes([]byte("database:\n  type: oracle\n  host: yaml-host\n  port: 1521\n"))
	require.NoError(t, err)
	assert.Equal(t, Oracle, cfg.Database.Type)
	assert.Equal(t, 1521, cfg.Database.Port)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, defaultDatabase, cfg.Database.Database)

	_, err = LoadBytes([]byte("database: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
		wantErr   string
	}{
		{name: "invalid_port_type", overrides: map[string]any{"database.port": "not-a-number"}, wantErr: "failed to unmarshal"},
		{name: "invalid_log_level", overrides: map[string]any{"log.level": "super-loud"}, wantErr: "invalid log level"},
		{name: "invalid_database_type", overrides: map[string]any{"database.type": "sqlite"}, wantErr: "invalid database type: sqlite"},
		{name: "invalid_env", overrides: map[string]any{"app.env": "qa"}, wantErr: "invalid environment: qa"},
		{name: "too_many_retries", overrides: map[string]any{"retry.maxretries": 50}, wantErr: "MaxRetries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadWithOverrides(tt.overrides)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromKoanf(t *testing.T) {
	k := koanf.New(".")
	require.NoError(t, loadDefaults(k))
	require.NoError(t, k.Set("database.type", Oracle))
	require.NoError(t, k.Set("database.port", 1521))
	require.NoError(t, k.Set("database.oracle.service.name", "XEPDB1"))

	cfg, err := LoadFrom(k)
	require.NoError(t, err)
	assert.Equal(t, Oracle, cfg.Database.Type)
	assert.Equal(t, "XEPDB1", cfg.Database.Oracle.Service.Name)
	assert.Same(t, k, cfg.Koanf())
}

func TestDatabaseConfigStringMasksPassword(t *testing.T) {
	cfg := DatabaseConfig{
		Type:     MySQL,
		Host:     "localhost",
		Port:     3306,
		Database: defaultDatabase,
		Username: "root",
		Password: "12345678",
	}

	s := cfg.String()
	assert.NotContains(t, s, "12345678")
	assert.Contains(t, s, "password=****")
	assert.Contains(t, s, "host=localhost")

	cfg.Password = ""
	assert.Contains(t, cfg.String(), "password=)")
	assert.NotContains(t, cfg.String(), "****")
}
