// Package config loads application configuration from defaults, YAML files and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// DefaultFile is the configuration file read by Load.
const DefaultFile = "config.yaml"

// sections lists the top-level keys environment variables may set.
var sections = []string{"app.", "database.", "log.", "cache.", "retry."}

// Load loads configuration from DefaultFile. See LoadFile.
func Load() (*Config, error) {
	return LoadFile(DefaultFile)
}

// LoadFile loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. config.<env>.yaml next to path, then path itself
// 3. Default values (lowest priority)
//
// Missing files are skipped.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := loadOptionalFile(k, path); err != nil {
		return nil, err
	}

	if appEnv := k.String("app.env"); appEnv != "" && path != "" {
		envFile := strings.TrimSuffix(path, ".yaml") + "." + appEnv + ".yaml"
		if err := loadOptionalFile(k, envFile); err != nil {
			return nil, err
		}
	}

	if err := loadEnv(k); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	return LoadFrom(k)
}

// LoadBytes loads configuration from an in-memory YAML document layered
// between the defaults and the environment.
func LoadBytes(data []byte) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := loadEnv(k); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	return LoadFrom(k)
}

// LoadWithOverrides builds a configuration from the defaults overlaid with
// overrides, keyed by dotted path ("database.host"). Files and environment
// variables are ignored.
func LoadWithOverrides(overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load overrides: %w", err)
		}
	}

	return LoadFrom(k)
}

// LoadFrom unmarshals and validates a configuration from an already populated
// koanf instance.
func LoadFrom(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.k = k

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadOptionalFile(k *koanf.Koanf, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// loadEnv maps DATABASE_HOST to database.host. Variables outside the known
// sections are ignored.
func loadEnv(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ReplaceAll(strings.ToLower(key), "_", ".")
			for _, prefix := range sections {
				if strings.HasPrefix(key, prefix) {
					return key, value
				}
			}
			return "", nil
		},
	}), nil)
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name": "salesquery",
		"app.env":  EnvDevelopment,

		"database.type":     MySQL,
		"database.host":     "localhost",
		"database.port":     3306,
		"database.database": "sales_manager",
		"database.username": "root",

		"database.pool.max.connections":  25,
		"database.pool.idle.connections": 2,
		"database.pool.idle.time":        "5m",
		"database.pool.lifetime.max":     "30m",
		"database.query.slow.threshold":  "200ms",
		"database.query.slow.enabled":    true,
		"database.query.log.parameters":  false,
		"database.query.log.max":         defaultMaxQueryLength,

		"log.level":  "info",
		"log.pretty": false,

		"cache.enabled":    false,
		"cache.type":       CacheMemory,
		"cache.ttl":        "300s",
		"cache.maxentries": 100,
		"cache.redis.host": "localhost",
		"cache.redis.port": 6379,

		"retry.maxretries": 3,
		"retry.delay":      "1s",
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}
