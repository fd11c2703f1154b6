//go:build integration

package containers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/gaborage/salesquery/config"
)

const mysqlPort = "3306/tcp"

// MySQLContainerConfig holds configuration for the MySQL test container.
type MySQLContainerConfig struct {
	// ImageTag specifies the MySQL version (default: "8.0")
	ImageTag string
	Username string
	Password string
	// Database is created on startup (default: "sales_manager")
	Database string
	// Scripts are executed in order once the server is up.
	Scripts        []string
	StartupTimeout time.Duration
}

// DefaultMySQLConfig returns a MySQLContainerConfig populated with defaults.
func DefaultMySQLConfig() *MySQLContainerConfig {
	return &MySQLContainerConfig{
		ImageTag:       "8.0",
		Username:       "testuser",
		Password:       "testpass",
		Database:       "sales_manager",
		StartupTimeout: 90 * time.Second,
	}
}

// MySQLContainer wraps a running MySQL testcontainer.
type MySQLContainer struct {
	container *mysql.MySQLContainer
	cfg       *MySQLContainerConfig
}

// StartMySQLContainer starts a MySQL testcontainer. The test is skipped when
// Docker is not reachable.
func StartMySQLContainer(ctx context.Context, t *testing.T, cfg *MySQLContainerConfig) (*MySQLContainer, error) {
	t.Helper()

	if cfg == nil {
		cfg = DefaultMySQLConfig()
	}

	if !isDockerAvailable(ctx) {
		t.Skip("Docker is not available - skipping integration test")
		return nil, nil
	}

	opts := []testcontainers.ContainerCustomizer{
		mysql.WithDatabase(cfg.Database),
		mysql.WithUsername(cfg.Username),
		mysql.WithPassword(cfg.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("port: 3306  MySQL Community Server").
				WithStartupTimeout(cfg.StartupTimeout),
		),
	}
	if len(cfg.Scripts) > 0 {
		opts = append(opts, mysql.WithScripts(cfg.Scripts...))
	}

	container, err := mysql.Run(ctx, fmt.Sprintf("mysql:%s", cfg.ImageTag), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start MySQL container: %w", err)
	}

	t.Logf("MySQL container started (database=%s)", cfg.Database)

	return &MySQLContainer{container: container, cfg: cfg}, nil
}

// MustStartMySQLContainer is StartMySQLContainer that fails the test on error
// and terminates the container when the test finishes.
func MustStartMySQLContainer(ctx context.Context, t *testing.T, cfg *MySQLContainerConfig) *MySQLContainer {
	t.Helper()

	c, err := StartMySQLContainer(ctx, t, cfg)
	if err != nil {
		t.Fatalf("Failed to start MySQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate MySQL container: %v", err)
		}
	})
	return c
}

// DatabaseConfig returns connection settings pointing at the container.
func (m *MySQLContainer) DatabaseConfig(ctx context.Context) (*config.DatabaseConfig, error) {
	if m.container == nil {
		return nil, fmt.Errorf("container not initialized")
	}
	host, err := m.container.Host(ctx)
	if err != nil {
		return nil, err
	}
	port, err := m.container.MappedPort(ctx, mysqlPort)
	if err != nil {
		return nil, err
	}
	return &config.DatabaseConfig{
		Type:     config.MySQL,
		Host:     host,
		Port:     port.Int(),
		Database: m.cfg.Database,
		Username: m.cfg.Username,
		Password: m.cfg.Password,
	}, nil
}

// Terminate stops and removes the container.
func (m *MySQLContainer) Terminate(ctx context.Context) error {
	if m.container == nil {
		return nil
	}
	return m.container.Terminate(ctx)
}
