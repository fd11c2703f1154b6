package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaborage/salesquery/config"
	"github.com/gaborage/salesquery/database"
	"github.com/gaborage/salesquery/logger"
)

// executeCommand runs the root command with args and returns its stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommandWithInput(t, strings.NewReader(""), args...)
}

// executeCommandWithInput is executeCommand with stdin bound to in.
func executeCommandWithInput(t *testing.T, in io.Reader, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeCommandCapture(t, in, args...)
	return out, err
}

// executeCommandCapture runs the root command and returns stdout and stderr.
func executeCommandCapture(t *testing.T, in io.Reader, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	root := NewRootCommand("test")
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)

	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// writeConfig writes a config file with logging disabled and returns its path.
func writeConfig(t *testing.T, extra string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "log:\n  level: disabled\nretry:\n  maxretries: 0\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// stubConnection makes the commands use db instead of opening a real connection.
func stubConnection(t *testing.T, db database.Interface) *config.DatabaseConfig {
	t.Helper()

	var seen config.DatabaseConfig
	original := withConnection
	withConnection = func(ctx context.Context, cfg *config.DatabaseConfig, _ logger.Logger, fn func(context.Context, database.Interface) error) error {
		seen = *cfg
		return fn(ctx, db)
	}
	t.Cleanup(func() { withConnection = original })
	return &seen
}
