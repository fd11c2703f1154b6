package tracking

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/gaborage/salesquery/config"
	"github.com/gaborage/salesquery/database/types"
	"github.com/gaborage/salesquery/logger"
)

const salesQuery = "SELECT c.category_name FROM sales s INNER JOIN products p ON s.product_id = p.product_id"

// newBufferLogger returns a debug-level JSON logger writing to the returned buffer.
func newBufferLogger() (logger.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return logger.NewWithWriter(buf, "debug", false, nil), buf
}

// logLines decodes each JSON log line written to buf.
func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		lines = append(lines, m)
	}
	return lines
}

// setupSpanRecorder installs an in-memory tracer provider for the test.
func setupSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(original)
	})
	return recorder
}

func TestNewSettings(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		s := NewSettings(nil)
		assert.Equal(t, DefaultSlowQueryThreshold, s.SlowQueryThreshold())
		assert.Equal(t, DefaultMaxQueryLength, s.MaxQueryLength())
		assert.True(t, s.SlowQueryEnabled())
		assert.False(t, s.LogQueryParameters())
	})

	t.Run("config values", func(t *testing.T) {
		cfg := &config.DatabaseConfig{Query: config.QueryConfig{
			Slow: config.SlowQueryConfig{Threshold: time.Second, Enabled: true},
			Log:  config.QueryLogConfig{Parameters: true, MaxLength: 50},
		}}
		s := NewSettings(cfg)
		assert.Equal(t, time.Second, s.SlowQueryThreshold())
		assert.Equal(t, 50, s.MaxQueryLength())
		assert.True(t, s.LogQueryParameters())
	})

	t.Run("non-positive values fall back", func(t *testing.T) {
		cfg := &config.DatabaseConfig{Query: config.QueryConfig{
			Slow: config.SlowQueryConfig{Threshold: -1},
			Log:  config.QueryLogConfig{MaxLength: 0},
		}}
		s := NewSettings(cfg)
		assert.Equal(t, DefaultSlowQueryThreshold, s.SlowQueryThreshold())
		assert.Equal(t, DefaultMaxQueryLength, s.MaxQueryLength())
		assert.False(t, s.SlowQueryEnabled())
	})
}

func TestTrackDBOperationLogLevels(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		elapsed  time.Duration
		err      error
		level    string
		message  string
	}{
		{
			name:     "success",
			settings: NewSettings(nil),
			level:    "debug",
			message:  "Database operation executed",
		},
		{
			name:     "error",
			settings: NewSettings(nil),
			err:      errors.New("table sales doesn't exist"),
			level:    "error",
			message:  "Database operation error",
		},
		{
			name:     "no rows",
			settings: NewSettings(nil),
			err:      sql.ErrNoRows,
			level:    "debug",
			message:  "Database operation returned no rows",
		},
		{
			name:     "slow",
			settings: Settings{slowQueryThreshold: time.Millisecond, slowQueryEnabled: true},
			elapsed:  50 * time.Millisecond,
			level:    "warn",
			message:  "Slow database operation detected",
		},
		{
			name:     "slow detection disabled",
			settings: Settings{slowQueryThreshold: time.Millisecond},
			elapsed:  50 * time.Millisecond,
			level:    "debug",
			message:  "Database operation executed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := newBufferLogger()
			tc := &Context{Logger: log, Vendor: types.MySQL, Settings: tt.settings}

			TrackDBOperation(context.Background(), tc, salesQuery, nil, time.Now().Add(-tt.elapsed), tt.err)

			lines := logLines(t, buf)
			require.Len(t, lines, 1)
			assert.Equal(t, tt.level, lines[0]["level"])
			assert.Contains(t, lines[0]["message"], tt.message)
			assert.Equal(t, types.MySQL, lines[0]["vendor"])
			assert.Equal(t, salesQuery, lines[0]["query"])
		})
	}
}

func TestTrackDBOperationTruncatesAndLogsArgs(t *testing.T) {
	log, buf := newBufferLogger()
	tc := &Context{
		Logger:   log,
		Vendor:   types.PostgreSQL,
		Settings: Settings{maxQueryLength: 10, logQueryParameters: true, slowQueryThreshold: time.Hour},
	}

	TrackDBOperation(context.Background(), tc, salesQuery, []any{"Confections", []byte{1, 2}}, time.Now(), nil)

	lines := logLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "SELECT ...", lines[0]["query"])
	assert.Equal(t, []any{"Confect...", "<bytes len=2>"}, lines[0]["args"])
}

func TestTrackDBOperationCounters(t *testing.T) {
	ctx := logger.WithDBCounter(context.Background())
	tc := &Context{Logger: logger.Nop(), Vendor: types.MySQL, Settings: NewSettings(nil)}

	TrackDBOperation(ctx, tc, salesQuery, nil, time.Now().Add(-time.Millisecond), nil)
	TrackDBOperation(ctx, tc, salesQuery, nil, time.Now().Add(-time.Millisecond), nil)

	assert.Equal(t, int64(2), logger.GetDBCounter(ctx))
	assert.GreaterOrEqual(t, logger.GetDBElapsed(ctx), int64(2*time.Millisecond))
}

func TestTrackDBOperationNilContextIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		TrackDBOperation(context.Background(), nil, salesQuery, nil, time.Now(), nil)
		TrackDBOperation(context.Background(), &Context{}, salesQuery, nil, time.Now(), nil)
	})
}

func TestTrackDBOperationSpans(t *testing.T) {
	recorder := setupSpanRecorder(t)
	tc := &Context{Logger: logger.Nop(), Vendor: types.MySQL, Settings: NewSettings(nil)}

	TrackDBOperation(context.Background(), tc, salesQuery, nil, time.Now(), nil)
	TrackDBOperation(context.Background(), tc, "SELECT 1", nil, time.Now(), errors.New("boom"))
	TrackDBOperation(context.Background(), tc, "SELECT 1", nil, time.Now(), sql.ErrNoRows)

	spans := recorder.Ended()
	require.Len(t, spans, 3)

	assert.Equal(t, "db.select", spans[0].Name())
	attrs := map[string]any{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, "mysql", attrs["db.system"])
	assert.Equal(t, salesQuery, attrs["db.query.text"])
	assert.Equal(t, "select", attrs["db.operation.name"])
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "boom", spans[1].Status().Description)

	assert.Equal(t, codes.Unset, spans[2].Status().Code)
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		value  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abcdef", 3, "abc"},
		{"unbounded", 0, "unbounded"},
		{"ñandú ñandú", 6, "ñan..."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateString(tt.value, tt.maxLen), tt.value)
	}
}

func TestSanitizeArgs(t *testing.T) {
	assert.Nil(t, SanitizeArgs(nil, 10))

	got := SanitizeArgs([]any{"a long string value", []byte("abc"), 2018, nil}, 8)
	assert.Equal(t, []any{"a lon...", "<bytes len=3>", "2018", "<nil>"}, got)
}

func TestExtractDBOperation(t *testing.T) {
	tests := map[string]string{
		"":                                     "query",
		"   ":                                  "query",
		"SELECT * FROM sales":                  "select",
		"  insert into sales values (1)":       "insert",
		"UPDATE products SET price = 1":        "update",
		"DELETE FROM sales":                    "delete",
		"WITH x AS (SELECT 1) SELECT * FROM x": "query",
		"PREPARE: SELECT 1":                    "prepare",
		"TX_PREPARE: SELECT 1":                 "prepare",
		"BEGIN":                                "begin",
		"BEGIN_TX":                             "begin",
		"TX_COMMIT":                            "commit",
		"TX_ROLLBACK":                          "rollback",
		"STMT_EXEC: UPDATE products":           "query",
	}

	for query, want := range tests {
		assert.Equal(t, want, extractDBOperation(query), query)
	}
}
