package tracking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.32.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/gaborage/salesquery/logger"
)

const (
	defaultOperation = "query"

	// TracerName identifies the spans created for database operations.
	TracerName        = "salesquery/database"
	maxDBQueryAttrLen = 2000
)

// TrackDBOperation records a completed database operation: it bumps the
// request-scoped DB counters and emits a client span plus call metrics
// before logging the operation. Errors are logged at error level (sql.ErrNoRows at debug),
// operations slower than the threshold at warn, everything else at debug.
// It is a no-op when tc or its logger is nil.
func TrackDBOperation(ctx context.Context, tc *Context, query string, args []any, start time.Time, err error) {
	if tc == nil || tc.Logger == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	elapsed := time.Since(start)

	logger.IncrementDBCounter(ctx)
	logger.AddDBElapsed(ctx, elapsed.Nanoseconds())

	createDBSpan(ctx, tc.Vendor, query, start, err)
	recordDBMetrics(ctx, tc.Vendor, query, elapsed, err)

	fields := map[string]any{
		"vendor":      tc.Vendor,
		"duration_ms": elapsed.Milliseconds(),
		"query":       TruncateString(query, tc.Settings.MaxQueryLength()),
	}
	if tc.Settings.LogQueryParameters() && len(args) > 0 {
		fields["args"] = SanitizeArgs(args, tc.Settings.MaxQueryLength())
	}
	log := tc.Logger.WithContext(ctx).WithFields(fields)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		log.Debug().Msg("Database operation returned no rows")
	case err != nil:
		log.Error().Err(err).Msg("Database operation error")
	case tc.Settings.SlowQueryEnabled() && elapsed > tc.Settings.SlowQueryThreshold():
		log.Warn().Msgf("Slow database operation detected (%s)", elapsed)
	default:
		log.Debug().Msg("Database operation executed")
	}
}

// TruncateString truncates value to at most maxLen runes, ending in "..."
// when maxLen leaves room for it. maxLen <= 0 disables truncation.
func TruncateString(value string, maxLen int) string {
	if maxLen <= 0 {
		return value
	}
	r := []rune(value)
	if len(r) <= maxLen {
		return value
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// SanitizeArgs returns a loggable copy of args. Byte slices are replaced by
// "<bytes len=N>"; everything else is formatted and truncated to maxLen.
func SanitizeArgs(args []any, maxLen int) []any {
	if len(args) == 0 {
		return nil
	}
	sanitized := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case string:
			sanitized[i] = TruncateString(v, maxLen)
		case []byte:
			sanitized[i] = fmt.Sprintf("<bytes len=%d>", len(v))
		default:
			sanitized[i] = TruncateString(fmt.Sprintf("%v", v), maxLen)
		}
	}
	return sanitized
}

func createDBSpan(ctx context.Context, vendor, query string, start time.Time, err error) {
	operation := extractDBOperation(query)

	_, span := otel.Tracer(TracerName).Start(ctx, "db."+operation,
		trace.WithTimestamp(start),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	attrs := []attribute.KeyValue{
		attribute.String("db.system", strings.ToLower(vendor)),
		semconv.DBQueryText(TruncateString(query, maxDBQueryAttrLen)),
	}
	if operation != defaultOperation {
		attrs = append(attrs, semconv.DBOperationName(operation))
	}
	span.SetAttributes(attrs...)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// extractDBOperation returns the lowercase statement verb, or "query" when the
// verb is not recognised.
func extractDBOperation(query string) string {
	query = strings.TrimSpace(query)

	switch {
	case query == "":
		return defaultOperation
	case strings.HasPrefix(query, "PREPARE:"), strings.HasPrefix(query, "TX_PREPARE:"):
		return "prepare"
	case query == "BEGIN", query == "BEGIN_TX":
		return "begin"
	case query == "TX_COMMIT":
		return "commit"
	case query == "TX_ROLLBACK":
		return "rollback"
	}

	verb := strings.ToLower(strings.Fields(query)[0])
	switch verb {
	case "select", "insert", "update", "delete", "create", "drop", "alter", "truncate":
		return verb
	default:
		return defaultOperation
	}
}
