package tracking

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// MeterName identifies the instruments recording database operations.
	MeterName = "salesquery/database"

	metricDBCalls    = "db.client.calls"
	metricDBDuration = "db.client.operation.duration"
)

var (
	meterOnce        sync.Once
	callsCounter     metric.Int64Counter
	durationRecorder metric.Float64Histogram
)

func initInstruments() {
	meter := otel.Meter(MeterName)

	var err error
	callsCounter, err = meter.Int64Counter(metricDBCalls,
		metric.WithDescription("Total number of database client calls"))
	if err != nil {
		callsCounter = nil
	}
	durationRecorder, err = meter.Float64Histogram(metricDBDuration,
		metric.WithDescription("Duration of database operations in milliseconds"),
		metric.WithUnit("ms"))
	if err != nil {
		durationRecorder = nil
	}
}

// resetInstruments forces the next recording to rebind against the current
// global meter provider.
func resetInstruments() {
	meterOnce = sync.Once{}
	callsCounter = nil
	durationRecorder = nil
}

// recordDBMetrics counts the operation and records its duration. sql.ErrNoRows
// does not count as an error.
func recordDBMetrics(ctx context.Context, vendor, query string, elapsed time.Duration, err error) {
	meterOnce.Do(initInstruments)

	attrs := []attribute.KeyValue{
		attribute.String("db.system", strings.ToLower(vendor)),
		attribute.String("db.operation.name", extractDBOperation(query)),
	}

	if callsCounter != nil {
		failed := err != nil && !errors.Is(err, sql.ErrNoRows)
		callsCounter.Add(ctx, 1, metric.WithAttributes(append(attrs, attribute.Bool("error", failed))...))
	}
	if durationRecorder != nil {
		durationRecorder.Record(ctx, float64(elapsed.Nanoseconds())/1e6, metric.WithAttributes(attrs...))
	}
}
