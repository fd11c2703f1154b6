package query

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaborage/salesquery/logger"
)

const topProductsSQL = "SELECT p.product_name, SUM(s.total_price) as total_revenue FROM sales s " +
	"INNER JOIN products p ON s.product_id = p.product_id GROUP BY p.product_id, p.product_name " +
	"ORDER BY total_revenue DESC LIMIT 3"

// scriptedExecutor returns errs in order, then a copy of result.
type scriptedExecutor struct {
	mu     sync.Mutex
	calls  int
	errs   []error
	result *Result
}

func newScriptedExecutor(errs ...error) *scriptedExecutor {
	return &scriptedExecutor{
		errs: errs,
		result: &Result{
			Columns: []string{"product_name", "total_revenue"},
			Rows: []Row{
				{"product_name": "Chai", "total_revenue": "1520.50"},
				{"product_name": "Tofu", "total_revenue": "980.00"},
			},
		},
	}
}

func (e *scriptedExecutor) Execute(_ context.Context, _ string, _ ...any) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls++
	if len(e.errs) > 0 {
		err := e.errs[0]
		e.errs = e.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return e.result.clone(), nil
}

func (e *scriptedExecutor) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func newBufferLogger() (logger.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return logger.NewWithWriter(buf, "debug", false, nil), buf
}

func logMessages(t *testing.T, buf *bytes.Buffer) []string {
	t.Helper()
	var msgs []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		msg, _ := m["message"].(string)
		msgs = append(msgs, msg)
	}
	return msgs
}
