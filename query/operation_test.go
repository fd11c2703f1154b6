package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/salesquery/cache/memory"
	"github.com/gaborage/salesquery/config"
	"github.com/gaborage/salesquery/database"
	"github.com/gaborage/salesquery/database/types"
	"github.com/gaborage/salesquery/logger"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions(logger.Nop())
	assert.Equal(t, 300*time.Second, opts.CacheTTL)
	assert.Equal(t, 3, opts.MaxRetries)
	assert.Equal(t, time.Second, opts.RetryDelay)
	assert.Nil(t, opts.Cache)
}

func TestOptionsFromConfig(t *testing.T) {
	c := memory.New(memory.Options{})
	cfg := &config.Config{
		Cache: config.CacheConfig{Enabled: true, TTL: time.Minute},
		Retry: config.RetryConfig{MaxRetries: 2, Delay: 10 * time.Millisecond},
	}

	opts := OptionsFromConfig(cfg, c, logger.Nop())
	assert.Equal(t, time.Minute, opts.CacheTTL)
	assert.Equal(t, 2, opts.MaxRetries)
	assert.Equal(t, 10*time.Millisecond, opts.RetryDelay)
	assert.Same(t, c, opts.Cache)

	cfg.Cache.Enabled = false
	assert.Nil(t, OptionsFromConfig(cfg, c, logger.Nop()).Cache)
}

func TestDatabaseOperationComposition(t *testing.T) {
	log, buf := newBufferLogger()
	base := newScriptedExecutor(errTransient)
	c := memory.New(memory.Options{})

	var observed int
	exec := DatabaseOperation(base, Options{
		Logger:     log,
		Cache:      c,
		CacheTTL:   time.Minute,
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
		Observe:    func(time.Duration) { observed++ },
	})

	res, err := exec.Execute(context.Background(), topProductsSQL)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Len())
	assert.Positive(t, res.Elapsed)

	// retry sits inside caching, so the retried result is cached once
	assert.Equal(t, 2, base.Calls())
	assert.Equal(t, 1, c.Len())

	_, err = exec.Execute(context.Background(), topProductsSQL)
	require.NoError(t, err)
	assert.Equal(t, 2, base.Calls())
	assert.Equal(t, 2, observed)

	msgs := logMessages(t, buf)
	assert.Equal(t, "Executing query", msgs[0])
	assert.Contains(t, msgs, "Cache hit")
	assert.Equal(t, "Query completed", msgs[len(msgs)-1])
}

func TestDatabaseOperationWrapsExhaustedFailures(t *testing.T) {
	base := newScriptedExecutor(errTransient, errTransient)
	exec := DatabaseOperation(base, Options{MaxRetries: 1, RetryDelay: time.Millisecond})

	_, err := exec.Execute(context.Background(), topProductsSQL)
	require.Error(t, err)
	assert.Equal(t, 2, base.Calls())

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.ErrorIs(t, err, errTransient)
}

func TestRun(t *testing.T) {
	var gotSQL string
	var gotArgs []any
	exec := ExecutorFunc(func(_ context.Context, statement string, args ...any) (*Result, error) {
		gotSQL, gotArgs = statement, args
		return &Result{}, nil
	})

	qb := database.NewQueryBuilder(database.MySQL).
		Select("product_name").
		From("products").
		WhereEq("category_id", 4).
		Limit(10)

	_, err := Run(context.Background(), exec, qb)
	require.NoError(t, err)
	assert.Equal(t, "SELECT product_name FROM products WHERE category_id = ? LIMIT 10", gotSQL)
	assert.Equal(t, []any{4}, gotArgs)
}

func TestRunConstructionErrorSkipsExecution(t *testing.T) {
	called := false
	exec := ExecutorFunc(func(context.Context, string, ...any) (*Result, error) {
		called = true
		return nil, errors.New("unreachable")
	})

	_, err := Run(context.Background(), exec, database.NewQueryBuilder(database.MySQL).Select("x"))
	require.Error(t, err)
	assert.True(t, types.IsConstructionError(err))
	assert.ErrorIs(t, err, types.ErrTableNotSet)
	assert.False(t, called)
}
