package query

import (
	"context"
	"time"

	"github.com/gaborage/salesquery/cache"
	"github.com/gaborage/salesquery/config"
	"github.com/gaborage/salesquery/database"
	"github.com/gaborage/salesquery/logger"
)

const (
	// DefaultCacheTTL is how long cached results stay valid.
	DefaultCacheTTL = 300 * time.Second
	// DefaultMaxRetries is the number of retries after the first attempt.
	DefaultMaxRetries = 3
	// DefaultRetryDelay is the pause between attempts.
	DefaultRetryDelay = time.Second
)

// Options configures DatabaseOperation. A nil Cache disables caching and a nil
// Logger discards log output.
type Options struct {
	Logger     logger.Logger
	Cache      cache.Cache
	CacheTTL   time.Duration
	MaxRetries int
	RetryDelay time.Duration
	Observe    func(time.Duration)
}

// DefaultOptions returns Options with the default TTL and retry policy.
func DefaultOptions(log logger.Logger) Options {
	return Options{
		Logger:     log,
		CacheTTL:   DefaultCacheTTL,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

// OptionsFromConfig builds Options from the cache and retry sections. c is
// used only when caching is enabled.
func OptionsFromConfig(cfg *config.Config, c cache.Cache, log logger.Logger) Options {
	opts := Options{
		Logger:     log,
		CacheTTL:   cfg.Cache.TTL,
		MaxRetries: cfg.Retry.MaxRetries,
		RetryDelay: cfg.Retry.Delay,
	}
	if cfg.Cache.Enabled {
		opts.Cache = c
	}
	return opts
}

// DatabaseOperation wraps base with the full middleware stack, outermost
// first: logging, timing, caching, retry and error wrapping.
func DatabaseOperation(base Executor, opts Options) Executor {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	var caching Middleware
	if opts.Cache != nil {
		caching = WithCaching(opts.Cache, opts.CacheTTL, log)
	}

	return Chain(base,
		WithLogging(log),
		WithTiming(log, opts.Observe),
		caching,
		WithRetry(opts.MaxRetries, opts.RetryDelay, log),
		WithErrorWrapping(),
	)
}

// Run renders b and executes the statement with its bound arguments.
// Rendering errors are returned before exec is called.
func Run(ctx context.Context, exec Executor, b *database.QueryBuilder) (*Result, error) {
	statement, args, err := b.ToSQL()
	if err != nil {
		return nil, err
	}
	return exec.Execute(ctx, statement, args...)
}
