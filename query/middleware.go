package query

import (
	"context"
	"time"

	"github.com/gaborage/salesquery/logger"
)

const maxStatementInLog = 500

// Middleware decorates an Executor.
type Middleware func(Executor) Executor

// Chain wraps base with mws. The first middleware listed is the outermost and
// sees the call first.
func Chain(base Executor, mws ...Middleware) Executor {
	exec := base
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			exec = mws[i](exec)
		}
	}
	return exec
}

// WithLogging logs each call, its outcome and the size of the result.
// Arguments are logged at debug level only.
func WithLogging(log logger.Logger) Middleware {
	return func(next Executor) Executor {
		return ExecutorFunc(func(ctx context.Context, statement string, args ...any) (*Result, error) {
			l := log.WithContext(ctx)

			l.Info().Str("statement", truncate(statement, maxStatementInLog)).Msg("Executing query")
			if len(args) > 0 {
				l.Debug().Interface("args", args).Msg("Query parameters")
			}

			res, err := next.Execute(ctx, statement, args...)
			if err != nil {
				l.Error().Err(err).Msg("Query failed")
				return nil, err
			}

			l.Info().
				Int("rows", res.Len()).
				Int("columns", len(res.Columns)).
				Msg("Query completed")
			return res, nil
		})
	}
}

// WithTiming measures each call, stores the duration on Result.Elapsed and
// logs it. observe, when non-nil, receives every duration including failed
// calls.
func WithTiming(log logger.Logger, observe func(time.Duration)) Middleware {
	return func(next Executor) Executor {
		return ExecutorFunc(func(ctx context.Context, statement string, args ...any) (*Result, error) {
			start := time.Now()
			res, err := next.Execute(ctx, statement, args...)
			elapsed := time.Since(start)

			if observe != nil {
				observe(elapsed)
			}
			log.WithContext(ctx).Debug().Dur("elapsed", elapsed).Msgf("Query executed in %.4f seconds", elapsed.Seconds())

			if res != nil {
				res.Elapsed = elapsed
			}
			return res, err
		})
	}
}
