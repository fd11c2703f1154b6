package query

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/gaborage/salesquery/database/types"
	"github.com/gaborage/salesquery/logger"
)

// WithRetry re-executes failed calls up to maxRetries times, waiting delay
// between attempts. Construction errors and context cancellation are not
// retried. When every attempt fails the last error is returned.
func WithRetry(maxRetries int, delay time.Duration, log logger.Logger) Middleware {
	if maxRetries < 0 {
		maxRetries = 0
	}
	attempts := uint(maxRetries) + 1

	return func(next Executor) Executor {
		return ExecutorFunc(func(ctx context.Context, statement string, args ...any) (*Result, error) {
			l := log.WithContext(ctx)
			attempt := 0

			operation := func() (*Result, error) {
				attempt++
				res, err := next.Execute(ctx, statement, args...)
				if err == nil {
					return res, nil
				}
				if types.IsConstructionError(err) || isContextError(err) {
					return nil, backoff.Permanent(err)
				}
				if uint(attempt) >= attempts {
					l.Error().Err(err).Msgf("All %d attempts failed", attempts)
				}
				return nil, err
			}

			notify := func(err error, wait time.Duration) {
				l.Warn().Err(err).Msgf("Attempt %d failed, retrying in %s", attempt, wait)
			}

			return backoff.Retry(ctx, operation,
				backoff.WithBackOff(backoff.NewConstantBackOff(delay)),
				backoff.WithMaxTries(attempts),
				backoff.WithMaxElapsedTime(0),
				backoff.WithNotify(notify),
			)
		})
	}
}
