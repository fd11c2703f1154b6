package query

import (
	"context"
	"encoding/hex"
	"errors"
	"maps"
	"time"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/singleflight"

	"github.com/gaborage/salesquery/cache"
	"github.com/gaborage/salesquery/logger"
)

const cacheKeyPrefix = "query:"

// WithCaching serves repeated statements from c. Results are stored CBOR
// encoded for ttl under a hash of the statement and its arguments, and
// concurrent identical calls share one execution. Cache failures are logged
// and never fail the query; failed executions are not cached.
func WithCaching(c cache.Cache, ttl time.Duration, log logger.Logger) Middleware {
	var group singleflight.Group

	return func(next Executor) Executor {
		return ExecutorFunc(func(ctx context.Context, statement string, args ...any) (*Result, error) {
			l := log.WithContext(ctx)

			key, err := cacheKey(statement, args)
			if err != nil {
				l.Warn().Err(err).Msg("Query arguments cannot be cached, executing")
				return next.Execute(ctx, statement, args...)
			}

			if res, ok := lookup(ctx, c, key, l); ok {
				l.Info().Str("key", key).Msg("Cache hit")
				return res, nil
			}

			v, err, shared := group.Do(key, func() (any, error) {
				l.Info().Str("key", key).Msg("Cache miss, executing")
				res, err := next.Execute(ctx, statement, args...)
				if err != nil {
					return nil, err
				}
				store(ctx, c, key, res, ttl, l)
				return res, nil
			})
			if err != nil {
				return nil, err
			}

			res := v.(*Result)
			if shared {
				res = res.clone()
			}
			return res, nil
		})
	}
}

// cacheKey hashes the statement and its CBOR encoded arguments with XXH3-128.
func cacheKey(statement string, args []any) (string, error) {
	h := xxh3.New()
	_, _ = h.WriteString(statement)

	if len(args) > 0 {
		encoded, err := cache.Marshal(args)
		if err != nil {
			return "", err
		}
		_, _ = h.Write([]byte{0})
		_, _ = h.Write(encoded)
	}

	sum := h.Sum128().Bytes()
	return cacheKeyPrefix + hex.EncodeToString(sum[:]), nil
}

func lookup(ctx context.Context, c cache.Cache, key string, log logger.Logger) (*Result, bool) {
	data, err := c.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			log.Warn().Err(err).Str("key", key).Msg("Cache lookup failed")
		}
		return nil, false
	}

	res, err := cache.Unmarshal[*Result](data)
	if err != nil || res == nil {
		log.Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
		if delErr := c.Delete(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("Cache delete failed")
		}
		return nil, false
	}
	if res.Rows == nil {
		res.Rows = make([]Row, 0)
	}
	return res, true
}

func store(ctx context.Context, c cache.Cache, key string, res *Result, ttl time.Duration, log logger.Logger) {
	data, err := cache.Marshal(res)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Result cannot be cached")
		return
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache store failed")
		return
	}
	log.Debug().Str("key", key).Int("bytes", len(data)).Msg("Result cached")
}

// clone copies the result so callers sharing one execution can modify their
// copy independently.
func (r *Result) clone() *Result {
	cp := &Result{
		Columns: append([]string(nil), r.Columns...),
		Rows:    make([]Row, len(r.Rows)),
		Elapsed: r.Elapsed,
	}
	for i, row := range r.Rows {
		cp.Rows[i] = maps.Clone(row)
	}
	return cp
}
