package cache

import (
	"context"
	"encoding/json"
	"fmt"
)

type memoConfig[T any] struct {
	encode func(T) ([]byte, error)
	decode func([]byte) (T, error)
}

// MemoOption configures a single Memo call
type MemoOption[T any] func(*memoConfig[T])

// WithCodec replaces the default JSON encoding of memoized values
func WithCodec[T any](encode func(T) ([]byte, error), decode func([]byte) (T, error)) MemoOption[T] {
	return func(c *memoConfig[T]) {
		c.encode = encode
		c.decode = decode
	}
}

func jsonEncode[T any](v T) ([]byte, error) {
	return json.Marshal(v)
}

func jsonDecode[T any](data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}

// Memo returns the value cached under key, computing it with fn on a miss.
//
// At most one fn runs at a time per full key: callers that miss while a
// computation for the same full key is in flight wait for its result instead
// of starting another. The result is stored before waiters are released.
// Errors are returned to every waiter and nothing is cached.
//
// fn runs detached from the cancellation of the caller that started it, so
// one caller giving up does not fail the others. A caller whose ctx is done
// stops waiting and gets ctx.Err().
func Memo[T any](ctx context.Context, c *Cache, key string, fn func(ctx context.Context) (T, error), opts ...MemoOption[T]) (T, error) {
	var zero T
	cfg := &memoConfig[T]{encode: jsonEncode[T], decode: jsonDecode[T]}
	for _, opt := range opts {
		opt(cfg)
	}

	fullKey := c.FullKey(key)
	if v, ok, err := lookup(ctx, c, key, cfg); err != nil || ok {
		if ok {
			c.logger.Debug("memo", "result", "HIT", "key", fullKey)
		}
		return v, err
	}

	ch := c.flight.DoChan(fullKey, func() (any, error) {
		runCtx := context.WithoutCancel(ctx)

		// A flight for this key may have finished between our miss and now
		if v, ok, err := lookup(runCtx, c, key, cfg); err != nil || ok {
			return v, err
		}

		c.logger.Debug("memo", "result", "MISS", "key", fullKey)
		v, err := fn(runCtx)
		if err != nil {
			return zero, err
		}
		data, err := cfg.encode(v)
		if err != nil {
			return zero, fmt.Errorf("failed to encode %q: %w", fullKey, err)
		}
		if err := c.store.Set(runCtx, fullKey, data); err != nil {
			return zero, fmt.Errorf("failed to store %q: %w", fullKey, err)
		}
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.logger.Debug("memo", "result", "SHARED", "key", fullKey)
		}
		if res.Err != nil {
			return zero, res.Err
		}
		v, _ := res.Val.(T)
		return v, nil
	}
}

func lookup[T any](ctx context.Context, c *Cache, key string, cfg *memoConfig[T]) (T, bool, error) {
	var zero T
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return zero, false, fmt.Errorf("failed to read %q: %w", c.FullKey(key), err)
	}
	if !ok {
		return zero, false, nil
	}
	v, err := cfg.decode(data)
	if err != nil {
		return zero, false, fmt.Errorf("failed to decode %q: %w", c.FullKey(key), err)
	}
	return v, true, nil
}
