package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key does not exist.
var ErrMiss = errors.New("cache: miss")

// Cache defines the interface for caching services.
//
// Incr atomically increments the integer stored at key, treating a missing
// key as 0, and returns the new value. Get on a key maintained by Incr returns
// the decimal string form of the counter.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	Close() error
}

// Noop is a Cache that stores nothing. Every Get misses.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error)              { return nil, ErrMiss }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error                 { return nil }
func (Noop) Incr(context.Context, string) (int64, error)             { return 0, nil }
func (Noop) Close() error                                            { return nil }
