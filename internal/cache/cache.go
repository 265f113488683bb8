package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a read-through, write-invalidate cache. It is an optimization
// only: a miss triggers a fresh store query and a failed Set never fails the
// surrounding operation.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every key sharing a tenant-scoped prefix. It is
	// called after each successful write so a request always observes its
	// own commit.
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

// ErrCacheMiss is returned when a key is not found in cache
var ErrCacheMiss = fmt.Errorf("cache miss")
