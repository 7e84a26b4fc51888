package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("kv: key not found")

// EntryTTL bounds how long an untouched entry is kept. It matches the lifetime
// of the device cookie that names the scope.
const EntryTTL = 400 * 24 * time.Hour

// Store is a persistent, synchronous key-value store partitioned by scope.
// A scope is one browser device; keys never collide across scopes.
type Store interface {
	Get(ctx context.Context, scope, key string) (string, error)
	Set(ctx context.Context, scope, key, value string) error
	Delete(ctx context.Context, scope, key string) error
	Close() error
}

// Pruner is implemented by stores that need explicit removal of stale entries.
// Stores with native expiry (redis, badger) do not implement it.
type Pruner interface {
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}
