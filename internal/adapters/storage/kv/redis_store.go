package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every key this application writes to Redis.
const KeyPrefix = "kingrun"

// RedisStore implements Store on Redis, so several server instances can share
// device sessions. Entries expire EntryTTL after their last write.
type RedisStore struct {
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a store on an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// DialRedis connects to addr and verifies the connection.
// PRE: addr is host:port
// POST: Returns a store with a live connection or an error
func DialRedis(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return NewRedisStore(client), nil
}

// RedisKey returns the Redis key for (scope, key).
func RedisKey(scope, key string) string {
	return KeyPrefix + ":" + scope + ":" + key
}

// Get retrieves the value stored under (scope, key).
// PRE: none
// POST: Returns the value or ErrNotFound
func (r *RedisStore) Get(ctx context.Context, scope, key string) (string, error) {
	v, err := r.client.Get(ctx, RedisKey(scope, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("kv get %s: %w", key, err)
	}
	return v, nil
}

// Set persists value under (scope, key) with a TTL of EntryTTL.
// PRE: none
// POST: Entry written
func (r *RedisStore) Set(ctx context.Context, scope, key, value string) error {
	if err := r.client.Set(ctx, RedisKey(scope, key), value, EntryTTL).Err(); err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

// Delete removes (scope, key).
// PRE: none
// POST: Entry removed
func (r *RedisStore) Delete(ctx context.Context, scope, key string) error {
	if err := r.client.Del(ctx, RedisKey(scope, key)).Err(); err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}

// Close closes the client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
