package cache

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Client is the subset of redis commands a Set needs. *redis.Client satisfies it.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

func NewSet[T any](client Client, prefix string) *Set[T] {
	return &Set[T]{
		client: client,
		prefix: prefix + ":",
	}
}

// Set stores msgpack encoded values of T in redis under a common key prefix.
type Set[T any] struct {
	// m serializes the slow path of MutexGetSet
	m sync.Mutex

	client Client
	prefix string
}

func (c *Set[T]) key(key string) string {
	return c.prefix + key
}

// Get decodes the value of key into dest. ErrNotFound is returned when key does not exist.
func (c *Set[T]) Get(ctx context.Context, key string, dest *T) error {
	key = c.key(key)
	resp, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		log.Error().Err(err).Str("key", key).Msg("failed to get value from redis")
		return err
	}
	err = msgpack.Unmarshal(resp, dest)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal value from msgpack from redis")
		return err
	}
	return nil
}

func (c *Set[T]) Set(ctx context.Context, key string, value *T, expire time.Duration) error {
	key = c.key(key)
	if l := log.Trace(); l.Enabled() {
		l.Str("key", key).Msg("setting value to redis")
	}
	b, err := msgpack.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to marshal value with msgpack")
		return err
	}
	err = c.client.Set(ctx, key, b, expire).Err()
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set value to redis")
		return err
	}
	return nil
}

// MutexGetSet returns the cached value of key, or computes it with valueFunc, caches it
// and returns it. Concurrent misses in this process compute the value once.
// A redis failure on either side degrades to calling valueFunc; only valueFunc errors are returned.
// calculated is true when the value came from valueFunc.
func (c *Set[T]) MutexGetSet(ctx context.Context, key string, valueFunc func() (*T, error), expire time.Duration) (value *T, calculated bool, err error) {
	var cached T
	err = c.Get(ctx, key, &cached)
	if err == nil {
		return &cached, false, nil
	}
	// onwards, cache key does not exist or redis is unreachable

	c.m.Lock()
	defer c.m.Unlock()

	if err = c.Get(ctx, key, &cached); err == nil {
		return &cached, false, nil
	}

	value, err = valueFunc()
	if err != nil {
		return nil, true, err
	}

	if err := c.Set(ctx, key, value, expire); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to set value to redis in MutexGetSet, serving uncached value")
	}

	return value, true, nil
}

func (c *Set[T]) Delete(ctx context.Context, key string) error {
	key = c.key(key)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete value from redis")
		return err
	}

	return nil
}
