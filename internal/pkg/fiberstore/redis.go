package fiberstore

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Client is the subset of *redis.Client the storage needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Keys(ctx context.Context, pattern string) *redis.StringSliceCmd
}

// Redis stores fiber middleware state (such as limiter counters) as plain
// redis keys under Prefix, so that every entry expires on its own.
type Redis struct {
	Client Client
	Prefix string
}

var _ fiber.Storage = &Redis{}

func NewRedis(client Client, prefix string) *Redis {
	return &Redis{
		Client: client,
		Prefix: prefix,
	}
}

func (r *Redis) key(key string) string {
	return r.Prefix + ":" + key
}

// Close is a no-op: the client is shared with the rest of the app.
func (r *Redis) Close() error {
	return nil
}

func (r *Redis) Delete(key string) error {
	if key == "" {
		return nil
	}
	return r.Client.Del(context.Background(), r.key(key)).Err()
}

// Get returns nil, nil for an absent key as fiber.Storage requires.
func (r *Redis) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	val, err := r.Client.Get(context.Background(), r.key(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return val, err
}

func (r *Redis) Reset() error {
	ctx := context.Background()
	keys, err := r.Client.Keys(ctx, r.Prefix+":*").Result()
	if err != nil || len(keys) == 0 {
		return err
	}
	return r.Client.Del(ctx, keys...).Err()
}

// Set stores val for exp. A zero exp keeps the value until deleted.
func (r *Redis) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	return r.Client.Set(context.Background(), r.key(key), val, exp).Err()
}
