package fiberstore

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapClient map[string]string

func (m mapClient) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m mapClient) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	m[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (m mapClient) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(m, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func (m mapClient) Keys(_ context.Context, pattern string) *redis.StringSliceCmd {
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for k := range m {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return redis.NewStringSliceResult(keys, nil)
}

func TestRedisStorage(t *testing.T) {
	client := mapClient{"other:a": "kept"}
	store := NewRedis(client, "limiter")

	val, err := store.Get("1.2.3.4")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, store.Set("1.2.3.4", []byte("3"), time.Minute))
	require.NoError(t, store.Set("5.6.7.8", []byte("1"), time.Minute))
	assert.Equal(t, "3", client["limiter:1.2.3.4"])

	val, err = store.Get("1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), val)

	require.NoError(t, store.Delete("5.6.7.8"))
	assert.NotContains(t, client, "limiter:5.6.7.8")

	require.NoError(t, store.Reset())
	assert.Equal(t, mapClient{"other:a": "kept"}, client)
}
