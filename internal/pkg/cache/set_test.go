package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryClient struct {
	mu   sync.Mutex
	data map[string]string
	down bool
}

func newMemoryClient() *memoryClient {
	return &memoryClient{data: map[string]string{}}
}

var errDown = errors.New("connection refused")

func (m *memoryClient) Get(_ context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return redis.NewStringResult("", errDown)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memoryClient) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return redis.NewStatusResult("", errDown)
	}
	m.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (m *memoryClient) Del(_ context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

type snapshot struct {
	Name string
	Rows [][]any
}

func TestSetRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newMemoryClient()
	set := NewSet[snapshot](client, "sheet")

	var dest snapshot
	assert.ErrorIs(t, set.Get(ctx, "SiegeLogs", &dest), ErrNotFound)

	require.NoError(t, set.Set(ctx, "SiegeLogs", &snapshot{Name: "SiegeLogs", Rows: [][]any{{"Alice", "Win"}}}, time.Minute))
	assert.Contains(t, client.data, "sheet:SiegeLogs")

	require.NoError(t, set.Get(ctx, "SiegeLogs", &dest))
	assert.Equal(t, "SiegeLogs", dest.Name)
	assert.Equal(t, [][]any{{"Alice", "Win"}}, dest.Rows)

	require.NoError(t, set.Delete(ctx, "SiegeLogs"))
	assert.ErrorIs(t, set.Get(ctx, "SiegeLogs", &dest), ErrNotFound)
}

func TestSetMutexGetSet(t *testing.T) {
	ctx := context.Background()
	set := NewSet[snapshot](newMemoryClient(), "sheet")

	calls := 0
	valueFunc := func() (*snapshot, error) {
		calls++
		return &snapshot{Name: "computed"}, nil
	}

	v, calculated, err := set.MutexGetSet(ctx, "k", valueFunc, time.Minute)
	require.NoError(t, err)
	assert.True(t, calculated)
	assert.Equal(t, "computed", v.Name)

	v, calculated, err = set.MutexGetSet(ctx, "k", valueFunc, time.Minute)
	require.NoError(t, err)
	assert.False(t, calculated)
	assert.Equal(t, "computed", v.Name)
	assert.Equal(t, 1, calls)
}

func TestSetMutexGetSetDegradesWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	client := newMemoryClient()
	client.down = true
	set := NewSet[snapshot](client, "sheet")

	v, calculated, err := set.MutexGetSet(ctx, "k", func() (*snapshot, error) {
		return &snapshot{Name: "fresh"}, nil
	}, time.Minute)
	require.NoError(t, err)
	assert.True(t, calculated)
	assert.Equal(t, "fresh", v.Name)
}

func TestSetMutexGetSetPropagatesValueFuncError(t *testing.T) {
	set := NewSet[snapshot](newMemoryClient(), "sheet")
	boom := errors.New("boom")

	_, _, err := set.MutexGetSet(context.Background(), "k", func() (*snapshot, error) {
		return nil, boom
	}, time.Minute)
	assert.ErrorIs(t, err, boom)
}
