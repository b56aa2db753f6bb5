package cache

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingular(t *testing.T) {
	c := NewSingular[[]string]("wizards")

	var dest []string
	assert.ErrorIs(t, c.Get(&dest), ErrNotFound)

	c.Set([]string{"Alice", "Bob"}, time.Minute)
	require.NoError(t, c.Get(&dest))
	assert.Equal(t, []string{"Alice", "Bob"}, dest)

	c.Delete()
	assert.ErrorIs(t, c.Get(&dest), ErrNotFound)
}

func TestSingularMutexGetSetComputesOnce(t *testing.T) {
	c := NewSingular[[]string]("wizards")
	var calls int32

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var dest []string
			err := c.MutexGetSet(&dest, func() ([]string, error) {
				atomic.AddInt32(&calls, 1)
				return []string{"Alice"}, nil
			}, time.Minute)
			assert.NoError(t, err)
			assert.Equal(t, []string{"Alice"}, dest)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
