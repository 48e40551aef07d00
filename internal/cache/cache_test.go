package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(0, 10)

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	assert.NoError(t, c.Set(ctx, "k", "v"))
	v, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(20*time.Millisecond, 10)

	assert.NoError(t, c.Set(ctx, "k", "v"))
	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := c.Get(ctx, "k")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestMemory_ExpiredEntriesAreSwept(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(10*time.Millisecond, 5000)

	for i := 0; i < 1000; i++ {
		assert.NoError(t, c.Set(ctx, fmt.Sprintf("key-%d", i), "v"))
	}

	// ключи ни разу не читаются, очистка идет в фоне
	assert.Eventually(t, func() bool { return c.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestMemory_SizeBound(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Hour, 3)

	for i := 0; i < 5; i++ {
		assert.NoError(t, c.Set(ctx, fmt.Sprintf("key-%d", i), "v"))
	}

	assert.Equal(t, 3, c.Len())
	_, ok := c.Get(ctx, "key-0")
	assert.False(t, ok, "oldest entry evicted")
	_, ok = c.Get(ctx, "key-4")
	assert.True(t, ok)
}

func TestMemory_RefreshKeepsValue(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(100*time.Millisecond, 10)

	assert.NoError(t, c.Set(ctx, "k", "old"))
	time.Sleep(60 * time.Millisecond)
	assert.NoError(t, c.Set(ctx, "k", "new"))
	time.Sleep(60 * time.Millisecond)

	v, ok := c.Get(ctx, "k")
	assert.True(t, ok, "refreshed entry must survive the first deadline")
	assert.Equal(t, "new", v)
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Hour, 10)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Set(ctx, "k", "v")
			_, _ = c.Get(ctx, "k")
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, c.Len())
}
