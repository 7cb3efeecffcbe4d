package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dangerclosesec/onboarding/internal/cache"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestInMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}

	c := cache.NewInMemoryCache(time.Minute, time.Minute)
	c.SetClock(clock.Now)

	c.Set(ctx, "a", "value")
	c.SetWithTTL(ctx, "b", 42, 5*time.Minute)
	c.SetWithTTL(ctx, "forever", true, 0)

	v, ok := c.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	clock.Advance(2 * time.Minute)

	_, ok = c.Get(ctx, "a")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "b")
	assert.True(t, ok)

	clock.Advance(10 * time.Minute)
	assert.Equal(t, 1, c.DeleteExpired())
	assert.Equal(t, 1, c.Len())
}

func TestInMemoryCache_Increment(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}

	c := cache.NewInMemoryCache(0, time.Minute)
	c.SetClock(clock.Now)

	assert.Equal(t, int64(1), c.Increment(ctx, "hits", time.Minute))
	assert.Equal(t, int64(2), c.Increment(ctx, "hits", time.Minute))

	clock.Advance(30 * time.Second)
	assert.Equal(t, int64(3), c.Increment(ctx, "hits", time.Minute))

	clock.Advance(31 * time.Second)
	assert.Equal(t, int64(1), c.Increment(ctx, "hits", time.Minute), "window restarts after expiry")
}

func TestInMemoryCache_ConcurrentIncrement(t *testing.T) {
	ctx := context.Background()
	c := cache.NewInMemoryCache(time.Minute, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Increment(ctx, "n", time.Minute)
		}()
	}
	wg.Wait()

	v, ok := c.Get(ctx, "n")
	assert.True(t, ok)
	assert.Equal(t, int64(50), v)
}

func TestInMemoryCache_StopCleanup(t *testing.T) {
	c := cache.NewInMemoryCache(time.Millisecond, 5*time.Millisecond)
	c.StartCleanup(context.Background())

	c.Set(context.Background(), "k", 1)
	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)

	c.StopCleanup()
	c.StopCleanup()
}
