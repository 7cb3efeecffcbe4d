// internal/cache/memory.go
package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// InMemoryCache is a mutex guarded map with per entry expiry. Expired entries
// are invisible to readers and removed by the cleanup goroutine.
type InMemoryCache struct {
	mu          sync.Mutex
	items       map[string]entry
	ttl         time.Duration
	cleanupFreq time.Duration
	now         func() time.Time

	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// NewInMemoryCache creates a cache whose entries live for ttl by default.
// A zero ttl keeps entries until they are deleted.
func NewInMemoryCache(ttl, cleanupFreq time.Duration) *InMemoryCache {
	if cleanupFreq <= 0 {
		cleanupFreq = time.Minute
	}
	return &InMemoryCache{
		items:       make(map[string]entry),
		ttl:         ttl,
		cleanupFreq: cleanupFreq,
		now:         time.Now,
		stop:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}
}

// SetClock replaces the time source. Intended for tests.
func (c *InMemoryCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *InMemoryCache) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return c.now().Add(ttl)
}

// Set stores value with the default TTL.
func (c *InMemoryCache) Set(ctx context.Context, key string, value any) {
	c.SetWithTTL(ctx, key, value, c.ttl)
}

func (c *InMemoryCache) SetWithTTL(_ context.Context, key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry{value: value, expiresAt: c.expiry(ttl)}
}

func (c *InMemoryCache) Get(_ context.Context, key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if e.expired(c.now()) {
		delete(c.items, key)
		return nil, false
	}
	return e.value, true
}

func (c *InMemoryCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Take removes key and returns its value. Only one of several concurrent
// callers observes ok == true.
func (c *InMemoryCache) Take(_ context.Context, key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return nil, false
	}
	delete(c.items, key)
	if e.expired(c.now()) {
		return nil, false
	}
	return e.value, true
}

// Increment adds one to the integer stored at key and returns the new value.
// A missing or expired key starts at 1 and expires after ttl; later
// increments keep the original expiry.
func (c *InMemoryCache) Increment(_ context.Context, key string, ttl time.Duration) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e, ok := c.items[key]
	if !ok || e.expired(now) {
		c.items[key] = entry{value: int64(1), expiresAt: c.expiry(ttl)}
		return 1
	}

	n, _ := e.value.(int64)
	n++
	e.value = n
	c.items[key] = e
	return n
}

// Len returns the number of live entries.
func (c *InMemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for _, e := range c.items {
		if !e.expired(now) {
			n++
		}
	}
	return n
}

// DeleteExpired removes every expired entry and returns how many were dropped.
func (c *InMemoryCache) DeleteExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, e := range c.items {
		if e.expired(now) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

// StartCleanup runs DeleteExpired every cleanupFreq until ctx is done or
// StopCleanup is called.
func (c *InMemoryCache) StartCleanup(ctx context.Context) {
	go func() {
		defer close(c.stopped)

		ticker := time.NewTicker(c.cleanupFreq)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.DeleteExpired()
			case <-ctx.Done():
				return
			case <-c.stop:
				return
			}
		}
	}()
}

// StopCleanup stops the cleanup goroutine and waits for it to exit. It must
// only be called after StartCleanup.
func (c *InMemoryCache) StopCleanup() {
	c.once.Do(func() {
		close(c.stop)
		<-c.stopped
	})
}
