package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dangerclosesec/onboarding/internal/domain"
	"github.com/dangerclosesec/onboarding/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) *service.CacheService {
	t.Helper()
	c := service.NewCacheService(service.CacheConfig{TTL: time.Minute, CleanupFreq: time.Minute})
	t.Cleanup(c.Close)
	return c
}

func TestCacheService_GetOrSet(t *testing.T) {
	c := newCache(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (any, error) {
		calls++
		return map[string]string{"Lower Taxes": "text"}, nil
	}

	var first, second map[string]string
	require.NoError(t, c.GetOrSet(ctx, "pillars", &first, fetch))
	require.NoError(t, c.GetOrSet(ctx, "pillars", &second, fetch))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	first["Lower Taxes"] = "mutated"
	var third map[string]string
	require.NoError(t, c.Get(ctx, "pillars", &third))
	assert.Equal(t, "text", third["Lower Taxes"], "cached values are copies")
}

func TestCacheService_Errors(t *testing.T) {
	c := newCache(t)
	ctx := context.Background()

	var out string
	assert.ErrorIs(t, c.Get(ctx, "missing", &out), domain.ErrNotFound)
	assert.ErrorIs(t, c.Set(ctx, "", "x"), domain.ErrInvalidInput)

	boom := errors.New("db down")
	err := c.GetOrSet(ctx, "k", &out, func() (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	require.NoError(t, c.Set(ctx, "k", "v"))
	require.NoError(t, c.Delete(ctx, "k"))
	assert.ErrorIs(t, c.Get(ctx, "k", &out), domain.ErrNotFound)
}
