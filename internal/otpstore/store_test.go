package otpstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/dangerclosesec/onboarding/internal/cache"
	"github.com/dangerclosesec/onboarding/internal/otpstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every Store must share.
func exerciseStore(t *testing.T, store otpstore.Store, phone string) {
	ctx := context.Background()

	_, err := store.Get(ctx, phone)
	assert.ErrorIs(t, err, otpstore.ErrNotFound)

	now := time.Now().UTC().Truncate(time.Second)
	session := otpstore.Session{CodeHash: "hash-1", CreatedAt: now, ExpiresAt: now.Add(time.Minute)}
	require.NoError(t, store.Save(ctx, phone, session, time.Minute))

	got, err := store.Get(ctx, phone)
	require.NoError(t, err)
	assert.Equal(t, "hash-1", got.CodeHash)
	assert.True(t, got.ExpiresAt.Equal(session.ExpiresAt))

	n, err := store.IncrementAttempts(ctx, phone, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = store.IncrementAttempts(ctx, phone, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// A new code resets the attempt counter.
	require.NoError(t, store.Save(ctx, phone, session, time.Minute))
	n, err = store.IncrementAttempts(ctx, phone, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ok, err := store.Consume(ctx, phone)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Consume(ctx, phone)
	require.NoError(t, err)
	assert.False(t, ok, "single use")

	for i := int64(1); i <= 3; i++ {
		n, err := store.CountRequest(ctx, phone, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
}

func TestMemoryStore(t *testing.T) {
	c := cache.NewInMemoryCache(0, time.Minute)
	exerciseStore(t, otpstore.NewMemoryStore(c), "+15555550100")
}

func TestMemoryStore_SessionExpires(t *testing.T) {
	c := cache.NewInMemoryCache(0, time.Minute)
	now := time.Now()
	c.SetClock(func() time.Time { return now })
	store := otpstore.NewMemoryStore(c)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "+1", otpstore.Session{CodeHash: "h"}, time.Minute))
	now = now.Add(2 * time.Minute)

	_, err := store.Get(ctx, "+1")
	assert.ErrorIs(t, err, otpstore.ErrNotFound)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := otpstore.NewRedisClient(addr, os.Getenv("REDIS_PASSWORD"), 0)
	defer client.Close()
	store := otpstore.NewRedisStore(client)
	require.NoError(t, store.Ping(context.Background()))

	phone := "+1555" + time.Now().Format("150405.000000")
	t.Cleanup(func() {
		client.Del(context.Background(), "otp:session:"+phone, "otp:attempts:"+phone, "otp:rate:"+phone)
	})
	exerciseStore(t, store, phone)
}
