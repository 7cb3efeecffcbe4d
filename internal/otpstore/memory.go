// internal/otpstore/memory.go
package otpstore

import (
	"context"
	"time"

	"github.com/dangerclosesec/onboarding/internal/cache"
)

// MemoryStore keeps sessions in process. Sessions are lost on restart and
// not shared between replicas.
type MemoryStore struct {
	cache *cache.InMemoryCache
}

func NewMemoryStore(c *cache.InMemoryCache) *MemoryStore {
	return &MemoryStore{cache: c}
}

func (s *MemoryStore) Save(ctx context.Context, phone string, session Session, ttl time.Duration) error {
	s.cache.Delete(ctx, attemptsKey(phone))
	s.cache.SetWithTTL(ctx, sessionKey(phone), session, ttl)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, phone string) (*Session, error) {
	v, ok := s.cache.Get(ctx, sessionKey(phone))
	if !ok {
		return nil, ErrNotFound
	}
	session := v.(Session)
	return &session, nil
}

func (s *MemoryStore) Consume(ctx context.Context, phone string) (bool, error) {
	_, ok := s.cache.Take(ctx, sessionKey(phone))
	s.cache.Delete(ctx, attemptsKey(phone))
	return ok, nil
}

func (s *MemoryStore) IncrementAttempts(ctx context.Context, phone string, ttl time.Duration) (int64, error) {
	return s.cache.Increment(ctx, attemptsKey(phone), ttl), nil
}

func (s *MemoryStore) CountRequest(ctx context.Context, phone string, window time.Duration) (int64, error) {
	return s.cache.Increment(ctx, rateKey(phone), window), nil
}
