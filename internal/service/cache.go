// internal/service/cache.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dangerclosesec/onboarding/internal/cache"
	"github.com/dangerclosesec/onboarding/internal/domain"
)

// CacheService stores JSON encoded copies in the in-memory cache, so callers
// never share mutable values with it. Keys are namespaced with "svc:" to keep
// them apart from the OTP store, which writes to the same backend.
type CacheService struct {
	backend *cache.InMemoryCache
}

type CacheConfig struct {
	TTL         time.Duration
	CleanupFreq time.Duration
}

func NewCacheService(config CacheConfig) *CacheService {
	backend := cache.NewInMemoryCache(config.TTL, config.CleanupFreq)
	backend.StartCleanup(context.Background())
	return &CacheService{backend: backend}
}

// Backend exposes the underlying cache to the in-memory OTP store.
func (s *CacheService) Backend() *cache.InMemoryCache {
	return s.backend
}

func cacheKey(key string) (string, error) {
	if key == "" {
		return "", domain.ErrInvalidInput
	}
	return "svc:" + key, nil
}

func (s *CacheService) Set(ctx context.Context, key string, value any) error {
	k, err := cacheKey(key)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %q for cache: %w", key, err)
	}
	s.backend.Set(ctx, k, encoded)
	return nil
}

// Get decodes the cached copy for key into result. A miss is domain.ErrNotFound.
func (s *CacheService) Get(ctx context.Context, key string, result any) error {
	k, err := cacheKey(key)
	if err != nil {
		return err
	}
	raw, found := s.backend.Get(ctx, k)
	if !found {
		return domain.ErrNotFound
	}
	encoded, ok := raw.([]byte)
	if !ok {
		return fmt.Errorf("cache entry %q holds %T", key, raw)
	}
	if err := json.Unmarshal(encoded, result); err != nil {
		return fmt.Errorf("decoding cached %q: %w", key, err)
	}
	return nil
}

// GetOrSet decodes the cached copy for key into result, loading and storing
// it with fetch on a miss. Nothing is cached when fetch fails.
func (s *CacheService) GetOrSet(ctx context.Context, key string, result any, fetch func() (any, error)) error {
	switch err := s.Get(ctx, key, result); {
	case err == nil:
		return nil
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	value, err := fetch()
	if err != nil {
		return fmt.Errorf("loading %q: %w", key, err)
	}
	if err := s.Set(ctx, key, value); err != nil {
		return err
	}
	// Decode through the cache so the first caller gets a copy as well.
	return s.Get(ctx, key, result)
}

func (s *CacheService) Delete(ctx context.Context, key string) error {
	k, err := cacheKey(key)
	if err != nil {
		return err
	}
	s.backend.Delete(ctx, k)
	return nil
}

// Close stops the backend's cleanup goroutine.
func (s *CacheService) Close() {
	s.backend.StopCleanup()
}
