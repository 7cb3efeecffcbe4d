// internal/service/pillar.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dangerclosesec/onboarding/internal/domain"
	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/dangerclosesec/onboarding/internal/repository"
)

const pillarsCacheKey = "pillars:descriptions"

type PillarService struct {
	repo  repository.PillarRepositoryIface
	cache *CacheService
}

func NewPillarService(repo repository.PillarRepositoryIface, cache *CacheService) *PillarService {
	return &PillarService{repo: repo, cache: cache}
}

// Descriptions returns every pillar's default description keyed by name.
func (s *PillarService) Descriptions(ctx context.Context) (map[string]string, error) {
	var out map[string]string
	err := s.cache.GetOrSet(ctx, pillarsCacheKey, &out, func() (any, error) {
		pillars, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		m := make(map[string]string, len(pillars))
		for _, p := range pillars {
			m[p.PillarName] = p.DefaultDescription
		}
		return m, nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading pillar descriptions: %w", err)
	}
	return out, nil
}

// Upsert replaces the description of a pillar, creating it when needed.
func (s *PillarService) Upsert(ctx context.Context, name, description string) (*model.PillarDescription, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(description) == "" {
		verr := domain.NewValidationError()
		if name == "" {
			verr.Add("pillar_name", "is required")
		}
		if strings.TrimSpace(description) == "" {
			verr.Add("default_description", "is required")
		}
		return nil, verr
	}

	pillar := &model.PillarDescription{PillarName: name, DefaultDescription: description}
	if err := s.repo.Upsert(ctx, pillar); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, pillarsCacheKey)
	return pillar, nil
}

// Seed inserts the built-in pillars that are missing.
func (s *PillarService) Seed(ctx context.Context) (int, error) {
	n, err := s.repo.SeedDefaults(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		_ = s.cache.Delete(ctx, pillarsCacheKey)
	}
	return n, nil
}
