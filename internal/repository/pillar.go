// internal/repository/pillar.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/onboarding/internal/domain"
	"github.com/dangerclosesec/onboarding/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PillarRepositoryIface interface {
	FindAll(ctx context.Context) ([]*model.PillarDescription, error)
	FindByName(ctx context.Context, name string) (*model.PillarDescription, error)
	Upsert(ctx context.Context, pillar *model.PillarDescription) error
	SeedDefaults(ctx context.Context) (int, error)
}

type PillarRepository struct {
	db *gorm.DB
}

func NewPillarRepository(db *gorm.DB) *PillarRepository {
	return &PillarRepository{db: db}
}

// FindAll returns every pillar description ordered by name
func (r *PillarRepository) FindAll(ctx context.Context) ([]*model.PillarDescription, error) {
	var pillars []*model.PillarDescription
	if err := r.db.WithContext(ctx).Order("pillar_name ASC").Find(&pillars).Error; err != nil {
		return nil, fmt.Errorf("failed to find pillar descriptions: %w", err)
	}
	return pillars, nil
}

func (r *PillarRepository) FindByName(ctx context.Context, name string) (*model.PillarDescription, error) {
	var pillar model.PillarDescription
	if err := r.db.WithContext(ctx).Where("pillar_name = ?", name).First(&pillar).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPillarNotFound
		}
		return nil, fmt.Errorf("failed to find pillar description: %w", err)
	}
	return &pillar, nil
}

// Upsert inserts the pillar or replaces the description of an existing one.
func (r *PillarRepository) Upsert(ctx context.Context, pillar *model.PillarDescription) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pillar_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"default_description", "updated_at"}),
	}).Create(pillar).Error
	if err != nil {
		return fmt.Errorf("failed to upsert pillar description: %w", err)
	}
	return nil
}

// SeedDefaults inserts the built-in pillars that are missing and leaves edited
// ones untouched. It returns how many rows were created.
func (r *PillarRepository) SeedDefaults(ctx context.Context) (int, error) {
	created := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range DefaultPillarNames {
			var count int64
			if err := tx.Model(&model.PillarDescription{}).Where("pillar_name = ?", name).Count(&count).Error; err != nil {
				return fmt.Errorf("checking %q: %w", name, err)
			}
			if count > 0 {
				continue
			}

			pillar := model.PillarDescription{PillarName: name, DefaultDescription: DefaultPillarDescriptions[name]}
			if err := tx.Create(&pillar).Error; err != nil {
				return fmt.Errorf("seeding %q: %w", name, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed pillar descriptions: %w", err)
	}
	return created, nil
}
