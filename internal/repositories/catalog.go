package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/resume-screener/internal/models"
)

type CatalogRepository interface {
	FindAll(ctx context.Context) ([]models.CatalogEntry, error)
	// SeedIfEmpty inserts entries only when the table has no rows and
	// reports whether it did.
	SeedIfEmpty(ctx context.Context, entries []models.CatalogEntry) (bool, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// FindAll implements CatalogRepository.
func (r *catalogRepository) FindAll(ctx context.Context) ([]models.CatalogEntry, error) {
	var entries []models.CatalogEntry
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to find catalog entries: %w", err)
	}

	return entries, nil
}

// SeedIfEmpty implements CatalogRepository.
func (r *catalogRepository) SeedIfEmpty(ctx context.Context, entries []models.CatalogEntry) (bool, error) {
	seeded := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.CatalogEntry{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count catalog entries: %w", err)
		}
		if count > 0 || len(entries) == 0 {
			return nil
		}

		if err := tx.CreateInBatches(entries, 100).Error; err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return seeded, nil
}
