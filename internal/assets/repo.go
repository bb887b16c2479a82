package assets

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carlosnavea/assethub-backend/pkg/db/models"
)

// CountFilter narrows asset counts to a category or department. Both fields
// nil counts everything.
type CountFilter struct {
	CategoryID   *uuid.UUID
	DepartmentID *uuid.UUID
}

// Repository exposes asset persistence operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, asset *models.Asset) (*models.Asset, error) {
	if err := r.db.WithContext(ctx).Create(asset).Error; err != nil {
		return nil, err
	}
	return asset, nil
}

// List returns all assets, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Asset, error) {
	var rows []models.Asset
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	var row models.Asset
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes an asset. Deleting an absent row is not an error.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Asset{}, "id = ?", id).Error
}

// Count reports how many assets match the filter.
func (r *Repository) Count(ctx context.Context, filter CountFilter) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Asset{})
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
