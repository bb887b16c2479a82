package departments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carlosnavea/assethub-backend/pkg/db/models"
)

// Repository exposes department persistence operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, department *models.Department) (*models.Department, error) {
	if err := r.db.WithContext(ctx).Create(department).Error; err != nil {
		return nil, err
	}
	return department, nil
}

// List returns all departments, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Department, error) {
	var rows []models.Department
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Department, error) {
	var row models.Department
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes a department. Deleting an absent row is not an error.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Department{}, "id = ?", id).Error
}
