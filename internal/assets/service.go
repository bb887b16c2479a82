package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/carlosnavea/assethub-backend/pkg/db/models"
	pkgerrors "github.com/carlosnavea/assethub-backend/pkg/errors"
)

type assetsRepository interface {
	Create(ctx context.Context, asset *models.Asset) (*models.Asset, error)
	List(ctx context.Context) ([]models.Asset, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Asset, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter CountFilter) (int64, error)
}

// Service exposes asset creation, listing, deletion, and counting semantics.
type Service interface {
	CreateAsset(ctx context.Context, input CreateAssetInput) (*models.Asset, error)
	ListAssets(ctx context.Context) ([]models.Asset, error)
	GetAsset(ctx context.Context, id uuid.UUID) (*models.Asset, error)
	DeleteAsset(ctx context.Context, id uuid.UUID) error
	CountAssets(ctx context.Context, filter CountFilter) (int64, error)
}

// CreateAssetInput holds the fields accepted when creating an asset.
type CreateAssetInput struct {
	Name         string
	Description  string
	CategoryID   *uuid.UUID
	DepartmentID *uuid.UUID
	Cost         decimal.Decimal
	PurchasedAt  *time.Time
}

type service struct {
	repo assetsRepository
}

func NewService(repo assetsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("asset repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateAsset(ctx context.Context, input CreateAssetInput) (*models.Asset, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Name is required")
	}
	if input.Cost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Cost must be 0 or greater")
	}

	asset := &models.Asset{
		Name:         name,
		Description:  strings.TrimSpace(input.Description),
		CategoryID:   input.CategoryID,
		DepartmentID: input.DepartmentID,
		Cost:         input.Cost,
		PurchasedAt:  input.PurchasedAt,
	}

	created, err := s.repo.Create(ctx, asset)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "failed to create asset")
	}
	return created, nil
}

func (s *service) ListAssets(ctx context.Context) ([]models.Asset, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "failed to list assets")
	}
	if rows == nil {
		rows = []models.Asset{}
	}
	return rows, nil
}

func (s *service) GetAsset(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "asset id is required")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "failed to load asset")
	}
	return row, nil
}

func (s *service) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "asset id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStore, err, "failed to delete asset")
	}
	return nil
}

func (s *service) CountAssets(ctx context.Context, filter CountFilter) (int64, error) {
	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeStore, err, "failed to count assets")
	}
	return count, nil
}
