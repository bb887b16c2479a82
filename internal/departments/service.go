package departments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carlosnavea/assethub-backend/pkg/db/models"
	pkgerrors "github.com/carlosnavea/assethub-backend/pkg/errors"
)

type departmentsRepository interface {
	Create(ctx context.Context, department *models.Department) (*models.Department, error)
	List(ctx context.Context) ([]models.Department, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Department, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes department creation, listing, and deletion semantics.
type Service interface {
	CreateDepartment(ctx context.Context, input CreateDepartmentInput) (*models.Department, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
	GetDepartment(ctx context.Context, id uuid.UUID) (*models.Department, error)
	DeleteDepartment(ctx context.Context, id uuid.UUID) error
}

// CreateDepartmentInput holds the fields accepted when creating a department.
type CreateDepartmentInput struct {
	Name        string
	Description string
	Employees   int
}

type service struct {
	repo departmentsRepository
}

func NewService(repo departmentsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("department repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateDepartment(ctx context.Context, input CreateDepartmentInput) (*models.Department, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Name is required")
	}
	if input.Employees < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Employees must be 0 or greater")
	}

	department := &models.Department{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Employees:   input.Employees,
	}

	created, err := s.repo.Create(ctx, department)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "failed to create department")
	}
	return created, nil
}

func (s *service) ListDepartments(ctx context.Context) ([]models.Department, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "failed to list departments")
	}
	if rows == nil {
		rows = []models.Department{}
	}
	return rows, nil
}

func (s *service) GetDepartment(ctx context.Context, id uuid.UUID) (*models.Department, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "department id is required")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "department not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "failed to load department")
	}
	return row, nil
}

func (s *service) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "department id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStore, err, "failed to delete department")
	}
	return nil
}
