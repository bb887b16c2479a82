package categories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/carlosnavea/assethub-backend/pkg/db/models"
	pkgerrors "github.com/carlosnavea/assethub-backend/pkg/errors"
)

type recordingCategoriesRepo struct {
	createCalls int
	listCalls   int
	created     *models.Category
	rows        []models.Category
	err         error
}

func (r *recordingCategoriesRepo) Create(_ context.Context, category *models.Category) (*models.Category, error) {
	r.createCalls++
	if r.err != nil {
		return nil, r.err
	}
	r.created = category
	return category, nil
}

func (r *recordingCategoriesRepo) List(context.Context) ([]models.Category, error) {
	r.listCalls++
	if r.err != nil {
		return nil, r.err
	}
	return r.rows, nil
}

func (r *recordingCategoriesRepo) FindByID(context.Context, uuid.UUID) (*models.Category, error) {
	return r.created, r.err
}

func (r *recordingCategoriesRepo) Delete(context.Context, uuid.UUID) error {
	return r.err
}

func TestCreateCategoryRejectsBlankNameBeforeStorage(t *testing.T) {
	repo := &recordingCategoriesRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.CreateCategory(context.Background(), CreateCategoryInput{Name: "   "})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("repository reached despite invalid input (%d calls)", repo.createCalls)
	}
}

func TestCreateCategoryTrimsAndRecordsCreator(t *testing.T) {
	repo := &recordingCategoriesRepo{}
	svc, _ := NewService(repo)

	created, err := svc.CreateCategory(context.Background(), CreateCategoryInput{
		Name:        "  Electronics  ",
		Description: " gadgets ",
		CreatedBy:   "admin@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Name != "Electronics" || created.Description != "gadgets" {
		t.Fatalf("unexpected trim result %+v", created)
	}
	if created.CreatedBy == nil || *created.CreatedBy != "admin@example.com" {
		t.Fatalf("expected creator email, got %v", created.CreatedBy)
	}
}

func TestCreateCategoryOmitsCreatorWhenUnknown(t *testing.T) {
	repo := &recordingCategoriesRepo{}
	svc, _ := NewService(repo)

	created, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: "Misc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.CreatedBy != nil {
		t.Fatalf("expected nil creator, got %v", *created.CreatedBy)
	}
}

func TestListCategoriesMapsStoreFailure(t *testing.T) {
	repo := &recordingCategoriesRepo{err: errors.New("conn refused")}
	svc, _ := NewService(repo)

	_, err := svc.ListCategories(context.Background())
	if !pkgerrors.IsCode(err, pkgerrors.CodeStore) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestListCategoriesNeverReturnsNil(t *testing.T) {
	repo := &recordingCategoriesRepo{}
	svc, _ := NewService(repo)

	rows, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows == nil {
		t.Fatal("expected empty slice, got nil")
	}
}

func TestDeleteCategoryRequiresID(t *testing.T) {
	repo := &recordingCategoriesRepo{}
	svc, _ := NewService(repo)

	err := svc.DeleteCategory(context.Background(), uuid.Nil)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
