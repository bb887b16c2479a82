package assets

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carlosnavea/assethub-backend/pkg/db/models"
	pkgerrors "github.com/carlosnavea/assethub-backend/pkg/errors"
)

type recordingAssetsRepo struct {
	createCalls int
	rows        []models.Asset
	count       int64
	err         error
}

func (r *recordingAssetsRepo) Create(_ context.Context, asset *models.Asset) (*models.Asset, error) {
	r.createCalls++
	if r.err != nil {
		return nil, r.err
	}
	return asset, nil
}

func (r *recordingAssetsRepo) List(context.Context) ([]models.Asset, error) {
	return r.rows, r.err
}

func (r *recordingAssetsRepo) FindByID(context.Context, uuid.UUID) (*models.Asset, error) {
	return nil, r.err
}

func (r *recordingAssetsRepo) Delete(context.Context, uuid.UUID) error {
	return r.err
}

func (r *recordingAssetsRepo) Count(context.Context, CountFilter) (int64, error) {
	return r.count, r.err
}

func TestCreateAssetRejectsBlankNameBeforeStorage(t *testing.T) {
	repo := &recordingAssetsRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.CreateAsset(context.Background(), CreateAssetInput{Name: "  "})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("repository reached despite invalid input (%d calls)", repo.createCalls)
	}
}

func TestCreateAssetRejectsNegativeCost(t *testing.T) {
	repo := &recordingAssetsRepo{}
	svc, _ := NewService(repo)

	_, err := svc.CreateAsset(context.Background(), CreateAssetInput{
		Name: "Laptop",
		Cost: decimal.NewFromFloat(-1.50),
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("repository reached despite invalid input (%d calls)", repo.createCalls)
	}
}

func TestCreateAssetKeepsOptionalReferencesNil(t *testing.T) {
	repo := &recordingAssetsRepo{}
	svc, _ := NewService(repo)

	created, err := svc.CreateAsset(context.Background(), CreateAssetInput{Name: "Whiteboard"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.CategoryID != nil || created.DepartmentID != nil {
		t.Fatalf("expected nil references, got %+v", created)
	}
	if !created.Cost.IsZero() {
		t.Fatalf("expected zero cost, got %s", created.Cost)
	}
}

func TestCountAssetsMapsStoreFailure(t *testing.T) {
	repo := &recordingAssetsRepo{err: errTest}
	svc, _ := NewService(repo)

	_, err := svc.CountAssets(context.Background(), CountFilter{})
	if !pkgerrors.IsCode(err, pkgerrors.CodeStore) {
		t.Fatalf("expected store error, got %v", err)
	}
}

var errTest = errors.New("boom")
