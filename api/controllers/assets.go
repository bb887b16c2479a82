package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carlosnavea/assethub-backend/api/responses"
	"github.com/carlosnavea/assethub-backend/api/validators"
	"github.com/carlosnavea/assethub-backend/internal/assets"
	"github.com/carlosnavea/assethub-backend/pkg/db/models"
	pkgerrors "github.com/carlosnavea/assethub-backend/pkg/errors"
	"github.com/carlosnavea/assethub-backend/pkg/logger"
)

type assetCreateRequest struct {
	Name         string     `json:"name" validate:"required"`
	Description  string     `json:"description"`
	CategoryID   *string    `json:"category_id" validate:"omitempty,uuid"`
	DepartmentID *string    `json:"department_id" validate:"omitempty,uuid"`
	Cost         *string    `json:"cost"`
	PurchasedAt  *time.Time `json:"purchased_at"`
}

func (r assetCreateRequest) toInput() (assets.CreateAssetInput, error) {
	input := assets.CreateAssetInput{
		Name:        r.Name,
		Description: r.Description,
		PurchasedAt: r.PurchasedAt,
	}

	if r.CategoryID != nil && strings.TrimSpace(*r.CategoryID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*r.CategoryID))
		if err != nil {
			return assets.CreateAssetInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category_id")
		}
		input.CategoryID = &id
	}
	if r.DepartmentID != nil && strings.TrimSpace(*r.DepartmentID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*r.DepartmentID))
		if err != nil {
			return assets.CreateAssetInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid department_id")
		}
		input.DepartmentID = &id
	}
	if r.Cost != nil && strings.TrimSpace(*r.Cost) != "" {
		cost, err := decimal.NewFromString(strings.TrimSpace(*r.Cost))
		if err != nil {
			return assets.CreateAssetInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cost")
		}
		input.Cost = cost
	}
	return input, nil
}

type assetResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	CategoryID   *uuid.UUID `json:"category_id"`
	DepartmentID *uuid.UUID `json:"department_id"`
	Cost         string     `json:"cost"`
	PurchasedAt  *time.Time `json:"purchased_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

func assetResponseFromModel(m *models.Asset) assetResponse {
	return assetResponse{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		CategoryID:   m.CategoryID,
		DepartmentID: m.DepartmentID,
		Cost:         m.Cost.StringFixed(2),
		PurchasedAt:  m.PurchasedAt,
		CreatedAt:    m.CreatedAt,
	}
}

// AssetList handles GET /assets.
func AssetList(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListAssets(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]assetResponse, len(rows))
		for i := range rows {
			out[i] = assetResponseFromModel(&rows[i])
		}
		responses.WriteSuccess(w, out)
	}
}

// AssetCreate handles POST /assets.
func AssetCreate(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload assetCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateAsset(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, assetResponseFromModel(created))
	}
}

// AssetDelete handles DELETE /assets/{id}.
func AssetDelete(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid asset id"))
			return
		}

		if err := svc.DeleteAsset(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"success": true})
	}
}

// AssetCount handles GET /assets/count with optional category_id and
// department_id filters. The frontend fans out one of these calls per list
// row to decorate categories and departments with asset counts.
func AssetCount(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParseQueryUUID(r, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		departmentID, err := validators.ParseQueryUUID(r, "department_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		count, err := svc.CountAssets(r.Context(), assets.CountFilter{
			CategoryID:   categoryID,
			DepartmentID: departmentID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{"count": count})
	}
}
