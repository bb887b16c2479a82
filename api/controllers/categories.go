package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carlosnavea/assethub-backend/api/middleware"
	"github.com/carlosnavea/assethub-backend/api/responses"
	"github.com/carlosnavea/assethub-backend/api/validators"
	"github.com/carlosnavea/assethub-backend/internal/categories"
	"github.com/carlosnavea/assethub-backend/pkg/db/models"
	pkgerrors "github.com/carlosnavea/assethub-backend/pkg/errors"
	"github.com/carlosnavea/assethub-backend/pkg/logger"
)

type categoryCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type categoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   *string   `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func categoryResponseFromModel(m *models.Category) categoryResponse {
	return categoryResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

// CategoryList handles GET /categories.
func CategoryList(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]categoryResponse, len(rows))
		for i := range rows {
			out[i] = categoryResponseFromModel(&rows[i])
		}
		responses.WriteSuccess(w, out)
	}
}

// CategoryCreate handles POST /categories. The creator is recorded from the
// authenticated actor's profile email when the directory lookup resolves it.
func CategoryCreate(svc categories.Service, actorEmail ActorEmailLookup, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload categoryCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		createdBy := ""
		if actorEmail != nil {
			if email, err := actorEmail(r.Context(), middleware.UserIDFromContext(r.Context())); err == nil {
				createdBy = email
			}
		}

		created, err := svc.CreateCategory(r.Context(), categories.CreateCategoryInput{
			Name:        payload.Name,
			Description: payload.Description,
			CreatedBy:   createdBy,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, categoryResponseFromModel(created))
	}
}

// CategoryDelete handles DELETE /categories/{id}.
func CategoryDelete(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id"))
			return
		}

		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"success": true})
	}
}
