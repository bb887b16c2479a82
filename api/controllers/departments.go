package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carlosnavea/assethub-backend/api/responses"
	"github.com/carlosnavea/assethub-backend/api/validators"
	"github.com/carlosnavea/assethub-backend/internal/departments"
	"github.com/carlosnavea/assethub-backend/pkg/db/models"
	pkgerrors "github.com/carlosnavea/assethub-backend/pkg/errors"
	"github.com/carlosnavea/assethub-backend/pkg/logger"
)

type departmentCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Employees   int    `json:"employees" validate:"gte=0"`
}

type departmentResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Employees   int       `json:"employees"`
	CreatedAt   time.Time `json:"created_at"`
}

func departmentResponseFromModel(m *models.Department) departmentResponse {
	return departmentResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Employees:   m.Employees,
		CreatedAt:   m.CreatedAt,
	}
}

// DepartmentList handles GET /departments.
func DepartmentList(svc departments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListDepartments(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]departmentResponse, len(rows))
		for i := range rows {
			out[i] = departmentResponseFromModel(&rows[i])
		}
		responses.WriteSuccess(w, out)
	}
}

// DepartmentCreate handles POST /departments.
func DepartmentCreate(svc departments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload departmentCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateDepartment(r.Context(), departments.CreateDepartmentInput{
			Name:        payload.Name,
			Description: payload.Description,
			Employees:   payload.Employees,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, departmentResponseFromModel(created))
	}
}

// DepartmentDelete handles DELETE /departments/{id}.
func DepartmentDelete(svc departments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid department id"))
			return
		}

		if err := svc.DeleteDepartment(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"success": true})
	}
}
