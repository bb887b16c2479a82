package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/carlosnavea/assethub-backend/pkg/db/models"
)

// UserDTO is the transport shape for a user. It is built from the profile
// row, never from the identity record, so credentials cannot leak through it.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromProfile(p *models.Profile) *UserDTO {
	if p == nil {
		return nil
	}
	return &UserDTO{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		Role:      p.Role,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
