package identity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/carlosnavea/assethub-backend/pkg/db/models"
)

// NewIdentity carries the fields required to register a login.
type NewIdentity struct {
	Email    string
	Password string
	FullName string
	Role     string
}

// Directory is the identity subsystem's contract. The rest of the codebase
// talks to logins only through this interface; it never reads the identities
// table directly.
type Directory interface {
	Create(ctx context.Context, input NewIdentity) (*models.Identity, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Identity, error)
	FindByEmail(ctx context.Context, email string) (*models.Identity, error)
	Authenticate(ctx context.Context, email, password string) (*models.Identity, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
