package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	retry "github.com/sethvargo/go-retry"

	"github.com/carlosnavea/assethub-backend/internal/identity"
	"github.com/carlosnavea/assethub-backend/internal/profiles"
	pkgAuth "github.com/carlosnavea/assethub-backend/pkg/auth"
	"github.com/carlosnavea/assethub-backend/pkg/config"
	"github.com/carlosnavea/assethub-backend/pkg/db/models"
	pkgerrors "github.com/carlosnavea/assethub-backend/pkg/errors"
	"github.com/carlosnavea/assethub-backend/pkg/logger"
)

type directory interface {
	Create(ctx context.Context, input identity.NewIdentity) (*models.Identity, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type profilesRepository interface {
	Upsert(ctx context.Context, profile *models.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service manages users across the identity directory and the profile store.
//
// The two writes are deliberately not transactional: the identity insert and
// the profile upsert hit different subsystems, mirroring how the stores can
// diverge in production. A failed profile write after a successful identity
// insert surfaces as a profile-sync error and leaves the identity in place.
type Service interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	ListUsers(ctx context.Context) ([]UserDTO, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// CreateUserInput holds the fields accepted when an admin creates a user.
type CreateUserInput struct {
	Email    string
	Password string
	FullName string
	Role     string
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	Directory   directory
	ProfileRepo profilesRepository
	Logger      *logger.Logger
	SyncConfig  config.ProfileSyncConfig
}

type service struct {
	directory directory
	profiles  profilesRepository
	logg      *logger.Logger
	syncCfg   config.ProfileSyncConfig
}

func NewService(params ServiceParams) (Service, error) {
	if params.Directory == nil {
		return nil, fmt.Errorf("identity directory is required")
	}
	if params.ProfileRepo == nil {
		return nil, fmt.Errorf("profile repository is required")
	}
	if params.SyncConfig.PollInterval <= 0 || params.SyncConfig.PollTimeout <= 0 {
		return nil, fmt.Errorf("profile sync poll interval and timeout must be positive")
	}
	return &service{
		directory: params.Directory,
		profiles:  params.ProfileRepo,
		logg:      params.Logger,
		syncCfg:   params.SyncConfig,
	}, nil
}

func (s *service) CreateUser(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Email is required")
	}
	if len(input.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Password must be at least 8 characters")
	}
	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = pkgAuth.RoleUser
	}
	if !pkgAuth.ValidRole(role) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Role must be user or admin")
	}

	created, err := s.directory.Create(ctx, identity.NewIdentity{
		Email:    email,
		Password: input.Password,
		FullName: strings.TrimSpace(input.FullName),
		Role:     role,
	})
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeAuth, err, "failed to create user identity")
	}

	// The provisioning trigger fires out of band; wait for the profile row
	// before reconciling so the upsert sees the trigger's write when there is
	// one. The identity is never rolled back past this point.
	existing := s.waitForProvisionedProfile(ctx, created.ID)

	profile := &models.Profile{
		ID:       created.ID,
		Email:    created.Email,
		FullName: created.FullName,
		Role:     created.Role,
	}
	if existing != nil {
		profile.CreatedAt = existing.CreatedAt
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		if s.logg != nil {
			s.logg.Error(logFields(ctx, s.logg, created.ID), "users.profile_sync_failed", err)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeProfileSync, err,
			"user identity created but profile could not be synced")
	}

	row, err := s.profiles.FindByID(ctx, created.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeProfileSync, err,
			"user identity created but profile could not be read back")
	}
	return FromProfile(row), nil
}

// waitForProvisionedProfile polls the profile store with a bounded constant
// backoff. A nil return means the trigger never landed a row in time; the
// caller inserts one itself.
func (s *service) waitForProvisionedProfile(ctx context.Context, id uuid.UUID) *models.Profile {
	var found *models.Profile

	backoff := retry.WithMaxDuration(s.syncCfg.PollTimeout, retry.NewConstant(s.syncCfg.PollInterval))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		row, err := s.profiles.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, profiles.ErrNotFound) {
				return retry.RetryableError(err)
			}
			return err
		}
		found = row
		return nil
	})
	if err != nil {
		return nil
	}
	return found
}

func (s *service) ListUsers(ctx context.Context) ([]UserDTO, error) {
	rows, err := s.profiles.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "failed to list users")
	}

	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromProfile(&rows[i]))
	}
	return out, nil
}

// DeleteUser removes the identity first and the profile second. A profile
// delete failure is logged and swallowed; the login is already gone, and the
// orphaned row surfaces in listings until it is cleaned up.
func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	if err := s.directory.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeAuth, err, "failed to delete user identity")
	}

	if err := s.profiles.Delete(ctx, id); err != nil && s.logg != nil {
		s.logg.Warn(logFields(ctx, s.logg, id), "users.profile_cleanup_failed")
	}
	return nil
}

func logFields(ctx context.Context, logg *logger.Logger, id uuid.UUID) context.Context {
	return logg.WithField(ctx, "user_id", id.String())
}
