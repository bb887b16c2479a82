package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carlosnavea/assethub-backend/internal/identity"
	"github.com/carlosnavea/assethub-backend/internal/profiles"
	"github.com/carlosnavea/assethub-backend/internal/users"
	pkgAuth "github.com/carlosnavea/assethub-backend/pkg/auth"
	"github.com/carlosnavea/assethub-backend/pkg/auth/session"
	"github.com/carlosnavea/assethub-backend/pkg/config"
	"github.com/carlosnavea/assethub-backend/pkg/db/models"
	pkgerrors "github.com/carlosnavea/assethub-backend/pkg/errors"
	"github.com/carlosnavea/assethub-backend/pkg/logger"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*SessionResponse, error)
	Signin(ctx context.Context, req SigninRequest) (*SessionResponse, error)
	Signout(ctx context.Context, accessID string) error
	Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error)
}

type userDirectory interface {
	Create(ctx context.Context, input identity.NewIdentity) (*models.Identity, error)
	Authenticate(ctx context.Context, email, password string) (*models.Identity, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type profilesRepository interface {
	Upsert(ctx context.Context, profile *models.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Revoke(ctx context.Context, accessID string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Directory      userDirectory
	ProfileRepo    profilesRepository
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
	Logger         *logger.Logger
}

type service struct {
	directory userDirectory
	profiles  profilesRepository
	session   sessionManager
	jwtCfg    config.JWTConfig
	logg      *logger.Logger
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Directory == nil {
		return nil, fmt.Errorf("identity directory is required")
	}
	if params.ProfileRepo == nil {
		return nil, fmt.Errorf("profile repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		directory: params.Directory,
		profiles:  params.ProfileRepo,
		session:   params.SessionManager,
		jwtCfg:    params.JWTConfig,
		logg:      params.Logger,
	}, nil
}

// Signup registers a new identity and writes the matching profile in the
// same request. Unlike the admin create-user flow there is no trigger to
// wait for: the signup path owns both writes.
func (s *service) Signup(ctx context.Context, req SignupRequest) (*SessionResponse, error) {
	created, err := s.directory.Create(ctx, identity.NewIdentity{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     pkgAuth.RoleUser,
	})
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeAuth, err, "failed to register")
	}

	if err := s.profiles.Upsert(ctx, &models.Profile{
		ID:       created.ID,
		Email:    created.Email,
		FullName: created.FullName,
		Role:     created.Role,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeProfileSync, err,
			"account created but profile could not be synced")
	}

	return s.openSession(ctx, created)
}

func (s *service) Signin(ctx context.Context, req SigninRequest) (*SessionResponse, error) {
	row, err := s.directory.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeAuth, err, "failed to sign in")
	}

	// Recording the login time is bookkeeping. A failure here must not
	// lock out a user who just proved their credentials.
	now := time.Now().UTC()
	if err := s.directory.UpdateLastLogin(ctx, row.ID, now); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "user_id", row.ID.String()), "auth.last_login_update_failed")
		}
	} else {
		row.LastLoginAt = &now
	}

	return s.openSession(ctx, row)
}

func (s *service) Signout(ctx context.Context, accessID string) error {
	if accessID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := s.session.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to revoke session")
	}
	return nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing identity")
	}
	row, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "failed to load profile")
	}
	return users.FromProfile(row), nil
}

func (s *service) openSession(ctx context.Context, row *models.Identity) (*SessionResponse, error) {
	accessID := session.NewAccessID()
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: row.ID,
		Role:   row.Role,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store session")
	}

	view, err := s.profiles.FindByID(ctx, row.ID)
	if err != nil {
		// The profile may be missing when the stores have diverged; fall back
		// to the identity fields rather than failing the login.
		return &SessionResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			User: &users.UserDTO{
				ID:       row.ID,
				Email:    row.Email,
				FullName: row.FullName,
				Role:     row.Role,
			},
		}, nil
	}

	return &SessionResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         users.FromProfile(view),
	}, nil
}
