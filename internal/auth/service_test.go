package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/carlosnavea/assethub-backend/internal/identity"
	"github.com/carlosnavea/assethub-backend/internal/profiles"
	pkgAuth "github.com/carlosnavea/assethub-backend/pkg/auth"
	"github.com/carlosnavea/assethub-backend/pkg/config"
	"github.com/carlosnavea/assethub-backend/pkg/db/models"
	pkgerrors "github.com/carlosnavea/assethub-backend/pkg/errors"
)

type fakeDirectory struct {
	identities   map[string]*models.Identity
	createErr    error
	lastLogin    map[uuid.UUID]time.Time
	lastLoginErr error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		identities: map[string]*models.Identity{},
		lastLogin:  map[uuid.UUID]time.Time{},
	}
}

func (d *fakeDirectory) Create(_ context.Context, input identity.NewIdentity) (*models.Identity, error) {
	if d.createErr != nil {
		return nil, d.createErr
	}
	if _, ok := d.identities[input.Email]; ok {
		return nil, identity.ErrEmailTaken
	}
	row := &models.Identity{
		ID:       uuid.New(),
		Email:    input.Email,
		FullName: input.FullName,
		Role:     input.Role,
	}
	d.identities[input.Email] = row
	return row, nil
}

func (d *fakeDirectory) Authenticate(_ context.Context, email, password string) (*models.Identity, error) {
	row, ok := d.identities[email]
	if !ok || password != "correct-password" {
		return nil, identity.ErrInvalidCredentials
	}
	return row, nil
}

func (d *fakeDirectory) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	if d.lastLoginErr != nil {
		return d.lastLoginErr
	}
	d.lastLogin[id] = at
	return nil
}

type fakeProfileRepo struct {
	rows      map[uuid.UUID]models.Profile
	upsertErr error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{rows: map[uuid.UUID]models.Profile{}}
}

func (p *fakeProfileRepo) Upsert(_ context.Context, profile *models.Profile) error {
	if p.upsertErr != nil {
		return p.upsertErr
	}
	p.rows[profile.ID] = *profile
	return nil
}

func (p *fakeProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	row, ok := p.rows[id]
	if !ok {
		return nil, profiles.ErrNotFound
	}
	return &row, nil
}

type fakeSessions struct {
	generated []string
	revoked   []string
}

func (s *fakeSessions) Generate(_ context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-" + accessID, nil
}

func (s *fakeSessions) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func newAuthTestService(t *testing.T, dir *fakeDirectory, repo *fakeProfileRepo, sessions *fakeSessions) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Directory:      dir,
		ProfileRepo:    repo,
		SessionManager: sessions,
		JWTConfig: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "assethub-test",
			ExpirationMinutes: 15,
		},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSignupCreatesIdentityAndProfile(t *testing.T) {
	dir := newFakeDirectory()
	repo := newFakeProfileRepo()
	sessions := &fakeSessions{}
	svc := newAuthTestService(t, dir, repo, sessions)

	resp, err := svc.Signup(context.Background(), SignupRequest{
		Email:    "new@example.com",
		Password: "correct-password",
		FullName: "New User",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected minted tokens")
	}
	if resp.User.Role != pkgAuth.RoleUser {
		t.Fatalf("expected default role, got %q", resp.User.Role)
	}
	if _, err := repo.FindByID(context.Background(), resp.User.ID); err != nil {
		t.Fatalf("profile not written: %v", err)
	}
	if len(sessions.generated) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions.generated))
	}
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	dir := newFakeDirectory()
	repo := newFakeProfileRepo()
	svc := newAuthTestService(t, dir, repo, &fakeSessions{})

	_, err := svc.Signup(context.Background(), SignupRequest{Email: "dup@example.com", Password: "correct-password"})
	if err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	_, err = svc.Signup(context.Background(), SignupRequest{Email: "dup@example.com", Password: "correct-password"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSignupProfileFailureSurfacesSyncError(t *testing.T) {
	dir := newFakeDirectory()
	repo := newFakeProfileRepo()
	repo.upsertErr = errors.New("profiles store down")
	svc := newAuthTestService(t, dir, repo, &fakeSessions{})

	_, err := svc.Signup(context.Background(), SignupRequest{Email: "x@example.com", Password: "correct-password"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeProfileSync) {
		t.Fatalf("expected profile sync error, got %v", err)
	}
	if _, ok := dir.identities["x@example.com"]; !ok {
		t.Fatal("identity must remain after profile failure")
	}
}

func TestSigninRecordsLoginAndMintsSession(t *testing.T) {
	dir := newFakeDirectory()
	repo := newFakeProfileRepo()
	sessions := &fakeSessions{}
	svc := newAuthTestService(t, dir, repo, sessions)

	if _, err := svc.Signup(context.Background(), SignupRequest{Email: "in@example.com", Password: "correct-password"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	resp, err := svc.Signin(context.Background(), SigninRequest{Email: "in@example.com", Password: "correct-password"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}
	if len(dir.lastLogin) != 1 {
		t.Fatal("expected last login to be recorded")
	}
}

func TestSigninSucceedsWhenLastLoginUpdateFails(t *testing.T) {
	dir := newFakeDirectory()
	repo := newFakeProfileRepo()
	sessions := &fakeSessions{}
	svc := newAuthTestService(t, dir, repo, sessions)

	if _, err := svc.Signup(context.Background(), SignupRequest{Email: "in@example.com", Password: "correct-password"}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	dir.lastLoginErr = errors.New("identities table unavailable")

	resp, err := svc.Signin(context.Background(), SigninRequest{Email: "in@example.com", Password: "correct-password"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected minted tokens")
	}
	if len(dir.lastLogin) != 0 {
		t.Fatal("last login should stay unrecorded when the write fails")
	}
}

func TestSigninRejectsBadCredentials(t *testing.T) {
	dir := newFakeDirectory()
	svc := newAuthTestService(t, dir, newFakeProfileRepo(), &fakeSessions{})

	_, err := svc.Signin(context.Background(), SigninRequest{Email: "nobody@example.com", Password: "wrong"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestSignoutRevokesSession(t *testing.T) {
	sessions := &fakeSessions{}
	svc := newAuthTestService(t, newFakeDirectory(), newFakeProfileRepo(), sessions)

	if err := svc.Signout(context.Background(), "jti-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "jti-1" {
		t.Fatalf("session not revoked: %v", sessions.revoked)
	}
}

func TestMeReadsProfile(t *testing.T) {
	repo := newFakeProfileRepo()
	id := uuid.New()
	repo.rows[id] = models.Profile{ID: id, Email: "me@example.com", Role: "admin"}
	svc := newAuthTestService(t, newFakeDirectory(), repo, &fakeSessions{})

	me, err := svc.Me(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if me.Email != "me@example.com" || me.Role != "admin" {
		t.Fatalf("unexpected profile %+v", me)
	}

	_, err = svc.Me(context.Background(), uuid.New())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
