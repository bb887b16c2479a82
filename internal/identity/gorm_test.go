package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/carlosnavea/assethub-backend/pkg/config"
	"github.com/carlosnavea/assethub-backend/pkg/db/models"
)

func setupDirectory(t *testing.T) *GormDirectory {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Identity{}))
	return NewGormDirectory(db, config.PasswordConfig{})
}

func TestCreateNormalizesEmailAndDefaultsRole(t *testing.T) {
	dir := setupDirectory(t)
	ctx := context.Background()

	created, err := dir.Create(ctx, NewIdentity{
		Email:    "  Admin@Example.COM ",
		Password: "s3cret-pass",
		FullName: " Dana Smith ",
	})
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", created.Email)
	require.Equal(t, "Dana Smith", created.FullName)
	require.Equal(t, "user", created.Role)
	require.NotEqual(t, "s3cret-pass", created.PasswordHash)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	dir := setupDirectory(t)
	ctx := context.Background()

	_, err := dir.Create(ctx, NewIdentity{Email: "dup@example.com", Password: "pw-one-long"})
	require.NoError(t, err)

	_, err = dir.Create(ctx, NewIdentity{Email: "DUP@example.com", Password: "pw-two-long"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	dir := setupDirectory(t)
	ctx := context.Background()

	created, err := dir.Create(ctx, NewIdentity{Email: "user@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	row, err := dir.Authenticate(ctx, "user@example.com", "correct-horse")
	require.NoError(t, err)
	require.Equal(t, created.ID, row.ID)

	_, err = dir.Authenticate(ctx, "user@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = dir.Authenticate(ctx, "nobody@example.com", "whatever-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDeleteThenFindReturnsNotFound(t *testing.T) {
	dir := setupDirectory(t)
	ctx := context.Background()

	created, err := dir.Create(ctx, NewIdentity{Email: "gone@example.com", Password: "temporary-pw"})
	require.NoError(t, err)

	require.NoError(t, dir.Delete(ctx, created.ID))
	require.NoError(t, dir.Delete(ctx, created.ID))

	_, err = dir.FindByID(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateLastLogin(t *testing.T) {
	dir := setupDirectory(t)
	ctx := context.Background()

	created, err := dir.Create(ctx, NewIdentity{Email: "login@example.com", Password: "temporary-pw"})
	require.NoError(t, err)

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, dir.UpdateLastLogin(ctx, created.ID, at))

	row, err := dir.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, row.LastLoginAt)
	require.WithinDuration(t, at, *row.LastLoginAt, time.Second)
}
