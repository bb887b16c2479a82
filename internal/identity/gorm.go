package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/carlosnavea/assethub-backend/pkg/auth"
	"github.com/carlosnavea/assethub-backend/pkg/config"
	"github.com/carlosnavea/assethub-backend/pkg/db"
	"github.com/carlosnavea/assethub-backend/pkg/db/models"
	"github.com/carlosnavea/assethub-backend/pkg/security"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotFound           = errors.New("identity not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// GormDirectory is the database-backed Directory.
type GormDirectory struct {
	db          *gorm.DB
	passwordCfg config.PasswordConfig
}

func NewGormDirectory(db *gorm.DB, passwordCfg config.PasswordConfig) *GormDirectory {
	return &GormDirectory{db: db, passwordCfg: passwordCfg}
}

func (d *GormDirectory) Create(ctx context.Context, input NewIdentity) (*models.Identity, error) {
	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = pkgAuth.RoleUser
	}

	hash, err := security.HashPassword(input.Password, d.passwordCfg)
	if err != nil {
		return nil, err
	}

	row := &models.Identity{
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		Role:         role,
	}
	if err := d.db.WithContext(ctx).Create(row).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return row, nil
}

func (d *GormDirectory) Delete(ctx context.Context, id uuid.UUID) error {
	return d.db.WithContext(ctx).Delete(&models.Identity{}, "id = ?", id).Error
}

func (d *GormDirectory) FindByID(ctx context.Context, id uuid.UUID) (*models.Identity, error) {
	var row models.Identity
	if err := d.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (d *GormDirectory) FindByEmail(ctx context.Context, email string) (*models.Identity, error) {
	var row models.Identity
	if err := d.db.WithContext(ctx).First(&row, "email = ?", normalizeEmail(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// Authenticate verifies the password for the given email. Lookup misses and
// bad passwords both come back as ErrInvalidCredentials.
func (d *GormDirectory) Authenticate(ctx context.Context, email, password string) (*models.Identity, error) {
	row, err := d.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	valid, err := security.VerifyPassword(password, row.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}
	return row, nil
}

func (d *GormDirectory) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return d.db.WithContext(ctx).
		Model(&models.Identity{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
