package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role values minted into access tokens. Stored on both Identity and
// Profile; the HTTP boundary enforces them via middleware.RequireRole.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether the provided role is one the platform mints.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Role   string
	JTI    string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}
