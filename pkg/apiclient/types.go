package apiclient

import (
	"time"

	"github.com/google/uuid"
)

// Asset mirrors the wire shape returned by the assets endpoints.
type Asset struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	CategoryID   *uuid.UUID `json:"category_id"`
	DepartmentID *uuid.UUID `json:"department_id"`
	Cost         string     `json:"cost"`
	PurchasedAt  *time.Time `json:"purchased_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Category mirrors the wire shape returned by the categories endpoints.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   *string   `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Department mirrors the wire shape returned by the departments endpoints.
type Department struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Employees   int       `json:"employees"`
	CreatedAt   time.Time `json:"created_at"`
}

// User mirrors the profile view returned by the user and auth endpoints.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session carries the tokens and user view minted at signup or signin.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// CreateAssetParams is the payload for POST /api/v1/assets.
type CreateAssetParams struct {
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
	Cost         string     `json:"cost,omitempty"`
	PurchasedAt  *time.Time `json:"purchased_at,omitempty"`
}

// CreateCategoryParams is the payload for POST /api/v1/categories.
type CreateCategoryParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateDepartmentParams is the payload for POST /api/v1/departments.
type CreateDepartmentParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Employees   int    `json:"employees"`
}

// CreateUserParams is the payload for POST /api/admin/v1/users.
type CreateUserParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"`
}

// SignupParams is the payload for POST /api/v1/auth/signup.
type SignupParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// SigninParams is the payload for POST /api/v1/auth/signin.
type SigninParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AssetCountFilter narrows GET /api/v1/assets/count to one category or
// department. Zero value counts everything.
type AssetCountFilter struct {
	CategoryID   *uuid.UUID
	DepartmentID *uuid.UUID
}

type errorBody struct {
	Error string `json:"error"`
}

type countBody struct {
	Count int64 `json:"count"`
}

type deleteBody struct {
	Success bool `json:"success"`
}

type userBody struct {
	User *User `json:"user"`
}
