package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile mirrors an Identity into the row store. Its ID equals the owning
// identity's ID; the pairing is maintained by the dual-write reconciliation
// in internal/users, not by a database foreign key, and can diverge under
// partial failure.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName  string    `gorm:"column:full_name;not null;default:''"`
	Email     string    `gorm:"type:text;not null"`
	Role      string    `gorm:"column:role;not null;default:'user'"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
