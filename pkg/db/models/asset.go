package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Asset is a tracked physical asset. Category and department references are
// nullable by design; deleting either leaves the asset in place.
type Asset struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string          `gorm:"type:text;not null"`
	Description  string          `gorm:"type:text;not null;default:''"`
	CategoryID   *uuid.UUID      `gorm:"column:category_id;type:uuid"`
	DepartmentID *uuid.UUID      `gorm:"column:department_id;type:uuid"`
	Cost         decimal.Decimal `gorm:"column:cost;type:numeric(14,2);not null;default:0"`
	PurchasedAt  *time.Time      `gorm:"column:purchased_at"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// BeforeCreate assigns an ID so inserts behave the same on Postgres and the
// SQLite dev database.
func (a *Asset) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
