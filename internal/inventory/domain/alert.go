package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Alert types
const (
	AlertLowStock   = "LOW_STOCK"
	AlertOutOfStock = "OUT_OF_STOCK"
	AlertOverStock  = "OVER_STOCK"
)

// InventoryAlert represents an open or resolved exception condition for a
// product. At most one open alert may exist per (product, alert type) pair;
// the repository backs this with a partial unique index.
type InventoryAlert struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID      `json:"product_id" gorm:"type:uuid;not null;index"`
	AlertType  string         `json:"alert_type" gorm:"not null"`
	Message    string         `json:"message" gorm:"not null"`
	IsResolved bool           `json:"is_resolved" gorm:"not null;default:false"`
	ResolvedAt *time.Time     `json:"resolved_at,omitempty"`
	ResolvedBy string         `json:"resolved_by,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (InventoryAlert) TableName() string {
	return "inventory_alerts"
}

// BeforeCreate assigns the alert ID
func (a *InventoryAlert) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AlertFilter describes the listing parameters for alerts
type AlertFilter struct {
	ProductID  *uuid.UUID
	AlertType  string
	Unresolved bool
	Limit      int
	Offset     int
}

// AlertRepository defines the contract for inventory alert data access
type AlertRepository interface {
	Create(alert *InventoryAlert) error
	// FindOpenByProductAndType returns the open alert for the pair, or
	// (nil, nil) when none exists.
	FindOpenByProductAndType(productID uuid.UUID, alertType string) (*InventoryAlert, error)
	FindAll(filter AlertFilter) ([]InventoryAlert, error)
	Resolve(id uuid.UUID, resolvedBy string) error
}
