package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Warehouse is an optional physical location for products and movements.
type Warehouse struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Code      string         `json:"code" gorm:"uniqueIndex;not null"`
	Name      string         `json:"name" gorm:"not null"`
	Address   string         `json:"address"`
	City      string         `json:"city"`
	Country   string         `json:"country"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Warehouse) TableName() string {
	return "warehouses"
}

// BeforeCreate assigns the warehouse ID
func (w *Warehouse) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// WarehouseRepository defines the contract for warehouse data access
type WarehouseRepository interface {
	Create(warehouse *Warehouse) error
	FindByID(id uuid.UUID) (*Warehouse, error)
	FindAll(limit, offset int) ([]Warehouse, error)
}
