package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a stock-keeping unit tracked by the inventory service.
// Version is the optimistic concurrency token: every stock mutation must go
// through a compare-and-swap on (id, version).
type Product struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	SKU           string         `json:"sku" gorm:"uniqueIndex;not null"`
	Name          string         `json:"name" gorm:"not null"`
	Description   string         `json:"description"`
	Category      string         `json:"category" gorm:"index"`
	Price         float64        `json:"price" gorm:"type:decimal(18,2);not null"`
	StockQuantity int            `json:"stock_quantity" gorm:"not null;default:0"`
	ReorderLevel  int            `json:"reorder_level" gorm:"not null;default:0"`
	MinimumStock  int            `json:"minimum_stock"`
	MaximumStock  int            `json:"maximum_stock"`
	UnitOfMeasure string         `json:"unit_of_measure"`
	WarehouseID   *uuid.UUID     `json:"warehouse_id,omitempty" gorm:"type:uuid"`
	IsActive      bool           `json:"is_active" gorm:"default:true"`
	Version       int64          `json:"-" gorm:"not null;default:0"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	CreatedBy     string         `json:"created_by"`
	UpdatedBy     string         `json:"updated_by"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// BeforeCreate assigns the product ID
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsLowStock reports whether stock has fallen to the reorder level
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.ReorderLevel
}

// HasStock reports whether the product can satisfy a requested quantity
func (p *Product) HasStock(quantity int) bool {
	return p.IsActive && p.StockQuantity >= quantity
}

// ProductFilter describes the search parameters for product listings
type ProductFilter struct {
	Search       string
	Category     string
	IsActive     *bool
	LowStockOnly bool
	SortBy       string
	SortDesc     bool
	Page         int
	PageSize     int
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uuid.UUID) (*Product, error)
	FindBySKU(sku string) (*Product, error)
	Search(filter ProductFilter) ([]Product, int64, error)
	Update(product *Product) error
	// UpdateStockCAS persists a new stock quantity if and only if the row
	// still carries the expected version. Returns ErrVersionConflict when
	// a concurrent writer got there first.
	UpdateStockCAS(id uuid.UUID, expectedVersion int64, newStock int) error
	Delete(id uuid.UUID) error
	Count() (int64, error)
}
