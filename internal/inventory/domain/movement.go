package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Movement types
const (
	MovementInitial   = "INITIAL"
	MovementIncrement = "INCREMENT"
	MovementDecrement = "DECREMENT"
	MovementSet       = "SET"
	MovementReserved  = "RESERVED"
	MovementReleased  = "RELEASED"
)

// StockMovement is an immutable, append-only record of a single quantity
// change to a product's stock.
type StockMovement struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID       uuid.UUID      `json:"product_id" gorm:"type:uuid;not null;index"`
	WarehouseID     *uuid.UUID     `json:"warehouse_id,omitempty" gorm:"type:uuid"`
	MovementType    string         `json:"movement_type" gorm:"not null"`
	Quantity        int            `json:"quantity" gorm:"not null"`
	PreviousStock   int            `json:"previous_stock" gorm:"not null"`
	NewStock        int            `json:"new_stock" gorm:"not null"`
	Reason          string         `json:"reason"`
	ReferenceNumber string         `json:"reference_number"`
	ReferenceID     *uuid.UUID     `json:"reference_id,omitempty" gorm:"type:uuid;index"`
	MovementDate    time.Time      `json:"movement_date" gorm:"not null"`
	CreatedAt       time.Time      `json:"created_at"`
	CreatedBy       string         `json:"created_by"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (StockMovement) TableName() string {
	return "stock_movements"
}

// BeforeCreate assigns the movement ID and date
func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.MovementDate.IsZero() {
		m.MovementDate = time.Now().UTC()
	}
	return nil
}

// Validate checks the movement arithmetic: the new stock must be consistent
// with the previous stock, the quantity and the movement type, and must
// never be negative.
func (m *StockMovement) Validate() error {
	if m.Quantity < 0 {
		return fmt.Errorf("%w: quantity %d is negative", ErrInvalidMovement, m.Quantity)
	}
	if m.NewStock < 0 {
		return fmt.Errorf("%w: new stock %d is negative", ErrInvalidMovement, m.NewStock)
	}

	switch m.MovementType {
	case MovementInitial, MovementIncrement, MovementReleased:
		if m.NewStock != m.PreviousStock+m.Quantity {
			return fmt.Errorf("%w: %s expects %d + %d = %d, got %d",
				ErrInvalidMovement, m.MovementType, m.PreviousStock, m.Quantity, m.PreviousStock+m.Quantity, m.NewStock)
		}
	case MovementDecrement, MovementReserved:
		if m.NewStock != m.PreviousStock-m.Quantity {
			return fmt.Errorf("%w: %s expects %d - %d = %d, got %d",
				ErrInvalidMovement, m.MovementType, m.PreviousStock, m.Quantity, m.PreviousStock-m.Quantity, m.NewStock)
		}
	case MovementSet:
		delta := m.NewStock - m.PreviousStock
		if delta < 0 {
			delta = -delta
		}
		if m.Quantity != delta {
			return fmt.Errorf("%w: SET expects quantity |%d - %d| = %d, got %d",
				ErrInvalidMovement, m.NewStock, m.PreviousStock, delta, m.Quantity)
		}
	default:
		return fmt.Errorf("%w: unknown movement type %q", ErrInvalidMovement, m.MovementType)
	}

	return nil
}

// MovementRepository defines the contract for stock movement data access.
// Movements are append-only; there is no update operation.
type MovementRepository interface {
	Create(movement *StockMovement) error
	// FindByProductID returns movements for a product, newest first.
	FindByProductID(productID uuid.UUID, limit, offset int) ([]StockMovement, error)
	CountByProductID(productID uuid.UUID) (int64, error)
}
