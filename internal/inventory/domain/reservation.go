package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reservation states
const (
	ReservationPending  = "PENDING"
	ReservationHeld     = "HELD"
	ReservationReleased = "RELEASED"
	ReservationFailed   = "FAILED"
)

// Reservation tracks a tentative stock decrement held against a pending
// order. It is the idempotency anchor for the reserve/release flow: the
// row is inserted as PENDING before any stock moves, so the unique
// (order, product) index rejects a duplicate delivery, and every later
// status change is a conditional write that exactly one writer can win.
// A HELD reservation is never decremented twice, and a release against
// anything other than a HELD reservation is a no-op.
type Reservation struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID      `json:"order_id" gorm:"type:uuid;not null;uniqueIndex:idx_order_product"`
	ProductID     uuid.UUID      `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_order_product"`
	Quantity      int            `json:"quantity" gorm:"not null"`
	Status        string         `json:"status" gorm:"not null"`
	FailureReason string         `json:"failure_reason,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Reservation) TableName() string {
	return "reservations"
}

// BeforeCreate assigns the reservation ID
func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IsHeld reports whether the reservation still holds stock
func (r *Reservation) IsHeld() bool {
	return r.Status == ReservationHeld
}

// ReservationRepository defines the contract for reservation data access
type ReservationRepository interface {
	// Create inserts the reservation, returning ErrReservationExists
	// when the (order, product) pair already has one.
	Create(reservation *Reservation) error
	// FindByOrderAndProduct returns the reservation for the pair, or
	// (nil, nil) when none exists.
	FindByOrderAndProduct(orderID, productID uuid.UUID) (*Reservation, error)
	FindByOrder(orderID uuid.UUID) ([]Reservation, error)
	// Transition writes the reservation's status, quantity and failure
	// reason only while the stored status still equals from, and reports
	// whether the row was written. Concurrent writers race on the same
	// predicate, so exactly one of them observes true.
	Transition(reservation *Reservation, from string) (bool, error)
}
