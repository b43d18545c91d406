package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
)

// GormReservationRepository implements ReservationRepository using GORM
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GORM reservation repository
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

func (r *GormReservationRepository) Create(reservation *domain.Reservation) error {
	if err := r.db.Create(reservation).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return domain.ErrReservationExists
		}
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (r *GormReservationRepository) FindByOrderAndProduct(orderID, productID uuid.UUID) (*domain.Reservation, error) {
	var reservation domain.Reservation
	err := r.db.
		Where("order_id = ? AND product_id = ?", orderID, productID).
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}
	return &reservation, nil
}

func (r *GormReservationRepository) FindByOrder(orderID uuid.UUID) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	err := r.db.
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

// Transition performs the conditional status write. The status predicate
// serializes concurrent settlements of the same reservation: a writer that
// lost the race affects zero rows and gets false back.
func (r *GormReservationRepository) Transition(reservation *domain.Reservation, from string) (bool, error) {
	result := r.db.Model(&domain.Reservation{}).
		Where("id = ? AND status = ?", reservation.ID, from).
		Updates(map[string]interface{}{
			"status":         reservation.Status,
			"quantity":       reservation.Quantity,
			"failure_reason": reservation.FailureReason,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to transition reservation: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
