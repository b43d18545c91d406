package repository

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
)

// GormMovementRepository implements MovementRepository using GORM
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GORM movement repository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Create validates and appends a movement. Movements are never updated.
func (r *GormMovementRepository) Create(movement *domain.StockMovement) error {
	if err := movement.Validate(); err != nil {
		return err
	}
	if err := r.db.Create(movement).Error; err != nil {
		return fmt.Errorf("failed to record stock movement: %w", err)
	}
	return nil
}

func (r *GormMovementRepository) FindByProductID(productID uuid.UUID, limit, offset int) ([]domain.StockMovement, error) {
	if limit < 1 {
		limit = 50
	}
	var movements []domain.StockMovement
	err := r.db.
		Where("product_id = ?", productID).
		Order("movement_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&movements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	return movements, nil
}

func (r *GormMovementRepository) CountByProductID(productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&domain.StockMovement{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count stock movements: %w", err)
	}
	return count, nil
}
