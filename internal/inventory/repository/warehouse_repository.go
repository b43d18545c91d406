package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
)

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GORM warehouse repository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

func (r *GormWarehouseRepository) Create(warehouse *domain.Warehouse) error {
	if err := r.db.Create(warehouse).Error; err != nil {
		return fmt.Errorf("failed to create warehouse: %w", err)
	}
	return nil
}

func (r *GormWarehouseRepository) FindByID(id uuid.UUID) (*domain.Warehouse, error) {
	var warehouse domain.Warehouse
	if err := r.db.First(&warehouse, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("warehouse not found")
		}
		return nil, fmt.Errorf("failed to find warehouse: %w", err)
	}
	return &warehouse, nil
}

func (r *GormWarehouseRepository) FindAll(limit, offset int) ([]domain.Warehouse, error) {
	if limit < 1 {
		limit = 50
	}
	var warehouses []domain.Warehouse
	err := r.db.Limit(limit).Offset(offset).Find(&warehouses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}
	return warehouses, nil
}
