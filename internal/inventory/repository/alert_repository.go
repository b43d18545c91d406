package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
)

// GormAlertRepository implements AlertRepository using GORM
type GormAlertRepository struct {
	db *gorm.DB
}

// NewGormAlertRepository creates a new GORM alert repository
func NewGormAlertRepository(db *gorm.DB) *GormAlertRepository {
	return &GormAlertRepository{db: db}
}

// EnsureIndexes creates the partial unique index guaranteeing at most one
// open alert per (product, alert type) pair.
func (r *GormAlertRepository) EnsureIndexes() error {
	return r.db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_open_alert_per_product_type
		ON inventory_alerts (product_id, alert_type)
		WHERE is_resolved = false AND deleted_at IS NULL
	`).Error
}

func (r *GormAlertRepository) Create(alert *domain.InventoryAlert) error {
	if err := r.db.Create(alert).Error; err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (r *GormAlertRepository) FindOpenByProductAndType(productID uuid.UUID, alertType string) (*domain.InventoryAlert, error) {
	var alert domain.InventoryAlert
	err := r.db.
		Where("product_id = ? AND alert_type = ? AND is_resolved = false", productID, alertType).
		First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find open alert: %w", err)
	}
	return &alert, nil
}

func (r *GormAlertRepository) FindAll(filter domain.AlertFilter) ([]domain.InventoryAlert, error) {
	query := r.db.Model(&domain.InventoryAlert{})

	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.AlertType != "" {
		query = query.Where("alert_type = ?", filter.AlertType)
	}
	if filter.Unresolved {
		query = query.Where("is_resolved = false")
	}

	limit := filter.Limit
	if limit < 1 {
		limit = 50
	}

	var alerts []domain.InventoryAlert
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

func (r *GormAlertRepository) Resolve(id uuid.UUID, resolvedBy string) error {
	now := time.Now().UTC()
	result := r.db.Model(&domain.InventoryAlert{}).
		Where("id = ? AND is_resolved = false", id).
		Updates(map[string]interface{}{
			"is_resolved": true,
			"resolved_at": now,
			"resolved_by": resolvedBy,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to resolve alert: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAlertNotFound
	}
	return nil
}
