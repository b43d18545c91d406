package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(product *domain.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return domain.ErrSKUAlreadyExists
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *GormProductRepository) FindByID(id uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

func (r *GormProductRepository) FindBySKU(sku string) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.Where("sku = ?", sku).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by sku: %w", err)
	}
	return &product, nil
}

func (r *GormProductRepository) Search(filter domain.ProductFilter) ([]domain.Product, int64, error) {
	query := r.db.Model(&domain.Product{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.LowStockOnly {
		query = query.Where("stock_quantity <= reorder_level")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query = query.Order(sortClause(filter.SortBy, filter.SortDesc))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	var products []domain.Product
	if err := query.
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}

	return products, total, nil
}

func sortClause(sortBy string, desc bool) string {
	column := "created_at"
	switch strings.ToLower(sortBy) {
	case "name":
		column = "name"
	case "price":
		column = "price"
	case "stock":
		column = "stock_quantity"
	}
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}

// Update persists the product's metadata columns. Stock and version are
// omitted: those only ever move through UpdateStockCAS, so a metadata edit
// cannot clobber a stock write that landed after this row was loaded.
func (r *GormProductRepository) Update(product *domain.Product) error {
	result := r.db.Model(product).
		Select("*").
		Omit("stock_quantity", "version", "created_at", "deleted_at").
		Updates(product)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// UpdateStockCAS performs the compare-and-swap stock write. The version
// predicate serializes concurrent read-modify-write sequences on the same
// product row: a stale writer affects zero rows and gets ErrVersionConflict.
func (r *GormProductRepository) UpdateStockCAS(id uuid.UUID, expectedVersion int64, newStock int) error {
	result := r.db.Model(&domain.Product{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			"stock_quantity": newStock,
			"version":        expectedVersion + 1,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrVersionConflict
	}
	return nil
}

func (r *GormProductRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&domain.Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *GormProductRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
