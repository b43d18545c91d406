package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
)

// UpdateProductCommand carries an optional-field product update. Nil fields
// are left untouched. Stock is deliberately absent: quantity changes go
// through AdjustStockHandler so the ledger stays complete, and the
// repository write skips the stock columns entirely.
type UpdateProductCommand struct {
	ProductID    uuid.UUID
	Name         *string
	Description  *string
	Category     *string
	Price        *float64
	ReorderLevel *int
	MinimumStock *int
	MaximumStock *int
	IsActive     *bool
	UpdatedBy    string
}

// UpdateProductHandler handles product updates
type UpdateProductHandler struct {
	products domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(products domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{products: products}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	product, err := h.products.FindByID(cmd.ProductID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		product.Name = *cmd.Name
	}
	if cmd.Description != nil {
		product.Description = *cmd.Description
	}
	if cmd.Category != nil {
		product.Category = *cmd.Category
	}
	if cmd.Price != nil {
		product.Price = *cmd.Price
	}
	if cmd.ReorderLevel != nil {
		product.ReorderLevel = *cmd.ReorderLevel
	}
	if cmd.MinimumStock != nil {
		product.MinimumStock = *cmd.MinimumStock
	}
	if cmd.MaximumStock != nil {
		product.MaximumStock = *cmd.MaximumStock
	}
	if cmd.IsActive != nil {
		product.IsActive = *cmd.IsActive
	}
	if cmd.UpdatedBy != "" {
		product.UpdatedBy = cmd.UpdatedBy
	}

	if err := h.products.Update(product); err != nil {
		return nil, err
	}

	// Re-read so the response carries whatever stock and version a
	// concurrent adjustment committed while the metadata was edited.
	return h.products.FindByID(cmd.ProductID)
}
