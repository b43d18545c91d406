package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
)

// CheckStockQuery asks whether a product can satisfy a requested quantity
type CheckStockQuery struct {
	ProductID uuid.UUID
	Quantity  int
}

// CheckStockResult reports availability for a requested quantity
type CheckStockResult struct {
	ProductID    uuid.UUID `json:"product_id"`
	Requested    int       `json:"requested"`
	CurrentStock int       `json:"current_stock"`
	Available    bool      `json:"available"`
}

// CheckStockHandler handles stock availability checks
type CheckStockHandler struct {
	products domain.ProductRepository
}

// NewCheckStockHandler creates a new check stock handler
func NewCheckStockHandler(products domain.ProductRepository) *CheckStockHandler {
	return &CheckStockHandler{products: products}
}

// Handle executes the check stock query. The answer is advisory only: a
// later reservation may still fail once concurrent writers are serialized.
func (h *CheckStockHandler) Handle(ctx context.Context, q CheckStockQuery) (*CheckStockResult, error) {
	if q.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := h.products.FindByID(q.ProductID)
	if err != nil {
		return nil, err
	}

	return &CheckStockResult{
		ProductID:    product.ID,
		Requested:    q.Quantity,
		CurrentStock: product.StockQuantity,
		Available:    product.HasStock(q.Quantity),
	}, nil
}
