package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
)

// StockHistoryQuery represents the query for a product's movement history
type StockHistoryQuery struct {
	ProductID uuid.UUID
	Limit     int
	Offset    int
}

// StockHistoryResult is a page of movements, newest first
type StockHistoryResult struct {
	Movements  []domain.StockMovement `json:"movements"`
	TotalCount int64                  `json:"total_count"`
}

// StockHistoryHandler handles stock history queries
type StockHistoryHandler struct {
	products  domain.ProductRepository
	movements domain.MovementRepository
}

// NewStockHistoryHandler creates a new stock history handler
func NewStockHistoryHandler(products domain.ProductRepository, movements domain.MovementRepository) *StockHistoryHandler {
	return &StockHistoryHandler{products: products, movements: movements}
}

// Handle executes the stock history query
func (h *StockHistoryHandler) Handle(ctx context.Context, q StockHistoryQuery) (*StockHistoryResult, error) {
	// Surface NotFound for unknown products instead of an empty page.
	if _, err := h.products.FindByID(q.ProductID); err != nil {
		return nil, err
	}

	movements, err := h.movements.FindByProductID(q.ProductID, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}

	total, err := h.movements.CountByProductID(q.ProductID)
	if err != nil {
		return nil, err
	}

	return &StockHistoryResult{
		Movements:  movements,
		TotalCount: total,
	}, nil
}
