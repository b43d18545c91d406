package query

import (
	"context"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
)

// ListWarehousesQuery represents the query for warehouses
type ListWarehousesQuery struct {
	Limit  int
	Offset int
}

// ListWarehousesHandler handles warehouse listings
type ListWarehousesHandler struct {
	warehouses domain.WarehouseRepository
}

// NewListWarehousesHandler creates a new list warehouses handler
func NewListWarehousesHandler(warehouses domain.WarehouseRepository) *ListWarehousesHandler {
	return &ListWarehousesHandler{warehouses: warehouses}
}

// Handle executes the list warehouses query
func (h *ListWarehousesHandler) Handle(ctx context.Context, q ListWarehousesQuery) ([]domain.Warehouse, error) {
	return h.warehouses.FindAll(q.Limit, q.Offset)
}
