package command

import (
	"context"
	"fmt"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
)

// CreateWarehouseCommand represents the command to register a warehouse
type CreateWarehouseCommand struct {
	Code    string
	Name    string
	Address string
	City    string
	Country string
}

// CreateWarehouseHandler handles warehouse creation
type CreateWarehouseHandler struct {
	warehouses domain.WarehouseRepository
}

// NewCreateWarehouseHandler creates a new create warehouse handler
func NewCreateWarehouseHandler(warehouses domain.WarehouseRepository) *CreateWarehouseHandler {
	return &CreateWarehouseHandler{warehouses: warehouses}
}

// Handle executes the create warehouse command
func (h *CreateWarehouseHandler) Handle(ctx context.Context, cmd CreateWarehouseCommand) (*domain.Warehouse, error) {
	if cmd.Code == "" {
		return nil, fmt.Errorf("code is required")
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	warehouse := &domain.Warehouse{
		Code:     cmd.Code,
		Name:     cmd.Name,
		Address:  cmd.Address,
		City:     cmd.City,
		Country:  cmd.Country,
		IsActive: true,
	}
	if err := h.warehouses.Create(warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}
