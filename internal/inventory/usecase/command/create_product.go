package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
	"github.com/nexus-scm/scm-platform/kafka"
	"github.com/nexus-scm/scm-platform/pkg/logger"
)

// CreateProductCommand represents the command to register a new product
type CreateProductCommand struct {
	Name          string
	SKU           string
	Description   string
	Category      string
	Price         float64
	InitialStock  int
	ReorderLevel  int
	MinimumStock  int
	MaximumStock  int
	UnitOfMeasure string
	WarehouseID   *uuid.UUID
	CreatedBy     string
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	products  domain.ProductRepository
	movements domain.MovementRepository
	publisher EventPublisher
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(
	products domain.ProductRepository,
	movements domain.MovementRepository,
	publisher EventPublisher,
) *CreateProductHandler {
	return &CreateProductHandler{
		products:  products,
		movements: movements,
		publisher: publisher,
	}
}

// Handle executes the create product command. An initial stock greater than
// zero seeds an INITIAL movement so the ledger starts consistent.
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.SKU == "" {
		return nil, fmt.Errorf("sku is required")
	}
	if cmd.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if cmd.InitialStock < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	if existing, _ := h.products.FindBySKU(cmd.SKU); existing != nil {
		return nil, domain.ErrSKUAlreadyExists
	}

	createdBy := cmd.CreatedBy
	if createdBy == "" {
		createdBy = "system"
	}

	product := &domain.Product{
		Name:          cmd.Name,
		SKU:           cmd.SKU,
		Description:   cmd.Description,
		Category:      cmd.Category,
		Price:         cmd.Price,
		StockQuantity: cmd.InitialStock,
		ReorderLevel:  cmd.ReorderLevel,
		MinimumStock:  cmd.MinimumStock,
		MaximumStock:  cmd.MaximumStock,
		UnitOfMeasure: cmd.UnitOfMeasure,
		WarehouseID:   cmd.WarehouseID,
		IsActive:      true,
		CreatedBy:     createdBy,
	}

	if err := h.products.Create(product); err != nil {
		return nil, err
	}

	if cmd.InitialStock > 0 {
		movement := &domain.StockMovement{
			ProductID:     product.ID,
			WarehouseID:   product.WarehouseID,
			MovementType:  domain.MovementInitial,
			Quantity:      cmd.InitialStock,
			PreviousStock: 0,
			NewStock:      cmd.InitialStock,
			Reason:        "Initial stock",
			CreatedBy:     createdBy,
		}
		if err := h.movements.Create(movement); err != nil {
			logger.Error(ctx).
				Err(err).
				Str("product_id", product.ID.String()).
				Msg("Product created but initial movement failed")
			return nil, fmt.Errorf("failed to record initial movement: %w", err)
		}
	}

	event := kafka.ProductCreatedEvent{
		ProductID:    product.ID,
		Name:         product.Name,
		SKU:          product.SKU,
		Price:        product.Price,
		InitialStock: product.StockQuantity,
		Category:     product.Category,
	}
	if err := h.publisher.PublishProductCreated(ctx, event); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("product_id", product.ID.String()).
			Msg("Failed to publish product created event")
	}

	logger.Info(ctx).
		Str("product_id", product.ID.String()).
		Str("sku", product.SKU).
		Int("initial_stock", product.StockQuantity).
		Msg("Product created")

	return product, nil
}
