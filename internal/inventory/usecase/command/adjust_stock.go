package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nexus-scm/scm-platform/internal/inventory/alerting"
	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
	"github.com/nexus-scm/scm-platform/kafka"
	"github.com/nexus-scm/scm-platform/pkg/logger"
)

// AdjustStockCommand represents a manual stock adjustment
type AdjustStockCommand struct {
	ProductID       uuid.UUID
	Quantity        int
	AdjustmentType  string // INCREMENT, DECREMENT, SET
	Reason          string
	ReferenceNumber string
	ReferenceID     *uuid.UUID
	AdjustedBy      string
}

// AdjustStockHandler applies INCREMENT/DECREMENT/SET adjustments to a
// product's stock. The load-compute-persist sequence per product is
// serialized through a compare-and-swap on the product version, retried a
// bounded number of times on conflict.
type AdjustStockHandler struct {
	products  domain.ProductRepository
	movements domain.MovementRepository
	evaluator *alerting.Evaluator
	publisher EventPublisher
}

// NewAdjustStockHandler creates a new adjust stock handler
func NewAdjustStockHandler(
	products domain.ProductRepository,
	movements domain.MovementRepository,
	evaluator *alerting.Evaluator,
	publisher EventPublisher,
) *AdjustStockHandler {
	return &AdjustStockHandler{
		products:  products,
		movements: movements,
		evaluator: evaluator,
		publisher: publisher,
	}
}

// Handle executes the stock adjustment and returns the updated product
func (h *AdjustStockHandler) Handle(ctx context.Context, cmd AdjustStockCommand) (*domain.Product, error) {
	if cmd.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	for attempt := 0; attempt < maxStockRetries; attempt++ {
		product, err := h.products.FindByID(cmd.ProductID)
		if err != nil {
			return nil, err
		}

		previous := product.StockQuantity
		newStock, err := computeNewStock(previous, cmd.Quantity, cmd.AdjustmentType)
		if err != nil {
			return nil, err
		}

		if err := h.products.UpdateStockCAS(product.ID, product.Version, newStock); err != nil {
			if err == domain.ErrVersionConflict {
				continue
			}
			return nil, err
		}

		delta := newStock - previous
		if delta < 0 {
			delta = -delta
		}

		movement := &domain.StockMovement{
			ProductID:       product.ID,
			WarehouseID:     product.WarehouseID,
			MovementType:    cmd.AdjustmentType,
			Quantity:        delta,
			PreviousStock:   previous,
			NewStock:        newStock,
			Reason:          cmd.Reason,
			ReferenceNumber: cmd.ReferenceNumber,
			ReferenceID:     cmd.ReferenceID,
			CreatedBy:       cmd.AdjustedBy,
		}
		if err := h.movements.Create(movement); err != nil {
			// Stock write already committed; the ledger entry is the one
			// piece that must not be silently lost.
			logger.Error(ctx).
				Err(err).
				Str("product_id", product.ID.String()).
				Msg("Stock updated but movement record failed")
			return nil, fmt.Errorf("failed to record movement: %w", err)
		}

		product.StockQuantity = newStock
		product.Version++

		h.evaluator.Evaluate(ctx, product)

		event := kafka.StockUpdatedEvent{
			ProductID:   product.ID,
			OldQuantity: previous,
			NewQuantity: newStock,
			Reason:      cmd.Reason,
			ReferenceID: cmd.ReferenceID,
		}
		if err := h.publisher.PublishStockUpdated(ctx, event); err != nil {
			logger.Warn(ctx).
				Err(err).
				Str("product_id", product.ID.String()).
				Msg("Failed to publish stock updated event")
		}

		logger.Info(ctx).
			Str("product_id", product.ID.String()).
			Str("adjustment_type", cmd.AdjustmentType).
			Int("previous_stock", previous).
			Int("new_stock", newStock).
			Msg("Stock adjusted")

		return product, nil
	}

	return nil, fmt.Errorf("adjust stock for product %s: %w after %d attempts",
		cmd.ProductID, domain.ErrVersionConflict, maxStockRetries)
}

// computeNewStock derives the target quantity for an adjustment
func computeNewStock(previous, quantity int, adjustmentType string) (int, error) {
	switch adjustmentType {
	case domain.MovementIncrement:
		return previous + quantity, nil
	case domain.MovementDecrement:
		if previous < quantity {
			return 0, fmt.Errorf("%w: available %d, requested %d",
				domain.ErrInsufficientStock, previous, quantity)
		}
		return previous - quantity, nil
	case domain.MovementSet:
		if quantity < 0 {
			return 0, domain.ErrNegativeStock
		}
		return quantity, nil
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidAdjustmentType, adjustmentType)
	}
}
