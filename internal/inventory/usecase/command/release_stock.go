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

// ReleaseStockHandler returns held stock when an order is cancelled or
// compensated. Release is best-effort by design: the order is already being
// rolled back, so per-item failures are logged and skipped, never aborting
// the remaining items. The reservation is flipped HELD to RELEASED with a
// conditional write before the stock is credited, so concurrent or
// redelivered releases credit at most once.
type ReleaseStockHandler struct {
	products     domain.ProductRepository
	movements    domain.MovementRepository
	reservations domain.ReservationRepository
	evaluator    *alerting.Evaluator
	publisher    EventPublisher
}

// NewReleaseStockHandler creates a new release stock handler
func NewReleaseStockHandler(
	products domain.ProductRepository,
	movements domain.MovementRepository,
	reservations domain.ReservationRepository,
	evaluator *alerting.Evaluator,
	publisher EventPublisher,
) *ReleaseStockHandler {
	return &ReleaseStockHandler{
		products:     products,
		movements:    movements,
		reservations: reservations,
		evaluator:    evaluator,
		publisher:    publisher,
	}
}

// Handle processes a ReleaseStockCommand and publishes the released items
func (h *ReleaseStockHandler) Handle(ctx context.Context, cmd kafka.ReleaseStockCommand) error {
	logger.Info(ctx).
		Str("order_id", cmd.OrderID.String()).
		Str("reason", cmd.Reason).
		Int("items", len(cmd.Items)).
		Msg("Processing release stock command")

	released := make([]kafka.OrderItem, 0, len(cmd.Items))

	for _, item := range cmd.Items {
		releasedItem, err := h.releaseItem(ctx, cmd.OrderID, cmd.Reason, item)
		if err != nil {
			logger.Warn(ctx).
				Err(err).
				Str("order_id", cmd.OrderID.String()).
				Str("product_id", item.ProductID.String()).
				Msg("Skipping stock release for item")
			continue
		}
		released = append(released, releasedItem)
	}

	event := kafka.StockReleasedEvent{
		OrderID:       cmd.OrderID,
		Reason:        cmd.Reason,
		ReleasedItems: released,
	}
	if err := h.publisher.PublishStockReleased(ctx, event); err != nil {
		return fmt.Errorf("failed to publish stock released event: %w", err)
	}

	logger.Info(ctx).
		Str("order_id", cmd.OrderID.String()).
		Int("released", len(released)).
		Msg("Release stock command processed")

	return nil
}

func (h *ReleaseStockHandler) releaseItem(ctx context.Context, orderID uuid.UUID, reason string, item kafka.OrderItem) (kafka.OrderItem, error) {
	reservation, err := h.reservations.FindByOrderAndProduct(orderID, item.ProductID)
	if err != nil {
		return kafka.OrderItem{}, err
	}
	if reservation == nil {
		return kafka.OrderItem{}, fmt.Errorf("%w for order %s", domain.ErrReservationNotFound, orderID)
	}
	if !reservation.IsHeld() {
		// Already released or never held; crediting again would
		// double-count the stock.
		return kafka.OrderItem{}, fmt.Errorf("reservation is %s, nothing to release", reservation.Status)
	}

	// Release the originally reserved quantity, not what the command says.
	quantity := reservation.Quantity

	// Flip the status first. The conditional write is what keeps two
	// concurrent releases of the same reservation from both crediting.
	reservation.Status = domain.ReservationReleased
	ok, err := h.reservations.Transition(reservation, domain.ReservationHeld)
	if err != nil {
		return kafka.OrderItem{}, fmt.Errorf("failed to mark reservation released: %w", err)
	}
	if !ok {
		return kafka.OrderItem{}, fmt.Errorf("reservation for order %s released concurrently", orderID)
	}

	releasedItem, err := h.creditReservation(ctx, orderID, reason, item, quantity)
	if err != nil {
		// The credit never landed. Put the hold back so a redelivered
		// release can retry.
		h.revertRelease(ctx, reservation)
		return kafka.OrderItem{}, err
	}
	return releasedItem, nil
}

// creditReservation adds the reserved quantity back to the product and
// records the RELEASED ledger entry.
func (h *ReleaseStockHandler) creditReservation(ctx context.Context, orderID uuid.UUID, reason string, item kafka.OrderItem, quantity int) (kafka.OrderItem, error) {
	for attempt := 0; attempt < maxStockRetries; attempt++ {
		product, err := h.products.FindByID(item.ProductID)
		if err != nil {
			return kafka.OrderItem{}, err
		}

		previous := product.StockQuantity
		newStock := previous + quantity

		if err := h.products.UpdateStockCAS(product.ID, product.Version, newStock); err != nil {
			if err == domain.ErrVersionConflict {
				continue
			}
			return kafka.OrderItem{}, err
		}

		reference := fmt.Sprintf("Order-%s-Release-%s", orderID, reason)
		movement := &domain.StockMovement{
			ProductID:       product.ID,
			WarehouseID:     product.WarehouseID,
			MovementType:    domain.MovementReleased,
			Quantity:        quantity,
			PreviousStock:   previous,
			NewStock:        newStock,
			Reason:          "Released from " + reference,
			ReferenceNumber: reference,
			ReferenceID:     &orderID,
			CreatedBy:       "system",
		}
		if err := h.movements.Create(movement); err != nil {
			logger.Error(ctx).
				Err(err).
				Str("product_id", product.ID.String()).
				Msg("Stock released but movement record failed")
		}

		product.StockQuantity = newStock
		product.Version++
		h.evaluator.Evaluate(ctx, product)

		return kafka.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			SKU:         product.SKU,
			Quantity:    quantity,
			UnitPrice:   item.UnitPrice,
		}, nil
	}

	return kafka.OrderItem{}, fmt.Errorf("release stock for product %s: %w after %d attempts",
		item.ProductID, domain.ErrVersionConflict, maxStockRetries)
}

// revertRelease undoes a RELEASED flip whose credit failed. Only this
// delivery set the status, so losing the conditional write here means the
// row was changed out from under us and is left alone.
func (h *ReleaseStockHandler) revertRelease(ctx context.Context, reservation *domain.Reservation) {
	reservation.Status = domain.ReservationHeld
	ok, err := h.reservations.Transition(reservation, domain.ReservationReleased)
	if err != nil || !ok {
		logger.Error(ctx).
			Err(err).
			Str("order_id", reservation.OrderID.String()).
			Str("product_id", reservation.ProductID.String()).
			Msg("Stock credit failed and reservation could not be restored to held")
	}
}
