package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nexus-scm/scm-platform/internal/inventory/alerting"
	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
	"github.com/nexus-scm/scm-platform/kafka"
	"github.com/nexus-scm/scm-platform/pkg/logger"
)

// ReserveStockHandler holds stock against a pending order. Items are
// processed independently: one item's failure never blocks the others.
// Redelivery of the same command is idempotent; the PENDING reservation row
// is inserted before any stock moves, so the unique (order, product) index
// is the lock that keeps two deliveries from both decrementing. A
// StockReservedEvent is always published, whatever the outcome, so the
// order workflow is never left waiting.
type ReserveStockHandler struct {
	products     domain.ProductRepository
	movements    domain.MovementRepository
	reservations domain.ReservationRepository
	evaluator    *alerting.Evaluator
	publisher    EventPublisher
}

// NewReserveStockHandler creates a new reserve stock handler
func NewReserveStockHandler(
	products domain.ProductRepository,
	movements domain.MovementRepository,
	reservations domain.ReservationRepository,
	evaluator *alerting.Evaluator,
	publisher EventPublisher,
) *ReserveStockHandler {
	return &ReserveStockHandler{
		products:     products,
		movements:    movements,
		reservations: reservations,
		evaluator:    evaluator,
		publisher:    publisher,
	}
}

// Handle processes a ReserveStockCommand and publishes the outcome
func (h *ReserveStockHandler) Handle(ctx context.Context, cmd kafka.ReserveStockCommand) error {
	logger.Info(ctx).
		Str("order_id", cmd.OrderID.String()).
		Int("items", len(cmd.Items)).
		Msg("Processing reserve stock command")

	var reserved []kafka.ReservedItem
	var failures []string

	for _, item := range cmd.Items {
		res, err := h.reserveItem(ctx, cmd.OrderID, item)
		if err != nil {
			failures = append(failures, fmt.Sprintf("product %s: %v", item.ProductID, err))
			logger.Warn(ctx).
				Err(err).
				Str("order_id", cmd.OrderID.String()).
				Str("product_id", item.ProductID.String()).
				Int("quantity", item.Quantity).
				Msg("Stock reservation failed for item")
			continue
		}
		reserved = append(reserved, res)
		logger.Info(ctx).
			Str("order_id", cmd.OrderID.String()).
			Str("product_id", item.ProductID.String()).
			Int("quantity", res.ReservedQuantity).
			Msg("Stock reserved for item")
	}

	event := kafka.StockReservedEvent{
		OrderID:       cmd.OrderID,
		ReservedItems: reserved,
	}
	switch {
	case len(reserved) == 0 && len(failures) > 0:
		event.Success = false
		event.Reason = "Failed to reserve stock: " + strings.Join(failures, "; ")
	case len(failures) > 0:
		event.Success = true
		event.Reason = "Partial reservation: " + strings.Join(failures, "; ")
	default:
		event.Success = true
		event.Reason = "All stock reserved successfully"
	}
	if event.ReservedItems == nil {
		event.ReservedItems = []kafka.ReservedItem{}
	}

	if err := h.publisher.PublishStockReserved(ctx, event); err != nil {
		return fmt.Errorf("failed to publish stock reserved event: %w", err)
	}

	logger.Info(ctx).
		Str("order_id", cmd.OrderID.String()).
		Bool("success", event.Success).
		Int("reserved", len(reserved)).
		Int("failed", len(failures)).
		Msg("Reserve stock command processed")

	return nil
}

// reserveItem holds stock for a single order line. It first acquires the
// PENDING claim row, then decrements stock, then confirms the claim with a
// conditional PENDING to HELD flip.
func (h *ReserveStockHandler) reserveItem(ctx context.Context, orderID uuid.UUID, item kafka.OrderItem) (kafka.ReservedItem, error) {
	if item.Quantity <= 0 {
		return kafka.ReservedItem{}, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, item.Quantity)
	}

	claim, held, err := h.claimReservation(orderID, item)
	if err != nil {
		return kafka.ReservedItem{}, err
	}
	if held != nil {
		// Redelivered command: the stock is already held.
		return kafka.ReservedItem{
			ProductID:        item.ProductID,
			ReservedQuantity: held.Quantity,
			UnitPrice:        item.UnitPrice,
		}, nil
	}

	return h.fillClaim(ctx, orderID, claim, item)
}

// claimReservation acquires the PENDING row that guards the stock
// decrement. A fresh insert or a won FAILED to PENDING flip hands the
// claim to this delivery; an existing HELD reservation comes back as held.
// A PENDING row found on lookup was left by a crashed delivery and is
// taken over; the conditional confirmation in fillClaim still keeps a
// single winner if that delivery turns out to be alive.
func (h *ReserveStockHandler) claimReservation(orderID uuid.UUID, item kafka.OrderItem) (claim, held *domain.Reservation, err error) {
	claim = &domain.Reservation{
		OrderID:   orderID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Status:    domain.ReservationPending,
	}
	err = h.reservations.Create(claim)
	if err == nil {
		return claim, nil, nil
	}
	if !errors.Is(err, domain.ErrReservationExists) {
		return nil, nil, fmt.Errorf("failed to persist reservation: %w", err)
	}

	existing, err := h.reservations.FindByOrderAndProduct(orderID, item.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if existing == nil {
		return nil, nil, fmt.Errorf("%w for order %s", domain.ErrReservationNotFound, orderID)
	}

	switch existing.Status {
	case domain.ReservationHeld:
		return nil, existing, nil
	case domain.ReservationReleased:
		return nil, nil, fmt.Errorf("reservation already released for order %s", orderID)
	case domain.ReservationFailed:
		// Retry a failed reservation, but only if no other delivery
		// beats us to it.
		existing.Status = domain.ReservationPending
		existing.Quantity = item.Quantity
		existing.FailureReason = ""
		ok, err := h.reservations.Transition(existing, domain.ReservationFailed)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, fmt.Errorf("reservation for order %s changed concurrently", orderID)
		}
		return existing, nil, nil
	default:
		return existing, nil, nil
	}
}

// fillClaim decrements stock for a claimed reservation and confirms the
// claim. When the confirmation loses the race the decrement is handed back
// before reporting, so a duplicate delivery never leaks units.
func (h *ReserveStockHandler) fillClaim(ctx context.Context, orderID uuid.UUID, claim *domain.Reservation, item kafka.OrderItem) (kafka.ReservedItem, error) {
	for attempt := 0; attempt < maxStockRetries; attempt++ {
		product, err := h.products.FindByID(item.ProductID)
		if err != nil {
			return kafka.ReservedItem{}, err
		}

		if !product.HasStock(item.Quantity) {
			reason := fmt.Sprintf("available %d, requested %d", product.StockQuantity, item.Quantity)
			h.failClaim(ctx, claim, reason)
			return kafka.ReservedItem{}, fmt.Errorf("%w: %s", domain.ErrInsufficientStock, reason)
		}

		previous := product.StockQuantity
		newStock := previous - item.Quantity

		if err := h.products.UpdateStockCAS(product.ID, product.Version, newStock); err != nil {
			if err == domain.ErrVersionConflict {
				continue
			}
			return kafka.ReservedItem{}, err
		}

		claim.Status = domain.ReservationHeld
		claim.Quantity = item.Quantity
		claim.FailureReason = ""
		confirmed, err := h.reservations.Transition(claim, domain.ReservationPending)
		if err != nil || !confirmed {
			h.creditStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return kafka.ReservedItem{}, fmt.Errorf("failed to confirm reservation: %w", err)
			}
			return h.settledElsewhere(orderID, item)
		}

		reference := "Order-" + orderID.String()
		movement := &domain.StockMovement{
			ProductID:       product.ID,
			WarehouseID:     product.WarehouseID,
			MovementType:    domain.MovementReserved,
			Quantity:        item.Quantity,
			PreviousStock:   previous,
			NewStock:        newStock,
			Reason:          "Reserved for " + reference,
			ReferenceNumber: reference,
			ReferenceID:     &orderID,
			CreatedBy:       "system",
		}
		if err := h.movements.Create(movement); err != nil {
			logger.Error(ctx).
				Err(err).
				Str("product_id", product.ID.String()).
				Msg("Stock reserved but movement record failed")
		}

		product.StockQuantity = newStock
		product.Version++
		h.evaluator.Evaluate(ctx, product)

		return kafka.ReservedItem{
			ProductID:        item.ProductID,
			ReservedQuantity: item.Quantity,
			UnitPrice:        item.UnitPrice,
		}, nil
	}

	return kafka.ReservedItem{}, fmt.Errorf("reserve stock for product %s: %w after %d attempts",
		item.ProductID, domain.ErrVersionConflict, maxStockRetries)
}

// failClaim settles the claim as FAILED so a later delivery may retry it.
func (h *ReserveStockHandler) failClaim(ctx context.Context, claim *domain.Reservation, reason string) {
	claim.Status = domain.ReservationFailed
	claim.FailureReason = reason
	ok, err := h.reservations.Transition(claim, domain.ReservationPending)
	if err != nil || !ok {
		logger.Warn(ctx).
			Err(err).
			Str("order_id", claim.OrderID.String()).
			Str("product_id", claim.ProductID.String()).
			Msg("Failed to record failed reservation")
	}
}

// creditStock hands back a decrement whose claim confirmation lost the
// race. The competing delivery owns the reservation and the ledger entry,
// so only the stock itself is restored here.
func (h *ReserveStockHandler) creditStock(ctx context.Context, productID uuid.UUID, quantity int) {
	for attempt := 0; attempt < maxStockRetries; attempt++ {
		product, err := h.products.FindByID(productID)
		if err != nil {
			break
		}
		err = h.products.UpdateStockCAS(product.ID, product.Version, product.StockQuantity+quantity)
		if err == nil {
			return
		}
		if err != domain.ErrVersionConflict {
			break
		}
	}
	logger.Error(ctx).
		Str("product_id", productID.String()).
		Int("quantity", quantity).
		Msg("Failed to hand back stock after losing reservation claim")
}

// settledElsewhere reports the outcome a competing delivery produced for
// the same (order, product) pair.
func (h *ReserveStockHandler) settledElsewhere(orderID uuid.UUID, item kafka.OrderItem) (kafka.ReservedItem, error) {
	existing, err := h.reservations.FindByOrderAndProduct(orderID, item.ProductID)
	if err != nil {
		return kafka.ReservedItem{}, err
	}
	if existing != nil && existing.IsHeld() {
		return kafka.ReservedItem{
			ProductID:        item.ProductID,
			ReservedQuantity: existing.Quantity,
			UnitPrice:        item.UnitPrice,
		}, nil
	}
	return kafka.ReservedItem{}, fmt.Errorf("reservation for order %s settled concurrently", orderID)
}
