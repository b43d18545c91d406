package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nexus-scm/scm-platform/internal/inventory/usecase/command"
	"github.com/nexus-scm/scm-platform/kafka"
	"github.com/nexus-scm/scm-platform/pkg/logger"
)

// StockCommandHandlers binds stock commands from the message bus to the
// reservation and release engines.
type StockCommandHandlers struct {
	reserve   *command.ReserveStockHandler
	release   *command.ReleaseStockHandler
	publisher command.EventPublisher
}

// NewStockCommandHandlers creates the consumer-side command handlers
func NewStockCommandHandlers(
	reserve *command.ReserveStockHandler,
	release *command.ReleaseStockHandler,
	publisher command.EventPublisher,
) *StockCommandHandlers {
	return &StockCommandHandlers{
		reserve:   reserve,
		release:   release,
		publisher: publisher,
	}
}

// Register attaches the handlers to the consumer by event type
func (h *StockCommandHandlers) Register(c *kafka.Consumer) {
	c.RegisterHandler(kafka.EventTypeStockReserve, h.handleReserve)
	c.RegisterHandler(kafka.EventTypeStockRelease, h.handleRelease)
}

// handleReserve decodes and executes a ReserveStockCommand. Whatever goes
// wrong, a failure event is published so the order workflow is never left
// waiting on a reply.
func (h *StockCommandHandlers) handleReserve(ctx context.Context, payload []byte) error {
	var cmd kafka.ReserveStockCommand
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return fmt.Errorf("failed to decode reserve stock command: %w", err)
	}

	if err := h.reserve.Handle(ctx, cmd); err != nil {
		// The engine publishes its own outcome; an error here means even
		// that failed. Push a last-resort failure event.
		logger.Error(ctx).
			Err(err).
			Str("order_id", cmd.OrderID.String()).
			Msg("Reserve stock command failed")

		failure := kafka.StockReservedEvent{
			OrderID:       cmd.OrderID,
			Success:       false,
			Reason:        fmt.Sprintf("Failed to process reservation: %v", err),
			ReservedItems: []kafka.ReservedItem{},
		}
		if pubErr := h.publisher.PublishStockReserved(ctx, failure); pubErr != nil {
			logger.Error(ctx).
				Err(pubErr).
				Str("order_id", cmd.OrderID.String()).
				Msg("Failed to publish reservation failure event")
		}
		return err
	}
	return nil
}

// handleRelease decodes and executes a ReleaseStockCommand
func (h *StockCommandHandlers) handleRelease(ctx context.Context, payload []byte) error {
	var cmd kafka.ReleaseStockCommand
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return fmt.Errorf("failed to decode release stock command: %w", err)
	}

	if err := h.release.Handle(ctx, cmd); err != nil {
		logger.Error(ctx).
			Err(err).
			Str("order_id", cmd.OrderID.String()).
			Msg("Release stock command failed")
		return err
	}
	return nil
}
