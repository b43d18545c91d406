package command

import (
	"context"

	"github.com/nexus-scm/scm-platform/kafka"
)

// EventPublisher publishes integration events for completed stock
// operations. Satisfied by kafka.Publisher.
type EventPublisher interface {
	PublishStockUpdated(ctx context.Context, event kafka.StockUpdatedEvent) error
	PublishStockReserved(ctx context.Context, event kafka.StockReservedEvent) error
	PublishStockReleased(ctx context.Context, event kafka.StockReleasedEvent) error
	PublishProductCreated(ctx context.Context, event kafka.ProductCreatedEvent) error
}

// maxStockRetries bounds the optimistic-concurrency retry loop around the
// load-compute-persist sequence for a single product row.
const maxStockRetries = 5
