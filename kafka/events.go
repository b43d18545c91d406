package kafka

import (
	"time"

	"github.com/google/uuid"
)

// Event types (carried in the event_type message header)
const (
	EventTypeStockReserve   = "stock.reserve"
	EventTypeStockRelease   = "stock.release"
	EventTypeStockReserved  = "stock.reserved"
	EventTypeStockReleased  = "stock.released"
	EventTypeStockUpdated   = "stock.updated"
	EventTypeProductCreated = "product.created"
)

// Kafka topics
const (
	TopicStockCommands = "inventory-stock-commands"
	TopicStockEvents   = "inventory-stock-events"
	TopicProductEvents = "inventory-product-events"
)

// OrderItem is one line of an order as carried on the wire
type OrderItem struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	SKU         string    `json:"sku"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
}

// ReserveStockCommand asks the inventory service to hold stock for an order
type ReserveStockCommand struct {
	OrderID       uuid.UUID   `json:"order_id"`
	CorrelationID uuid.UUID   `json:"correlation_id"`
	Items         []OrderItem `json:"items"`
	RequestedAt   time.Time   `json:"requested_at"`
}

// ReleaseStockCommand asks the inventory service to return held stock
type ReleaseStockCommand struct {
	OrderID       uuid.UUID   `json:"order_id"`
	CorrelationID uuid.UUID   `json:"correlation_id"`
	Items         []OrderItem `json:"items"`
	Reason        string      `json:"reason"`
	RequestedAt   time.Time   `json:"requested_at"`
}

// ReservedItem reports one successfully held order line
type ReservedItem struct {
	ProductID        uuid.UUID `json:"product_id"`
	ReservedQuantity int       `json:"reserved_quantity"`
	UnitPrice        float64   `json:"unit_price"`
}

// StockReservedEvent is the outcome of a ReserveStockCommand. It is always
// published, even when the whole command fails, so the order workflow is
// never left waiting.
type StockReservedEvent struct {
	EventID       string         `json:"event_id"`
	EventType     string         `json:"event_type"`
	OrderID       uuid.UUID      `json:"order_id"`
	Success       bool           `json:"success"`
	Reason        string         `json:"reason,omitempty"`
	ReservedItems []ReservedItem `json:"reserved_items"`
	OccurredOn    time.Time      `json:"occurred_on"`
}

// StockReleasedEvent reports the order lines whose stock was returned
type StockReleasedEvent struct {
	EventID       string      `json:"event_id"`
	EventType     string      `json:"event_type"`
	OrderID       uuid.UUID   `json:"order_id"`
	Reason        string      `json:"reason"`
	ReleasedItems []OrderItem `json:"released_items"`
	OccurredOn    time.Time   `json:"occurred_on"`
}

// StockUpdatedEvent reports a completed stock quantity change
type StockUpdatedEvent struct {
	EventID     string     `json:"event_id"`
	EventType   string     `json:"event_type"`
	ProductID   uuid.UUID  `json:"product_id"`
	OldQuantity int        `json:"old_quantity"`
	NewQuantity int        `json:"new_quantity"`
	Reason      string     `json:"reason"`
	OrderID     *uuid.UUID `json:"order_id,omitempty"`
	ReferenceID *uuid.UUID `json:"reference_id,omitempty"`
	OccurredOn  time.Time  `json:"occurred_on"`
}

// ProductCreatedEvent announces a newly registered product
type ProductCreatedEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	ProductID    uuid.UUID `json:"product_id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	Price        float64   `json:"price"`
	InitialStock int       `json:"initial_stock"`
	Category     string    `json:"category"`
	OccurredOn   time.Time `json:"occurred_on"`
}
