package command

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-scm/scm-platform/internal/inventory/alerting"
	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
	"github.com/nexus-scm/scm-platform/kafka"
)

type reserveFixture struct {
	products     *fakeProductRepo
	movements    *fakeMovementRepo
	alerts       *fakeAlertRepo
	reservations *fakeReservationRepo
	publisher    *fakePublisher
	handler      *ReserveStockHandler
	release      *ReleaseStockHandler
}

func newReserveFixture(products ...*domain.Product) *reserveFixture {
	f := &reserveFixture{
		products:     newFakeProductRepo(products...),
		movements:    &fakeMovementRepo{},
		alerts:       &fakeAlertRepo{},
		reservations: &fakeReservationRepo{},
		publisher:    &fakePublisher{},
	}
	evaluator := alerting.NewEvaluator(f.alerts)
	f.handler = NewReserveStockHandler(f.products, f.movements, f.reservations, evaluator, f.publisher)
	f.release = NewReleaseStockHandler(f.products, f.movements, f.reservations, evaluator, f.publisher)
	return f
}

func TestReserveStockHoldsAllItems(t *testing.T) {
	p1 := &domain.Product{SKU: "A-1", Name: "Alpha", StockQuantity: 10, IsActive: true}
	p2 := &domain.Product{SKU: "B-1", Name: "Beta", StockQuantity: 4, IsActive: true}
	f := newReserveFixture(p1, p2)

	orderID := uuid.New()
	err := f.handler.Handle(context.Background(), kafka.ReserveStockCommand{
		OrderID: orderID,
		Items: []kafka.OrderItem{
			{ProductID: p1.ID, Quantity: 3, UnitPrice: 9.99},
			{ProductID: p2.ID, Quantity: 4, UnitPrice: 1.50},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 7, f.products.stock(p1.ID))
	assert.Equal(t, 0, f.products.stock(p2.ID))

	require.Len(t, f.publisher.reserved, 1)
	event := f.publisher.reserved[0]
	assert.True(t, event.Success)
	assert.Equal(t, orderID, event.OrderID)
	require.Len(t, event.ReservedItems, 2)
	assert.Equal(t, 3, event.ReservedItems[0].ReservedQuantity)
	assert.Equal(t, 9.99, event.ReservedItems[0].UnitPrice)

	res := f.reservations.get(orderID, p1.ID)
	require.NotNil(t, res)
	assert.Equal(t, domain.ReservationHeld, res.Status)
	assert.Equal(t, 3, res.Quantity)

	movements := f.movements.byProduct(p1.ID)
	require.Len(t, movements, 1)
	assert.Equal(t, domain.MovementReserved, movements[0].MovementType)
	assert.NoError(t, movements[0].Validate())

	// Beta is exhausted, so the evaluator opens an out-of-stock alert.
	assert.Len(t, f.alerts.open(p2.ID, domain.AlertOutOfStock), 1)
}

func TestReserveStockRedeliveryIsIdempotent(t *testing.T) {
	product := &domain.Product{SKU: "A-1", Name: "Alpha", StockQuantity: 10, IsActive: true}
	f := newReserveFixture(product)

	cmd := kafka.ReserveStockCommand{
		OrderID: uuid.New(),
		Items:   []kafka.OrderItem{{ProductID: product.ID, Quantity: 3}},
	}

	require.NoError(t, f.handler.Handle(context.Background(), cmd))
	require.NoError(t, f.handler.Handle(context.Background(), cmd))

	// The redelivered command must not decrement a held reservation twice.
	assert.Equal(t, 7, f.products.stock(product.ID))
	assert.Len(t, f.movements.byProduct(product.ID), 1)

	require.Len(t, f.publisher.reserved, 2)
	assert.True(t, f.publisher.reserved[1].Success)
	require.Len(t, f.publisher.reserved[1].ReservedItems, 1)
	assert.Equal(t, 3, f.publisher.reserved[1].ReservedItems[0].ReservedQuantity)
}

func TestReserveStockInsufficientPublishesFailure(t *testing.T) {
	product := &domain.Product{SKU: "A-1", Name: "Alpha", StockQuantity: 2, IsActive: true}
	f := newReserveFixture(product)

	orderID := uuid.New()
	err := f.handler.Handle(context.Background(), kafka.ReserveStockCommand{
		OrderID: orderID,
		Items:   []kafka.OrderItem{{ProductID: product.ID, Quantity: 5}},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, f.products.stock(product.ID))
	assert.Empty(t, f.movements.movements)

	require.Len(t, f.publisher.reserved, 1)
	event := f.publisher.reserved[0]
	assert.False(t, event.Success)
	assert.Contains(t, event.Reason, "Failed to reserve stock")
	assert.NotNil(t, event.ReservedItems)
	assert.Empty(t, event.ReservedItems)

	res := f.reservations.get(orderID, product.ID)
	require.NotNil(t, res)
	assert.Equal(t, domain.ReservationFailed, res.Status)
	assert.Contains(t, res.FailureReason, "available 2")
}

func TestReserveStockPartialSuccess(t *testing.T) {
	p1 := &domain.Product{SKU: "A-1", Name: "Alpha", StockQuantity: 10, IsActive: true}
	p2 := &domain.Product{SKU: "B-1", Name: "Beta", StockQuantity: 1, IsActive: true}
	f := newReserveFixture(p1, p2)

	err := f.handler.Handle(context.Background(), kafka.ReserveStockCommand{
		OrderID: uuid.New(),
		Items: []kafka.OrderItem{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 5},
		},
	})

	require.NoError(t, err)
	require.Len(t, f.publisher.reserved, 1)
	event := f.publisher.reserved[0]
	assert.True(t, event.Success)
	assert.Contains(t, event.Reason, "Partial reservation")
	assert.Len(t, event.ReservedItems, 1)
	assert.Equal(t, 8, f.products.stock(p1.ID))
	assert.Equal(t, 1, f.products.stock(p2.ID))
}

func TestReserveStockRejectsNonPositiveQuantity(t *testing.T) {
	product := &domain.Product{SKU: "A-1", StockQuantity: 10, IsActive: true}
	f := newReserveFixture(product)

	err := f.handler.Handle(context.Background(), kafka.ReserveStockCommand{
		OrderID: uuid.New(),
		Items:   []kafka.OrderItem{{ProductID: product.ID, Quantity: 0}},
	})

	require.NoError(t, err)
	require.Len(t, f.publisher.reserved, 1)
	assert.False(t, f.publisher.reserved[0].Success)
	assert.Equal(t, 10, f.products.stock(product.ID))
}

func TestReserveStockRetriesFailedReservation(t *testing.T) {
	product := &domain.Product{SKU: "A-1", Name: "Alpha", StockQuantity: 1, IsActive: true}
	f := newReserveFixture(product)

	orderID := uuid.New()
	cmd := kafka.ReserveStockCommand{
		OrderID: orderID,
		Items:   []kafka.OrderItem{{ProductID: product.ID, Quantity: 3}},
	}

	// First delivery fails on stock. After a restock the retried command
	// must succeed and flip the FAILED reservation to HELD.
	require.NoError(t, f.handler.Handle(context.Background(), cmd))
	require.Equal(t, domain.ReservationFailed, f.reservations.get(orderID, product.ID).Status)

	f.products.products[product.ID].StockQuantity = 5
	require.NoError(t, f.handler.Handle(context.Background(), cmd))

	res := f.reservations.get(orderID, product.ID)
	assert.Equal(t, domain.ReservationHeld, res.Status)
	assert.Empty(t, res.FailureReason)
	assert.Equal(t, 2, f.products.stock(product.ID))
}

func TestReserveStockCompetingOrdersOnlyOneWins(t *testing.T) {
	product := &domain.Product{SKU: "A-1", Name: "Alpha", StockQuantity: 10, IsActive: true}
	f := newReserveFixture(product)

	first := kafka.ReserveStockCommand{
		OrderID: uuid.New(),
		Items:   []kafka.OrderItem{{ProductID: product.ID, Quantity: 7}},
	}
	second := kafka.ReserveStockCommand{
		OrderID: uuid.New(),
		Items:   []kafka.OrderItem{{ProductID: product.ID, Quantity: 7}},
	}

	require.NoError(t, f.handler.Handle(context.Background(), first))
	require.NoError(t, f.handler.Handle(context.Background(), second))

	require.Len(t, f.publisher.reserved, 2)
	assert.True(t, f.publisher.reserved[0].Success)
	assert.False(t, f.publisher.reserved[1].Success)
	assert.Equal(t, 3, f.products.stock(product.ID))
}

func TestReserveStockResumesAbandonedClaim(t *testing.T) {
	product := &domain.Product{SKU: "A-1", Name: "Alpha", StockQuantity: 10, IsActive: true}
	f := newReserveFixture(product)

	// A delivery that crashed after inserting its claim leaves a PENDING
	// row with no stock held against it.
	orderID := uuid.New()
	require.NoError(t, f.reservations.Create(&domain.Reservation{
		OrderID:   orderID,
		ProductID: product.ID,
		Quantity:  3,
		Status:    domain.ReservationPending,
	}))

	require.NoError(t, f.handler.Handle(context.Background(), kafka.ReserveStockCommand{
		OrderID: orderID,
		Items:   []kafka.OrderItem{{ProductID: product.ID, Quantity: 3}},
	}))

	assert.Equal(t, 7, f.products.stock(product.ID))
	res := f.reservations.get(orderID, product.ID)
	assert.Equal(t, domain.ReservationHeld, res.Status)
	assert.Len(t, f.movements.byProduct(product.ID), 1)
}

func TestReserveStockLostConfirmationHandsStockBack(t *testing.T) {
	// A competing delivery of the same command already decremented 10 to 5
	// and is about to confirm its PENDING claim.
	product := &domain.Product{SKU: "A-1", Name: "Alpha", StockQuantity: 5, IsActive: true}
	f := newReserveFixture(product)

	orderID := uuid.New()
	require.NoError(t, f.reservations.Create(&domain.Reservation{
		OrderID:   orderID,
		ProductID: product.ID,
		Quantity:  5,
		Status:    domain.ReservationPending,
	}))
	claim := f.reservations.get(orderID, product.ID)

	// The competing delivery wins the PENDING to HELD flip between this
	// delivery's decrement and its own confirmation attempt.
	f.reservations.beforeTransition = func() {
		claim.Status = domain.ReservationHeld
	}

	require.NoError(t, f.handler.Handle(context.Background(), kafka.ReserveStockCommand{
		OrderID: orderID,
		Items:   []kafka.OrderItem{{ProductID: product.ID, Quantity: 5}},
	}))

	// The losing decrement was handed back: no units leaked, and exactly
	// one reservation holds the stock.
	assert.Equal(t, 5, f.products.stock(product.ID))
	require.Len(t, f.reservations.reservations, 1)
	assert.Equal(t, domain.ReservationHeld, f.reservations.reservations[0].Status)

	require.Len(t, f.publisher.reserved, 1)
	event := f.publisher.reserved[0]
	assert.True(t, event.Success)
	require.Len(t, event.ReservedItems, 1)
	assert.Equal(t, 5, event.ReservedItems[0].ReservedQuantity)
}
