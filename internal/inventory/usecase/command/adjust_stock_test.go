package command

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-scm/scm-platform/internal/inventory/alerting"
	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
)

type adjustFixture struct {
	products  *fakeProductRepo
	movements *fakeMovementRepo
	alerts    *fakeAlertRepo
	publisher *fakePublisher
	handler   *AdjustStockHandler
}

func newAdjustFixture(products ...*domain.Product) *adjustFixture {
	f := &adjustFixture{
		products:  newFakeProductRepo(products...),
		movements: &fakeMovementRepo{},
		alerts:    &fakeAlertRepo{},
		publisher: &fakePublisher{},
	}
	f.handler = NewAdjustStockHandler(f.products, f.movements, alerting.NewEvaluator(f.alerts), f.publisher)
	return f
}

func TestAdjustStockIncrement(t *testing.T) {
	product := &domain.Product{SKU: "WIDGET-1", Name: "Widget", StockQuantity: 10, IsActive: true}
	f := newAdjustFixture(product)

	updated, err := f.handler.Handle(context.Background(), AdjustStockCommand{
		ProductID:      product.ID,
		Quantity:       5,
		AdjustmentType: domain.MovementIncrement,
		Reason:         "restock",
		AdjustedBy:     "alice",
	})

	require.NoError(t, err)
	assert.Equal(t, 15, updated.StockQuantity)
	assert.Equal(t, 15, f.products.stock(product.ID))

	movements := f.movements.byProduct(product.ID)
	require.Len(t, movements, 1)
	assert.Equal(t, domain.MovementIncrement, movements[0].MovementType)
	assert.Equal(t, 5, movements[0].Quantity)
	assert.Equal(t, 10, movements[0].PreviousStock)
	assert.Equal(t, 15, movements[0].NewStock)
	assert.Equal(t, "alice", movements[0].CreatedBy)
	assert.NoError(t, movements[0].Validate())

	require.Len(t, f.publisher.updated, 1)
	assert.Equal(t, 10, f.publisher.updated[0].OldQuantity)
	assert.Equal(t, 15, f.publisher.updated[0].NewQuantity)
}

func TestAdjustStockDecrementInsufficient(t *testing.T) {
	product := &domain.Product{SKU: "WIDGET-1", Name: "Widget", StockQuantity: 3, IsActive: true}
	f := newAdjustFixture(product)

	_, err := f.handler.Handle(context.Background(), AdjustStockCommand{
		ProductID:      product.ID,
		Quantity:       5,
		AdjustmentType: domain.MovementDecrement,
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, f.products.stock(product.ID))
	assert.Empty(t, f.movements.movements)
	assert.Empty(t, f.publisher.updated)
}

func TestAdjustStockSetRecordsDelta(t *testing.T) {
	product := &domain.Product{SKU: "WIDGET-1", Name: "Widget", StockQuantity: 10, IsActive: true}
	f := newAdjustFixture(product)

	updated, err := f.handler.Handle(context.Background(), AdjustStockCommand{
		ProductID:      product.ID,
		Quantity:       4,
		AdjustmentType: domain.MovementSet,
		Reason:         "cycle count",
	})

	require.NoError(t, err)
	assert.Equal(t, 4, updated.StockQuantity)

	movements := f.movements.byProduct(product.ID)
	require.Len(t, movements, 1)
	assert.Equal(t, domain.MovementSet, movements[0].MovementType)
	assert.Equal(t, 6, movements[0].Quantity)
	assert.NoError(t, movements[0].Validate())
}

func TestAdjustStockRejectsNegativeQuantity(t *testing.T) {
	product := &domain.Product{SKU: "WIDGET-1", StockQuantity: 10, IsActive: true}
	f := newAdjustFixture(product)

	_, err := f.handler.Handle(context.Background(), AdjustStockCommand{
		ProductID:      product.ID,
		Quantity:       -1,
		AdjustmentType: domain.MovementIncrement,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, 0, f.products.casCalls)
}

func TestAdjustStockRejectsUnknownType(t *testing.T) {
	product := &domain.Product{SKU: "WIDGET-1", StockQuantity: 10, IsActive: true}
	f := newAdjustFixture(product)

	_, err := f.handler.Handle(context.Background(), AdjustStockCommand{
		ProductID:      product.ID,
		Quantity:       1,
		AdjustmentType: "TRANSFER",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidAdjustmentType)
	assert.Equal(t, 10, f.products.stock(product.ID))
}

func TestAdjustStockProductNotFound(t *testing.T) {
	f := newAdjustFixture()

	_, err := f.handler.Handle(context.Background(), AdjustStockCommand{
		ProductID:      uuid.New(),
		Quantity:       1,
		AdjustmentType: domain.MovementIncrement,
	})

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAdjustStockOpensLowStockAlert(t *testing.T) {
	product := &domain.Product{SKU: "WIDGET-1", Name: "Widget", StockQuantity: 50, ReorderLevel: 5, IsActive: true}
	f := newAdjustFixture(product)

	updated, err := f.handler.Handle(context.Background(), AdjustStockCommand{
		ProductID:      product.ID,
		Quantity:       45,
		AdjustmentType: domain.MovementDecrement,
		Reason:         "bulk order",
	})

	require.NoError(t, err)
	assert.Equal(t, 5, updated.StockQuantity)

	openAlerts := f.alerts.open(product.ID, domain.AlertLowStock)
	require.Len(t, openAlerts, 1)
	assert.Contains(t, openAlerts[0].Message, "Widget")
	assert.Empty(t, f.alerts.open(product.ID, domain.AlertOutOfStock))

	require.Len(t, f.publisher.updated, 1)
	assert.Equal(t, 50, f.publisher.updated[0].OldQuantity)
	assert.Equal(t, 5, f.publisher.updated[0].NewQuantity)
}

func TestAdjustStockRetriesOnVersionConflict(t *testing.T) {
	product := &domain.Product{SKU: "WIDGET-1", StockQuantity: 10, IsActive: true}
	f := newAdjustFixture(product)
	f.products.conflictsLeft = 2

	updated, err := f.handler.Handle(context.Background(), AdjustStockCommand{
		ProductID:      product.ID,
		Quantity:       5,
		AdjustmentType: domain.MovementIncrement,
	})

	require.NoError(t, err)
	assert.Equal(t, 15, updated.StockQuantity)
	assert.Equal(t, 3, f.products.casCalls)
	// Only the winning attempt leaves a ledger entry.
	assert.Len(t, f.movements.byProduct(product.ID), 1)
}

func TestAdjustStockGivesUpAfterMaxRetries(t *testing.T) {
	product := &domain.Product{SKU: "WIDGET-1", StockQuantity: 10, IsActive: true}
	f := newAdjustFixture(product)
	f.products.conflictsLeft = maxStockRetries

	_, err := f.handler.Handle(context.Background(), AdjustStockCommand{
		ProductID:      product.ID,
		Quantity:       5,
		AdjustmentType: domain.MovementIncrement,
	})

	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	assert.Equal(t, maxStockRetries, f.products.casCalls)
	assert.Empty(t, f.movements.movements)
	assert.Empty(t, f.publisher.updated)
}

func TestAdjustStockConcurrentDecrementsOnlyOneWins(t *testing.T) {
	// Two decrements compete for stock that can satisfy only one of them.
	product := &domain.Product{SKU: "WIDGET-1", StockQuantity: 10, IsActive: true}
	f := newAdjustFixture(product)

	cmd := AdjustStockCommand{
		ProductID:      product.ID,
		Quantity:       7,
		AdjustmentType: domain.MovementDecrement,
	}

	_, firstErr := f.handler.Handle(context.Background(), cmd)
	_, secondErr := f.handler.Handle(context.Background(), cmd)

	require.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, domain.ErrInsufficientStock)
	assert.Equal(t, 3, f.products.stock(product.ID))
	assert.Len(t, f.movements.byProduct(product.ID), 1)
}
