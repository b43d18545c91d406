package command

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestUpdateProductChangesMetadataOnly(t *testing.T) {
	product := &domain.Product{SKU: "WIDGET-1", Name: "Widget", Price: 2.5, StockQuantity: 10, Version: 3, IsActive: true}
	repo := newFakeProductRepo(product)
	handler := NewUpdateProductHandler(repo)

	updated, err := handler.Handle(context.Background(), UpdateProductCommand{
		ProductID: product.ID,
		Name:      strPtr("Widget Mk2"),
		Price:     floatPtr(3.75),
		UpdatedBy: "alice",
	})

	require.NoError(t, err)
	assert.Equal(t, "Widget Mk2", updated.Name)
	assert.Equal(t, 3.75, updated.Price)
	assert.Equal(t, "WIDGET-1", updated.SKU)
	assert.Equal(t, 10, updated.StockQuantity)
	assert.Equal(t, int64(3), updated.Version)
}

func TestUpdateProductUnknownProduct(t *testing.T) {
	repo := newFakeProductRepo()

	_, err := NewUpdateProductHandler(repo).Handle(context.Background(), UpdateProductCommand{
		ProductID: uuid.New(),
		Name:      strPtr("Ghost"),
	})

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestUpdateProductPreservesConcurrentStockWrite(t *testing.T) {
	product := &domain.Product{SKU: "WIDGET-1", Name: "Widget", StockQuantity: 10, IsActive: true}
	f := newAdjustFixture(product)
	handler := NewUpdateProductHandler(f.products)

	// An adjustment commits between the update's load and its save. The
	// metadata write must not revert the committed stock or its version.
	f.products.beforeUpdate = func() {
		_, err := f.handler.Handle(context.Background(), AdjustStockCommand{
			ProductID:      product.ID,
			Quantity:       5,
			AdjustmentType: domain.MovementDecrement,
			Reason:         "order picked",
			AdjustedBy:     "system",
		})
		require.NoError(t, err)
	}

	updated, err := handler.Handle(context.Background(), UpdateProductCommand{
		ProductID: product.ID,
		Name:      strPtr("Widget Mk2"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Widget Mk2", updated.Name)
	assert.Equal(t, 5, updated.StockQuantity)
	assert.Equal(t, 5, f.products.stock(product.ID))

	// The ledger still agrees with the product row.
	movements := f.movements.byProduct(product.ID)
	require.Len(t, movements, 1)
	assert.Equal(t, f.products.stock(product.ID), movements[0].NewStock)
}

func TestUpdateProductEvaluatorUntouched(t *testing.T) {
	// Metadata edits carry no stock change, so no alert may open.
	product := &domain.Product{SKU: "WIDGET-1", Name: "Widget", StockQuantity: 10, ReorderLevel: 5, IsActive: true}
	f := newAdjustFixture(product)

	_, err := NewUpdateProductHandler(f.products).Handle(context.Background(), UpdateProductCommand{
		ProductID: product.ID,
		Name:      strPtr("Widget Mk2"),
	})

	require.NoError(t, err)
	assert.Empty(t, f.alerts.alerts)
}
