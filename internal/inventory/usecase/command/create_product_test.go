package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
)

func TestCreateProductSeedsInitialMovement(t *testing.T) {
	products := newFakeProductRepo()
	movements := &fakeMovementRepo{}
	publisher := &fakePublisher{}
	handler := NewCreateProductHandler(products, movements, publisher)

	product, err := handler.Handle(context.Background(), CreateProductCommand{
		Name:         "Widget",
		SKU:          "WIDGET-1",
		Price:        9.99,
		InitialStock: 25,
		ReorderLevel: 5,
		CreatedBy:    "alice",
	})

	require.NoError(t, err)
	assert.True(t, product.IsActive)
	assert.Equal(t, 25, product.StockQuantity)

	recorded := movements.byProduct(product.ID)
	require.Len(t, recorded, 1)
	assert.Equal(t, domain.MovementInitial, recorded[0].MovementType)
	assert.Equal(t, 0, recorded[0].PreviousStock)
	assert.Equal(t, 25, recorded[0].NewStock)
	assert.NoError(t, recorded[0].Validate())

	require.Len(t, publisher.created, 1)
	assert.Equal(t, "WIDGET-1", publisher.created[0].SKU)
	assert.Equal(t, 25, publisher.created[0].InitialStock)
}

func TestCreateProductZeroStockSkipsMovement(t *testing.T) {
	products := newFakeProductRepo()
	movements := &fakeMovementRepo{}
	handler := NewCreateProductHandler(products, movements, &fakePublisher{})

	product, err := handler.Handle(context.Background(), CreateProductCommand{
		Name:  "Widget",
		SKU:   "WIDGET-1",
		Price: 9.99,
	})

	require.NoError(t, err)
	assert.Empty(t, movements.byProduct(product.ID))
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	products := newFakeProductRepo(&domain.Product{SKU: "WIDGET-1", Name: "Existing", IsActive: true})
	handler := NewCreateProductHandler(products, &fakeMovementRepo{}, &fakePublisher{})

	_, err := handler.Handle(context.Background(), CreateProductCommand{
		Name:  "Widget",
		SKU:   "WIDGET-1",
		Price: 1,
	})

	assert.ErrorIs(t, err, domain.ErrSKUAlreadyExists)
}

func TestCreateProductValidation(t *testing.T) {
	handler := NewCreateProductHandler(newFakeProductRepo(), &fakeMovementRepo{}, &fakePublisher{})

	cases := []struct {
		name string
		cmd  CreateProductCommand
	}{
		{"missing name", CreateProductCommand{SKU: "S", Price: 1}},
		{"missing sku", CreateProductCommand{Name: "N", Price: 1}},
		{"negative price", CreateProductCommand{Name: "N", SKU: "S", Price: -1}},
		{"negative initial stock", CreateProductCommand{Name: "N", SKU: "S", Price: 1, InitialStock: -5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), tc.cmd)
			assert.Error(t, err)
		})
	}
}
