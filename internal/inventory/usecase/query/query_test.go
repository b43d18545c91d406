package query

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
)

type stubProductRepo struct {
	product *domain.Product
}

func (r *stubProductRepo) Create(*domain.Product) error { return nil }

func (r *stubProductRepo) FindByID(id uuid.UUID) (*domain.Product, error) {
	if r.product == nil || r.product.ID != id {
		return nil, domain.ErrProductNotFound
	}
	copied := *r.product
	return &copied, nil
}

func (r *stubProductRepo) FindBySKU(string) (*domain.Product, error) {
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) Search(domain.ProductFilter) ([]domain.Product, int64, error) {
	if r.product == nil {
		return nil, 0, nil
	}
	return []domain.Product{*r.product}, 1, nil
}

func (r *stubProductRepo) Update(*domain.Product) error               { return nil }
func (r *stubProductRepo) UpdateStockCAS(uuid.UUID, int64, int) error { return nil }
func (r *stubProductRepo) Delete(uuid.UUID) error                     { return nil }
func (r *stubProductRepo) Count() (int64, error)                      { return 1, nil }

type stubMovementRepo struct {
	movements []domain.StockMovement
}

func (r *stubMovementRepo) Create(*domain.StockMovement) error { return nil }

func (r *stubMovementRepo) FindByProductID(productID uuid.UUID, limit, offset int) ([]domain.StockMovement, error) {
	var out []domain.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMovementRepo) CountByProductID(productID uuid.UUID) (int64, error) {
	movements, _ := r.FindByProductID(productID, 0, 0)
	return int64(len(movements)), nil
}

func TestCheckStockAvailability(t *testing.T) {
	product := &domain.Product{ID: uuid.New(), SKU: "A-1", StockQuantity: 5, IsActive: true}
	handler := NewCheckStockHandler(&stubProductRepo{product: product})

	result, err := handler.Handle(context.Background(), CheckStockQuery{ProductID: product.ID, Quantity: 5})
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Equal(t, 5, result.CurrentStock)

	result, err = handler.Handle(context.Background(), CheckStockQuery{ProductID: product.ID, Quantity: 6})
	require.NoError(t, err)
	assert.False(t, result.Available)
}

func TestCheckStockInactiveProductIsUnavailable(t *testing.T) {
	product := &domain.Product{ID: uuid.New(), SKU: "A-1", StockQuantity: 5, IsActive: false}
	handler := NewCheckStockHandler(&stubProductRepo{product: product})

	result, err := handler.Handle(context.Background(), CheckStockQuery{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	assert.False(t, result.Available)
}

func TestCheckStockRejectsNegativeQuantity(t *testing.T) {
	handler := NewCheckStockHandler(&stubProductRepo{})

	_, err := handler.Handle(context.Background(), CheckStockQuery{ProductID: uuid.New(), Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestStockHistoryUnknownProduct(t *testing.T) {
	handler := NewStockHistoryHandler(&stubProductRepo{}, &stubMovementRepo{})

	_, err := handler.Handle(context.Background(), StockHistoryQuery{ProductID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestStockHistoryReturnsMovementsWithTotal(t *testing.T) {
	product := &domain.Product{ID: uuid.New(), SKU: "A-1", StockQuantity: 5, IsActive: true}
	movements := &stubMovementRepo{movements: []domain.StockMovement{
		{ProductID: product.ID, MovementType: domain.MovementInitial, Quantity: 10, NewStock: 10},
		{ProductID: product.ID, MovementType: domain.MovementDecrement, Quantity: 5, PreviousStock: 10, NewStock: 5},
		{ProductID: uuid.New(), MovementType: domain.MovementInitial, Quantity: 1, NewStock: 1},
	}}
	handler := NewStockHistoryHandler(&stubProductRepo{product: product}, movements)

	result, err := handler.Handle(context.Background(), StockHistoryQuery{ProductID: product.ID, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, result.Movements, 2)
	assert.Equal(t, int64(2), result.TotalCount)
}
