package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockMovementValidate(t *testing.T) {
	cases := []struct {
		name     string
		movement StockMovement
		wantErr  bool
	}{
		{
			name:     "initial",
			movement: StockMovement{MovementType: MovementInitial, Quantity: 50, PreviousStock: 0, NewStock: 50},
		},
		{
			name:     "increment",
			movement: StockMovement{MovementType: MovementIncrement, Quantity: 5, PreviousStock: 10, NewStock: 15},
		},
		{
			name:     "increment wrong arithmetic",
			movement: StockMovement{MovementType: MovementIncrement, Quantity: 5, PreviousStock: 10, NewStock: 14},
			wantErr:  true,
		},
		{
			name:     "decrement",
			movement: StockMovement{MovementType: MovementDecrement, Quantity: 45, PreviousStock: 50, NewStock: 5},
		},
		{
			name:     "decrement wrong arithmetic",
			movement: StockMovement{MovementType: MovementDecrement, Quantity: 45, PreviousStock: 50, NewStock: 6},
			wantErr:  true,
		},
		{
			name:     "reserved",
			movement: StockMovement{MovementType: MovementReserved, Quantity: 3, PreviousStock: 10, NewStock: 7},
		},
		{
			name:     "released",
			movement: StockMovement{MovementType: MovementReleased, Quantity: 3, PreviousStock: 7, NewStock: 10},
		},
		{
			name:     "set records absolute delta",
			movement: StockMovement{MovementType: MovementSet, Quantity: 6, PreviousStock: 10, NewStock: 4},
		},
		{
			name:     "set upwards",
			movement: StockMovement{MovementType: MovementSet, Quantity: 10, PreviousStock: 4, NewStock: 14},
		},
		{
			name:     "set with wrong delta",
			movement: StockMovement{MovementType: MovementSet, Quantity: 5, PreviousStock: 10, NewStock: 4},
			wantErr:  true,
		},
		{
			name:     "negative quantity",
			movement: StockMovement{MovementType: MovementIncrement, Quantity: -1, PreviousStock: 10, NewStock: 9},
			wantErr:  true,
		},
		{
			name:     "negative new stock",
			movement: StockMovement{MovementType: MovementDecrement, Quantity: 15, PreviousStock: 10, NewStock: -5},
			wantErr:  true,
		},
		{
			name:     "unknown type",
			movement: StockMovement{MovementType: "TRANSFER", Quantity: 1, PreviousStock: 1, NewStock: 2},
			wantErr:  true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.movement.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMovement)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProductIsLowStock(t *testing.T) {
	p := Product{StockQuantity: 5, ReorderLevel: 5}
	assert.True(t, p.IsLowStock())

	p.StockQuantity = 6
	assert.False(t, p.IsLowStock())
}

func TestProductHasStock(t *testing.T) {
	p := Product{StockQuantity: 10, IsActive: true}
	assert.True(t, p.HasStock(10))
	assert.False(t, p.HasStock(11))

	p.IsActive = false
	assert.False(t, p.HasStock(1))
}
