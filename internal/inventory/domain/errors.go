package domain

import "errors"

// Error taxonomy for inventory operations. Delivery layers map these to
// HTTP status codes; consumers map them to failure events.
var (
	ErrProductNotFound       = errors.New("product not found")
	ErrSKUAlreadyExists      = errors.New("product with this SKU already exists")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrInvalidAdjustmentType = errors.New("invalid adjustment type")
	ErrInvalidQuantity       = errors.New("quantity must not be negative")
	ErrNegativeStock         = errors.New("stock cannot be negative")
	ErrInvalidMovement       = errors.New("invalid stock movement")
	ErrVersionConflict       = errors.New("stock version conflict")
	ErrAlertNotFound         = errors.New("alert not found")
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrReservationExists     = errors.New("reservation already exists")
)
