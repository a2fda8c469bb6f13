package domain

import "errors"

// Validation failures surfaced to the caller inline; not bugs.
var (
	ErrInvalidQuantity       = errors.New("quantity must be a positive finite number")
	ErrInsufficientStock     = errors.New("requested quantity exceeds available stock")
	ErrExceedsAssigned       = errors.New("requested quantity exceeds technician holding")
	ErrQuantityBelowAssigned = errors.New("quantity cannot drop below assigned quantity")
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrAlreadyCanceled = errors.New("attribution entry already canceled")
)
