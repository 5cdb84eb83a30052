package order

import "errors"

var (
	ErrUserRequired      = errors.New("user id is required")
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyCheckout     = errors.New("checkout has no orders")
	ErrProductVanished   = errors.New("product no longer exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)
