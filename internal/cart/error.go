package cart

import "errors"

var (
	ErrUserNotAuthenticated = errors.New("user not authenticated")
	ErrInvalidProductID     = errors.New("product id is required")
	ErrInvalidQuantity      = errors.New("invalid cart quantity")
	ErrCartItemNotFound     = errors.New("cart item not found")

	ErrFailedGetCart   = errors.New("failed to get cart")
	ErrFailedSaveCart  = errors.New("failed to save cart")
	ErrFailedClearCart = errors.New("failed to clear cart")
)
