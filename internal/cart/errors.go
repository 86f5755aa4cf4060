package cart

import "errors"

// Every mutation error is local and recoverable: the cart stays in its
// last valid state and the caller may retry.
var (
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotAuthenticated  = errors.New("login required")
	ErrNoAddress         = errors.New("delivery address required")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrCheckoutInFlight  = errors.New("checkout already in progress")
)
