package orders

import (
	"errors"
	"fmt"

	"shop_system/internal/domain"
)

// Checkout validation errors, checked in this order
var (
	ErrNonceEmpty      = errors.New("Nonce is empty")
	ErrCartEmpty       = errors.New("Cart is empty")
	ErrBuyerEmpty      = errors.New("User id is empty")
	ErrCartItemInvalid = errors.New("Cart item is invalid")
)

var (
	ErrNonceUsed      = errors.New("payment nonce was already used")
	ErrOrderNotFound  = errors.New("order not found")
	ErrStatusConflict = errors.New("order status changed concurrently")
	ErrInvalidStatus  = domain.ErrInvalidStatus
)

// TransitionError is returned when the status policy forbids a change
type TransitionError struct {
	From domain.OrderStatus
	To   domain.OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order status cannot change from %q to %q", e.From, e.To)
}
