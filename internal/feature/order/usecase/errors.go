package usecase

import (
	"fmt"

	"orderup_backend/internal/shared/apperr"
)

var (
	// ErrOrderNotFound is returned when the order does not exist or belongs to another user.
	ErrOrderNotFound = fmt.Errorf("order %w", apperr.ErrNotFound)

	// ErrEmptyCart is returned when placing an order with nothing in the cart.
	ErrEmptyCart = fmt.Errorf("cart is empty: %w", apperr.ErrInvalidArgument)

	// ErrItemUnavailable is returned when a cart line's food item has been switched off.
	ErrItemUnavailable = fmt.Errorf("cart contains an item that is no longer available: %w", apperr.ErrUnavailable)

	// ErrOrderTooLarge is returned when the order total exceeds entity.MaxOrderTotal.
	ErrOrderTooLarge = fmt.Errorf("order total is too large, reduce the quantities: %w", apperr.ErrInvalidArgument)

	// ErrCartChanged is returned when the cart was modified or already checked out while the order was being placed.
	ErrCartChanged = fmt.Errorf("cart changed during checkout, please review and retry: %w", apperr.ErrConflict)

	// ErrInvalidStatus is returned for an unknown status or payment status value.
	ErrInvalidStatus = fmt.Errorf("unknown order status: %w", apperr.ErrInvalidArgument)

	// ErrInvalidTransition is returned for a status change the state machine does not allow.
	ErrInvalidTransition = fmt.Errorf("status transition not allowed: %w", apperr.ErrInvalidArgument)

	// ErrNothingToUpdate is returned when a status update names neither field.
	ErrNothingToUpdate = fmt.Errorf("status or payment_status is required: %w", apperr.ErrInvalidArgument)
)
