package usecase

import (
	"fmt"

	"orderup_backend/internal/feature/cart/domain/entity"
	"orderup_backend/internal/shared/apperr"
)

var (
	// ErrCartItemNotFound is returned when the cart line does not exist or belongs to another user.
	ErrCartItemNotFound = fmt.Errorf("cart item %w", apperr.ErrNotFound)

	// ErrInvalidQuantity is returned for a quantity outside [1, entity.MaxQuantity].
	ErrInvalidQuantity = fmt.Errorf("quantity must be between 1 and %d: %w", entity.MaxQuantity, apperr.ErrInvalidArgument)

	// ErrQuantityLimit is returned when merging would push a line past entity.MaxQuantity.
	ErrQuantityLimit = fmt.Errorf("cart line cannot hold more than %d: %w", entity.MaxQuantity, apperr.ErrInvalidArgument)

	// ErrFoodItemUnavailable is returned when adding an item that is switched off.
	ErrFoodItemUnavailable = fmt.Errorf("food item is not available: %w", apperr.ErrUnavailable)
)
