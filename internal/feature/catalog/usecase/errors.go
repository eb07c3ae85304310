package usecase

import (
	"fmt"

	"orderup_backend/internal/shared/apperr"
)

var (
	// ErrFoodItemNotFound is returned when no food item has the requested id.
	ErrFoodItemNotFound = fmt.Errorf("food item %w", apperr.ErrNotFound)

	// ErrFoodItemInUse is returned when deleting an item that past orders reference.
	ErrFoodItemInUse = fmt.Errorf("food item is referenced by orders, mark it unavailable instead: %w", apperr.ErrConflict)
)
