package usecase

import (
	"fmt"

	"orderup_backend/internal/shared/apperr"
)

var (
	// ErrAddressNotFound is returned when the address does not exist or belongs to another user.
	ErrAddressNotFound = fmt.Errorf("address %w", apperr.ErrNotFound)

	// ErrAddressRequired is returned when the full address or city is blank.
	ErrAddressRequired = fmt.Errorf("full address and city are required: %w", apperr.ErrInvalidArgument)

	// ErrDefaultChanged is returned when another request changed the default address at the same time.
	ErrDefaultChanged = fmt.Errorf("default address changed concurrently, please retry: %w", apperr.ErrConflict)
)
