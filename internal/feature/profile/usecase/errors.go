package usecase

import (
	"fmt"

	"orderup_backend/internal/shared/apperr"
)

var (
	// ErrProfileNotFound is returned when the authenticated user no longer exists.
	ErrProfileNotFound = fmt.Errorf("user %w", apperr.ErrNotFound)

	// ErrPhoneTaken is returned when the new phone number belongs to another user.
	ErrPhoneTaken = fmt.Errorf("phone number already exists: %w", apperr.ErrConflict)

	// ErrBlankField is returned when a provided name or phone number is blank.
	ErrBlankField = fmt.Errorf("full name and phone number cannot be blank: %w", apperr.ErrInvalidArgument)

	ErrNotAnImage    = fmt.Errorf("only image files are allowed: %w", apperr.ErrInvalidArgument)
	ErrImageTooLarge = fmt.Errorf("image size must be less than 5MB: %w", apperr.ErrInvalidArgument)
)
