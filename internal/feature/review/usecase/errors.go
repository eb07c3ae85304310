package usecase

import (
	"fmt"

	"orderup_backend/internal/shared/apperr"
)

var (
	// ErrReviewNotFound is returned when the review does not exist or belongs to another user.
	ErrReviewNotFound = fmt.Errorf("review %w", apperr.ErrNotFound)

	// ErrInvalidRating is returned for a rating outside 1 to 5.
	ErrInvalidRating = fmt.Errorf("rating must be between 1 and 5: %w", apperr.ErrInvalidArgument)

	// ErrInvalidReview is returned when the referenced order is not the user's or does not contain the food item.
	ErrInvalidReview = fmt.Errorf("you can only review food items from your orders: %w", apperr.ErrInvalidArgument)

	// ErrDuplicateReview is returned when the user already reviewed the item for the same order.
	ErrDuplicateReview = fmt.Errorf("you have already reviewed this item from this order: %w", apperr.ErrConflict)

	// ErrCommentTooLong is returned for comments over MaxCommentLength characters.
	ErrCommentTooLong = fmt.Errorf("comment is too long: %w", apperr.ErrInvalidArgument)
)
