// Package usecase implements review submission. Every write keeps the reviewed
// food item's rating equal to the average of its reviews.
package usecase

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"orderup_backend/internal/feature/review/domain/entity"
)

// MaxCommentLength bounds a review comment, in characters.
const MaxCommentLength = 2000

// ReviewRepository persists reviews. Create, Update and Delete each run in one transaction
// that locks the food item row, writes the review and recomputes the food item's rating.
type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	// Update applies apply to the user's review and returns it.
	Update(ctx context.Context, userID, reviewID uint, apply func(r *entity.Review)) (*entity.Review, error)
	// Delete removes the user's review and returns the food item it rated.
	Delete(ctx context.Context, userID, reviewID uint) (uint, error)
	FindByIDForUser(ctx context.Context, userID, reviewID uint) (*entity.Review, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]entity.Review, int64, error)
	StatsByUser(ctx context.Context, userID uint) (entity.Stats, error)
}

// CacheInvalidator drops cached copies of a food item.
type CacheInvalidator interface {
	InvalidateFoodItem(ctx context.Context, id uint) error
}

// Recorder counts review writes.
type Recorder interface {
	ReviewWritten(op string)
}

// CreateInput is a new review.
type CreateInput struct {
	FoodItemID uint
	OrderID    *uint
	Rating     int
	Comment    string
}

// UpdateInput is a partial review edit.
type UpdateInput struct {
	Rating  *int
	Comment *string
}

// ReviewUsecase manages a user's reviews.
type ReviewUsecase struct {
	reviews  ReviewRepository
	cache    CacheInvalidator
	recorder Recorder
}

// NewReviewUsecase creates a ReviewUsecase. cache and recorder may be nil.
func NewReviewUsecase(reviews ReviewRepository, cache CacheInvalidator, recorder Recorder) *ReviewUsecase {
	return &ReviewUsecase{reviews: reviews, cache: cache, recorder: recorder}
}

// CreateReview stores a review and refreshes the food item's rating.
func (u *ReviewUsecase) CreateReview(ctx context.Context, userID uint, in CreateInput) (*entity.Review, error) {
	if !entity.ValidRating(in.Rating) {
		return nil, ErrInvalidRating
	}
	comment, err := cleanComment(in.Comment)
	if err != nil {
		return nil, err
	}

	r := &entity.Review{
		UserID:     userID,
		FoodItemID: in.FoodItemID,
		OrderID:    in.OrderID,
		Rating:     in.Rating,
		Comment:    comment,
	}
	if err := u.reviews.Create(ctx, r); err != nil {
		return nil, err
	}
	u.afterWrite(ctx, "create", r.FoodItemID)
	return r, nil
}

// UpdateReview edits the user's review and refreshes the food item's rating.
func (u *ReviewUsecase) UpdateReview(ctx context.Context, userID, reviewID uint, in UpdateInput) (*entity.Review, error) {
	if in.Rating != nil && !entity.ValidRating(*in.Rating) {
		return nil, ErrInvalidRating
	}
	var comment *string
	if in.Comment != nil {
		c, err := cleanComment(*in.Comment)
		if err != nil {
			return nil, err
		}
		comment = &c
	}

	r, err := u.reviews.Update(ctx, userID, reviewID, func(r *entity.Review) {
		if in.Rating != nil {
			r.Rating = *in.Rating
		}
		if comment != nil {
			r.Comment = *comment
		}
	})
	if err != nil {
		return nil, err
	}
	u.afterWrite(ctx, "update", r.FoodItemID)
	return r, nil
}

// DeleteReview removes the user's review and refreshes the food item's rating.
func (u *ReviewUsecase) DeleteReview(ctx context.Context, userID, reviewID uint) error {
	foodItemID, err := u.reviews.Delete(ctx, userID, reviewID)
	if err != nil {
		return err
	}
	u.afterWrite(ctx, "delete", foodItemID)
	return nil
}

// GetReview returns one of the user's reviews.
func (u *ReviewUsecase) GetReview(ctx context.Context, userID, reviewID uint) (*entity.Review, error) {
	return u.reviews.FindByIDForUser(ctx, userID, reviewID)
}

// ListReviews returns a page of the user's reviews, newest first, with the total and the user's stats.
func (u *ReviewUsecase) ListReviews(ctx context.Context, userID uint, offset, limit int) ([]entity.Review, int64, entity.Stats, error) {
	reviews, total, err := u.reviews.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, entity.Stats{}, err
	}
	stats, err := u.reviews.StatsByUser(ctx, userID)
	if err != nil {
		return nil, 0, entity.Stats{}, err
	}
	return reviews, total, stats, nil
}

func (u *ReviewUsecase) afterWrite(ctx context.Context, op string, foodItemID uint) {
	if u.cache != nil {
		if err := u.cache.InvalidateFoodItem(ctx, foodItemID); err != nil {
			slog.Warn("invalidate food item cache failed", "food_item_id", foodItemID, "error", err)
		}
	}
	if u.recorder != nil {
		u.recorder.ReviewWritten(op)
	}
}

func cleanComment(s string) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxCommentLength {
		return "", ErrCommentTooLong
	}
	return s, nil
}
