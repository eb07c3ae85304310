// Package dto defines the review HTTP request and response bodies.
package dto

import (
	"time"

	"orderup_backend/internal/api"
	"orderup_backend/internal/feature/review/domain/entity"
)

// CreateReviewReq is the body of POST /profile/reviews.
type CreateReviewReq struct {
	FoodItemID uint   `json:"food_item_id" binding:"required"`
	OrderID    *uint  `json:"order_id"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

// UpdateReviewReq is the body of PUT /profile/reviews/:id.
type UpdateReviewReq struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

// ReviewFoodItem is the slice of the food item shown beside a review.
type ReviewFoodItem struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Price    string `json:"price"`
	Category string `json:"category"`
}

// ReviewRes is a review as returned to its author.
type ReviewRes struct {
	ID         uint           `json:"id"`
	FoodItemID uint           `json:"food_item_id"`
	OrderID    *uint          `json:"order_id"`
	Rating     int            `json:"rating"`
	Comment    string         `json:"comment"`
	FoodItem   ReviewFoodItem `json:"food_item"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// ReviewStats summarises the author's reviews.
type ReviewStats struct {
	Total         int64   `json:"total"`
	AverageRating float64 `json:"average_rating"`
}

// ReviewListRes is a page of reviews with the author's stats.
type ReviewListRes struct {
	Reviews    []ReviewRes    `json:"reviews"`
	Stats      ReviewStats    `json:"stats"`
	Pagination api.Pagination `json:"pagination"`
}

// NewReviewRes converts a review for output.
func NewReviewRes(r entity.Review) ReviewRes {
	return ReviewRes{
		ID:         r.ID,
		FoodItemID: r.FoodItemID,
		OrderID:    r.OrderID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		FoodItem: ReviewFoodItem{
			ID:       r.FoodItem.ID,
			Name:     r.FoodItem.Name,
			Image:    r.FoodItem.Image,
			Price:    r.FoodItem.Price.StringFixed(2),
			Category: r.FoodItem.Category,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// NewReviewListRes converts a page of reviews.
func NewReviewListRes(reviews []entity.Review, stats entity.Stats, p api.Pagination) ReviewListRes {
	out := ReviewListRes{
		Reviews:    make([]ReviewRes, 0, len(reviews)),
		Stats:      ReviewStats{Total: stats.Total, AverageRating: stats.AverageRating},
		Pagination: p,
	}
	for _, r := range reviews {
		out.Reviews = append(out.Reviews, NewReviewRes(r))
	}
	return out
}
