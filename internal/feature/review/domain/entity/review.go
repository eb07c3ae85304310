// Package entity defines customer reviews.
package entity

import (
	"time"

	catalog "orderup_backend/internal/feature/catalog/domain/entity"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of a food item, optionally tied to the order it came from.
// A user reviews a food item at most once per order, and at most once without an order.
type Review struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	UserID     uint             `gorm:"not null;uniqueIndex:idx_review_user_food_order" json:"user_id"`
	FoodItemID uint             `gorm:"not null;index;uniqueIndex:idx_review_user_food_order" json:"food_item_id"`
	FoodItem   catalog.FoodItem `gorm:"foreignKey:FoodItemID" json:"food_item"`
	OrderID    *uint            `gorm:"uniqueIndex:idx_review_user_food_order" json:"order_id"`
	Rating     int              `gorm:"not null" json:"rating"`
	Comment    string           `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// ValidRating reports whether r is within [MinRating, MaxRating].
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// Stats summarises a user's reviews.
type Stats struct {
	Total         int64
	AverageRating float64
}
