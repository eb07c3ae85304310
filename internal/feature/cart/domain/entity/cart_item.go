// Package entity defines the shopping cart line.
package entity

import (
	"time"

	"github.com/shopspring/decimal"

	catalog "orderup_backend/internal/feature/catalog/domain/entity"
)

// MaxQuantity caps a single cart line.
const MaxQuantity = 1000

// CartItem is one food item in a user's cart. A user holds at most one line per food item.
type CartItem struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	UserID     uint             `gorm:"not null;uniqueIndex:idx_cart_user_food" json:"user_id"`
	FoodItemID uint             `gorm:"not null;uniqueIndex:idx_cart_user_food" json:"food_item_id"`
	FoodItem   catalog.FoodItem `gorm:"foreignKey:FoodItemID" json:"food_item"`
	Quantity   int              `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// LineTotal is the unit price times the quantity, at the food item's current price.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.FoodItem.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// Subtotal sums the line totals.
func Subtotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}
