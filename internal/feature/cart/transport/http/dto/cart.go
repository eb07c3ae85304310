// Package dto defines the cart's HTTP request and response bodies.
package dto

import (
	"orderup_backend/internal/feature/cart/domain/entity"
	catalogdto "orderup_backend/internal/feature/catalog/transport/http/dto"
)

// AddToCartReq is the body of POST /cart. Quantity defaults to 1 when omitted.
type AddToCartReq struct {
	FoodItemID uint `json:"food_item_id" binding:"required"`
	Quantity   *int `json:"quantity" binding:"omitempty,max=1000"`
}

// UpdateCartItemReq is the body of PUT /cart/:id.
type UpdateCartItemReq struct {
	Quantity *int `json:"quantity" binding:"required,max=1000"`
}

// CartItemRes is one cart line with its food item.
type CartItemRes struct {
	ID         uint                   `json:"id"`
	FoodItemID uint                   `json:"food_item_id"`
	Quantity   int                    `json:"quantity"`
	LineTotal  string                 `json:"line_total"`
	FoodItem   catalogdto.FoodItemRes `json:"food_item"`
}

// CartRes is the whole cart.
type CartRes struct {
	Items    []CartItemRes `json:"items"`
	Subtotal string        `json:"subtotal"`
}

// NewCartItemRes converts a cart line for output.
func NewCartItemRes(c entity.CartItem) CartItemRes {
	return CartItemRes{
		ID:         c.ID,
		FoodItemID: c.FoodItemID,
		Quantity:   c.Quantity,
		LineTotal:  c.LineTotal().StringFixed(2),
		FoodItem:   catalogdto.NewFoodItemRes(c.FoodItem),
	}
}

// NewCartRes converts the user's lines and computes the subtotal.
func NewCartRes(items []entity.CartItem) CartRes {
	out := CartRes{Items: make([]CartItemRes, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, NewCartItemRes(it))
	}
	out.Subtotal = entity.Subtotal(items).StringFixed(2)
	return out
}
