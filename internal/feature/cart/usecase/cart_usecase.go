// Package usecase implements the cart aggregator.
package usecase

import (
	"context"

	"orderup_backend/internal/feature/cart/domain/entity"
	catalog "orderup_backend/internal/feature/catalog/domain/entity"
)

// DefaultQuantity is used when an add request does not name a quantity.
const DefaultQuantity = 1

// CartRepository persists cart lines. Every read joins the food item.
type CartRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]entity.CartItem, error)
	// AddQuantity increments the (user, food item) line, creating it when absent.
	// It returns ErrQuantityLimit when the merged quantity would exceed entity.MaxQuantity.
	AddQuantity(ctx context.Context, userID, foodItemID uint, quantity int) (*entity.CartItem, error)
	SetQuantity(ctx context.Context, userID, cartItemID uint, quantity int) (*entity.CartItem, error)
	Delete(ctx context.Context, userID, cartItemID uint) error
}

// FoodItemReader looks up the catalog.
type FoodItemReader interface {
	FindByID(ctx context.Context, id uint) (*catalog.FoodItem, error)
}

// CartUsecase manages a user's cart.
type CartUsecase struct {
	carts CartRepository
	foods FoodItemReader
}

// NewCartUsecase creates a CartUsecase.
func NewCartUsecase(carts CartRepository, foods FoodItemReader) *CartUsecase {
	return &CartUsecase{carts: carts, foods: foods}
}

// AddToCart merges quantity into the user's line for the food item.
// Adding 2 then 3 of the same item leaves a single line of 5.
// A merge past entity.MaxQuantity is rejected and leaves the line unchanged.
func (u *CartUsecase) AddToCart(ctx context.Context, userID, foodItemID uint, quantity int) (*entity.CartItem, error) {
	if !validQuantity(quantity) {
		return nil, ErrInvalidQuantity
	}
	food, err := u.foods.FindByID(ctx, foodItemID)
	if err != nil {
		return nil, err
	}
	if !food.IsAvailable {
		return nil, ErrFoodItemUnavailable
	}
	return u.carts.AddQuantity(ctx, userID, foodItemID, quantity)
}

// UpdateQuantity replaces the quantity of one of the user's lines.
func (u *CartUsecase) UpdateQuantity(ctx context.Context, userID, cartItemID uint, quantity int) (*entity.CartItem, error) {
	if !validQuantity(quantity) {
		return nil, ErrInvalidQuantity
	}
	return u.carts.SetQuantity(ctx, userID, cartItemID, quantity)
}

// RemoveItem deletes one of the user's lines.
func (u *CartUsecase) RemoveItem(ctx context.Context, userID, cartItemID uint) error {
	return u.carts.Delete(ctx, userID, cartItemID)
}

// ListCart returns the user's lines, newest first.
func (u *CartUsecase) ListCart(ctx context.Context, userID uint) ([]entity.CartItem, error) {
	return u.carts.ListByUser(ctx, userID)
}

func validQuantity(q int) bool {
	return q >= 1 && q <= entity.MaxQuantity
}
