// Package adapters provides the GORM repository for cart lines.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"orderup_backend/internal/feature/cart/domain/entity"
	"orderup_backend/internal/feature/cart/usecase"
	platformdb "orderup_backend/internal/platform/db"
)

// maxAddAttempts bounds the update-or-insert loop when two first adds race on the unique index.
const maxAddAttempts = 3

type cartPostgres struct {
	db *gorm.DB
}

var _ usecase.CartRepository = (*cartPostgres)(nil)

// NewCartPostgres creates the GORM cart repository.
func NewCartPostgres(db *gorm.DB) *cartPostgres {
	return &cartPostgres{db: db}
}

func (r *cartPostgres) ListByUser(ctx context.Context, userID uint) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := r.db.WithContext(ctx).
		Preload("FoodItem").
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// AddQuantity increments the line in place so concurrent adds never lose an update.
// The increment only applies while the result stays within entity.MaxQuantity.
// A failed insert on the unique index means another request created the line first; retry as an increment.
func (r *cartPostgres) AddQuantity(ctx context.Context, userID, foodItemID uint, quantity int) (*entity.CartItem, error) {
	if quantity < 1 || quantity > entity.MaxQuantity {
		return nil, usecase.ErrInvalidQuantity
	}
	db := r.db.WithContext(ctx)
	for attempt := 0; attempt < maxAddAttempts; attempt++ {
		res := db.Model(&entity.CartItem{}).
			Where("user_id = ? AND food_item_id = ? AND quantity <= ?", userID, foodItemID, entity.MaxQuantity-quantity).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			var existing int64
			if err := db.Model(&entity.CartItem{}).
				Where("user_id = ? AND food_item_id = ?", userID, foodItemID).
				Count(&existing).Error; err != nil {
				return nil, err
			}
			if existing > 0 {
				return nil, usecase.ErrQuantityLimit
			}
			item := entity.CartItem{UserID: userID, FoodItemID: foodItemID, Quantity: quantity}
			if err := db.Omit(clause.Associations).Create(&item).Error; err != nil {
				if platformdb.IsDuplicateKey(err) {
					continue
				}
				return nil, err
			}
		}
		return r.findOne(ctx, "user_id = ? AND food_item_id = ?", userID, foodItemID)
	}
	return nil, fmt.Errorf("add to cart: line for food item %d kept changing", foodItemID)
}

func (r *cartPostgres) SetQuantity(ctx context.Context, userID, cartItemID uint, quantity int) (*entity.CartItem, error) {
	if quantity < 1 || quantity > entity.MaxQuantity {
		return nil, usecase.ErrInvalidQuantity
	}
	res := r.db.WithContext(ctx).Model(&entity.CartItem{}).
		Where("id = ? AND user_id = ?", cartItemID, userID).
		Update("quantity", quantity)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, usecase.ErrCartItemNotFound
	}
	return r.findOne(ctx, "id = ? AND user_id = ?", cartItemID, userID)
}

func (r *cartPostgres) Delete(ctx context.Context, userID, cartItemID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", cartItemID, userID).
		Delete(&entity.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrCartItemNotFound
	}
	return nil
}

func (r *cartPostgres) findOne(ctx context.Context, query string, args ...any) (*entity.CartItem, error) {
	var item entity.CartItem
	err := r.db.WithContext(ctx).Preload("FoodItem").Where(query, args...).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCartItemNotFound
		}
		return nil, err
	}
	return &item, nil
}
