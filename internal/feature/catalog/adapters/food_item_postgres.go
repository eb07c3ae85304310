// Package adapters provides the GORM repository for food items.
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"orderup_backend/internal/feature/catalog/domain/entity"
	"orderup_backend/internal/feature/catalog/usecase"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type foodItemPostgres struct {
	db *gorm.DB
}

var _ usecase.FoodItemRepository = (*foodItemPostgres)(nil)

// NewFoodItemPostgres creates the GORM food item repository.
func NewFoodItemPostgres(db *gorm.DB) *foodItemPostgres {
	return &foodItemPostgres{db: db}
}

func (r *foodItemPostgres) List(ctx context.Context, f entity.Filter) ([]entity.FoodItem, error) {
	q := r.db.WithContext(ctx).Model(&entity.FoodItem{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(f.Search)) + "%"
		q = q.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	if f.AvailableOnly {
		q = q.Where("is_available = ?", true)
	}

	var items []entity.FoodItem
	if err := q.Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *foodItemPostgres) FindByID(ctx context.Context, id uint) (*entity.FoodItem, error) {
	var item entity.FoodItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrFoodItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *foodItemPostgres) Create(ctx context.Context, item *entity.FoodItem) error {
	return r.db.WithContext(ctx).Omit("Rating").Create(item).Error
}

func (r *foodItemPostgres) Save(ctx context.Context, item *entity.FoodItem) error {
	result := r.db.WithContext(ctx).Model(item).Select("*").Omit("ID", "Rating", "CreatedAt").Updates(item)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrFoodItemNotFound
	}
	return nil
}

// Delete removes the item with its cart lines and reviews, refusing when an order references it.
func (r *foodItemPostgres) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ordered int64
		if err := tx.Table("order_items").Where("food_item_id = ?", id).Count(&ordered).Error; err != nil {
			return err
		}
		if ordered > 0 {
			return usecase.ErrFoodItemInUse
		}
		if err := tx.Exec("DELETE FROM cart_items WHERE food_item_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM reviews WHERE food_item_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.FoodItem{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return usecase.ErrFoodItemNotFound
		}
		return nil
	})
}
