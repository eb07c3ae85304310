// Package dto defines the catalog's HTTP request and response bodies.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"orderup_backend/internal/feature/catalog/domain/entity"
)

// CreateFoodItemReq is the body of POST /admin/food-items.
type CreateFoodItemReq struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description" binding:"required"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Image       string           `json:"image"`
	Category    string           `json:"category" binding:"required"`
	Calories    *int             `json:"calories" binding:"omitempty,min=0"`
	Protein     *float64         `json:"protein" binding:"omitempty,min=0"`
	Carbs       *float64         `json:"carbs" binding:"omitempty,min=0"`
	Fat         *float64         `json:"fat" binding:"omitempty,min=0"`
	IsAvailable *bool            `json:"is_available"`
}

// UpdateFoodItemReq is the body of PUT /admin/food-items/:id. Absent fields are left unchanged.
type UpdateFoodItemReq struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image"`
	Category    *string          `json:"category"`
	Calories    *int             `json:"calories" binding:"omitempty,min=0"`
	Protein     *float64         `json:"protein" binding:"omitempty,min=0"`
	Carbs       *float64         `json:"carbs" binding:"omitempty,min=0"`
	Fat         *float64         `json:"fat" binding:"omitempty,min=0"`
	IsAvailable *bool            `json:"is_available"`
}

// FoodItemRes is a menu entry as returned to clients. Price is a fixed two-decimal string.
type FoodItemRes struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Calories    *int      `json:"calories"`
	Protein     *float64  `json:"protein"`
	Carbs       *float64  `json:"carbs"`
	Fat         *float64  `json:"fat"`
	IsAvailable bool      `json:"is_available"`
	Rating      *float64  `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewFoodItemRes converts an entity for output.
func NewFoodItemRes(f entity.FoodItem) FoodItemRes {
	return FoodItemRes{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price.StringFixed(2),
		Image:       f.Image,
		Category:    f.Category,
		Calories:    f.Calories,
		Protein:     f.Protein,
		Carbs:       f.Carbs,
		Fat:         f.Fat,
		IsAvailable: f.IsAvailable,
		Rating:      f.Rating,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// NewFoodItemResList converts a slice, never returning nil.
func NewFoodItemResList(items []entity.FoodItem) []FoodItemRes {
	out := make([]FoodItemRes, 0, len(items))
	for _, f := range items {
		out = append(out, NewFoodItemRes(f))
	}
	return out
}
