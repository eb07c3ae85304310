// Package usecase implements catalog browsing and admin menu management.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"orderup_backend/internal/feature/catalog/domain/entity"
	"orderup_backend/internal/shared/apperr"
)

// FoodItemRepository abstracts food item persistence.
type FoodItemRepository interface {
	List(ctx context.Context, f entity.Filter) ([]entity.FoodItem, error)
	FindByID(ctx context.Context, id uint) (*entity.FoodItem, error)
	Create(ctx context.Context, item *entity.FoodItem) error
	// Save writes every column of item except Rating.
	Save(ctx context.Context, item *entity.FoodItem) error
	Delete(ctx context.Context, id uint) error
}

// CreateInput is the admin form for a new item. Price is required.
type CreateInput struct {
	Name        string
	Description string
	Price       *decimal.Decimal
	Image       string
	Category    string
	Calories    *int
	Protein     *float64
	Carbs       *float64
	Fat         *float64
	IsAvailable *bool
}

// UpdateInput is a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Image       *string
	Category    *string
	Calories    *int
	Protein     *float64
	Carbs       *float64
	Fat         *float64
	IsAvailable *bool
}

// CatalogUsecase serves the menu.
type CatalogUsecase struct {
	repo FoodItemRepository
}

// NewCatalogUsecase creates a CatalogUsecase.
func NewCatalogUsecase(repo FoodItemRepository) *CatalogUsecase {
	return &CatalogUsecase{repo: repo}
}

// List returns items matching f, newest first.
func (u *CatalogUsecase) List(ctx context.Context, f entity.Filter) ([]entity.FoodItem, error) {
	f.Category = strings.TrimSpace(f.Category)
	f.Search = strings.TrimSpace(f.Search)
	return u.repo.List(ctx, f)
}

// Get returns one item.
func (u *CatalogUsecase) Get(ctx context.Context, id uint) (*entity.FoodItem, error) {
	return u.repo.FindByID(ctx, id)
}

// Create validates and stores a new item. New items are available unless stated otherwise.
func (u *CatalogUsecase) Create(ctx context.Context, in CreateInput) (*entity.FoodItem, error) {
	item := &entity.FoodItem{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Image:       in.Image,
		Category:    strings.TrimSpace(in.Category),
		Calories:    in.Calories,
		Protein:     in.Protein,
		Carbs:       in.Carbs,
		Fat:         in.Fat,
		IsAvailable: true,
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if in.Price == nil {
		return nil, fmt.Errorf("price is required: %w", apperr.ErrInvalidArgument)
	}
	item.Price = *in.Price

	if err := validate(item); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update applies the non-nil fields of in. Rating is not client-writable.
func (u *CatalogUsecase) Update(ctx context.Context, id uint, in UpdateInput) (*entity.FoodItem, error) {
	item, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		item.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.Image != nil {
		item.Image = *in.Image
	}
	if in.Category != nil {
		item.Category = strings.TrimSpace(*in.Category)
	}
	if in.Calories != nil {
		item.Calories = in.Calories
	}
	if in.Protein != nil {
		item.Protein = in.Protein
	}
	if in.Carbs != nil {
		item.Carbs = in.Carbs
	}
	if in.Fat != nil {
		item.Fat = in.Fat
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}

	if err := validate(item); err != nil {
		return nil, err
	}
	if err := u.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item that no order references.
func (u *CatalogUsecase) Delete(ctx context.Context, id uint) error {
	return u.repo.Delete(ctx, id)
}

func validate(item *entity.FoodItem) error {
	switch {
	case item.Name == "":
		return fmt.Errorf("name is required: %w", apperr.ErrInvalidArgument)
	case item.Description == "":
		return fmt.Errorf("description is required: %w", apperr.ErrInvalidArgument)
	case item.Category == "":
		return fmt.Errorf("category is required: %w", apperr.ErrInvalidArgument)
	case !item.Price.IsPositive():
		return fmt.Errorf("price must be positive: %w", apperr.ErrInvalidArgument)
	case !item.Price.Equal(item.Price.Round(2)):
		return fmt.Errorf("price has more than two decimal places: %w", apperr.ErrInvalidArgument)
	}
	return nil
}
