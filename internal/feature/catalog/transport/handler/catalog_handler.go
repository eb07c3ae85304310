// Package handler provides the catalog's HTTP handlers.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"orderup_backend/internal/api"
	"orderup_backend/internal/feature/catalog/domain/entity"
	"orderup_backend/internal/feature/catalog/transport/http/dto"
	"orderup_backend/internal/feature/catalog/usecase"
	"orderup_backend/internal/shared/apperr"
)

// CatalogUsecase is the subset of catalog operations the handler needs.
type CatalogUsecase interface {
	List(ctx context.Context, f entity.Filter) ([]entity.FoodItem, error)
	Get(ctx context.Context, id uint) (*entity.FoodItem, error)
	Create(ctx context.Context, in usecase.CreateInput) (*entity.FoodItem, error)
	Update(ctx context.Context, id uint, in usecase.UpdateInput) (*entity.FoodItem, error)
	Delete(ctx context.Context, id uint) error
}

// CatalogHandler serves the menu endpoints.
type CatalogHandler struct {
	uc CatalogUsecase
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(uc CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// List handles GET /food-items?category=&search=&availableOnly=true.
func (h *CatalogHandler) List(c *gin.Context) {
	f := entity.Filter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if err := runtime.BindQueryParameter("form", true, false, "availableOnly", c.Request.URL.Query(), &f.AvailableOnly); err != nil {
		api.WriteError(c, "list food items", fmt.Errorf("availableOnly must be a boolean: %w", apperr.ErrInvalidArgument))
		return
	}

	items, err := h.uc.List(c.Request.Context(), f)
	if err != nil {
		api.WriteError(c, "list food items", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewFoodItemResList(items))
}

// Get handles GET /food-items/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := api.ParseID(c, "id")
	if err != nil {
		api.WriteError(c, "get food item", err)
		return
	}
	item, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, "get food item", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewFoodItemRes(*item))
}

// Create handles POST /admin/food-items.
func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.CreateFoodItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "create food item", err)
		return
	}
	item, err := h.uc.Create(c.Request.Context(), usecase.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fat:         req.Fat,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		api.WriteError(c, "create food item", err)
		return
	}
	slog.Info("food item created", "food_item_id", item.ID, "name", item.Name)
	c.JSON(http.StatusCreated, dto.NewFoodItemRes(*item))
}

// Update handles PUT /admin/food-items/:id.
func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := api.ParseID(c, "id")
	if err != nil {
		api.WriteError(c, "update food item", err)
		return
	}
	var req dto.UpdateFoodItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "update food item", err)
		return
	}
	item, err := h.uc.Update(c.Request.Context(), id, usecase.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fat:         req.Fat,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		api.WriteError(c, "update food item", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewFoodItemRes(*item))
}

// Delete handles DELETE /admin/food-items/:id.
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := api.ParseID(c, "id")
	if err != nil {
		api.WriteError(c, "delete food item", err)
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		api.WriteError(c, "delete food item", err)
		return
	}
	slog.Info("food item deleted", "food_item_id", id)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "food item deleted"})
}
