// Package handler provides the cart's HTTP handlers.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"orderup_backend/internal/api"
	"orderup_backend/internal/feature/cart/domain/entity"
	"orderup_backend/internal/feature/cart/transport/http/dto"
	"orderup_backend/internal/feature/cart/usecase"
)

// CartUsecase is the cart contract the handler depends on.
type CartUsecase interface {
	AddToCart(ctx context.Context, userID, foodItemID uint, quantity int) (*entity.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, cartItemID uint, quantity int) (*entity.CartItem, error)
	RemoveItem(ctx context.Context, userID, cartItemID uint) error
	ListCart(ctx context.Context, userID uint) ([]entity.CartItem, error)
}

// CartHandler serves /cart.
type CartHandler struct {
	uc CartUsecase
}

// NewCartHandler creates a CartHandler.
func NewCartHandler(uc CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

// List handles GET /cart.
func (h *CartHandler) List(c *gin.Context) {
	userID, ok := api.RequireUserID(c)
	if !ok {
		return
	}
	items, err := h.uc.ListCart(c.Request.Context(), userID)
	if err != nil {
		api.WriteError(c, "list cart", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCartRes(items))
}

// Add handles POST /cart.
func (h *CartHandler) Add(c *gin.Context) {
	userID, ok := api.RequireUserID(c)
	if !ok {
		return
	}
	var req dto.AddToCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "add to cart", err)
		return
	}
	quantity := usecase.DefaultQuantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := h.uc.AddToCart(c.Request.Context(), userID, req.FoodItemID, quantity)
	if err != nil {
		api.WriteError(c, "add to cart", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCartItemRes(*item))
}

// Update handles PUT /cart/:id.
func (h *CartHandler) Update(c *gin.Context) {
	userID, ok := api.RequireUserID(c)
	if !ok {
		return
	}
	id, err := api.ParseID(c, "id")
	if err != nil {
		api.WriteError(c, "update cart item", err)
		return
	}
	var req dto.UpdateCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "update cart item", err)
		return
	}

	item, err := h.uc.UpdateQuantity(c.Request.Context(), userID, id, *req.Quantity)
	if err != nil {
		api.WriteError(c, "update cart item", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCartItemRes(*item))
}

// Remove handles DELETE /cart/:id.
func (h *CartHandler) Remove(c *gin.Context) {
	userID, ok := api.RequireUserID(c)
	if !ok {
		return
	}
	id, err := api.ParseID(c, "id")
	if err != nil {
		api.WriteError(c, "remove cart item", err)
		return
	}
	if err := h.uc.RemoveItem(c.Request.Context(), userID, id); err != nil {
		api.WriteError(c, "remove cart item", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "item removed from cart"})
}
