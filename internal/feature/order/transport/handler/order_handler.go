// Package handler provides the order HTTP handlers.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"orderup_backend/internal/api"
	"orderup_backend/internal/feature/order/domain/entity"
	"orderup_backend/internal/feature/order/transport/http/dto"
	"orderup_backend/internal/feature/order/usecase"
)

// OrderUsecase is the order contract the handler depends on.
type OrderUsecase interface {
	PlaceOrder(ctx context.Context, userID uint, in usecase.PlaceOrderInput) (*entity.Order, error)
	GetOrder(ctx context.Context, userID, orderID uint) (*entity.Order, error)
	ListOrders(ctx context.Context, userID uint, offset, limit int) ([]entity.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, in usecase.UpdateStatusInput) (*entity.Order, error)
}

// OrderHandler serves /orders, /profile/orders and /admin/orders.
type OrderHandler struct {
	uc OrderUsecase
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(uc OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Place handles POST /orders.
func (h *OrderHandler) Place(c *gin.Context) {
	userID, ok := api.RequireUserID(c)
	if !ok {
		return
	}
	var req dto.PlaceOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "place order", err)
		return
	}
	order, err := h.uc.PlaceOrder(c.Request.Context(), userID, usecase.PlaceOrderInput{
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		api.WriteError(c, "place order", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewOrderRes(*order))
}

// Get handles GET /orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := api.RequireUserID(c)
	if !ok {
		return
	}
	id, err := api.ParseID(c, "id")
	if err != nil {
		api.WriteError(c, "get order", err)
		return
	}
	order, err := h.uc.GetOrder(c.Request.Context(), userID, id)
	if err != nil {
		api.WriteError(c, "get order", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderRes(*order))
}

// List handles GET /orders?page=&limit=.
func (h *OrderHandler) List(c *gin.Context) {
	orders, p, ok := h.page(c, "list orders")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderListRes(orders, p))
}

// ListSummaries handles GET /profile/orders?page=&limit=.
func (h *OrderHandler) ListSummaries(c *gin.Context) {
	orders, p, ok := h.page(c, "list profile orders")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderSummaryListRes(orders, p))
}

// UpdateStatus handles PUT /admin/orders/:id.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := api.ParseID(c, "id")
	if err != nil {
		api.WriteError(c, "update order status", err)
		return
	}
	var req dto.UpdateOrderStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "update order status", err)
		return
	}
	order, err := h.uc.UpdateOrderStatus(c.Request.Context(), id, usecase.UpdateStatusInput{
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		api.WriteError(c, "update order status", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderRes(*order))
}

func (h *OrderHandler) page(c *gin.Context, op string) ([]entity.Order, api.Pagination, bool) {
	userID, ok := api.RequireUserID(c)
	if !ok {
		return nil, api.Pagination{}, false
	}
	params, err := api.ParsePageParams(c.Request.URL.Query())
	if err != nil {
		api.WriteError(c, op, err)
		return nil, api.Pagination{}, false
	}
	orders, total, err := h.uc.ListOrders(c.Request.Context(), userID, params.Offset(), params.Limit)
	if err != nil {
		api.WriteError(c, op, err)
		return nil, api.Pagination{}, false
	}
	return orders, api.NewPagination(params, total), true
}
