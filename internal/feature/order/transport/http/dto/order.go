// Package dto defines the order HTTP request and response bodies.
package dto

import (
	"time"

	"orderup_backend/internal/api"
	catalogdto "orderup_backend/internal/feature/catalog/transport/http/dto"
	"orderup_backend/internal/feature/order/domain/entity"
)

// PlaceOrderReq is the body of POST /orders.
type PlaceOrderReq struct {
	PaymentMethod   string `json:"payment_method" binding:"required,max=50"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
}

// UpdateOrderStatusReq is the body of PUT /admin/orders/:id.
type UpdateOrderStatusReq struct {
	Status        *entity.Status        `json:"status"`
	PaymentStatus *entity.PaymentStatus `json:"payment_status"`
}

// OrderItemRes is one frozen order line.
type OrderItemRes struct {
	ID         uint                   `json:"id"`
	FoodItemID uint                   `json:"food_item_id"`
	Quantity   int                    `json:"quantity"`
	Price      string                 `json:"price"`
	LineTotal  string                 `json:"line_total"`
	FoodItem   catalogdto.FoodItemRes `json:"food_item"`
}

// OrderRes is an order with its lines.
type OrderRes struct {
	ID              uint                 `json:"id"`
	Reference       string               `json:"reference"`
	TotalAmount     string               `json:"total_amount"`
	Status          entity.Status        `json:"status"`
	PaymentStatus   entity.PaymentStatus `json:"payment_status"`
	PaymentMethod   string               `json:"payment_method"`
	DeliveryAddress string               `json:"delivery_address"`
	ItemCount       int                  `json:"item_count"`
	Items           []OrderItemRes       `json:"items"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// OrderListRes is a page of orders.
type OrderListRes struct {
	Orders     []OrderRes     `json:"orders"`
	Pagination api.Pagination `json:"pagination"`
}

// OrderSummaryItem is a compact order line for the profile page.
type OrderSummaryItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// OrderSummary is the profile page view of an order.
type OrderSummary struct {
	ID            uint                 `json:"id"`
	Reference     string               `json:"reference"`
	TotalAmount   string               `json:"total_amount"`
	Status        entity.Status        `json:"status"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time            `json:"created_at"`
	ItemCount     int                  `json:"item_count"`
	Items         []OrderSummaryItem   `json:"items"`
}

// OrderSummaryListRes is a page of order summaries.
type OrderSummaryListRes struct {
	Orders     []OrderSummary `json:"orders"`
	Pagination api.Pagination `json:"pagination"`
}

// NewOrderRes converts an order for output.
func NewOrderRes(o entity.Order) OrderRes {
	res := OrderRes{
		ID:              o.ID,
		Reference:       o.Reference,
		TotalAmount:     o.TotalAmount.StringFixed(2),
		Status:          o.Status,
		PaymentStatus:   o.PaymentStatus,
		PaymentMethod:   o.PaymentMethod,
		DeliveryAddress: o.DeliveryAddress,
		ItemCount:       o.ItemCount(),
		Items:           make([]OrderItemRes, 0, len(o.Items)),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, it := range o.Items {
		res.Items = append(res.Items, OrderItemRes{
			ID:         it.ID,
			FoodItemID: it.FoodItemID,
			Quantity:   it.Quantity,
			Price:      it.Price.StringFixed(2),
			LineTotal:  it.LineTotal().StringFixed(2),
			FoodItem:   catalogdto.NewFoodItemRes(it.FoodItem),
		})
	}
	return res
}

// NewOrderListRes converts a page of orders.
func NewOrderListRes(orders []entity.Order, p api.Pagination) OrderListRes {
	out := OrderListRes{Orders: make([]OrderRes, 0, len(orders)), Pagination: p}
	for _, o := range orders {
		out.Orders = append(out.Orders, NewOrderRes(o))
	}
	return out
}

// NewOrderSummaryListRes converts a page of orders into profile summaries.
func NewOrderSummaryListRes(orders []entity.Order, p api.Pagination) OrderSummaryListRes {
	out := OrderSummaryListRes{Orders: make([]OrderSummary, 0, len(orders)), Pagination: p}
	for _, o := range orders {
		s := OrderSummary{
			ID:            o.ID,
			Reference:     o.Reference,
			TotalAmount:   o.TotalAmount.StringFixed(2),
			Status:        o.Status,
			PaymentStatus: o.PaymentStatus,
			CreatedAt:     o.CreatedAt,
			ItemCount:     o.ItemCount(),
			Items:         make([]OrderSummaryItem, 0, len(o.Items)),
		}
		for _, it := range o.Items {
			s.Items = append(s.Items, OrderSummaryItem{Name: it.FoodItem.Name, Quantity: it.Quantity, Price: it.Price.StringFixed(2)})
		}
		out.Orders = append(out.Orders, s)
	}
	return out
}
