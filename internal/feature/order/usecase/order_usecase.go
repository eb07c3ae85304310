// Package usecase implements order placement and order tracking.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	cart "orderup_backend/internal/feature/cart/domain/entity"
	"orderup_backend/internal/feature/order/domain/entity"
	"orderup_backend/internal/shared/apperr"
)

// Realtime event types published to the admin feed.
const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
)

// OrderRepository persists orders.
type OrderRepository interface {
	// Checkout inserts order with its items and deletes the snapshot's cart lines in one transaction.
	// It fails with ErrCartChanged when the user's cart no longer matches snapshot. price is called
	// inside the transaction with the locked lines and their freshly read food items.
	Checkout(ctx context.Context, order *entity.Order, snapshot []cart.CartItem, price func(locked []cart.CartItem) error) error
	FindByIDForUser(ctx context.Context, userID, orderID uint) (*entity.Order, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]entity.Order, int64, error)
	// UpdateStatus locks the order, lets apply mutate it and saves the status fields.
	UpdateStatus(ctx context.Context, orderID uint, apply func(o *entity.Order) error) (*entity.Order, error)
}

// CartReader loads a user's cart with food items joined.
type CartReader interface {
	ListByUser(ctx context.Context, userID uint) ([]cart.CartItem, error)
}

// EventPublisher fans events out to live subscribers.
type EventPublisher interface {
	Publish(eventType string, payload any)
}

// Recorder counts order outcomes.
type Recorder interface {
	OrderPlaced(result string)
	OrderStatusChanged(status string)
}

// PlaceOrderInput is the checkout form.
type PlaceOrderInput struct {
	PaymentMethod   string
	DeliveryAddress string
}

// UpdateStatusInput changes either or both state machines.
type UpdateStatusInput struct {
	Status        *entity.Status
	PaymentStatus *entity.PaymentStatus
}

// OrderUsecase places and tracks orders.
type OrderUsecase struct {
	orders   OrderRepository
	carts    CartReader
	events   EventPublisher
	recorder Recorder
	now      func() time.Time
}

// NewOrderUsecase creates an OrderUsecase. events and recorder may be nil.
func NewOrderUsecase(orders OrderRepository, carts CartReader, events EventPublisher, recorder Recorder) *OrderUsecase {
	return &OrderUsecase{
		orders:   orders,
		carts:    carts,
		events:   events,
		recorder: recorder,
		now:      time.Now,
	}
}

// PlaceOrder turns the user's current cart into a pending, unpaid order.
// Prices and availability are taken from the food items read under the checkout lock, then frozen.
// The cart is cleared atomically with the insert.
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID uint, in PlaceOrderInput) (*entity.Order, error) {
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	in.DeliveryAddress = strings.TrimSpace(in.DeliveryAddress)
	if in.PaymentMethod == "" || in.DeliveryAddress == "" {
		return nil, fmt.Errorf("payment method and delivery address are required: %w", apperr.ErrInvalidArgument)
	}

	lines, err := u.carts.ListByUser(ctx, userID)
	if err != nil {
		u.placed("error")
		return nil, err
	}
	if len(lines) == 0 {
		u.placed("empty_cart")
		return nil, ErrEmptyCart
	}

	order := &entity.Order{
		Reference:       entity.NewReference(u.now()),
		UserID:          userID,
		Status:          entity.StatusPending,
		PaymentStatus:   entity.PaymentUnpaid,
		PaymentMethod:   in.PaymentMethod,
		DeliveryAddress: in.DeliveryAddress,
	}
	if err := priceOrder(order, lines); err != nil {
		u.placed(outcome(err))
		return nil, err
	}

	err = u.orders.Checkout(ctx, order, lines, func(locked []cart.CartItem) error {
		return priceOrder(order, locked)
	})
	if err != nil {
		u.placed(outcome(err))
		return nil, err
	}
	u.placed("success")

	placed, err := u.orders.FindByIDForUser(ctx, userID, order.ID)
	if err != nil {
		slog.Warn("reload placed order failed", "order_id", order.ID, "error", err)
		placed = order
	}
	slog.Info("order placed", "order_id", placed.ID, "reference", placed.Reference, "user_id", userID, "total", placed.TotalAmount.StringFixed(2))
	u.publish(EventOrderCreated, placed)
	return placed, nil
}

// priceOrder fills the order lines and total from lines at their food items' current prices.
func priceOrder(order *entity.Order, lines []cart.CartItem) error {
	items := make([]entity.OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		if !line.FoodItem.IsAvailable {
			return fmt.Errorf("%s: %w", line.FoodItem.Name, ErrItemUnavailable)
		}
		item := entity.OrderItem{
			FoodItemID: line.FoodItemID,
			Quantity:   line.Quantity,
			Price:      line.FoodItem.Price,
		}
		total = total.Add(item.LineTotal())
		items = append(items, item)
	}
	if total.GreaterThan(entity.MaxOrderTotal) {
		return ErrOrderTooLarge
	}
	order.Items = items
	order.TotalAmount = total
	return nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrCartChanged):
		return "conflict"
	case errors.Is(err, ErrItemUnavailable):
		return "unavailable"
	case errors.Is(err, ErrOrderTooLarge):
		return "too_large"
	default:
		return "error"
	}
}

// GetOrder returns one of the user's orders with its items.
func (u *OrderUsecase) GetOrder(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
	return u.orders.FindByIDForUser(ctx, userID, orderID)
}

// ListOrders returns a page of the user's orders, newest first, and the total count.
func (u *OrderUsecase) ListOrders(ctx context.Context, userID uint, offset, limit int) ([]entity.Order, int64, error) {
	return u.orders.ListByUser(ctx, userID, offset, limit)
}

// UpdateOrderStatus advances an order's status and/or payment status.
// Setting a field to its current value is a no-op; any other change must follow the state machine.
func (u *OrderUsecase) UpdateOrderStatus(ctx context.Context, orderID uint, in UpdateStatusInput) (*entity.Order, error) {
	if in.Status == nil && in.PaymentStatus == nil {
		return nil, ErrNothingToUpdate
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, fmt.Errorf("%q: %w", *in.Status, ErrInvalidStatus)
	}
	if in.PaymentStatus != nil && !in.PaymentStatus.Valid() {
		return nil, fmt.Errorf("%q: %w", *in.PaymentStatus, ErrInvalidStatus)
	}

	changed := false
	order, err := u.orders.UpdateStatus(ctx, orderID, func(o *entity.Order) error {
		changed = false
		if in.Status != nil && *in.Status != o.Status {
			if !o.Status.CanTransitionTo(*in.Status) {
				return fmt.Errorf("%s to %s: %w", o.Status, *in.Status, ErrInvalidTransition)
			}
			o.Status = *in.Status
			changed = true
		}
		if in.PaymentStatus != nil && *in.PaymentStatus != o.PaymentStatus {
			if !o.PaymentStatus.CanTransitionTo(*in.PaymentStatus) {
				return fmt.Errorf("payment %s to %s: %w", o.PaymentStatus, *in.PaymentStatus, ErrInvalidTransition)
			}
			o.PaymentStatus = *in.PaymentStatus
			changed = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		slog.Info("order status updated", "order_id", order.ID, "status", order.Status, "payment_status", order.PaymentStatus)
		if u.recorder != nil {
			u.recorder.OrderStatusChanged(string(order.Status))
		}
		u.publish(EventOrderUpdated, order)
	}
	return order, nil
}

func (u *OrderUsecase) placed(result string) {
	if u.recorder != nil {
		u.recorder.OrderPlaced(result)
	}
}

func (u *OrderUsecase) publish(eventType string, order *entity.Order) {
	if u.events != nil {
		u.events.Publish(eventType, order)
	}
}
