package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cart "orderup_backend/internal/feature/cart/domain/entity"
	catalog "orderup_backend/internal/feature/catalog/domain/entity"
	"orderup_backend/internal/feature/order/domain/entity"
	"orderup_backend/internal/shared/apperr"
)

type mockOrderRepository struct {
	CheckoutFunc        func(ctx context.Context, order *entity.Order, snapshot []cart.CartItem, price func([]cart.CartItem) error) error
	FindByIDForUserFunc func(ctx context.Context, userID, orderID uint) (*entity.Order, error)
	ListByUserFunc      func(ctx context.Context, userID uint, offset, limit int) ([]entity.Order, int64, error)
	UpdateStatusFunc    func(ctx context.Context, orderID uint, apply func(o *entity.Order) error) (*entity.Order, error)
}

func (m *mockOrderRepository) Checkout(ctx context.Context, order *entity.Order, snapshot []cart.CartItem, price func([]cart.CartItem) error) error {
	if m.CheckoutFunc != nil {
		return m.CheckoutFunc(ctx, order, snapshot, price)
	}
	if err := price(snapshot); err != nil {
		return err
	}
	order.ID = 1
	return nil
}

func (m *mockOrderRepository) FindByIDForUser(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
	if m.FindByIDForUserFunc != nil {
		return m.FindByIDForUserFunc(ctx, userID, orderID)
	}
	return nil, ErrOrderNotFound
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]entity.Order, int64, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, offset, limit)
	}
	return nil, 0, nil
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, orderID uint, apply func(o *entity.Order) error) (*entity.Order, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, orderID, apply)
	}
	return nil, ErrOrderNotFound
}

type stubCart []cart.CartItem

func (s stubCart) ListByUser(ctx context.Context, userID uint) ([]cart.CartItem, error) {
	return s, nil
}

type recordingPublisher struct{ events []string }

func (p *recordingPublisher) Publish(eventType string, payload any) {
	p.events = append(p.events, eventType)
}

type recordingRecorder struct {
	placed   []string
	statuses []string
}

func (r *recordingRecorder) OrderPlaced(result string)        { r.placed = append(r.placed, result) }
func (r *recordingRecorder) OrderStatusChanged(status string) { r.statuses = append(r.statuses, status) }

func line(id, foodID uint, qty int, price string, available bool) cart.CartItem {
	return cart.CartItem{ID: id, FoodItemID: foodID, Quantity: qty,
		FoodItem: catalog.FoodItem{ID: foodID, Name: "item", Price: decimal.RequireFromString(price), IsAvailable: available}}
}

var input = PlaceOrderInput{PaymentMethod: "card", DeliveryAddress: "Bole Road 12"}

func TestOrderUsecase_PlaceOrder_BuildsFrozenOrder(t *testing.T) {
	t.Parallel()

	var captured *entity.Order
	repo := &mockOrderRepository{
		CheckoutFunc: func(ctx context.Context, order *entity.Order, snapshot []cart.CartItem, price func([]cart.CartItem) error) error {
			captured = order
			assert.Len(t, snapshot, 2)
			require.NoError(t, price(snapshot))
			order.ID = 42
			return nil
		},
		FindByIDForUserFunc: func(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
			assert.Equal(t, uint(42), orderID)
			return captured, nil
		},
	}
	pub := &recordingPublisher{}
	rec := &recordingRecorder{}
	uc := NewOrderUsecase(repo, stubCart{line(1, 10, 2, "12.50", true), line(2, 11, 3, "0.10", true)}, pub, rec)
	uc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	order, err := uc.PlaceOrder(context.Background(), 7, input)

	require.NoError(t, err)
	assert.Equal(t, "25.30", order.TotalAmount.StringFixed(2))
	assert.Equal(t, entity.StatusPending, order.Status)
	assert.Equal(t, entity.PaymentUnpaid, order.PaymentStatus)
	assert.Regexp(t, `^20240102030405-`, order.Reference)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "12.50", order.Items[0].Price.StringFixed(2))
	assert.Equal(t, []string{EventOrderCreated}, pub.events)
	assert.Equal(t, []string{"success"}, rec.placed)
}

func TestOrderUsecase_PlaceOrder_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cart       stubCart
		input      PlaceOrderInput
		checkout   error
		wantErr    error
		wantResult []string
	}{
		{"empty cart", stubCart{}, input, nil, ErrEmptyCart, []string{"empty_cart"}},
		{"unavailable item", stubCart{line(1, 10, 1, "5", false)}, input, nil, apperr.ErrUnavailable, []string{"unavailable"}},
		{"cart changed", stubCart{line(1, 10, 1, "5", true)}, input, ErrCartChanged, apperr.ErrConflict, []string{"conflict"}},
		{"total too large", stubCart{line(1, 10, 1000, "99999999.99", true)}, input, nil, ErrOrderTooLarge, []string{"too_large"}},
		{"database failure", stubCart{line(1, 10, 1, "5", true)}, input, errors.New("tx aborted"), nil, []string{"error"}},
		{"missing address", stubCart{line(1, 10, 1, "5", true)}, PlaceOrderInput{PaymentMethod: "cash", DeliveryAddress: "  "}, nil, apperr.ErrInvalidArgument, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockOrderRepository{
				CheckoutFunc: func(ctx context.Context, order *entity.Order, snapshot []cart.CartItem, price func([]cart.CartItem) error) error {
					return tt.checkout
				},
			}
			pub := &recordingPublisher{}
			rec := &recordingRecorder{}

			_, err := NewOrderUsecase(repo, tt.cart, pub, rec).PlaceOrder(context.Background(), 7, tt.input)

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.wantResult, rec.placed)
			assert.Empty(t, pub.events)
		})
	}
}

func TestOrderUsecase_PlaceOrder_PricesFromLockedRead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		locked    []cart.CartItem
		wantErr   error
		wantTotal string
		wantPrice string
		wantPlace []string
	}{
		{"price changed before the lock", []cart.CartItem{line(1, 10, 2, "15.00", true)}, nil, "30.00", "15.00", []string{"success"}},
		{"switched off before the lock", []cart.CartItem{line(1, 10, 2, "12.50", false)}, ErrItemUnavailable, "", "", []string{"unavailable"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var created *entity.Order
			repo := &mockOrderRepository{
				CheckoutFunc: func(ctx context.Context, order *entity.Order, snapshot []cart.CartItem, price func([]cart.CartItem) error) error {
					if err := price(tt.locked); err != nil {
						return err
					}
					created = order
					order.ID = 9
					return nil
				},
				FindByIDForUserFunc: func(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
					return created, nil
				},
			}
			rec := &recordingRecorder{}
			uc := NewOrderUsecase(repo, stubCart{line(1, 10, 2, "12.50", true)}, nil, rec)

			order, err := uc.PlaceOrder(context.Background(), 7, input)

			assert.Equal(t, tt.wantPlace, rec.placed)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, order.TotalAmount.StringFixed(2))
			require.Len(t, order.Items, 1)
			assert.Equal(t, tt.wantPrice, order.Items[0].Price.StringFixed(2))
		})
	}
}

func TestOrderUsecase_UpdateOrderStatus(t *testing.T) {
	t.Parallel()

	status := func(s entity.Status) *entity.Status { return &s }
	payment := func(p entity.PaymentStatus) *entity.PaymentStatus { return &p }

	tests := []struct {
		name        string
		current     entity.Order
		in          UpdateStatusInput
		wantErr     error
		wantStatus  entity.Status
		wantPayment entity.PaymentStatus
		wantEvent   bool
	}{
		{"advance status", entity.Order{Status: entity.StatusPending, PaymentStatus: entity.PaymentUnpaid},
			UpdateStatusInput{Status: status(entity.StatusConfirmed)}, nil, entity.StatusConfirmed, entity.PaymentUnpaid, true},
		{"mark paid", entity.Order{Status: entity.StatusPending, PaymentStatus: entity.PaymentUnpaid},
			UpdateStatusInput{PaymentStatus: payment(entity.PaymentPaid)}, nil, entity.StatusPending, entity.PaymentPaid, true},
		{"same value is a no-op", entity.Order{Status: entity.StatusPending, PaymentStatus: entity.PaymentUnpaid},
			UpdateStatusInput{Status: status(entity.StatusPending)}, nil, entity.StatusPending, entity.PaymentUnpaid, false},
		{"skip ahead rejected", entity.Order{Status: entity.StatusPending, PaymentStatus: entity.PaymentUnpaid},
			UpdateStatusInput{Status: status(entity.StatusDelivered)}, ErrInvalidTransition, "", "", false},
		{"refund unpaid rejected", entity.Order{Status: entity.StatusPending, PaymentStatus: entity.PaymentUnpaid},
			UpdateStatusInput{PaymentStatus: payment(entity.PaymentRefunded)}, ErrInvalidTransition, "", "", false},
		{"unknown status", entity.Order{}, UpdateStatusInput{Status: status("shipped")}, ErrInvalidStatus, "", "", false},
		{"unknown payment status", entity.Order{}, UpdateStatusInput{PaymentStatus: payment("void")}, ErrInvalidStatus, "", "", false},
		{"nothing to update", entity.Order{}, UpdateStatusInput{}, ErrNothingToUpdate, "", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockOrderRepository{
				UpdateStatusFunc: func(ctx context.Context, orderID uint, apply func(o *entity.Order) error) (*entity.Order, error) {
					o := tt.current
					o.ID = orderID
					if err := apply(&o); err != nil {
						return nil, err
					}
					return &o, nil
				},
			}
			pub := &recordingPublisher{}
			rec := &recordingRecorder{}

			got, err := NewOrderUsecase(repo, stubCart{}, pub, rec).UpdateOrderStatus(context.Background(), 5, tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
				assert.Empty(t, pub.events)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantPayment, got.PaymentStatus)
			if tt.wantEvent {
				assert.Equal(t, []string{EventOrderUpdated}, pub.events)
				assert.Len(t, rec.statuses, 1)
			} else {
				assert.Empty(t, pub.events)
			}
		})
	}
}

func TestOrderUsecase_NilCollaborators(t *testing.T) {
	t.Parallel()

	repo := &mockOrderRepository{
		FindByIDForUserFunc: func(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
			return nil, errors.New("replica lag")
		},
	}
	uc := NewOrderUsecase(repo, stubCart{line(1, 10, 1, "3.00", true)}, nil, nil)

	order, err := uc.PlaceOrder(context.Background(), 7, input)

	require.NoError(t, err)
	assert.Equal(t, uint(1), order.ID)
	assert.Equal(t, "3.00", order.TotalAmount.StringFixed(2))
}
