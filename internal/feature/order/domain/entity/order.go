// Package entity defines orders, their lines and the status state machines.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalog "orderup_backend/internal/feature/catalog/domain/entity"
)

// MaxOrderTotal is the largest total the numeric(12,2) column holds.
var MaxOrderTotal = decimal.RequireFromString("9999999999.99")

// Order is a placed cart. TotalAmount and every line price are frozen at creation.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Reference       string          `gorm:"size:64;not null;uniqueIndex" json:"reference"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Status          Status          `gorm:"size:32;not null;index" json:"status"`
	PaymentStatus   PaymentStatus   `gorm:"size:32;not null" json:"payment_status"`
	PaymentMethod   string          `gorm:"size:50;not null" json:"payment_method"`
	DeliveryAddress string          `gorm:"type:text;not null" json:"delivery_address"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem is one line of an order. Price is the unit price when the order was placed.
type OrderItem struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	OrderID    uint             `gorm:"not null;index" json:"order_id"`
	FoodItemID uint             `gorm:"not null;index" json:"food_item_id"`
	FoodItem   catalog.FoodItem `gorm:"foreignKey:FoodItemID" json:"food_item"`
	Quantity   int              `gorm:"not null" json:"quantity"`
	Price      decimal.Decimal  `gorm:"type:numeric(10,2);not null" json:"price"`
}

// LineTotal is the frozen price times the quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemCount is the number of units across all lines.
func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// NewReference builds a unique, time-sortable order reference: YYYYMMDDhhmmss-<uuid>.
func NewReference(now time.Time) string {
	return now.UTC().Format("20060102150405") + "-" + uuid.NewString()
}
