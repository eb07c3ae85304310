// Package entity defines the catalog's menu item.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FoodItem is a menu entry. Rating is derived from reviews and is nil until the first one.
type FoodItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null;index" json:"name"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Image       string          `gorm:"size:512" json:"image"`
	Category    string          `gorm:"size:100;not null;index" json:"category"`
	Calories    *int            `json:"calories"`
	Protein     *float64        `json:"protein"`
	Carbs       *float64        `json:"carbs"`
	Fat         *float64        `json:"fat"`
	IsAvailable bool            `gorm:"not null" json:"is_available"`
	Rating      *float64        `json:"rating"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Filter narrows a catalog listing. Zero values match everything.
type Filter struct {
	Category string
	// Search matches name or description, case-insensitively.
	Search        string
	AvailableOnly bool
}
