// Package entity defines the delivery address book.
package entity

import "time"

// Address is a saved delivery address. A user has at most one default address;
// the partial unique index backs the transactional flip in the repository.
type Address struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index;uniqueIndex:idx_address_single_default,where:is_default = true" json:"user_id"`
	FullAddress string    `gorm:"type:text;not null" json:"full_address"`
	City        string    `gorm:"size:100;not null" json:"city"`
	State       string    `gorm:"size:100" json:"state"`
	ZipCode     string    `gorm:"size:20" json:"zip_code"`
	IsDefault   bool      `gorm:"not null" json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
