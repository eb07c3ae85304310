// Package entity defines the domain entities for the auth feature.
package entity

import (
	"crypto/subtle"
	"time"
)

// Roles a user can hold.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a registered customer or administrator.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	FullName string `gorm:"size:255;not null" json:"full_name"`

	// Email is used for login and must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// PhoneNumber receives OTP codes and must be unique across all users.
	PhoneNumber string `gorm:"uniqueIndex;size:32;not null" json:"phone_number"`

	// Password is the bcrypt hash. It is never serialised.
	Password string `gorm:"size:255;not null" json:"-"`

	Role string `gorm:"size:16;not null;default:customer" json:"role"`

	// ProfileImage is the public path of the uploaded avatar, empty if none.
	ProfileImage string `gorm:"size:512" json:"profile_image"`

	IsVerified bool `gorm:"not null;default:false" json:"is_verified"`

	// OTP and OTPExpiresAt hold the pending verification code. Both are nil once verified.
	OTP          *string    `gorm:"size:6" json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
	// OTPAttempts counts verification tries against the pending code.
	OTPAttempts int `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// OTPMatches reports whether code equals the pending OTP and has not expired at now.
func (u *User) OTPMatches(code string, now time.Time) bool {
	if u.OTP == nil || u.OTPExpiresAt == nil {
		return false
	}
	if !now.Before(*u.OTPExpiresAt) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*u.OTP), []byte(code)) == 1
}
