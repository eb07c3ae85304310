// Package dto defines the profile's HTTP bodies.
package dto

import (
	"math"
	"time"

	authentity "orderup_backend/internal/feature/auth/domain/entity"
	"orderup_backend/internal/feature/profile/domain/entity"
)

// UpdateProfileReq is the body of PUT /profile.
type UpdateProfileReq struct {
	FullName    *string `json:"full_name" binding:"omitempty,max=255"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=32"`
}

// ProfileRes is the public view of a user.
type ProfileRes struct {
	ID           uint      `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	ProfileImage string    `json:"profile_image"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewProfileRes(u authentity.User) ProfileRes {
	return ProfileRes{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		PhoneNumber:  u.PhoneNumber,
		ProfileImage: u.ProfileImage,
		IsVerified:   u.IsVerified,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// StatsRes is the body of GET /profile/stats. The average is rounded to two places.
type StatsRes struct {
	Orders        int64   `json:"orders"`
	Reviews       int64   `json:"reviews"`
	Addresses     int64   `json:"addresses"`
	AverageRating float64 `json:"average_rating"`
	Years         int     `json:"years"`
}

func NewStatsRes(s entity.Stats) StatsRes {
	return StatsRes{
		Orders:        s.Orders,
		Reviews:       s.Reviews,
		Addresses:     s.Addresses,
		AverageRating: math.Round(s.AverageRating*100) / 100,
		Years:         s.Years,
	}
}
