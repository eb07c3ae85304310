// Package dto defines the address book's HTTP bodies.
package dto

import (
	"time"

	"orderup_backend/internal/feature/address/domain/entity"
)

// CreateAddressReq is the body of POST /addresses.
type CreateAddressReq struct {
	FullAddress string `json:"full_address" binding:"required"`
	City        string `json:"city" binding:"required,max=100"`
	State       string `json:"state" binding:"max=100"`
	ZipCode     string `json:"zip_code" binding:"max=20"`
	IsDefault   bool   `json:"is_default"`
}

// UpdateAddressReq is the body of PUT /addresses/:id.
type UpdateAddressReq struct {
	FullAddress *string `json:"full_address"`
	City        *string `json:"city" binding:"omitempty,max=100"`
	State       *string `json:"state" binding:"omitempty,max=100"`
	ZipCode     *string `json:"zip_code" binding:"omitempty,max=20"`
	IsDefault   *bool   `json:"is_default"`
}

type AddressRes struct {
	ID          uint      `json:"id"`
	FullAddress string    `json:"full_address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	ZipCode     string    `json:"zip_code"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewAddressRes(a entity.Address) AddressRes {
	return AddressRes{
		ID:          a.ID,
		FullAddress: a.FullAddress,
		City:        a.City,
		State:       a.State,
		ZipCode:     a.ZipCode,
		IsDefault:   a.IsDefault,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func NewAddressResList(list []entity.Address) []AddressRes {
	out := make([]AddressRes, 0, len(list))
	for _, a := range list {
		out = append(out, NewAddressRes(a))
	}
	return out
}
