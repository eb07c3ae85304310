// Package usecase implements the address book.
package usecase

import (
	"context"
	"strings"

	"orderup_backend/internal/feature/address/domain/entity"
)

// AddressRepository persists addresses. Create and Update clear the user's other
// defaults in the same transaction when the address is marked default.
type AddressRepository interface {
	// ListByUser returns the default address first, then newest first.
	ListByUser(ctx context.Context, userID uint) ([]entity.Address, error)
	Create(ctx context.Context, a *entity.Address) error
	Update(ctx context.Context, userID, addressID uint, apply func(a *entity.Address)) (*entity.Address, error)
	Delete(ctx context.Context, userID, addressID uint) error
}

// CreateInput is a new address.
type CreateInput struct {
	FullAddress string
	City        string
	State       string
	ZipCode     string
	IsDefault   bool
}

// UpdateInput is a partial edit; nil fields are left unchanged.
type UpdateInput struct {
	FullAddress *string
	City        *string
	State       *string
	ZipCode     *string
	IsDefault   *bool
}

// AddressUsecase manages a user's addresses.
type AddressUsecase struct {
	repo AddressRepository
}

// NewAddressUsecase creates an AddressUsecase.
func NewAddressUsecase(repo AddressRepository) *AddressUsecase {
	return &AddressUsecase{repo: repo}
}

// List returns the user's addresses, default first.
func (u *AddressUsecase) List(ctx context.Context, userID uint) ([]entity.Address, error) {
	return u.repo.ListByUser(ctx, userID)
}

// Create stores a new address, making it the only default when requested.
func (u *AddressUsecase) Create(ctx context.Context, userID uint, in CreateInput) (*entity.Address, error) {
	a := &entity.Address{
		UserID:      userID,
		FullAddress: strings.TrimSpace(in.FullAddress),
		City:        strings.TrimSpace(in.City),
		State:       strings.TrimSpace(in.State),
		ZipCode:     strings.TrimSpace(in.ZipCode),
		IsDefault:   in.IsDefault,
	}
	if a.FullAddress == "" || a.City == "" {
		return nil, ErrAddressRequired
	}
	if err := u.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update edits one of the user's addresses.
func (u *AddressUsecase) Update(ctx context.Context, userID, addressID uint, in UpdateInput) (*entity.Address, error) {
	if (in.FullAddress != nil && strings.TrimSpace(*in.FullAddress) == "") ||
		(in.City != nil && strings.TrimSpace(*in.City) == "") {
		return nil, ErrAddressRequired
	}
	return u.repo.Update(ctx, userID, addressID, func(a *entity.Address) {
		if in.FullAddress != nil {
			a.FullAddress = strings.TrimSpace(*in.FullAddress)
		}
		if in.City != nil {
			a.City = strings.TrimSpace(*in.City)
		}
		if in.State != nil {
			a.State = strings.TrimSpace(*in.State)
		}
		if in.ZipCode != nil {
			a.ZipCode = strings.TrimSpace(*in.ZipCode)
		}
		if in.IsDefault != nil {
			a.IsDefault = *in.IsDefault
		}
	})
}

// Delete removes one of the user's addresses.
func (u *AddressUsecase) Delete(ctx context.Context, userID, addressID uint) error {
	return u.repo.Delete(ctx, userID, addressID)
}
