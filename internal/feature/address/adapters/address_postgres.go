// Package adapters provides the GORM repository for addresses.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"orderup_backend/internal/feature/address/domain/entity"
	"orderup_backend/internal/feature/address/usecase"
	platformdb "orderup_backend/internal/platform/db"
)

type addressPostgres struct {
	db *gorm.DB
}

var _ usecase.AddressRepository = (*addressPostgres)(nil)

// NewAddressPostgres creates the GORM address repository.
func NewAddressPostgres(db *gorm.DB) *addressPostgres {
	return &addressPostgres{db: db}
}

func (r *addressPostgres) ListByUser(ctx context.Context, userID uint) ([]entity.Address, error) {
	var out []entity.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC").Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *addressPostgres) Create(ctx context.Context, a *entity.Address) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.IsDefault {
			if err := clearDefaults(tx, a.UserID, 0); err != nil {
				return err
			}
		}
		return tx.Create(a).Error
	}))
}

func (r *addressPostgres) Update(ctx context.Context, userID, addressID uint, apply func(a *entity.Address)) (*entity.Address, error) {
	var a entity.Address
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", addressID, userID).First(&a).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrAddressNotFound
			}
			return err
		}
		apply(&a)
		if a.IsDefault {
			if err := clearDefaults(tx, userID, a.ID); err != nil {
				return err
			}
		}
		return tx.Model(&a).
			Select("FullAddress", "City", "State", "ZipCode", "IsDefault", "UpdatedAt").
			Updates(&a).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *addressPostgres) Delete(ctx context.Context, userID, addressID uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", addressID, userID).Delete(&entity.Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrAddressNotFound
	}
	return nil
}

// clearDefaults unsets every default address of the user except keepID.
func clearDefaults(tx *gorm.DB, userID, keepID uint) error {
	return tx.Model(&entity.Address{}).
		Where("user_id = ? AND is_default = ? AND id <> ?", userID, true, keepID).
		Update("is_default", false).Error
}

// translate maps a violation of the single-default index to ErrDefaultChanged.
func translate(err error) error {
	if platformdb.IsDuplicateKey(err) {
		return usecase.ErrDefaultChanged
	}
	return err
}
