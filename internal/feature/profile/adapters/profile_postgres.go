// Package adapters provides the GORM repository behind profiles.
package adapters

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	addressentity "orderup_backend/internal/feature/address/domain/entity"
	authentity "orderup_backend/internal/feature/auth/domain/entity"
	orderentity "orderup_backend/internal/feature/order/domain/entity"
	"orderup_backend/internal/feature/profile/domain/entity"
	"orderup_backend/internal/feature/profile/usecase"
	reviewentity "orderup_backend/internal/feature/review/domain/entity"
	platformdb "orderup_backend/internal/platform/db"
)

type profilePostgres struct {
	db *gorm.DB
}

var _ usecase.ProfileRepository = (*profilePostgres)(nil)

// NewProfilePostgres creates the GORM profile repository.
func NewProfilePostgres(db *gorm.DB) *profilePostgres {
	return &profilePostgres{db: db}
}

func (r *profilePostgres) FindByID(ctx context.Context, userID uint) (*authentity.User, error) {
	var u authentity.User
	if err := r.db.WithContext(ctx).First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProfileNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Update writes fields and returns the fresh row. A unique violation can only come from the phone number.
func (r *profilePostgres) Update(ctx context.Context, userID uint, fields map[string]any) (*authentity.User, error) {
	res := r.db.WithContext(ctx).Model(&authentity.User{}).Where("id = ?", userID).Updates(fields)
	if res.Error != nil {
		if platformdb.IsDuplicateKey(res.Error) {
			return nil, usecase.ErrPhoneTaken
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, usecase.ErrProfileNotFound
	}
	return r.FindByID(ctx, userID)
}

type reviewAggregate struct {
	ReviewCount int64
	AvgRating   sql.NullFloat64
}

func (r *profilePostgres) Activity(ctx context.Context, userID uint) (*entity.Activity, error) {
	db := r.db.WithContext(ctx)
	var out entity.Activity

	if err := db.Model(&orderentity.Order{}).Where("user_id = ?", userID).Count(&out.Orders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&addressentity.Address{}).Where("user_id = ?", userID).Count(&out.Addresses).Error; err != nil {
		return nil, err
	}

	var agg reviewAggregate
	err := db.Model(&reviewentity.Review{}).
		Select("COUNT(*) AS review_count, AVG(rating) AS avg_rating").
		Where("user_id = ?", userID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	out.Reviews = agg.ReviewCount
	if agg.AvgRating.Valid {
		out.AverageRating = agg.AvgRating.Float64
	}
	return &out, nil
}
