package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"orderup_backend/internal/feature/auth/domain/entity"
	"orderup_backend/internal/feature/auth/usecase"
	"orderup_backend/internal/platform/db"
)

type userPostgres struct {
	db *gorm.DB
}

var _ usecase.UserRepository = (*userPostgres)(nil)

// NewUserPostgres creates the GORM user repository.
func NewUserPostgres(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// Create inserts u. A unique violation is reported as the email or phone conflict it stems from.
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if err == nil {
		return nil
	}
	if !db.IsDuplicateKey(err) {
		return err
	}
	var n int64
	if cerr := r.db.WithContext(ctx).Model(&entity.User{}).Where("email = ?", u.Email).Count(&n).Error; cerr == nil && n > 0 {
		return usecase.ErrEmailAlreadyExists
	}
	return usecase.ErrPhoneAlreadyExists
}

func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userPostgres) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	return r.findOne(ctx, "phone_number = ?", phone)
}

func (r *userPostgres) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userPostgres) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// SetOTP stores a new pending code for the user.
func (r *userPostgres) SetOTP(ctx context.Context, userID uint, code string, expiresAt time.Time) error {
	return r.update(ctx, userID, map[string]any{
		"otp":            code,
		"otp_expires_at": expiresAt,
		"otp_attempts":   0,
	})
}

// MarkVerified sets IsVerified and clears the pending code.
func (r *userPostgres) MarkVerified(ctx context.Context, userID uint) error {
	return r.update(ctx, userID, map[string]any{
		"is_verified":    true,
		"otp":            nil,
		"otp_expires_at": nil,
		"otp_attempts":   0,
	})
}

// ReserveOTPAttempt increments the attempt counter only while it is below limit,
// so concurrent guesses cannot exceed it.
func (r *userPostgres) ReserveOTPAttempt(ctx context.Context, userID uint, limit int) error {
	result := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ? AND otp_attempts < ?", userID, limit).
		Update("otp_attempts", gorm.Expr("otp_attempts + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrTooManyOTPAttempts
	}
	return nil
}

func (r *userPostgres) update(ctx context.Context, userID uint, fields map[string]any) error {
	result := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}
