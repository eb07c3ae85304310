// Package usecase implements signup, OTP verification, login and session rotation.
package usecase

import (
	"fmt"

	"orderup_backend/internal/shared/apperr"
)

var (
	// ErrUserNotFound is returned when a user cannot be found by email, phone or ID.
	ErrUserNotFound = fmt.Errorf("user %w", apperr.ErrNotFound)

	// ErrEmailAlreadyExists is returned when signing up with a registered email.
	ErrEmailAlreadyExists = fmt.Errorf("email already exists: %w", apperr.ErrConflict)

	// ErrPhoneAlreadyExists is returned when signing up with a registered phone number.
	ErrPhoneAlreadyExists = fmt.Errorf("phone number already exists: %w", apperr.ErrConflict)

	// ErrInvalidCredentials hides whether the email or the password was wrong.
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", apperr.ErrUnauthenticated)

	// ErrInvalidOTP is returned for a mismatched or expired code.
	ErrInvalidOTP = fmt.Errorf("invalid or expired OTP: %w", apperr.ErrInvalidArgument)

	// ErrTooManyOTPAttempts is returned once the pending code has used up its verification attempts.
	ErrTooManyOTPAttempts = fmt.Errorf("too many OTP attempts, request a new code: %w", apperr.ErrTooManyRequests)

	// ErrWeakPassword is returned when the password is shorter than minPasswordLength.
	ErrWeakPassword = fmt.Errorf("password must be at least %d characters long: %w", minPasswordLength, apperr.ErrInvalidArgument)

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = fmt.Errorf("session %w", apperr.ErrNotFound)

	// ErrInvalidRefreshToken is returned when a refresh token is unknown, revoked or expired.
	ErrInvalidRefreshToken = fmt.Errorf("invalid refresh token: %w", apperr.ErrUnauthenticated)
)
