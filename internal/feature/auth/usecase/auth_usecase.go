package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"orderup_backend/internal/feature/auth/domain/entity"
)

const (
	minPasswordLength = 8

	// signupOTPTTL matches the ttl requested from the SMS gateway.
	signupOTPTTL = 5 * time.Minute
	resendOTPTTL = 10 * time.Minute

	otpDigits = 6

	// maxOTPAttempts bounds verification tries per issued code.
	maxOTPAttempts = 5

	// maxSessionsPerUser bounds concurrent refresh sessions; the oldest is evicted.
	maxSessionsPerUser = 5

	defaultSessionTTL = 7 * 24 * time.Hour
)

// dummyHash keeps Login's bcrypt cost constant when the email is unknown.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts user persistence for the auth flows.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByPhone(ctx context.Context, phone string) (*entity.User, error)
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	SetOTP(ctx context.Context, userID uint, code string, expiresAt time.Time) error
	MarkVerified(ctx context.Context, userID uint) error
	// ReserveOTPAttempt atomically counts one verification try. It returns ErrTooManyOTPAttempts
	// when limit tries were already made against the pending code.
	ReserveOTPAttempt(ctx context.Context, userID uint, limit int) error
}

// TokenGenerator issues signed access tokens.
type TokenGenerator interface {
	GenerateToken(userID uint, email, role string) (string, error)
	Expiration() time.Duration
}

// OTPSender delivers verification codes by SMS.
type OTPSender interface {
	// SendChallenge asks the gateway to generate and deliver a code. It returns the code
	// and the gateway's verification id.
	SendChallenge(ctx context.Context, phone string) (code, verificationID string, err error)
	// SendCode delivers a code generated by the caller.
	SendCode(ctx context.Context, phone, code string) error
}

// SignupInput is the registration form.
type SignupInput struct {
	FullName    string
	Email       string
	Password    string
	PhoneNumber string
}

// ClientMeta identifies the client a session is issued to.
type ClientMeta struct {
	UserAgent string
	IPAddress string
}

// TokenPair is returned by every flow that authenticates a user.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type authUsecase struct {
	users      UserRepository
	sessions   SessionRepository
	tokens     TokenGenerator
	otp        OTPSender
	sessionTTL time.Duration
	now        func() time.Time
}

// NewAuthUsecase wires the auth flows. A non-positive sessionTTL falls back to seven days.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenGenerator, otp OTPSender, sessionTTL time.Duration) *authUsecase {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &authUsecase{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		otp:        otp,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// Signup registers an unverified customer and sends the first OTP.
func (u *authUsecase) Signup(ctx context.Context, in SignupInput) (string, error) {
	if len(in.Password) < minPasswordLength {
		return "", ErrWeakPassword
	}
	if _, err := u.users.FindByEmail(ctx, in.Email); err == nil {
		return "", ErrEmailAlreadyExists
	}
	if _, err := u.users.FindByPhone(ctx, in.PhoneNumber); err == nil {
		return "", ErrPhoneAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	// The gateway generates the code, so it is sent before the user row exists.
	code, verificationID, err := u.otp.SendChallenge(ctx, in.PhoneNumber)
	if err != nil {
		return "", fmt.Errorf("failed to send OTP: %w", err)
	}
	expiresAt := u.now().Add(signupOTPTTL)

	user := &entity.User{
		FullName:     in.FullName,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		Password:     string(hashed),
		Role:         entity.RoleCustomer,
		OTP:          &code,
		OTPExpiresAt: &expiresAt,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return "", err
	}
	return verificationID, nil
}

// VerifyOTP checks the pending code, marks the user verified and signs them in.
// Each issued code allows maxOTPAttempts tries; a resend starts a new budget.
func (u *authUsecase) VerifyOTP(ctx context.Context, phone, code string, meta ClientMeta) (*TokenPair, error) {
	user, err := u.users.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if err := u.users.ReserveOTPAttempt(ctx, user.ID, maxOTPAttempts); err != nil {
		return nil, err
	}
	if !user.OTPMatches(code, u.now()) {
		return nil, ErrInvalidOTP
	}
	if err := u.users.MarkVerified(ctx, user.ID); err != nil {
		return nil, err
	}
	return u.issue(ctx, user, meta)
}

// ResendOTP replaces the pending code with a fresh one.
func (u *authUsecase) ResendOTP(ctx context.Context, phone string) error {
	user, err := u.users.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}
	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := u.users.SetOTP(ctx, user.ID, code, u.now().Add(resendOTPTTL)); err != nil {
		return err
	}
	if err := u.otp.SendCode(ctx, phone, code); err != nil {
		return fmt.Errorf("failed to send OTP: %w", err)
	}
	return nil
}

// Login authenticates by email and password.
// bcrypt runs even for unknown emails so response time does not reveal registered addresses.
func (u *authUsecase) Login(ctx context.Context, email, password string, meta ClientMeta) (*TokenPair, error) {
	user, err := u.users.FindByEmail(ctx, email)

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}
	return u.issue(ctx, user, meta)
}

// Refresh exchanges a valid refresh token for a new pair and revokes the old session.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string, meta ClientMeta) (*TokenPair, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if !session.IsValid() {
		return nil, ErrInvalidRefreshToken
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, err
	}
	return u.issue(ctx, user, meta)
}

// Logout revokes the session behind refreshToken.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if err := u.sessions.Revoke(ctx, refreshToken); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return ErrInvalidRefreshToken
		}
		return err
	}
	return nil
}

// CleanupExpiredSessions is run periodically by the server's cron job.
func (u *authUsecase) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	return u.sessions.DeleteExpired(ctx)
}

func (u *authUsecase) issue(ctx context.Context, user *entity.User, meta ClientMeta) (*TokenPair, error) {
	access, err := u.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	count, err := u.sessions.CountByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for ; count >= maxSessionsPerUser; count-- {
		if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	refresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	now := u.now()
	session := &entity.Session{
		ID:        refresh,
		UserID:    user.ID,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	slog.Info("session issued", "user_id", user.ID, "remote_addr", meta.IPAddress)

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(u.tokens.Expiration().Seconds()),
	}, nil
}

// newRefreshToken returns 32 random bytes as 64 hex chars.
func newRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// generateOTP returns a uniformly random zero-padded 6-digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}
