// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"orderup_backend/internal/api"
	"orderup_backend/internal/feature/auth/transport/http/dto"
	"orderup_backend/internal/feature/auth/usecase"
)

// AuthUsecase defines the auth flows the handler depends on.
// The interface lives with the consumer, not the provider.
type AuthUsecase interface {
	Signup(ctx context.Context, in usecase.SignupInput) (string, error)
	VerifyOTP(ctx context.Context, phone, code string, meta usecase.ClientMeta) (*usecase.TokenPair, error)
	ResendOTP(ctx context.Context, phone string) error
	Login(ctx context.Context, email, password string, meta usecase.ClientMeta) (*usecase.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string, meta usecase.ClientMeta) (*usecase.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup registers a user and sends the verification code.
// - 400 on validation errors
// - 409 on a duplicate email or phone number
// - 201 once the OTP has been sent
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "signup", err)
		return
	}
	verificationID, err := h.auth.Signup(c.Request.Context(), usecase.SignupInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		api.WriteError(c, "signup", err)
		return
	}
	slog.Info("user signup successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.SignupRes{
		Message:        "OTP sent to your phone number",
		VerificationID: verificationID,
	})
}

// VerifyOTP checks the code and signs the user in.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "verify otp", err)
		return
	}
	pair, err := h.auth.VerifyOTP(c.Request.Context(), req.PhoneNumber, req.OTP, clientMeta(c))
	if err != nil {
		api.WriteError(c, "verify otp", err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse(pair))
}

// ResendOTP sends a fresh code.
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req dto.ResendOTPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "resend otp", err)
		return
	}
	if err := h.auth.ResendOTP(c.Request.Context(), req.PhoneNumber); err != nil {
		api.WriteError(c, "resend otp", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "OTP resent"})
}

// Login authenticates by email and password.
// Every failure is reported as 401 with the same message so callers cannot probe for accounts.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "login", err)
		return
	}
	pair, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, clientMeta(c))
	if err != nil {
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
		return
	}
	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, tokenResponse(pair))
}

// Refresh rotates a refresh token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "refresh", err)
		return
	}
	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, clientMeta(c))
	if err != nil {
		api.WriteError(c, "refresh", err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse(pair))
}

// Logout revokes a refresh token.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "logout", err)
		return
	}
	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		api.WriteError(c, "logout", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "logged out"})
}

func clientMeta(c *gin.Context) usecase.ClientMeta {
	return usecase.ClientMeta{UserAgent: c.Request.UserAgent(), IPAddress: c.ClientIP()}
}

func tokenResponse(p *usecase.TokenPair) api.TokenResponse {
	return api.TokenResponse{Token: p.AccessToken, RefreshToken: p.RefreshToken, ExpiresIn: p.ExpiresIn}
}
