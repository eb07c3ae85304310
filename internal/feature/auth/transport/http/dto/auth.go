// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// SignupReq is the body of POST /signup.
type SignupReq struct {
	FullName    string `json:"full_name" binding:"required,max=255"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phone_number" binding:"required,max=32"`
}

// SignupRes acknowledges a registration awaiting OTP verification.
type SignupRes struct {
	Message        string `json:"message"`
	VerificationID string `json:"verification_id,omitempty"`
}

// VerifyOTPReq is the body of POST /verify-otp.
type VerifyOTPReq struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	OTP         string `json:"otp" binding:"required,len=6,numeric"`
}

// ResendOTPReq is the body of POST /resend-otp.
type ResendOTPReq struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// LoginReq is the body of POST /login.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshReq carries a refresh token, for POST /refresh and POST /logout.
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
