package auth

import (
	"time"

	"scheduling/internal/domain"
)

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email,max=255"`
	Phone     string `json:"phone" binding:"omitempty,e164"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

type ConfirmCodeRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

// AuthResult is returned by register and login. The token travels in the envelope's token field.
type AuthResult struct {
	User  *domain.User
	Token string
}

type EmailVerificationSent struct {
	Status      string    `json:"status"`
	ExpiresAt   time.Time `json:"expires_at"`
	ResendAfter time.Time `json:"resend_after"`
}

type PhoneVerificationStatus struct {
	Status   string `json:"status"`
	Channel  string `json:"channel,omitempty"`
	Verified bool   `json:"verified"`
}
