package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyRegistered  = errors.New("email or phone already registered")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrUserNotFound       = errors.New("user not found")

	ErrAlreadyVerified = errors.New("already verified")
	ErrInvalidCode     = errors.New("invalid verification code")
	ErrCodeExpired     = errors.New("verification code expired")
	ErrTooManyAttempts = errors.New("too many verification attempts")
	ErrResendCooldown  = errors.New("verification code recently sent")
	ErrPhoneMissing    = errors.New("phone number not set")
	ErrProviderFailure = errors.New("verification provider failure")
)
