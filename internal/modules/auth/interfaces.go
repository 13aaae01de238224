package auth

import (
	"context"
	"time"

	"scheduling/internal/domain"
)

// UserRepository lists the user store methods the auth service needs.
type UserRepository interface {
	CreateWithCustomer(ctx context.Context, u *domain.User, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string, excludeID int64) (bool, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
	MarkEmailVerified(ctx context.Context, id int64, at time.Time) error
	MarkPhoneVerified(ctx context.Context, id int64, at time.Time) error
}

// VerificationRepository stores hashed email verification codes.
type VerificationRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.EmailVerificationCode, error)
	Replace(ctx context.Context, userID int64, codeHash string, sentAt, expiresAt time.Time) error
	IncrementAttempts(ctx context.Context, userID int64) (int, error)
	MarkUsed(ctx context.Context, userID int64, at time.Time) error
}

type TokenIssuer interface {
	GenerateToken(userID int64, role, email string) (string, error)
}
