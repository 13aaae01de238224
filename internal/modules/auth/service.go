package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"scheduling/internal/domain"
	"scheduling/internal/notify"
	"scheduling/internal/pkg/password"
	"scheduling/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxCodeAttempts = 5

var codeRegex = regexp.MustCompile(`^\d{6}$`)

type Options struct {
	VerificationCodePepper string
	VerifyCodeTTL          time.Duration
	VerifyResendCooldown   time.Duration
}

// Service contains all business logic for authentication and contact verification
type Service struct {
	users  UserRepository
	codes  VerificationRepository
	jwt    TokenIssuer
	mailer notify.Mailer
	phones notify.PhoneVerifier
	log    *zap.Logger
	opts   Options
	now    func() time.Time
}

func NewService(
	users UserRepository,
	codes VerificationRepository,
	jwt TokenIssuer,
	mailer notify.Mailer,
	phones notify.PhoneVerifier,
	log *zap.Logger,
	opts Options,
) *Service {
	return &Service{
		users:  users,
		codes:  codes,
		jwt:    jwt,
		mailer: mailer,
		phones: phones,
		log:    log,
		opts:   opts,
		now:    time.Now,
	}
}

// Register creates a CUSTOMER account with an empty customer profile and sends the first email code.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyRegistered
	}

	var phone *string
	if req.Phone != "" {
		taken, err := s.users.ExistsByPhone(ctx, req.Phone, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrAlreadyRegistered
		}
		phone = &req.Phone
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
		IsActive:     true,
	}
	if err := s.users.CreateWithCustomer(ctx, user, &domain.Customer{}); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	if _, err := s.sendEmailCode(ctx, user); err != nil {
		s.log.Warn("registration email code not sent", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role), user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Matches(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role), user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.getUser(ctx, userID)
}

func (s *Service) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if !password.Matches(user.PasswordHash, req.CurrentPassword) {
		return ErrInvalidCredentials
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

func (s *Service) RequestEmailVerification(ctx context.Context, userID int64) (*EmailVerificationSent, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.EmailVerified {
		return nil, ErrAlreadyVerified
	}

	current, err := s.codes.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if current != nil && current.LastSentAt.Add(s.opts.VerifyResendCooldown).After(s.now()) {
		return nil, ErrResendCooldown
	}

	return s.sendEmailCode(ctx, user)
}

func (s *Service) ConfirmEmailVerification(ctx context.Context, userID int64, code string) error {
	if !codeRegex.MatchString(code) {
		return ErrInvalidCode
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return ErrAlreadyVerified
	}

	row, err := s.codes.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCode
		}
		return err
	}

	now := s.now()
	if row.UsedAt != nil || !row.ExpiresAt.After(now) {
		return ErrCodeExpired
	}
	if row.Attempts >= maxCodeAttempts {
		return ErrTooManyAttempts
	}

	if hashVerificationCode(code, s.opts.VerificationCodePepper) != row.CodeHash {
		attempts, err := s.codes.IncrementAttempts(ctx, user.ID)
		if err != nil {
			return err
		}
		if attempts >= maxCodeAttempts {
			return ErrTooManyAttempts
		}
		return ErrInvalidCode
	}

	if err := s.users.MarkEmailVerified(ctx, user.ID, now); err != nil {
		return err
	}
	return s.codes.MarkUsed(ctx, user.ID, now)
}

func (s *Service) RequestPhoneVerification(ctx context.Context, userID int64) (*PhoneVerificationStatus, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.PhoneNumber() == "" {
		return nil, ErrPhoneMissing
	}
	if user.PhoneVerified {
		return nil, ErrAlreadyVerified
	}

	res, err := s.phones.Start(ctx, user.PhoneNumber())
	if err != nil {
		s.log.Error("sms verification start failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	return &PhoneVerificationStatus{Status: res.Status, Channel: res.Channel}, nil
}

func (s *Service) ConfirmPhoneVerification(ctx context.Context, userID int64, code string) (*PhoneVerificationStatus, error) {
	if !codeRegex.MatchString(code) {
		return nil, ErrInvalidCode
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.PhoneNumber() == "" {
		return nil, ErrPhoneMissing
	}
	if user.PhoneVerified {
		return nil, ErrAlreadyVerified
	}

	res, err := s.phones.Check(ctx, user.PhoneNumber(), code)
	if err != nil {
		s.log.Error("sms verification check failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	if res.Status != notify.VerificationApproved {
		return nil, ErrInvalidCode
	}

	if err := s.users.MarkPhoneVerified(ctx, user.ID, s.now()); err != nil {
		return nil, err
	}
	return &PhoneVerificationStatus{Status: res.Status, Channel: res.Channel, Verified: true}, nil
}

func (s *Service) sendEmailCode(ctx context.Context, user *domain.User) (*EmailVerificationSent, error) {
	code, err := generateVerificationCode()
	if err != nil {
		return nil, err
	}

	now := s.now()
	expiresAt := now.Add(s.opts.VerifyCodeTTL)
	if err := s.codes.Replace(ctx, user.ID, hashVerificationCode(code, s.opts.VerificationCodePepper), now, expiresAt); err != nil {
		return nil, err
	}

	msg := notify.VerificationCodeEmail(user.Email, user.FullName(), code, s.opts.VerifyCodeTTL)
	if _, err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Error("verification email failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}

	return &EmailVerificationSent{
		Status:      "sent",
		ExpiresAt:   expiresAt,
		ResendAfter: now.Add(s.opts.VerifyResendCooldown),
	}, nil
}

func (s *Service) getUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func hashVerificationCode(code, pepper string) string {
	h := sha256.Sum256([]byte(code + pepper))
	return hex.EncodeToString(h[:])
}
