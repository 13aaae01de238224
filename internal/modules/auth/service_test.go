package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"scheduling/internal/domain"
	"scheduling/internal/notify"
	"scheduling/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) CreateWithCustomer(ctx context.Context, u *domain.User, c *domain.Customer) error {
	args := m.Called(ctx, u, c)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ExistsByPhone(ctx context.Context, phone string, excludeID int64) (bool, error) {
	args := m.Called(ctx, phone, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *mockUserRepo) MarkEmailVerified(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *mockUserRepo) MarkPhoneVerified(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type mockCodeRepo struct {
	mock.Mock
}

func (m *mockCodeRepo) GetByUserID(ctx context.Context, userID int64) (*domain.EmailVerificationCode, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailVerificationCode), args.Error(1)
}

func (m *mockCodeRepo) Replace(ctx context.Context, userID int64, codeHash string, sentAt, expiresAt time.Time) error {
	args := m.Called(ctx, userID, codeHash, sentAt, expiresAt)
	return args.Error(0)
}

func (m *mockCodeRepo) IncrementAttempts(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockCodeRepo) MarkUsed(ctx context.Context, userID int64, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(userID int64, role, email string) (string, error) {
	args := m.Called(userID, role, email)
	return args.String(0), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, e notify.Email) (string, error) {
	args := m.Called(ctx, e)
	return args.String(0), args.Error(1)
}

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Start(ctx context.Context, phone string) (*notify.VerificationResult, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notify.VerificationResult), args.Error(1)
}

func (m *mockVerifier) Check(ctx context.Context, phone, code string) (*notify.VerificationResult, error) {
	args := m.Called(ctx, phone, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notify.VerificationResult), args.Error(1)
}

type fixture struct {
	users  *mockUserRepo
	codes  *mockCodeRepo
	jwt    *mockJWTService
	mailer *mockMailer
	phones *mockVerifier
	svc    *Service
	now    time.Time
}

func newFixture() *fixture {
	f := &fixture{
		users:  new(mockUserRepo),
		codes:  new(mockCodeRepo),
		jwt:    new(mockJWTService),
		mailer: new(mockMailer),
		phones: new(mockVerifier),
		now:    time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(f.users, f.codes, f.jwt, f.mailer, f.phones, zap.NewNop(), Options{
		VerificationCodePepper: "pepper",
		VerifyCodeTTL:          10 * time.Minute,
		VerifyResendCooldown:   time.Minute,
	})
	f.svc.now = func() time.Time { return f.now }
	return f
}

func hashed(t *testing.T, plain string) string {
	t.Helper()
	h, err := password.Hash(plain)
	require.NoError(t, err)
	return h
}

func TestService_Register_Success(t *testing.T) {
	f := newFixture()

	f.users.On("ExistsByEmail", mock.Anything, "jane@example.com").Return(false, nil)
	f.users.On("ExistsByPhone", mock.Anything, "+15551234567", int64(0)).Return(false, nil)
	f.users.On("CreateWithCustomer", mock.Anything, mock.AnythingOfType("*domain.User"), mock.AnythingOfType("*domain.Customer")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.User).ID = 7 }).
		Return(nil)
	f.codes.On("Replace", mock.Anything, int64(7), mock.Anything, f.now, f.now.Add(10*time.Minute)).Return(nil)
	f.mailer.On("Send", mock.Anything, mock.MatchedBy(func(e notify.Email) bool { return e.ToEmail == "jane@example.com" })).Return("msg-1", nil)
	f.jwt.On("GenerateToken", int64(7), "CUSTOMER", "jane@example.com").Return("jwt-token", nil)

	res, err := f.svc.Register(context.Background(), RegisterRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     " Jane@Example.com ",
		Phone:     "+15551234567",
		Password:  "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", res.Token)
	assert.Equal(t, domain.RoleCustomer, res.User.Role)
	assert.Equal(t, "jane@example.com", res.User.Email)
	assert.True(t, password.Matches(res.User.PasswordHash, "password123"))
	f.users.AssertExpectations(t)
	f.mailer.AssertExpectations(t)
}

func TestService_Register_EmailTaken(t *testing.T) {
	f := newFixture()
	f.users.On("ExistsByEmail", mock.Anything, "jane@example.com").Return(true, nil)

	_, err := f.svc.Register(context.Background(), RegisterRequest{Email: "jane@example.com", Password: "password123"})

	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	f.users.AssertNotCalled(t, "CreateWithCustomer", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Register_MailFailureDoesNotFail(t *testing.T) {
	f := newFixture()

	f.users.On("ExistsByEmail", mock.Anything, "jane@example.com").Return(false, nil)
	f.users.On("CreateWithCustomer", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.codes.On("Replace", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.mailer.On("Send", mock.Anything, mock.Anything).Return("", errors.New("provider down"))
	f.jwt.On("GenerateToken", mock.Anything, "CUSTOMER", "jane@example.com").Return("jwt-token", nil)

	res, err := f.svc.Register(context.Background(), RegisterRequest{Email: "jane@example.com", Password: "password123"})

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", res.Token)
}

func TestService_Login(t *testing.T) {
	tests := []struct {
		name    string
		user    *domain.User
		repoErr error
		pass    string
		wantErr error
	}{
		{"unknown email", nil, gorm.ErrRecordNotFound, "password123", ErrInvalidCredentials},
		{"wrong password", &domain.User{ID: 1, IsActive: true}, nil, "nope", ErrInvalidCredentials},
		{"disabled", &domain.User{ID: 1, IsActive: false}, nil, "password123", ErrAccountDisabled},
		{"ok", &domain.User{ID: 1, IsActive: true, Role: domain.RoleStaff, Email: "s@example.com"}, nil, "password123", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.user != nil {
				tt.user.PasswordHash = hashed(t, "password123")
			}
			f.users.On("GetByEmail", mock.Anything, "s@example.com").Return(tt.user, tt.repoErr)
			f.jwt.On("GenerateToken", int64(1), "STAFF", "s@example.com").Return("tok", nil)

			res, err := f.svc.Login(context.Background(), LoginRequest{Email: "s@example.com", Password: tt.pass})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "tok", res.Token)
		})
	}
}

func TestService_ChangePassword(t *testing.T) {
	f := newFixture()
	f.users.On("GetByID", mock.Anything, int64(3)).Return(&domain.User{ID: 3, PasswordHash: hashed(t, "old-password")}, nil)
	f.users.On("UpdatePassword", mock.Anything, int64(3), mock.AnythingOfType("string")).Return(nil)

	err := f.svc.ChangePassword(context.Background(), 3, ChangePasswordRequest{CurrentPassword: "wrong-one", NewPassword: "new-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = f.svc.ChangePassword(context.Background(), 3, ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"})
	require.NoError(t, err)
	f.users.AssertNumberOfCalls(t, "UpdatePassword", 1)
}

func TestService_RequestEmailVerification_Cooldown(t *testing.T) {
	f := newFixture()
	f.users.On("GetByID", mock.Anything, int64(5)).Return(&domain.User{ID: 5, Email: "a@example.com"}, nil)
	f.codes.On("GetByUserID", mock.Anything, int64(5)).Return(&domain.EmailVerificationCode{
		UserID:     5,
		LastSentAt: f.now.Add(-30 * time.Second),
	}, nil)

	_, err := f.svc.RequestEmailVerification(context.Background(), 5)

	assert.ErrorIs(t, err, ErrResendCooldown)
	f.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestService_RequestEmailVerification_Sends(t *testing.T) {
	f := newFixture()
	f.users.On("GetByID", mock.Anything, int64(5)).Return(&domain.User{ID: 5, Email: "a@example.com"}, nil)
	f.codes.On("GetByUserID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)
	f.codes.On("Replace", mock.Anything, int64(5), mock.Anything, f.now, f.now.Add(10*time.Minute)).Return(nil)
	f.mailer.On("Send", mock.Anything, mock.Anything).Return("msg", nil)

	res, err := f.svc.RequestEmailVerification(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, f.now.Add(time.Minute), res.ResendAfter)
}

func TestService_RequestEmailVerification_ProviderFailure(t *testing.T) {
	f := newFixture()
	f.users.On("GetByID", mock.Anything, int64(5)).Return(&domain.User{ID: 5, Email: "a@example.com"}, nil)
	f.codes.On("GetByUserID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)
	f.codes.On("Replace", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.mailer.On("Send", mock.Anything, mock.Anything).Return("", errors.New("401 unauthorized"))

	_, err := f.svc.RequestEmailVerification(context.Background(), 5)

	assert.ErrorIs(t, err, ErrProviderFailure)
}

func TestService_ConfirmEmailVerification(t *testing.T) {
	const code = "123456"

	tests := []struct {
		name      string
		row       *domain.EmailVerificationCode
		input     string
		attempts  int
		wantErr   error
		wantMarks bool
	}{
		{"bad format", nil, "12ab", 0, ErrInvalidCode, false},
		{"expired", &domain.EmailVerificationCode{CodeHash: hashVerificationCode(code, "pepper"), ExpiresAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}, code, 0, ErrCodeExpired, false},
		{"wrong code", &domain.EmailVerificationCode{CodeHash: hashVerificationCode(code, "pepper"), ExpiresAt: time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)}, "654321", 1, ErrInvalidCode, false},
		{"fifth wrong code", &domain.EmailVerificationCode{CodeHash: hashVerificationCode(code, "pepper"), Attempts: 4, ExpiresAt: time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)}, "654321", 5, ErrTooManyAttempts, false},
		{"locked", &domain.EmailVerificationCode{CodeHash: hashVerificationCode(code, "pepper"), Attempts: 5, ExpiresAt: time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)}, code, 0, ErrTooManyAttempts, false},
		{"ok", &domain.EmailVerificationCode{CodeHash: hashVerificationCode(code, "pepper"), ExpiresAt: time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)}, code, 0, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.users.On("GetByID", mock.Anything, int64(9)).Return(&domain.User{ID: 9}, nil)
			f.codes.On("GetByUserID", mock.Anything, int64(9)).Return(tt.row, nil)
			f.codes.On("IncrementAttempts", mock.Anything, int64(9)).Return(tt.attempts, nil)
			f.users.On("MarkEmailVerified", mock.Anything, int64(9), f.now).Return(nil)
			f.codes.On("MarkUsed", mock.Anything, int64(9), f.now).Return(nil)

			err := f.svc.ConfirmEmailVerification(context.Background(), 9, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			if tt.wantMarks {
				f.users.AssertCalled(t, "MarkEmailVerified", mock.Anything, int64(9), f.now)
			} else {
				f.users.AssertNotCalled(t, "MarkEmailVerified", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestService_PhoneVerification(t *testing.T) {
	phone := "+15550001111"

	t.Run("no phone", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2}, nil)

		_, err := f.svc.RequestPhoneVerification(context.Background(), 2)
		assert.ErrorIs(t, err, ErrPhoneMissing)
	})

	t.Run("provider down", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, Phone: &phone}, nil)
		f.phones.On("Start", mock.Anything, phone).Return(nil, errors.New("timeout"))

		_, err := f.svc.RequestPhoneVerification(context.Background(), 2)
		assert.ErrorIs(t, err, ErrProviderFailure)
	})

	t.Run("pending check", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, Phone: &phone}, nil)
		f.phones.On("Check", mock.Anything, phone, "111111").Return(&notify.VerificationResult{Status: notify.VerificationPending}, nil)

		_, err := f.svc.ConfirmPhoneVerification(context.Background(), 2, "111111")
		assert.ErrorIs(t, err, ErrInvalidCode)
		f.users.AssertNotCalled(t, "MarkPhoneVerified", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("approved", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, Phone: &phone}, nil)
		f.phones.On("Check", mock.Anything, phone, "000000").Return(&notify.VerificationResult{Status: notify.VerificationApproved, Channel: "sms", Valid: true}, nil)
		f.users.On("MarkPhoneVerified", mock.Anything, int64(2), f.now).Return(nil)

		res, err := f.svc.ConfirmPhoneVerification(context.Background(), 2, "000000")
		require.NoError(t, err)
		assert.True(t, res.Verified)
		assert.Equal(t, notify.VerificationApproved, res.Status)
	})
}
