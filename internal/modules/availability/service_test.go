package availability

import (
	"context"
	"testing"
	"time"

	"scheduling/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockWindowRepo struct {
	mock.Mock
}

func (m *mockWindowRepo) Create(ctx context.Context, a *domain.StaffAvailability) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockWindowRepo) GetByID(ctx context.Context, id int64) (*domain.StaffAvailability, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffAvailability), args.Error(1)
}

func (m *mockWindowRepo) ListByStaff(ctx context.Context, staffID int64) ([]domain.StaffAvailability, error) {
	args := m.Called(ctx, staffID)
	return args.Get(0).([]domain.StaffAvailability), args.Error(1)
}

func (m *mockWindowRepo) ListByStaffAndDay(ctx context.Context, staffID int64, day int) ([]domain.StaffAvailability, error) {
	args := m.Called(ctx, staffID, day)
	return args.Get(0).([]domain.StaffAvailability), args.Error(1)
}

func (m *mockWindowRepo) Update(ctx context.Context, a *domain.StaffAvailability) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockWindowRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockOverlapChecker struct {
	mock.Mock
}

func (m *mockOverlapChecker) HasOverlap(ctx context.Context, staffID int64, start, end time.Time, excludeID int64) (bool, error) {
	args := m.Called(ctx, staffID, start, end, excludeID)
	return args.Bool(0), args.Error(1)
}

type mockUserReader struct {
	mock.Mock
}

func (m *mockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return monday.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func TestService_IsAvailable(t *testing.T) {
	mondayWindows := []domain.StaffAvailability{
		{ID: 1, StaffID: 5, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
		{ID: 2, StaffID: 5, DayOfWeek: 1, StartTime: "13:00", EndTime: "17:00"},
	}

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		overlap   bool
		want      bool
		needsAppt bool
	}{
		{"inside morning window", at(9, 0), at(10, 0), false, true, true},
		{"touches window end", at(11, 0), at(12, 0), false, true, true},
		{"spans lunch gap", at(11, 30), at(13, 30), false, false, false},
		{"before opening", at(8, 30), at(9, 30), false, false, false},
		{"clashes with appointment", at(14, 0), at(15, 0), true, false, true},
		{"empty interval", at(10, 0), at(10, 0), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windows := new(mockWindowRepo)
			appts := new(mockOverlapChecker)
			svc := NewService(windows, appts, new(mockUserReader))

			windows.On("ListByStaffAndDay", mock.Anything, int64(5), 1).Return(mondayWindows, nil)
			appts.On("HasOverlap", mock.Anything, int64(5), tt.start, tt.end, int64(0)).Return(tt.overlap, nil)

			got, err := svc.IsAvailable(context.Background(), 5, tt.start, tt.end, 0)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if !tt.needsAppt {
				appts.AssertNotCalled(t, "HasOverlap", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestService_IsAvailable_UsesUTCWeekday(t *testing.T) {
	windows := new(mockWindowRepo)
	appts := new(mockOverlapChecker)
	svc := NewService(windows, appts, new(mockUserReader))

	// Sunday 23:30 in UTC-05:00 is Monday 04:30 UTC.
	loc := time.FixedZone("EST", -5*3600)
	start := time.Date(2026, 3, 1, 23, 30, 0, 0, loc)

	windows.On("ListByStaffAndDay", mock.Anything, int64(5), 1).
		Return([]domain.StaffAvailability{{StaffID: 5, DayOfWeek: 1, StartTime: "04:00", EndTime: "06:00"}}, nil)
	appts.On("HasOverlap", mock.Anything, int64(5), start.UTC(), start.Add(time.Hour).UTC(), int64(0)).Return(false, nil)

	ok, err := svc.IsAvailable(context.Background(), 5, start, start.Add(time.Hour), 0)

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestService_Check_InvalidRange(t *testing.T) {
	svc := NewService(new(mockWindowRepo), new(mockOverlapChecker), new(mockUserReader))

	_, err := svc.Check(context.Background(), CheckQuery{StaffID: 5, Start: at(10, 0), End: at(9, 0)})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestService_Create(t *testing.T) {
	day := 1
	staff := &domain.User{ID: 5, Role: domain.RoleStaff, IsActive: true}
	existing := []domain.StaffAvailability{{ID: 1, StaffID: 5, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"}}

	tests := []struct {
		name    string
		actor   domain.Actor
		req     CreateWindowRequest
		wantErr error
	}{
		{"staff defaults to self", domain.Actor{UserID: 5, Role: domain.RoleStaff}, CreateWindowRequest{DayOfWeek: &day, StartTime: "12:00", EndTime: "15:00"}, nil},
		{"staff for other staff", domain.Actor{UserID: 5, Role: domain.RoleStaff}, CreateWindowRequest{StaffID: 6, DayOfWeek: &day, StartTime: "12:00", EndTime: "15:00"}, ErrForbidden},
		{"admin without staff id", domain.Actor{UserID: 1, Role: domain.RoleAdmin}, CreateWindowRequest{DayOfWeek: &day, StartTime: "12:00", EndTime: "15:00"}, ErrNotStaff},
		{"start after end", domain.Actor{UserID: 1, Role: domain.RoleAdmin}, CreateWindowRequest{StaffID: 5, DayOfWeek: &day, StartTime: "15:00", EndTime: "12:00"}, ErrInvalidWindow},
		{"overlaps existing", domain.Actor{UserID: 1, Role: domain.RoleAdmin}, CreateWindowRequest{StaffID: 5, DayOfWeek: &day, StartTime: "11:00", EndTime: "13:00"}, ErrWindowOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windows := new(mockWindowRepo)
			users := new(mockUserReader)
			svc := NewService(windows, new(mockOverlapChecker), users)

			users.On("GetByID", mock.Anything, int64(5)).Return(staff, nil)
			windows.On("ListByStaffAndDay", mock.Anything, int64(5), 1).Return(existing, nil)
			windows.On("Create", mock.Anything, mock.Anything).Return(nil)

			w, err := svc.Create(context.Background(), tt.actor, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				windows.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(5), w.StaffID)
		})
	}
}

func TestService_Create_PadsClockValues(t *testing.T) {
	windows := new(mockWindowRepo)
	users := new(mockUserReader)
	svc := NewService(windows, new(mockOverlapChecker), users)

	users.On("GetByID", mock.Anything, int64(5)).Return(&domain.User{ID: 5, Role: domain.RoleStaff, IsActive: true}, nil)
	windows.On("ListByStaffAndDay", mock.Anything, int64(5), 1).Return([]domain.StaffAvailability{}, nil)
	windows.On("Create", mock.Anything, mock.MatchedBy(func(w *domain.StaffAvailability) bool {
		return w.StartTime == "09:00" && w.EndTime == "11:30"
	})).Return(nil)

	day := 1
	w, err := svc.Create(context.Background(), domain.Actor{UserID: 5, Role: domain.RoleStaff}, CreateWindowRequest{DayOfWeek: &day, StartTime: "9:00", EndTime: "11:30"})

	require.NoError(t, err)
	assert.Equal(t, "09:00", w.StartTime)
	windows.AssertExpectations(t)
}

func TestService_Update_IgnoresItself(t *testing.T) {
	windows := new(mockWindowRepo)
	svc := NewService(windows, new(mockOverlapChecker), new(mockUserReader))

	w := &domain.StaffAvailability{ID: 1, StaffID: 5, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"}
	windows.On("GetByID", mock.Anything, int64(1)).Return(w, nil)
	windows.On("ListByStaffAndDay", mock.Anything, int64(5), 1).Return([]domain.StaffAvailability{*w}, nil)
	windows.On("Update", mock.Anything, mock.Anything).Return(nil)

	end := "13:00"
	got, err := svc.Update(context.Background(), domain.Actor{UserID: 5, Role: domain.RoleStaff}, 1, UpdateWindowRequest{EndTime: &end})

	require.NoError(t, err)
	assert.Equal(t, "13:00", got.EndTime)

	start := "8:30"
	got, err = svc.Update(context.Background(), domain.Actor{UserID: 5, Role: domain.RoleStaff}, 1, UpdateWindowRequest{StartTime: &start})

	require.NoError(t, err)
	assert.Equal(t, "08:30", got.StartTime)
}

func TestService_Delete(t *testing.T) {
	windows := new(mockWindowRepo)
	svc := NewService(windows, new(mockOverlapChecker), new(mockUserReader))

	windows.On("GetByID", mock.Anything, int64(1)).Return(&domain.StaffAvailability{ID: 1, StaffID: 5}, nil)
	windows.On("GetByID", mock.Anything, int64(2)).Return(nil, gorm.ErrRecordNotFound)
	windows.On("Delete", mock.Anything, int64(1)).Return(nil)

	assert.ErrorIs(t, svc.Delete(context.Background(), domain.Actor{UserID: 6, Role: domain.RoleStaff}, 1), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(context.Background(), domain.Actor{UserID: 1, Role: domain.RoleAdmin}, 2), ErrNotFound)
	assert.NoError(t, svc.Delete(context.Background(), domain.Actor{UserID: 5, Role: domain.RoleStaff}, 1))
}
