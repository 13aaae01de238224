package repository

import (
	"context"
	"testing"
	"time"

	"scheduling/internal/database"
	"scheduling/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type fixtures struct {
	db       *gorm.DB
	staff    *domain.User
	other    *domain.User
	customer *domain.Customer
	item     *domain.ServiceItem
}

func seed(t *testing.T) *fixtures {
	t.Helper()
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)

	staff := &domain.User{FirstName: "Sam", Email: "sam@example.com", PasswordHash: "x", Role: domain.RoleStaff, IsActive: true}
	other := &domain.User{FirstName: "Olga", Email: "olga@example.com", PasswordHash: "x", Role: domain.RoleStaff, IsActive: true}
	require.NoError(t, users.Create(ctx, staff))
	require.NoError(t, users.Create(ctx, other))

	cu := &domain.User{FirstName: "Cara", Email: "cara@example.com", PasswordHash: "x", Role: domain.RoleCustomer, IsActive: true}
	cust := &domain.Customer{}
	require.NoError(t, users.CreateWithCustomer(ctx, cu, cust))

	item := &domain.ServiceItem{Name: "Haircut", ServiceType: "hair", BasePrice: decimal.NewFromInt(40), DurationMinutes: 30, IsActive: true}
	require.NoError(t, NewServiceItemRepository(db).Create(ctx, item))

	return &fixtures{db: db, staff: staff, other: other, customer: cust, item: item}
}

func (f *fixtures) book(t *testing.T, staffID int64, start time.Time, status domain.AppointmentStatus) *domain.Appointment {
	t.Helper()
	a := &domain.Appointment{
		CustomerID:    f.customer.ID,
		StaffID:       staffID,
		ServiceItemID: f.item.ID,
		StartTime:     start,
		EndTime:       start.Add(30 * time.Minute),
		Status:        status,
		Price:         f.item.BasePrice,
	}
	require.NoError(t, NewAppointmentRepository(f.db).Create(context.Background(), a))
	return a
}

func TestAppointmentRepository_HasOverlap(t *testing.T) {
	f := seed(t)
	repo := NewAppointmentRepository(f.db)
	ctx := context.Background()
	ten := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	booked := f.book(t, f.staff.ID, ten, domain.AppointmentPending)
	f.book(t, f.staff.ID, ten.Add(2*time.Hour), domain.AppointmentCancelled)

	tests := []struct {
		name      string
		staffID   int64
		start     time.Time
		end       time.Time
		excludeID int64
		want      bool
	}{
		{"same interval", f.staff.ID, ten, ten.Add(30 * time.Minute), 0, true},
		{"partial overlap", f.staff.ID, ten.Add(15 * time.Minute), ten.Add(45 * time.Minute), 0, true},
		{"touching end", f.staff.ID, ten.Add(30 * time.Minute), ten.Add(time.Hour), 0, false},
		{"touching start", f.staff.ID, ten.Add(-30 * time.Minute), ten, 0, false},
		{"excluded self", f.staff.ID, ten, ten.Add(30 * time.Minute), booked.ID, false},
		{"cancelled ignored", f.staff.ID, ten.Add(2 * time.Hour), ten.Add(150 * time.Minute), 0, false},
		{"other staff", f.other.ID, ten, ten.Add(30 * time.Minute), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.HasOverlap(ctx, tt.staffID, tt.start, tt.end, tt.excludeID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAppointmentRepository_BusySlotsAndList(t *testing.T) {
	f := seed(t)
	repo := NewAppointmentRepository(f.db)
	ctx := context.Background()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	f.book(t, f.staff.ID, day.Add(9*time.Hour), domain.AppointmentConfirmed)
	f.book(t, f.other.ID, day.Add(11*time.Hour), domain.AppointmentPending)
	f.book(t, f.staff.ID, day.Add(13*time.Hour), domain.AppointmentNoShow)
	f.book(t, f.staff.ID, day.Add(33*time.Hour), domain.AppointmentPending)

	busy, err := repo.BusySlots(ctx, []int64{f.staff.ID, f.other.ID}, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, busy, 2)
	assert.Equal(t, f.staff.ID, busy[0].StaffID)
	assert.True(t, busy[0].Start.Equal(day.Add(9*time.Hour)))
	assert.Equal(t, f.other.ID, busy[1].StaffID)

	items, total, err := repo.List(ctx, AppointmentFilter{StaffID: f.staff.ID, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 2)
	assert.True(t, items[0].StartTime.Before(items[1].StartTime))

	from := day
	to := day.Add(24 * time.Hour)
	_, total, err = repo.List(ctx, AppointmentFilter{From: &from, To: &to, Status: domain.AppointmentPending})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestStaffServiceRepository_ListActiveForServiceItem(t *testing.T) {
	f := seed(t)
	ctx := context.Background()
	repo := NewStaffServiceRepository(f.db)

	require.NoError(t, repo.Create(ctx, &domain.StaffService{StaffID: f.other.ID, ServiceItemID: f.item.ID}))
	require.NoError(t, repo.Create(ctx, &domain.StaffService{StaffID: f.staff.ID, ServiceItemID: f.item.ID,
		CustomPrice: decimal.NewNullDecimal(decimal.RequireFromString("35.5"))}))

	got, err := repo.ListActiveForServiceItem(ctx, f.item.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Less(t, got[0].StaffID, got[1].StaffID)

	require.NoError(t, NewUserRepository(f.db).Deactivate(ctx, f.other.ID))
	got, err = repo.ListActiveForServiceItem(ctx, f.item.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, f.staff.ID, got[0].StaffID)
	assert.True(t, got[0].CustomPrice.Valid)
	assert.Equal(t, "35.5", got[0].CustomPrice.Decimal.String())

	err = repo.Create(ctx, &domain.StaffService{StaffID: f.staff.ID, ServiceItemID: f.item.ID})
	assert.True(t, IsUniqueViolation(err))
}

func TestServiceItemRepository_DeleteReferenced(t *testing.T) {
	f := seed(t)
	ctx := context.Background()
	repo := NewServiceItemRepository(f.db)

	past := time.Date(2020, 1, 6, 10, 0, 0, 0, time.UTC)
	f.book(t, f.staff.ID, past, domain.AppointmentCompleted)

	upcoming, err := repo.HasUpcomingAppointments(ctx, f.item.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, upcoming)

	err = repo.Delete(ctx, f.item.ID)
	assert.True(t, IsForeignKeyViolation(err))
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	f := seed(t)
	err := NewUserRepository(f.db).Create(context.Background(), &domain.User{
		FirstName: "Sam", Email: " SAM@example.com ", PasswordHash: "x", Role: domain.RoleStaff, IsActive: true,
	})
	assert.True(t, IsUniqueViolation(err))
}

func TestVerificationRepository_DeleteStale(t *testing.T) {
	f := seed(t)
	ctx := context.Background()
	repo := NewVerificationRepository(f.db)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Replace(ctx, f.staff.ID, "expired", now.Add(-time.Hour), now.Add(-time.Minute)))
	require.NoError(t, repo.Replace(ctx, f.other.ID, "fresh", now, now.Add(10*time.Minute)))

	n, err := repo.DeleteStale(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.GetByUserID(ctx, f.staff.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.GetByUserID(ctx, f.other.ID)
	assert.NoError(t, err)
}
