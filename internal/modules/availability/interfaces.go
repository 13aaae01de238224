package availability

import (
	"context"
	"time"

	"scheduling/internal/domain"
)

type AvailabilityRepository interface {
	Create(ctx context.Context, a *domain.StaffAvailability) error
	GetByID(ctx context.Context, id int64) (*domain.StaffAvailability, error)
	ListByStaff(ctx context.Context, staffID int64) ([]domain.StaffAvailability, error)
	ListByStaffAndDay(ctx context.Context, staffID int64, day int) ([]domain.StaffAvailability, error)
	Update(ctx context.Context, a *domain.StaffAvailability) error
	Delete(ctx context.Context, id int64) error
}

// OverlapChecker is implemented by the appointment repository.
type OverlapChecker interface {
	HasOverlap(ctx context.Context, staffID int64, start, end time.Time, excludeID int64) (bool, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
