package appointment

import (
	"context"
	"time"

	"scheduling/internal/domain"
	"scheduling/internal/repository"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, f repository.AppointmentFilter) ([]domain.Appointment, int64, error)
	Update(ctx context.Context, a *domain.Appointment) error
	Delete(ctx context.Context, id int64) error
}

type CustomerReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Customer, error)
}

type ServiceItemReader interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceItem, error)
}

// StaffLister returns assignments of active staff for an item, ordered by staff id.
type StaffLister interface {
	ListActiveForServiceItem(ctx context.Context, serviceItemID int64) ([]domain.StaffService, error)
}

// AvailabilityChecker is satisfied by availability.Service.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, staffID int64, start, end time.Time, excludeID int64) (bool, error)
}
