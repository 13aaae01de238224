package serviceitem

import (
	"context"
	"time"

	"scheduling/internal/domain"
	"scheduling/internal/repository"
)

type ServiceItemRepository interface {
	Create(ctx context.Context, s *domain.ServiceItem) error
	GetByID(ctx context.Context, id int64) (*domain.ServiceItem, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	List(ctx context.Context, active *bool) ([]domain.ServiceItem, error)
	Update(ctx context.Context, s *domain.ServiceItem) error
	Delete(ctx context.Context, id int64) error
	HasUpcomingAppointments(ctx context.Context, id int64, now time.Time) (bool, error)
}

// StaffLister returns assignments of active staff for an item, ordered by staff id.
type StaffLister interface {
	ListActiveForServiceItem(ctx context.Context, serviceItemID int64) ([]domain.StaffService, error)
}

type WindowLister interface {
	ListByStaffAndDay(ctx context.Context, staffID int64, day int) ([]domain.StaffAvailability, error)
}

type BusyReader interface {
	BusySlots(ctx context.Context, staffIDs []int64, from, to time.Time) ([]repository.BusySlot, error)
}
