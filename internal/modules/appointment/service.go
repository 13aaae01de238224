package appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"scheduling/internal/domain"
	"scheduling/internal/notify"
	"scheduling/internal/pkg/pagination"
	"scheduling/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var transitions = map[domain.AppointmentStatus][]domain.AppointmentStatus{
	domain.AppointmentPending:   {domain.AppointmentConfirmed, domain.AppointmentCancelled},
	domain.AppointmentConfirmed: {domain.AppointmentCancelled, domain.AppointmentCompleted, domain.AppointmentNoShow},
}

type Service struct {
	appointments AppointmentRepository
	customers    CustomerReader
	items        ServiceItemReader
	staff        StaffLister
	availability AvailabilityChecker
	mailer       notify.Mailer
	log          *zap.Logger
	now          func() time.Time

	// mu serializes the conflict check with the write that claims the slot.
	mu sync.Mutex
}

func NewService(
	appointments AppointmentRepository,
	customers CustomerReader,
	items ServiceItemReader,
	staff StaffLister,
	availability AvailabilityChecker,
	mailer notify.Mailer,
	log *zap.Logger,
) *Service {
	return &Service{
		appointments: appointments,
		customers:    customers,
		items:        items,
		staff:        staff,
		availability: availability,
		mailer:       mailer,
		log:          log,
		now:          time.Now,
	}
}

// Create books an appointment. Without a staff_id the first staff member (by id) offering the item
// and free for the whole duration is assigned.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req CreateAppointmentRequest) (*domain.Appointment, error) {
	cust, err := s.resolveCustomer(ctx, actor, req.CustomerID)
	if err != nil {
		return nil, err
	}

	start := req.StartTime.UTC().Truncate(time.Minute)
	if !start.After(s.now()) {
		return nil, ErrStartInPast
	}

	item, err := s.items.GetByID(ctx, req.ServiceItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceItemNotFound
		}
		return nil, err
	}
	if !item.IsActive {
		return nil, ErrServiceItemInactive
	}
	end := start.Add(item.Duration())

	s.mu.Lock()
	defer s.mu.Unlock()

	assignment, err := s.pickStaff(ctx, item.ID, req.StaffID, start, end)
	if err != nil {
		return nil, err
	}

	a := &domain.Appointment{
		CustomerID:    cust.ID,
		StaffID:       assignment.StaffID,
		ServiceItemID: item.ID,
		StartTime:     start,
		EndTime:       end,
		Status:        domain.AppointmentPending,
		Price:         assignment.EffectivePrice(item).Round(2),
		Notes:         req.Notes,
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	a.Customer = cust
	a.ServiceItem = item

	s.notifyBooked(ctx, a)
	return a, nil
}

// List scopes results by role: ADMIN sees everything, STAFF their own schedule, CUSTOMER their own bookings.
func (s *Service) List(ctx context.Context, actor domain.Actor, q ListQuery, p pagination.Params) (pagination.Page[domain.Appointment], error) {
	if q.From != nil && q.To != nil && !q.To.After(*q.From) {
		return pagination.Page[domain.Appointment]{}, ErrInvalidRange
	}

	f := repository.AppointmentFilter{
		CustomerID: q.CustomerID,
		StaffID:    q.StaffID,
		Status:     domain.AppointmentStatus(q.Status),
		From:       q.From,
		To:         q.To,
		Offset:     p.Offset(),
		Limit:      p.Limit,
	}
	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleStaff:
		f.StaffID = actor.UserID
	case domain.RoleCustomer:
		cust, err := s.customers.GetByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pagination.NewPage[domain.Appointment](nil, 0, p), nil
			}
			return pagination.Page[domain.Appointment]{}, err
		}
		f.CustomerID = cust.ID
	default:
		return pagination.Page[domain.Appointment]{}, ErrForbidden
	}

	items, total, err := s.appointments.List(ctx, f)
	if err != nil {
		return pagination.Page[domain.Appointment]{}, err
	}
	return pagination.NewPage(items, total, p), nil
}

func (s *Service) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !isParticipant(actor, a) {
		return nil, ErrForbidden
	}
	return a, nil
}

// UpdateStatus applies a status transition. Any participant may cancel; the remaining transitions
// belong to STAFF and ADMIN.
func (s *Service) UpdateStatus(ctx context.Context, actor domain.Actor, id int64, req UpdateStatusRequest) (*domain.Appointment, error) {
	a, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(a.Status, req.Status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, a.Status, req.Status)
	}
	if req.Status != domain.AppointmentCancelled && !actor.Is(domain.RoleAdmin, domain.RoleStaff) {
		return nil, ErrForbidden
	}

	a.Status = req.Status
	if req.Status == domain.AppointmentCancelled {
		now := s.now().UTC()
		a.CancelledAt = &now
		a.CancellationReason = req.Reason
	}
	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}

	s.notifyStatus(ctx, a)
	return a, nil
}

// Reschedule moves an active appointment to a new start, keeping its staff member and length.
func (s *Service) Reschedule(ctx context.Context, actor domain.Actor, id int64, req RescheduleRequest) (*domain.Appointment, error) {
	a, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !a.Status.Active() {
		return nil, fmt.Errorf("%w: %s appointments cannot be rescheduled", ErrInvalidTransition, a.Status)
	}

	start := req.StartTime.UTC().Truncate(time.Minute)
	if !start.After(s.now()) {
		return nil, ErrStartInPast
	}
	end := start.Add(a.EndTime.Sub(a.StartTime))

	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.availability.IsAvailable(ctx, a.StaffID, start, end, a.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrScheduleConflict
	}

	a.StartTime, a.EndTime = start, end
	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.appointments.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) resolveCustomer(ctx context.Context, actor domain.Actor, customerID int64) (*domain.Customer, error) {
	var (
		cust *domain.Customer
		err  error
	)
	switch {
	case actor.Role == domain.RoleCustomer:
		cust, err = s.customers.GetByUserID(ctx, actor.UserID)
	case customerID == 0:
		return nil, ErrCustomerRequired
	default:
		cust, err = s.customers.GetByID(ctx, customerID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	if actor.Role == domain.RoleCustomer && customerID != 0 && customerID != cust.ID {
		return nil, ErrForbidden
	}
	return cust, nil
}

// pickStaff returns the assignment to book. A requested staff member must offer the item and be free;
// otherwise candidates are tried in ascending staff id.
func (s *Service) pickStaff(ctx context.Context, itemID, staffID int64, start, end time.Time) (*domain.StaffService, error) {
	candidates, err := s.staff.ListActiveForServiceItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if staffID > 0 {
		for i := range candidates {
			if candidates[i].StaffID != staffID {
				continue
			}
			ok, err := s.availability.IsAvailable(ctx, staffID, start, end, 0)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, ErrScheduleConflict
			}
			return &candidates[i], nil
		}
		return nil, ErrStaffNotOffering
	}

	for i := range candidates {
		ok, err := s.availability.IsAvailable(ctx, candidates[i].StaffID, start, end, 0)
		if err != nil {
			return nil, err
		}
		if ok {
			return &candidates[i], nil
		}
	}
	return nil, ErrNoStaffAvailable
}

func (s *Service) notifyBooked(ctx context.Context, a *domain.Appointment) {
	if a.Customer == nil || a.Customer.User == nil || a.ServiceItem == nil {
		return
	}
	u := a.Customer.User
	msg := notify.AppointmentBookedEmail(u.Email, u.FullName(), a.ServiceItem.Name, a.StartTime)
	if _, err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Warn("booking confirmation email not sent", zap.Int64("appointment_id", a.ID), zap.Error(err))
	}
}

func (s *Service) notifyStatus(ctx context.Context, a *domain.Appointment) {
	if a.Customer == nil || a.Customer.User == nil || a.ServiceItem == nil {
		return
	}
	u := a.Customer.User
	msg := notify.AppointmentStatusEmail(u.Email, u.FullName(), a.ServiceItem.Name, string(a.Status), a.StartTime)
	if _, err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Warn("status email not sent",
			zap.Int64("appointment_id", a.ID),
			zap.String("status", string(a.Status)),
			zap.Error(err),
		)
	}
}

func canTransition(from, to domain.AppointmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func isParticipant(actor domain.Actor, a *domain.Appointment) bool {
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleStaff:
		return a.StaffID == actor.UserID
	case domain.RoleCustomer:
		return a.Customer != nil && a.Customer.UserID == actor.UserID
	}
	return false
}
