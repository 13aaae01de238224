package availability

import (
	"context"
	"errors"
	"time"

	"scheduling/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	windows      AvailabilityRepository
	appointments OverlapChecker
	users        UserReader
}

func NewService(windows AvailabilityRepository, appointments OverlapChecker, users UserReader) *Service {
	return &Service{windows: windows, appointments: appointments, users: users}
}

// IsAvailable reports whether the staff member can take [start,end): the interval lies inside one of
// their windows for that UTC weekday and no PENDING or CONFIRMED appointment overlaps it.
// excludeID skips one appointment, so a booking can be moved without clashing with itself.
func (s *Service) IsAvailable(ctx context.Context, staffID int64, start, end time.Time, excludeID int64) (bool, error) {
	start, end = start.UTC(), end.UTC()
	if !end.After(start) {
		return false, nil
	}

	windows, err := s.windows.ListByStaffAndDay(ctx, staffID, int(start.Weekday()))
	if err != nil {
		return false, err
	}

	covered := false
	for i := range windows {
		if windows[i].Covers(start, end) {
			covered = true
			break
		}
	}
	if !covered {
		return false, nil
	}

	overlap, err := s.appointments.HasOverlap(ctx, staffID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return !overlap, nil
}

func (s *Service) Check(ctx context.Context, q CheckQuery) (*CheckResult, error) {
	if !q.End.After(q.Start) {
		return nil, ErrInvalidRange
	}
	ok, err := s.IsAvailable(ctx, q.StaffID, q.Start, q.End, 0)
	if err != nil {
		return nil, err
	}
	return &CheckResult{StaffID: q.StaffID, Start: q.Start.UTC(), End: q.End.UTC(), Available: ok}, nil
}

func (s *Service) Create(ctx context.Context, actor domain.Actor, req CreateWindowRequest) (*domain.StaffAvailability, error) {
	staffID := req.StaffID
	if actor.Role == domain.RoleStaff {
		if staffID == 0 {
			staffID = actor.UserID
		}
		if staffID != actor.UserID {
			return nil, ErrForbidden
		}
	}
	if err := s.checkStaff(ctx, staffID); err != nil {
		return nil, err
	}

	w := &domain.StaffAvailability{
		StaffID:   staffID,
		DayOfWeek: *req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.validate(ctx, w); err != nil {
		return nil, err
	}

	if err := s.windows.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) List(ctx context.Context, staffID int64) ([]domain.StaffAvailability, error) {
	out, err := s.windows.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.StaffAvailability{}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.StaffAvailability, error) {
	w, err := s.windows.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req UpdateWindowRequest) (*domain.StaffAvailability, error) {
	w, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.DayOfWeek != nil {
		w.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		w.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		w.EndTime = *req.EndTime
	}
	if err := s.validate(ctx, w); err != nil {
		return nil, err
	}

	if err := s.windows.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if _, err := s.getOwned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.windows.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) getOwned(ctx context.Context, actor domain.Actor, id int64) (*domain.StaffAvailability, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && w.StaffID != actor.UserID {
		return nil, ErrForbidden
	}
	return w, nil
}

// validate zero-pads the clock values, then checks start < end and that no other window of the
// same staff member and day intersects w. Padded values keep ORDER BY start_time chronological.
func (s *Service) validate(ctx context.Context, w *domain.StaffAvailability) error {
	var err error
	if w.StartTime, err = domain.NormalizeClock(w.StartTime); err != nil {
		return ErrInvalidWindow
	}
	if w.EndTime, err = domain.NormalizeClock(w.EndTime); err != nil {
		return ErrInvalidWindow
	}

	start, end, err := w.Bounds()
	if err != nil || start >= end {
		return ErrInvalidWindow
	}

	existing, err := s.windows.ListByStaffAndDay(ctx, w.StaffID, w.DayOfWeek)
	if err != nil {
		return err
	}
	for i := range existing {
		other := existing[i]
		if other.ID == w.ID {
			continue
		}
		otherStart, otherEnd, err := other.Bounds()
		if err != nil {
			continue
		}
		if start < otherEnd && end > otherStart {
			return ErrWindowOverlap
		}
	}
	return nil
}

func (s *Service) checkStaff(ctx context.Context, staffID int64) error {
	if staffID == 0 {
		return ErrNotStaff
	}
	u, err := s.users.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotStaff
		}
		return err
	}
	if u.Role != domain.RoleStaff || !u.IsActive {
		return ErrNotStaff
	}
	return nil
}
