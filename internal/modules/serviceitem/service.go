package serviceitem

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"scheduling/internal/domain"
	"scheduling/internal/modules/availability"
	"scheduling/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	items   ServiceItemRepository
	staff   StaffLister
	windows WindowLister
	busy    BusyReader
	now     func() time.Time
}

func NewService(items ServiceItemRepository, staff StaffLister, windows WindowLister, busy BusyReader) *Service {
	return &Service{items: items, staff: staff, windows: windows, busy: busy, now: time.Now}
}

func (s *Service) Create(ctx context.Context, req CreateServiceItemRequest) (*domain.ServiceItem, error) {
	name := strings.TrimSpace(req.Name)
	if err := s.checkName(ctx, name, 0); err != nil {
		return nil, err
	}
	if req.BasePrice.IsNegative() {
		return nil, ErrInvalidPrice
	}

	item := &domain.ServiceItem{
		Name:            name,
		Description:     req.Description,
		ServiceType:     strings.TrimSpace(req.ServiceType),
		BasePrice:       req.BasePrice.Round(2),
		DurationMinutes: req.DurationMinutes,
		IsActive:        req.IsActive == nil || *req.IsActive,
	}
	if err := s.items.Create(ctx, item); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return item, nil
}

func (s *Service) List(ctx context.Context, active *bool) ([]domain.ServiceItem, error) {
	items, err := s.items.List(ctx, active)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.ServiceItem{}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.ServiceItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateServiceItemRequest) (*domain.ServiceItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !strings.EqualFold(name, item.Name) {
			if err := s.checkName(ctx, name, item.ID); err != nil {
				return nil, err
			}
		}
		item.Name = name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.ServiceType != nil {
		item.ServiceType = strings.TrimSpace(*req.ServiceType)
	}
	if req.BasePrice != nil {
		if req.BasePrice.IsNegative() {
			return nil, ErrInvalidPrice
		}
		item.BasePrice = req.BasePrice.Round(2)
	}
	if req.DurationMinutes != nil {
		item.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.items.Update(ctx, item); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return item, nil
}

// Delete refuses while active appointments in the future reference the item.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	busy, err := s.items.HasUpcomingAppointments(ctx, id, s.now())
	if err != nil {
		return err
	}
	if busy {
		return ErrInUse
	}

	if err := s.items.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrNotFound
		case repository.IsForeignKeyViolation(err):
			return ErrInUse
		}
		return err
	}
	return nil
}

// Slots lists free start times for the item on a UTC date, across every active staff member
// offering it. Starts are aligned to availability.SlotStep from each window's opening.
func (s *Service) Slots(ctx context.Context, id int64, date string) ([]Slot, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return []Slot{}, nil
	}

	assignments, err := s.staff.ListActiveForServiceItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return []Slot{}, nil
	}

	staffIDs := make([]int64, 0, len(assignments))
	for _, a := range assignments {
		staffIDs = append(staffIDs, a.StaffID)
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	busyRows, err := s.busy.BusySlots(ctx, staffIDs, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	busyByStaff := make(map[int64][]availability.Interval, len(staffIDs))
	for _, b := range busyRows {
		busyByStaff[b.StaffID] = append(busyByStaff[b.StaffID], availability.Interval{Start: b.Start.UTC(), End: b.End.UTC()})
	}

	now := s.now()
	byStart := make(map[int64]*Slot)
	for _, staffID := range staffIDs {
		windows, err := s.windows.ListByStaffAndDay(ctx, staffID, int(dayStart.Weekday()))
		if err != nil {
			return nil, err
		}
		for i := range windows {
			open, close, err := windows[i].On(dayStart)
			if err != nil {
				continue
			}
			for _, start := range availability.FreeStarts(open, close, item.Duration(), availability.SlotStep, busyByStaff[staffID], now) {
				slot, ok := byStart[start.Unix()]
				if !ok {
					slot = &Slot{Start: start, End: start.Add(item.Duration())}
					byStart[start.Unix()] = slot
				}
				slot.StaffIDs = append(slot.StaffIDs, staffID)
			}
		}
	}

	out := make([]Slot, 0, len(byStart))
	for _, slot := range byStart {
		out = append(out, *slot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (s *Service) checkName(ctx context.Context, name string, excludeID int64) error {
	taken, err := s.items.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrNameTaken
	}
	return nil
}
