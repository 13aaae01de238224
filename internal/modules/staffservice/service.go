package staffservice

import (
	"context"
	"errors"

	"scheduling/internal/domain"
	"scheduling/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	assignments StaffServiceRepository
	users       UserReader
	items       ServiceItemReader
}

func NewService(assignments StaffServiceRepository, users UserReader, items ServiceItemReader) *Service {
	return &Service{assignments: assignments, users: users, items: items}
}

func (s *Service) Create(ctx context.Context, req CreateStaffServiceRequest) (*StaffServiceView, error) {
	staff, err := s.users.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotStaff
		}
		return nil, err
	}
	if staff.Role != domain.RoleStaff || !staff.IsActive {
		return nil, ErrNotStaff
	}

	item, err := s.items.GetByID(ctx, req.ServiceItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceItemNotFound
		}
		return nil, err
	}

	if _, err := s.assignments.GetByPair(ctx, staff.ID, item.ID); err == nil {
		return nil, ErrAlreadyAssigned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	a := &domain.StaffService{StaffID: staff.ID, ServiceItemID: item.ID}
	if err := setPrice(a, req.CustomPrice); err != nil {
		return nil, err
	}

	if err := s.assignments.Create(ctx, a); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyAssigned
		}
		return nil, err
	}

	a.Staff, a.ServiceItem = staff, item
	v := toView(*a)
	return &v, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]StaffServiceView, error) {
	rows, err := s.assignments.List(ctx, repository.StaffServiceFilter{
		StaffID:       q.StaffID,
		ServiceItemID: q.ServiceItemID,
	})
	if err != nil {
		return nil, err
	}
	out := make([]StaffServiceView, 0, len(rows))
	for _, r := range rows {
		out = append(out, toView(r))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*StaffServiceView, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	v := toView(*a)
	return &v, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateStaffServiceRequest) (*StaffServiceView, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := setPrice(a, req.CustomPrice); err != nil {
		return nil, err
	}
	if err := s.assignments.Update(ctx, a); err != nil {
		return nil, err
	}
	v := toView(*a)
	return &v, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.assignments.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) get(ctx context.Context, id int64) (*domain.StaffService, error) {
	a, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func setPrice(a *domain.StaffService, price *decimal.Decimal) error {
	if price == nil {
		a.CustomPrice = decimal.NullDecimal{}
		return nil
	}
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	a.CustomPrice = decimal.NewNullDecimal(price.Round(2))
	return nil
}
