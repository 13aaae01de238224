package customer

import (
	"context"
	"errors"
	"time"

	"scheduling/internal/domain"
	"scheduling/internal/pkg/pagination"
	"scheduling/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	customers CustomerRepository
	users     UserReader
	now       func() time.Time
}

func NewService(customers CustomerRepository, users UserReader) *Service {
	return &Service{customers: customers, users: users, now: time.Now}
}

// Create adds a profile for an existing CUSTOMER user that has none.
func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (*domain.Customer, error) {
	u, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if u.Role != domain.RoleCustomer {
		return nil, ErrNotCustomerUser
	}

	if _, err := s.customers.GetByUserID(ctx, u.ID); err == nil {
		return nil, ErrProfileExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := &domain.Customer{
		UserID:  u.ID,
		Address: req.Address,
		Notes:   req.Notes,
	}
	if req.DateOfBirth != "" {
		if c.DateOfBirth, err = s.parseBirthDate(req.DateOfBirth); err != nil {
			return nil, err
		}
	}
	if req.PreferredStaffID != nil {
		if err := s.checkStaff(ctx, *req.PreferredStaffID); err != nil {
			return nil, err
		}
		c.PreferredStaffID = req.PreferredStaffID
	}

	if err := s.customers.Create(ctx, c); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrProfileExists
		}
		return nil, err
	}
	c.User = u
	return c, nil
}

func (s *Service) List(ctx context.Context, p pagination.Params) (pagination.Page[domain.Customer], error) {
	items, total, err := s.customers.List(ctx, p.Offset(), p.Limit)
	if err != nil {
		return pagination.Page[domain.Customer]{}, err
	}
	return pagination.NewPage(items, total, p), nil
}

// Get returns the profile. A CUSTOMER may only read their own.
func (s *Service) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !canAccess(actor, c) {
		return nil, ErrForbidden
	}
	return c, nil
}

func (s *Service) GetMine(ctx context.Context, actor domain.Actor) (*domain.Customer, error) {
	c, err := s.customers.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req UpdateCustomerRequest) (*domain.Customer, error) {
	c, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.DateOfBirth != nil {
		if *req.DateOfBirth == "" {
			c.DateOfBirth = nil
		} else if c.DateOfBirth, err = s.parseBirthDate(*req.DateOfBirth); err != nil {
			return nil, err
		}
	}
	if req.PreferredStaffID != nil {
		if *req.PreferredStaffID == 0 {
			c.PreferredStaffID = nil
		} else {
			if err := s.checkStaff(ctx, *req.PreferredStaffID); err != nil {
				return nil, err
			}
			staffID := *req.PreferredStaffID
			c.PreferredStaffID = &staffID
		}
	}

	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.customers.Delete(ctx, id); err != nil {
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

func (s *Service) checkStaff(ctx context.Context, staffID int64) error {
	u, err := s.users.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidPreferredStaff
		}
		return err
	}
	if u.Role != domain.RoleStaff || !u.IsActive {
		return ErrInvalidPreferredStaff
	}
	return nil
}

func (s *Service) parseBirthDate(v string) (*time.Time, error) {
	d, err := time.Parse(dateLayout, v)
	if err != nil || !d.Before(s.now()) {
		return nil, ErrInvalidDate
	}
	return &d, nil
}

func canAccess(actor domain.Actor, c *domain.Customer) bool {
	if actor.Is(domain.RoleAdmin, domain.RoleStaff) {
		return true
	}
	return actor.Role == domain.RoleCustomer && c.UserID == actor.UserID
}
