package user

import (
	"context"
	"errors"
	"strings"

	"scheduling/internal/domain"
	"scheduling/internal/pkg/pagination"
	"scheduling/internal/pkg/password"
	"scheduling/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

// Create adds a user of any role. CUSTOMER users get an empty customer profile in the same transaction.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	role := domain.UserRole(req.Role)
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyRegistered
	}

	var phone *string
	if req.Phone != "" {
		taken, err := s.users.ExistsByPhone(ctx, req.Phone, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrAlreadyRegistered
		}
		phone = &req.Phone
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}

	if role == domain.RoleCustomer {
		err = s.users.CreateWithCustomer(ctx, u, &domain.Customer{})
	} else {
		err = s.users.Create(ctx, u)
	}
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) List(ctx context.Context, q ListQuery, p pagination.Params) (pagination.Page[domain.User], error) {
	users, total, err := s.users.List(ctx, repository.UserFilter{
		Role:   domain.UserRole(q.Role),
		Active: q.Active,
		Offset: p.Offset(),
		Limit:  p.Limit,
	})
	if err != nil {
		return pagination.Page[domain.User]{}, err
	}
	return pagination.NewPage(users, total, p), nil
}

// ListStaff returns active STAFF users ordered by id.
func (s *Service) ListStaff(ctx context.Context) ([]StaffMember, error) {
	active := true
	users, _, err := s.users.List(ctx, repository.UserFilter{Role: domain.RoleStaff, Active: &active})
	if err != nil {
		return nil, err
	}
	out := make([]StaffMember, 0, len(users))
	for _, u := range users {
		out = append(out, toStaffMember(u))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// Update applies a partial update. Only ADMIN may change role or is_active.
func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req UpdateUserRequest) (*domain.User, error) {
	if !actor.IsAdmin() && (actor.UserID != id || req.Role != nil || req.IsActive != nil) {
		return nil, ErrForbidden
	}

	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		u.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		u.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil && *req.Phone != u.PhoneNumber() {
		// an empty phone clears the number; NULLs never collide on the unique index
		if *req.Phone == "" {
			u.Phone = nil
		} else {
			taken, err := s.users.ExistsByPhone(ctx, *req.Phone, u.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrAlreadyRegistered
			}
			phone := *req.Phone
			u.Phone = &phone
		}
		u.PhoneVerified = false
		u.PhoneVerifiedAt = nil
	}
	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
		u.Role = role
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := s.users.Update(ctx, u); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}
	return u, nil
}

// Delete disables the account; appointments keep referencing the row.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.users.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
