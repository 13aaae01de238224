package staffservice

import (
	"context"

	"scheduling/internal/domain"
	"scheduling/internal/repository"
)

type StaffServiceRepository interface {
	Create(ctx context.Context, s *domain.StaffService) error
	GetByID(ctx context.Context, id int64) (*domain.StaffService, error)
	GetByPair(ctx context.Context, staffID, serviceItemID int64) (*domain.StaffService, error)
	List(ctx context.Context, f repository.StaffServiceFilter) ([]domain.StaffService, error)
	Update(ctx context.Context, s *domain.StaffService) error
	Delete(ctx context.Context, id int64) error
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type ServiceItemReader interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceItem, error)
}
