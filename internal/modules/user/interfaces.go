package user

import (
	"context"

	"scheduling/internal/domain"
	"scheduling/internal/repository"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	CreateWithCustomer(ctx context.Context, u *domain.User, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string, excludeID int64) (bool, error)
	List(ctx context.Context, f repository.UserFilter) ([]domain.User, int64, error)
	Update(ctx context.Context, u *domain.User) error
	Deactivate(ctx context.Context, id int64) error
}
