package repository

import (
	"context"
	"time"

	"scheduling/internal/domain"

	"gorm.io/gorm"
)

type ServiceItemRepository struct {
	db *gorm.DB
}

func NewServiceItemRepository(db *gorm.DB) *ServiceItemRepository {
	return &ServiceItemRepository{db: db}
}

func (r *ServiceItemRepository) Create(ctx context.Context, s *domain.ServiceItem) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ServiceItemRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceItem, error) {
	var s domain.ServiceItem
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceItemRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var cnt int64
	q := r.db.WithContext(ctx).Model(&domain.ServiceItem{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&cnt).Error
	return cnt > 0, err
}

func (r *ServiceItemRepository) List(ctx context.Context, active *bool) ([]domain.ServiceItem, error) {
	q := r.db.WithContext(ctx).Model(&domain.ServiceItem{})
	if active != nil {
		q = q.Where("is_active = ?", *active)
	}
	var out []domain.ServiceItem
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ServiceItemRepository) Update(ctx context.Context, s *domain.ServiceItem) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ServiceItemRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.ServiceItem{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HasUpcomingAppointments reports active appointments for the item starting after now.
func (r *ServiceItemRepository) HasUpcomingAppointments(ctx context.Context, id int64, now time.Time) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("service_item_id = ?", id).
		Where("status IN ?", domain.ActiveAppointmentStatuses).
		Where("start_time > ?", now.UTC()).
		Count(&cnt).Error
	return cnt > 0, err
}
