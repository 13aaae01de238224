package repository

import (
	"context"

	"scheduling/internal/domain"

	"gorm.io/gorm"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) Create(ctx context.Context, a *domain.StaffAvailability) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AvailabilityRepository) GetByID(ctx context.Context, id int64) (*domain.StaffAvailability, error) {
	var a domain.StaffAvailability
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AvailabilityRepository) ListByStaff(ctx context.Context, staffID int64) ([]domain.StaffAvailability, error) {
	q := r.db.WithContext(ctx).Model(&domain.StaffAvailability{})
	if staffID > 0 {
		q = q.Where("staff_id = ?", staffID)
	}
	var out []domain.StaffAvailability
	if err := q.Order("staff_id ASC, day_of_week ASC, start_time ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AvailabilityRepository) ListByStaffAndDay(ctx context.Context, staffID int64, day int) ([]domain.StaffAvailability, error) {
	var out []domain.StaffAvailability
	err := r.db.WithContext(ctx).
		Where("staff_id = ? AND day_of_week = ?", staffID, day).
		Order("start_time ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AvailabilityRepository) Update(ctx context.Context, a *domain.StaffAvailability) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AvailabilityRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.StaffAvailability{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
