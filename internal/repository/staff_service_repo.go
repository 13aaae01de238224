package repository

import (
	"context"

	"scheduling/internal/domain"

	"gorm.io/gorm"
)

type StaffServiceRepository struct {
	db *gorm.DB
}

func NewStaffServiceRepository(db *gorm.DB) *StaffServiceRepository {
	return &StaffServiceRepository{db: db}
}

type StaffServiceFilter struct {
	StaffID       int64
	ServiceItemID int64
}

func (r *StaffServiceRepository) Create(ctx context.Context, s *domain.StaffService) error {
	return r.db.WithContext(ctx).Omit("Staff", "ServiceItem").Create(s).Error
}

func (r *StaffServiceRepository) GetByID(ctx context.Context, id int64) (*domain.StaffService, error) {
	var s domain.StaffService
	err := r.db.WithContext(ctx).
		Preload("Staff").
		Preload("ServiceItem").
		First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StaffServiceRepository) GetByPair(ctx context.Context, staffID, serviceItemID int64) (*domain.StaffService, error) {
	var s domain.StaffService
	err := r.db.WithContext(ctx).
		Where("staff_id = ? AND service_item_id = ?", staffID, serviceItemID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StaffServiceRepository) List(ctx context.Context, f StaffServiceFilter) ([]domain.StaffService, error) {
	q := r.db.WithContext(ctx).Preload("Staff").Preload("ServiceItem")
	if f.StaffID > 0 {
		q = q.Where("staff_id = ?", f.StaffID)
	}
	if f.ServiceItemID > 0 {
		q = q.Where("service_item_id = ?", f.ServiceItemID)
	}
	var out []domain.StaffService
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListActiveForServiceItem returns assignments of active staff ordered by staff id.
func (r *StaffServiceRepository) ListActiveForServiceItem(ctx context.Context, serviceItemID int64) ([]domain.StaffService, error) {
	var out []domain.StaffService
	err := r.db.WithContext(ctx).
		Select("staff_services.*").
		Joins("JOIN users ON users.id = staff_services.staff_id").
		Where("staff_services.service_item_id = ?", serviceItemID).
		Where("users.is_active = ? AND users.role = ?", true, domain.RoleStaff).
		Order("staff_services.staff_id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StaffServiceRepository) Update(ctx context.Context, s *domain.StaffService) error {
	return r.db.WithContext(ctx).Omit("Staff", "ServiceItem").Save(s).Error
}

func (r *StaffServiceRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.StaffService{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
