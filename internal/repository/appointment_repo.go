package repository

import (
	"context"
	"time"

	"scheduling/internal/domain"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

type AppointmentFilter struct {
	CustomerID int64
	StaffID    int64
	Status     domain.AppointmentStatus
	From       *time.Time
	To         *time.Time
	Offset     int
	Limit      int
}

// BusySlot is a time range occupied by an active appointment.
type BusySlot struct {
	StaffID int64     `gorm:"column:staff_id"`
	Start   time.Time `gorm:"column:start_time"`
	End     time.Time `gorm:"column:end_time"`
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	return r.db.WithContext(ctx).Omit("Customer", "Staff", "ServiceItem").Create(a).Error
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var a domain.Appointment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Customer.User").
		Preload("Staff").
		Preload("ServiceItem").
		First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) List(ctx context.Context, f AppointmentFilter) ([]domain.Appointment, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Appointment{})
	if f.CustomerID > 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.StaffID > 0 {
		q = q.Where("staff_id = ?", f.StaffID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("start_time >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("start_time < ?", f.To.UTC())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var out []domain.Appointment
	err := q.
		Preload("Staff").
		Preload("ServiceItem").
		Order("start_time ASC").
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// HasOverlap reports whether the staff member has an active appointment intersecting [start,end).
// excludeID skips one appointment, used when rescheduling it.
func (r *AppointmentRepository) HasOverlap(ctx context.Context, staffID int64, start, end time.Time, excludeID int64) (bool, error) {
	var cnt int64
	q := r.db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("staff_id = ?", staffID).
		Where("status IN ?", domain.ActiveAppointmentStatuses).
		Where("start_time < ? AND end_time > ?", end.UTC(), start.UTC())
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *AppointmentRepository) BusySlots(ctx context.Context, staffIDs []int64, from, to time.Time) ([]BusySlot, error) {
	var out []BusySlot
	if len(staffIDs) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Select("staff_id, start_time, end_time").
		Where("staff_id IN ?", staffIDs).
		Where("status IN ?", domain.ActiveAppointmentStatuses).
		Where("start_time < ? AND end_time > ?", to.UTC(), from.UTC()).
		Order("start_time ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	return r.db.WithContext(ctx).Omit("Customer", "Staff", "ServiceItem").Save(a).Error
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Appointment{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
