package appointment

import (
	"time"

	"scheduling/internal/domain"
)

type CreateAppointmentRequest struct {
	// CustomerID is taken from the caller's profile for CUSTOMER and required for STAFF and ADMIN.
	CustomerID    int64     `json:"customer_id" binding:"omitempty,min=1"`
	// StaffID is optional; the first available staff member offering the item is picked when absent.
	StaffID       int64     `json:"staff_id" binding:"omitempty,min=1"`
	ServiceItemID int64     `json:"service_item_id" binding:"required,min=1"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	Notes         string    `json:"notes" binding:"max=2000"`
}

type UpdateStatusRequest struct {
	Status domain.AppointmentStatus `json:"status" binding:"required,oneof=CONFIRMED CANCELLED COMPLETED NO_SHOW"`
	Reason string                   `json:"reason" binding:"max=1000"`
}

type RescheduleRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
}

type ListQuery struct {
	Status     string     `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED NO_SHOW"`
	StaffID    int64      `form:"staff_id" binding:"omitempty,min=1"`
	CustomerID int64      `form:"customer_id" binding:"omitempty,min=1"`
	From       *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To         *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}
