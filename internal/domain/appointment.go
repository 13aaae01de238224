package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "PENDING"
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentNoShow    AppointmentStatus = "NO_SHOW"
)

// ActiveAppointmentStatuses block the staff member's time.
var ActiveAppointmentStatuses = []AppointmentStatus{AppointmentPending, AppointmentConfirmed}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCancelled, AppointmentCompleted, AppointmentNoShow:
		return true
	}
	return false
}

func (s AppointmentStatus) Active() bool {
	return s == AppointmentPending || s == AppointmentConfirmed
}

type Appointment struct {
	ID                 int64             `json:"id" gorm:"primaryKey"`
	CustomerID         int64             `json:"customer_id" gorm:"not null;index"`
	Customer           *Customer         `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	StaffID            int64             `json:"staff_id" gorm:"not null;index:idx_appointments_staff_time"`
	Staff              *User             `json:"staff,omitempty" gorm:"foreignKey:StaffID"`
	ServiceItemID      int64             `json:"service_item_id" gorm:"not null;index"`
	ServiceItem        *ServiceItem      `json:"service_item,omitempty" gorm:"foreignKey:ServiceItemID"`
	StartTime          time.Time         `json:"start_time" gorm:"not null;index:idx_appointments_staff_time"`
	EndTime            time.Time         `json:"end_time" gorm:"not null"`
	Status             AppointmentStatus `json:"status" gorm:"size:16;index;not null"`
	Price              decimal.Decimal   `json:"price" gorm:"type:decimal(12,2);not null"`
	Notes              string            `json:"notes,omitempty" gorm:"type:text"`
	CancellationReason string            `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CancelledAt        *time.Time        `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}
