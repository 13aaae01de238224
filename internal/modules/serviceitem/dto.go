package serviceitem

import (
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CreateServiceItemRequest struct {
	Name            string           `json:"name" binding:"required,max=150"`
	Description     string           `json:"description" binding:"max=2000"`
	ServiceType     string           `json:"service_type" binding:"required,max=64"`
	BasePrice       *decimal.Decimal `json:"base_price" binding:"required"`
	DurationMinutes int              `json:"duration_minutes" binding:"required,min=5,max=720"`
	IsActive        *bool            `json:"is_active"`
}

type UpdateServiceItemRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=150"`
	Description     *string          `json:"description" binding:"omitempty,max=2000"`
	ServiceType     *string          `json:"service_type" binding:"omitempty,min=1,max=64"`
	BasePrice       *decimal.Decimal `json:"base_price"`
	DurationMinutes *int             `json:"duration_minutes" binding:"omitempty,min=5,max=720"`
	IsActive        *bool            `json:"is_active"`
}

type ListQuery struct {
	Active *bool `form:"active"`
}

type SlotsQuery struct {
	Date string `form:"date" binding:"required"`
}

// Slot is a bookable start time and the staff members free for it.
type Slot struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	StaffIDs []int64   `json:"staff_ids"`
}
