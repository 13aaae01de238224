package staffservice

import (
	"scheduling/internal/domain"

	"github.com/shopspring/decimal"
)

type CreateStaffServiceRequest struct {
	StaffID       int64            `json:"staff_id" binding:"required,min=1"`
	ServiceItemID int64            `json:"service_item_id" binding:"required,min=1"`
	CustomPrice   *decimal.Decimal `json:"custom_price"`
}

// UpdateStaffServiceRequest sets the custom price; null or a missing field clears it.
type UpdateStaffServiceRequest struct {
	CustomPrice *decimal.Decimal `json:"custom_price"`
}

type ListQuery struct {
	StaffID       int64 `form:"staff_id" binding:"omitempty,min=1"`
	ServiceItemID int64 `form:"service_item_id" binding:"omitempty,min=1"`
}

// StaffServiceView adds the price a booking would be charged.
type StaffServiceView struct {
	domain.StaffService
	Effective *decimal.Decimal `json:"effective_price,omitempty"`
}

func toView(s domain.StaffService) StaffServiceView {
	v := StaffServiceView{StaffService: s}
	if s.ServiceItem != nil {
		p := s.EffectivePrice(s.ServiceItem)
		v.Effective = &p
	}
	return v
}
