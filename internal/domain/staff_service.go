package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StaffService allows a staff member to perform a service item, optionally at a custom price.
type StaffService struct {
	ID            int64               `json:"id" gorm:"primaryKey"`
	StaffID       int64               `json:"staff_id" gorm:"not null;uniqueIndex:idx_staff_service_pair"`
	Staff         *User               `json:"staff,omitempty" gorm:"foreignKey:StaffID;constraint:OnDelete:CASCADE"`
	ServiceItemID int64               `json:"service_item_id" gorm:"not null;uniqueIndex:idx_staff_service_pair"`
	ServiceItem   *ServiceItem        `json:"service_item,omitempty" gorm:"foreignKey:ServiceItemID;constraint:OnDelete:CASCADE"`
	CustomPrice   decimal.NullDecimal `json:"custom_price" gorm:"type:decimal(12,2)"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// EffectivePrice is the custom price when set, the item's base price otherwise.
func (s *StaffService) EffectivePrice(item *ServiceItem) decimal.Decimal {
	if s.CustomPrice.Valid {
		return s.CustomPrice.Decimal
	}
	return item.BasePrice
}
