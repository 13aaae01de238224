package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServiceItem struct {
	ID              int64           `json:"id" gorm:"primaryKey"`
	Name            string          `json:"name" gorm:"size:150;uniqueIndex;not null"`
	Description     string          `json:"description,omitempty" gorm:"type:text"`
	ServiceType     string          `json:"service_type" gorm:"size:64;index;not null"`
	BasePrice       decimal.Decimal `json:"base_price" gorm:"type:decimal(12,2);not null"`
	DurationMinutes int             `json:"duration_minutes" gorm:"not null"`
	IsActive        bool            `json:"is_active" gorm:"not null"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (s *ServiceItem) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}
