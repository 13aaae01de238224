package domain

import "time"

// Customer is the booking profile of a user with role CUSTOMER.
type Customer struct {
	ID               int64      `json:"id" gorm:"primaryKey"`
	UserID           int64      `json:"user_id" gorm:"uniqueIndex;not null"`
	User             *User      `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Address          string     `json:"address,omitempty" gorm:"size:255"`
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty" gorm:"type:date"`
	Notes            string     `json:"notes,omitempty" gorm:"type:text"`
	PreferredStaffID *int64     `json:"preferred_staff_id,omitempty" gorm:"index"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
