package domain

import "time"

// EmailVerificationCode keeps the hash of the last code sent to a user.
type EmailVerificationCode struct {
	ID         int64      `gorm:"primaryKey"`
	UserID     int64      `gorm:"uniqueIndex;not null"`
	CodeHash   string     `gorm:"size:64;not null"`
	Attempts   int        `gorm:"not null;default:0"`
	LastSentAt time.Time  `gorm:"not null"`
	ExpiresAt  time.Time  `gorm:"not null"`
	UsedAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Models lists every persisted entity in migration order.
func Models() []any {
	return []any{
		&User{},
		&Customer{},
		&ServiceItem{},
		&StaffService{},
		&StaffAvailability{},
		&Appointment{},
		&EmailVerificationCode{},
	}
}
