package domain

import (
	"fmt"
	"time"
)

const ClockLayout = "15:04"

// StaffAvailability is a weekly recurring window during which a staff member can be booked.
type StaffAvailability struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	StaffID   int64     `json:"staff_id" gorm:"not null;index:idx_availability_staff_day"`
	Staff     *User     `json:"-" gorm:"foreignKey:StaffID;constraint:OnDelete:CASCADE"`
	DayOfWeek int       `json:"day_of_week" gorm:"not null;index:idx_availability_staff_day"`
	StartTime string    `json:"start_time" gorm:"size:5;not null"`
	EndTime   string    `json:"end_time" gorm:"size:5;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StaffAvailability) TableName() string { return "staff_availability" }

// ClockMinutes converts "HH:MM" to minutes since midnight.
func ClockMinutes(v string) (int, error) {
	t, err := time.Parse(ClockLayout, v)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", v)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// NormalizeClock rewrites an accepted clock value such as "9:00" as zero-padded "09:00".
func NormalizeClock(v string) (string, error) {
	t, err := time.Parse(ClockLayout, v)
	if err != nil {
		return "", fmt.Errorf("invalid clock value %q", v)
	}
	return t.Format(ClockLayout), nil
}

// Bounds returns the window as minutes since midnight.
func (a *StaffAvailability) Bounds() (start, end int, err error) {
	if start, err = ClockMinutes(a.StartTime); err != nil {
		return 0, 0, err
	}
	if end, err = ClockMinutes(a.EndTime); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// On returns the concrete UTC interval of the window on the given day.
func (a *StaffAvailability) On(day time.Time) (time.Time, time.Time, error) {
	start, end, err := a.Bounds()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	base := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(start) * time.Minute), base.Add(time.Duration(end) * time.Minute), nil
}

// Covers reports whether [start,end) lies inside the window. Both ends must be on the window's weekday.
func (a *StaffAvailability) Covers(start, end time.Time) bool {
	start, end = start.UTC(), end.UTC()
	if int(start.Weekday()) != a.DayOfWeek || !end.After(start) {
		return false
	}
	open, close, err := a.On(start)
	if err != nil {
		return false
	}
	return !start.Before(open) && !end.After(close)
}
