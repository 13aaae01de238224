package availability

import "time"

type CreateWindowRequest struct {
	// StaffID defaults to the caller for STAFF; required for ADMIN.
	StaffID   int64  `json:"staff_id" binding:"omitempty,min=1"`
	DayOfWeek *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTime string `json:"start_time" binding:"required,datetime=15:04"`
	EndTime   string `json:"end_time" binding:"required,datetime=15:04"`
}

type UpdateWindowRequest struct {
	DayOfWeek *int    `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	StartTime *string `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime   *string `json:"end_time" binding:"omitempty,datetime=15:04"`
}

type ListQuery struct {
	StaffID int64 `form:"staff_id" binding:"omitempty,min=1"`
}

type CheckQuery struct {
	StaffID int64     `form:"staff_id" binding:"required,min=1"`
	Start   time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End     time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

type CheckResult struct {
	StaffID   int64     `json:"staff_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}
