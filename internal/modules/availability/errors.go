package availability

import "errors"

var (
	ErrNotFound      = errors.New("availability window not found")
	ErrNotStaff      = errors.New("staff_id must reference an active STAFF user")
	ErrInvalidWindow = errors.New("start_time must be before end_time")
	ErrWindowOverlap = errors.New("window overlaps another window on the same day")
	ErrInvalidRange  = errors.New("end must be after start")
	ErrForbidden     = errors.New("staff may only manage their own availability")
)
