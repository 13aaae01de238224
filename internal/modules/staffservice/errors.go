package staffservice

import "errors"

var (
	ErrNotFound            = errors.New("staff service not found")
	ErrNotStaff            = errors.New("staff_id must reference an active STAFF user")
	ErrServiceItemNotFound = errors.New("service item not found")
	ErrAlreadyAssigned     = errors.New("service item already assigned to this staff member")
	ErrInvalidPrice        = errors.New("custom_price must be >= 0")
)
