package appointment

import "errors"

var (
	ErrNotFound            = errors.New("appointment not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrCustomerRequired    = errors.New("customer_id is required when booking on behalf of a customer")
	ErrServiceItemNotFound = errors.New("service item not found")
	ErrServiceItemInactive = errors.New("service item is not active")
	ErrStaffNotOffering    = errors.New("staff member does not offer this service item")
	ErrStartInPast         = errors.New("start_time must be in the future")
	ErrScheduleConflict    = errors.New("staff member is not available at the requested time")
	ErrNoStaffAvailable    = errors.New("no staff member is available at the requested time")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrInvalidRange        = errors.New("to must be after from")
	ErrForbidden           = errors.New("not a participant of this appointment")
)
