package customer

import "errors"

var (
	ErrNotFound              = errors.New("customer not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrNotCustomerUser       = errors.New("user does not have role CUSTOMER")
	ErrProfileExists         = errors.New("customer profile already exists")
	ErrInvalidPreferredStaff = errors.New("preferred staff must be an active STAFF user")
	ErrInvalidDate           = errors.New("date_of_birth must be YYYY-MM-DD in the past")
	ErrForbidden             = errors.New("not the owner of this customer profile")
	ErrInUse                 = errors.New("customer has appointments")
)
