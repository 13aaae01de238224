package serviceitem

import "errors"

var (
	ErrNotFound     = errors.New("service item not found")
	ErrNameTaken    = errors.New("service item name already exists")
	ErrInvalidPrice = errors.New("base_price must be >= 0")
	ErrInvalidDate  = errors.New("date must be YYYY-MM-DD")
	ErrInUse        = errors.New("service item has appointments")
)
