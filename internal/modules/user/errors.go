package user

import "errors"

var (
	ErrNotFound          = errors.New("user not found")
	ErrAlreadyRegistered = errors.New("email or phone already registered")
	ErrForbidden         = errors.New("not allowed to change this user")
	ErrInvalidRole       = errors.New("invalid role")
)
