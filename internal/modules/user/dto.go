package user

import "scheduling/internal/domain"

type CreateUserRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email,max=255"`
	Phone     string `json:"phone" binding:"omitempty,e164"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	Role      string `json:"role" binding:"required,oneof=ADMIN STAFF CUSTOMER"`
}

// UpdateUserRequest is a partial update; nil fields are left unchanged.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,e164"`
	Role      *string `json:"role" binding:"omitempty,oneof=ADMIN STAFF CUSTOMER"`
	IsActive  *bool   `json:"is_active"`
}

type ListQuery struct {
	Role   string `form:"role" binding:"omitempty,oneof=ADMIN STAFF CUSTOMER"`
	Active *bool  `form:"active"`
}

// StaffMember is the public view of a STAFF user.
type StaffMember struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func toStaffMember(u domain.User) StaffMember {
	return StaffMember{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}
