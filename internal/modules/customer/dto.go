package customer

const dateLayout = "2006-01-02"

type CreateCustomerRequest struct {
	UserID           int64  `json:"user_id" binding:"required,min=1"`
	Address          string `json:"address" binding:"max=255"`
	DateOfBirth      string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Notes            string `json:"notes" binding:"max=2000"`
	PreferredStaffID *int64 `json:"preferred_staff_id" binding:"omitempty,min=1"`
}

// UpdateCustomerRequest is a partial update. preferred_staff_id 0 clears the preference,
// an empty date_of_birth clears the date.
type UpdateCustomerRequest struct {
	Address          *string `json:"address" binding:"omitempty,max=255"`
	DateOfBirth      *string `json:"date_of_birth" binding:"omitempty"`
	Notes            *string `json:"notes" binding:"omitempty,max=2000"`
	PreferredStaffID *int64  `json:"preferred_staff_id" binding:"omitempty,min=0"`
}
