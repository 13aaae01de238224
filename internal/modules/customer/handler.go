package customer

import (
	"errors"
	"net/http"
	"strconv"

	"scheduling/internal/domain"
	"scheduling/internal/middleware"
	"scheduling/internal/pkg/pagination"
	"scheduling/internal/pkg/response"
	"scheduling/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	staffOrAdmin := middleware.RequireRole(domain.RoleAdmin, domain.RoleStaff)

	customers := protected.Group("/customers")
	{
		customers.POST("", staffOrAdmin, h.Create)
		customers.GET("", staffOrAdmin, h.List)
		customers.GET("/me", middleware.RequireRole(domain.RoleCustomer), h.GetMine)
		customers.GET("/:id", h.Get)
		customers.PATCH("/:id", h.Update)
		customers.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Delete)
	}
}

// Create adds a customer profile for a CUSTOMER user.
// @Summary		Create customer profile
// @Tags		Customers
// @Security	BearerAuth
// @Param		request	body	CreateCustomerRequest	true	"Profile"
// @Success		201	{object}	response.Envelope
// @Failure		400	{object}	response.Envelope
// @Failure		409	{object}	response.Envelope	"Profile already exists"
// @Router		/customers [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	cust, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Customer created", cust)
}

// List returns customers with their user data.
// @Summary		List customers
// @Tags		Customers
// @Security	BearerAuth
// @Param		page	query	int	false	"Page, from 1"
// @Param		limit	query	int	false	"Page size, max 100"
// @Success		200	{object}	response.Envelope
// @Router		/customers [GET]
func (h *Handler) List(c *gin.Context) {
	page, err := h.service.List(c.Request.Context(), pagination.FromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", page)
}

// GetMine returns the caller's own customer profile.
// @Summary		My customer profile
// @Tags		Customers
// @Security	BearerAuth
// @Success		200	{object}	response.Envelope
// @Failure		404	{object}	response.Envelope
// @Router		/customers/me [GET]
func (h *Handler) GetMine(c *gin.Context) {
	cust, err := h.service.GetMine(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", cust)
}

// Get returns a customer profile.
// @Summary		Get customer
// @Tags		Customers
// @Security	BearerAuth
// @Param		id	path	int	true	"Customer ID"
// @Success		200	{object}	response.Envelope
// @Failure		403	{object}	response.Envelope
// @Failure		404	{object}	response.Envelope
// @Router		/customers/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	cust, err := h.service.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", cust)
}

// Update changes profile fields.
// @Summary		Update customer
// @Tags		Customers
// @Security	BearerAuth
// @Param		id		path	int						true	"Customer ID"
// @Param		request	body	UpdateCustomerRequest	true	"Fields to change"
// @Success		200	{object}	response.Envelope
// @Failure		400	{object}	response.Envelope
// @Failure		403	{object}	response.Envelope
// @Router		/customers/{id} [PATCH]
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	cust, err := h.service.Update(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Customer updated", cust)
}

// Delete removes a customer profile.
// @Summary		Delete customer
// @Tags		Customers
// @Security	BearerAuth
// @Param		id	path	int	true	"Customer ID"
// @Success		204
// @Failure		404	{object}	response.Envelope
// @Failure		409	{object}	response.Envelope	"Customer has appointments"
// @Router		/customers/{id} [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.NoContent(c)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Validation(c, map[string]string{"id": "invalid"})
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Customer not found")
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(c, "User not found")
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, "You don't own this customer profile")
	case errors.Is(err, ErrProfileExists):
		response.Conflict(c, response.CodeAlreadyRegistered, "Customer profile already exists")
	case errors.Is(err, ErrInUse):
		response.Conflict(c, response.CodeConflict, "Customer has appointments")
	case errors.Is(err, ErrNotCustomerUser):
		response.Validation(c, map[string]string{"user_id": "role"})
	case errors.Is(err, ErrInvalidPreferredStaff):
		response.Validation(c, map[string]string{"preferred_staff_id": "staff"})
	case errors.Is(err, ErrInvalidDate):
		response.Validation(c, map[string]string{"date_of_birth": "date"})
	default:
		response.Internal(c, err)
	}
}
