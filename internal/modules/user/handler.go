package user

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
	users := protected.Group("/users")
	{
		users.POST("", middleware.RequireRole(domain.RoleAdmin), h.Create)
		users.GET("", middleware.RequireRole(domain.RoleAdmin), h.List)
		users.GET("/staff", h.ListStaff)
		users.GET("/:id", middleware.RequireSelfOrRole("id", domain.RoleAdmin), h.Get)
		users.PATCH("/:id", middleware.RequireSelfOrRole("id", domain.RoleAdmin), h.Update)
		users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Delete)
	}
}

// Create adds a user with any role.
// @Summary		Create user
// @Tags		Users
// @Security	BearerAuth
// @Param		request	body	CreateUserRequest	true	"User data"
// @Success		201	{object}	response.Envelope
// @Failure		400	{object}	response.Envelope
// @Failure		403	{object}	response.Envelope
// @Failure		409	{object}	response.Envelope	"Email or phone already registered"
// @Router		/users [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	u, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "User created", u)
}

// List returns users filtered by role and active flag.
// @Summary		List users
// @Tags		Users
// @Security	BearerAuth
// @Param		role	query	string	false	"ADMIN, STAFF or CUSTOMER"
// @Param		active	query	bool	false	"Active flag"
// @Param		page	query	int		false	"Page, from 1"
// @Param		limit	query	int		false	"Page size, max 100"
// @Success		200	{object}	response.Envelope
// @Router		/users [GET]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	page, err := h.service.List(c.Request.Context(), q, pagination.FromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", page)
}

// ListStaff returns active staff members.
// @Summary		List staff
// @Tags		Users
// @Security	BearerAuth
// @Success		200	{object}	response.Envelope
// @Router		/users/staff [GET]
func (h *Handler) ListStaff(c *gin.Context) {
	staff, err := h.service.ListStaff(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", staff)
}

// Get returns a user by id.
// @Summary		Get user
// @Tags		Users
// @Security	BearerAuth
// @Param		id	path	int	true	"User ID"
// @Success		200	{object}	response.Envelope
// @Failure		404	{object}	response.Envelope
// @Router		/users/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	u, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", u)
}

// Update changes profile fields. Role and is_active are ADMIN only.
// @Summary		Update user
// @Tags		Users
// @Security	BearerAuth
// @Param		id		path	int					true	"User ID"
// @Param		request	body	UpdateUserRequest	true	"Fields to change"
// @Success		200	{object}	response.Envelope
// @Failure		403	{object}	response.Envelope
// @Failure		409	{object}	response.Envelope
// @Router		/users/{id} [PATCH]
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	u, err := h.service.Update(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "User updated", u)
}

// Delete disables a user.
// @Summary		Disable user
// @Tags		Users
// @Security	BearerAuth
// @Param		id	path	int	true	"User ID"
// @Success		204
// @Failure		404	{object}	response.Envelope
// @Router		/users/{id} [DELETE]
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
		response.NotFound(c, "User not found")
	case errors.Is(err, ErrAlreadyRegistered):
		response.Conflict(c, response.CodeAlreadyRegistered, "Email or phone is already registered")
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, "Only administrators can change role or status")
	case errors.Is(err, ErrInvalidRole):
		response.Validation(c, map[string]string{"role": "oneof"})
	default:
		response.Internal(c, err)
	}
}
