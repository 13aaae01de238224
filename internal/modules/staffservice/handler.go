package staffservice

import (
	"errors"
	"net/http"
	"strconv"

	"scheduling/internal/domain"
	"scheduling/internal/middleware"
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
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	g := protected.Group("/staff-services")
	{
		g.POST("", adminOnly, h.Create)
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.PATCH("/:id", adminOnly, h.Update)
		g.DELETE("/:id", adminOnly, h.Delete)
	}
}

// Create assigns a service item to a staff member.
// @Summary		Assign service to staff
// @Tags		Staff services
// @Security	BearerAuth
// @Param		request	body	CreateStaffServiceRequest	true	"staff_id, service_item_id, optional custom_price"
// @Success		201	{object}	response.Envelope
// @Failure		400	{object}	response.Envelope
// @Failure		404	{object}	response.Envelope	"Service item not found"
// @Failure		409	{object}	response.Envelope	"Already assigned"
// @Router		/staff-services [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateStaffServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	v, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Service assigned", v)
}

// List returns assignments, optionally filtered.
// @Summary		List staff services
// @Tags		Staff services
// @Security	BearerAuth
// @Param		staff_id			query	int	false	"Staff user ID"
// @Param		service_item_id		query	int	false	"Service item ID"
// @Success		200	{object}	response.Envelope
// @Router		/staff-services [GET]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	items, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", items)
}

// Get returns one assignment.
// @Summary		Get staff service
// @Tags		Staff services
// @Security	BearerAuth
// @Param		id	path	int	true	"Assignment ID"
// @Success		200	{object}	response.Envelope
// @Failure		404	{object}	response.Envelope
// @Router		/staff-services/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	v, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", v)
}

// Update sets or clears the custom price.
// @Summary		Update custom price
// @Tags		Staff services
// @Security	BearerAuth
// @Param		id		path	int							true	"Assignment ID"
// @Param		request	body	UpdateStaffServiceRequest	true	"custom_price or null"
// @Success		200	{object}	response.Envelope
// @Failure		400	{object}	response.Envelope
// @Failure		404	{object}	response.Envelope
// @Router		/staff-services/{id} [PATCH]
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateStaffServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	v, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Staff service updated", v)
}

// Delete removes an assignment.
// @Summary		Remove staff service
// @Tags		Staff services
// @Security	BearerAuth
// @Param		id	path	int	true	"Assignment ID"
// @Success		204
// @Failure		404	{object}	response.Envelope
// @Router		/staff-services/{id} [DELETE]
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
		response.NotFound(c, "Staff service not found")
	case errors.Is(err, ErrServiceItemNotFound):
		response.NotFound(c, "Service item not found")
	case errors.Is(err, ErrNotStaff):
		response.Validation(c, map[string]string{"staff_id": "staff"})
	case errors.Is(err, ErrInvalidPrice):
		response.Validation(c, map[string]string{"custom_price": "gte"})
	case errors.Is(err, ErrAlreadyAssigned):
		response.Conflict(c, response.CodeConflict, "Service item is already assigned to this staff member")
	default:
		response.Internal(c, err)
	}
}
