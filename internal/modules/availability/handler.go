package availability

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
	managers := middleware.RequireRole(domain.RoleAdmin, domain.RoleStaff)

	g := protected.Group("/staff-availability")
	{
		g.POST("", managers, h.Create)
		g.GET("", h.List)
		g.GET("/check", h.Check)
		g.GET("/:id", h.Get)
		g.PATCH("/:id", managers, h.Update)
		g.DELETE("/:id", managers, h.Delete)
	}
}

// Create adds a weekly availability window.
// @Summary		Create availability window
// @Description	STAFF may only create windows for themselves; ADMIN must pass staff_id. Times are HH:MM UTC, day_of_week 0 = Sunday.
// @Tags		Staff availability
// @Security	BearerAuth
// @Param		request	body	CreateWindowRequest	true	"Window"
// @Success		201	{object}	response.Envelope
// @Failure		400	{object}	response.Envelope
// @Failure		403	{object}	response.Envelope
// @Failure		409	{object}	response.Envelope	"Overlaps another window"
// @Router		/staff-availability [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	w, err := h.service.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Availability created", w)
}

// List returns windows ordered by staff, day and start time.
// @Summary		List availability
// @Tags		Staff availability
// @Security	BearerAuth
// @Param		staff_id	query	int	false	"Staff user ID"
// @Success		200	{object}	response.Envelope
// @Router		/staff-availability [GET]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	windows, err := h.service.List(c.Request.Context(), q.StaffID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", windows)
}

// Check reports whether a staff member is free for an interval.
// @Summary		Check staff availability
// @Tags		Staff availability
// @Security	BearerAuth
// @Param		staff_id	query	int		true	"Staff user ID"
// @Param		start		query	string	true	"RFC3339 start"
// @Param		end			query	string	true	"RFC3339 end"
// @Success		200	{object}	response.Envelope	"data.available"
// @Failure		400	{object}	response.Envelope
// @Router		/staff-availability/check [GET]
func (h *Handler) Check(c *gin.Context) {
	var q CheckQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	res, err := h.service.Check(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", res)
}

// Get returns one window.
// @Summary		Get availability window
// @Tags		Staff availability
// @Security	BearerAuth
// @Param		id	path	int	true	"Window ID"
// @Success		200	{object}	response.Envelope
// @Failure		404	{object}	response.Envelope
// @Router		/staff-availability/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	w, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", w)
}

// Update changes a window.
// @Summary		Update availability window
// @Tags		Staff availability
// @Security	BearerAuth
// @Param		id		path	int					true	"Window ID"
// @Param		request	body	UpdateWindowRequest	true	"Fields to change"
// @Success		200	{object}	response.Envelope
// @Failure		400	{object}	response.Envelope
// @Failure		403	{object}	response.Envelope
// @Failure		409	{object}	response.Envelope
// @Router		/staff-availability/{id} [PATCH]
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	w, err := h.service.Update(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Availability updated", w)
}

// Delete removes a window.
// @Summary		Delete availability window
// @Tags		Staff availability
// @Security	BearerAuth
// @Param		id	path	int	true	"Window ID"
// @Success		204
// @Failure		403	{object}	response.Envelope
// @Failure		404	{object}	response.Envelope
// @Router		/staff-availability/{id} [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
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
		response.NotFound(c, "Availability window not found")
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, "You can only manage your own availability")
	case errors.Is(err, ErrNotStaff):
		response.Validation(c, map[string]string{"staff_id": "staff"})
	case errors.Is(err, ErrInvalidWindow):
		response.Validation(c, map[string]string{"end_time": "gtfield"})
	case errors.Is(err, ErrInvalidRange):
		response.Validation(c, map[string]string{"end": "gtfield"})
	case errors.Is(err, ErrWindowOverlap):
		response.Conflict(c, response.CodeConflict, "Window overlaps an existing window on the same day")
	default:
		response.Internal(c, err)
	}
}
