package appointment

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
	g := protected.Group("/appointments")
	{
		g.POST("", h.Create)
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.PATCH("/:id/status", h.UpdateStatus)
		g.PATCH("/:id/reschedule", h.Reschedule)
		g.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Delete)
	}
}

// Create books an appointment.
// @Summary		Book appointment
// @Description	CUSTOMER books for themselves. STAFF and ADMIN book on behalf of a customer and must pass customer_id. Without staff_id the first free staff member offering the item is assigned.
// @Tags		Appointments
// @Security	BearerAuth
// @Param		request	body	CreateAppointmentRequest	true	"Booking"
// @Success		201	{object}	response.Envelope
// @Failure		400	{object}	response.Envelope
// @Failure		404	{object}	response.Envelope
// @Failure		409	{object}	response.Envelope	"SCHEDULE_CONFLICT or NO_STAFF_AVAILABLE"
// @Router		/appointments [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	a, err := h.service.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Appointment booked", a)
}

// List returns appointments visible to the caller.
// @Summary		List appointments
// @Tags		Appointments
// @Security	BearerAuth
// @Param		status		query	string	false	"PENDING, CONFIRMED, CANCELLED, COMPLETED or NO_SHOW"
// @Param		staff_id	query	int		false	"Staff filter (ADMIN)"
// @Param		customer_id	query	int		false	"Customer filter (ADMIN, STAFF)"
// @Param		from		query	string	false	"RFC3339 lower bound on start_time"
// @Param		to			query	string	false	"RFC3339 upper bound on start_time, exclusive"
// @Param		page		query	int		false	"Page, from 1"
// @Param		limit		query	int		false	"Page size, max 100"
// @Success		200	{object}	response.Envelope
// @Router		/appointments [GET]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	page, err := h.service.List(c.Request.Context(), middleware.CurrentActor(c), q, pagination.FromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", page)
}

// Get returns one appointment.
// @Summary		Get appointment
// @Tags		Appointments
// @Security	BearerAuth
// @Param		id	path	int	true	"Appointment ID"
// @Success		200	{object}	response.Envelope
// @Failure		403	{object}	response.Envelope
// @Failure		404	{object}	response.Envelope
// @Router		/appointments/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	a, err := h.service.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", a)
}

// UpdateStatus moves an appointment through its lifecycle.
// @Summary		Change appointment status
// @Description	PENDING to CONFIRMED, CONFIRMED to COMPLETED or NO_SHOW (STAFF, ADMIN). PENDING or CONFIRMED to CANCELLED (any participant).
// @Tags		Appointments
// @Security	BearerAuth
// @Param		id		path	int					true	"Appointment ID"
// @Param		request	body	UpdateStatusRequest	true	"New status"
// @Success		200	{object}	response.Envelope
// @Failure		403	{object}	response.Envelope
// @Failure		409	{object}	response.Envelope	"INVALID_STATUS_TRANSITION"
// @Router		/appointments/{id}/status [PATCH]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	a, err := h.service.UpdateStatus(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Appointment updated", a)
}

// Reschedule moves an appointment to a new start time.
// @Summary		Reschedule appointment
// @Tags		Appointments
// @Security	BearerAuth
// @Param		id		path	int					true	"Appointment ID"
// @Param		request	body	RescheduleRequest	true	"New start"
// @Success		200	{object}	response.Envelope
// @Failure		400	{object}	response.Envelope
// @Failure		409	{object}	response.Envelope	"SCHEDULE_CONFLICT"
// @Router		/appointments/{id}/reschedule [PATCH]
func (h *Handler) Reschedule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	a, err := h.service.Reschedule(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Appointment rescheduled", a)
}

// Delete removes an appointment.
// @Summary		Delete appointment
// @Tags		Appointments
// @Security	BearerAuth
// @Param		id	path	int	true	"Appointment ID"
// @Success		204
// @Failure		404	{object}	response.Envelope
// @Router		/appointments/{id} [DELETE]
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
		response.NotFound(c, "Appointment not found")
	case errors.Is(err, ErrCustomerNotFound):
		response.NotFound(c, "Customer not found")
	case errors.Is(err, ErrServiceItemNotFound):
		response.NotFound(c, "Service item not found")
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, ErrCustomerRequired):
		response.Validation(c, map[string]string{"customer_id": "required"})
	case errors.Is(err, ErrStartInPast):
		response.Validation(c, map[string]string{"start_time": "future"})
	case errors.Is(err, ErrInvalidRange):
		response.Validation(c, map[string]string{"to": "gtfield"})
	case errors.Is(err, ErrServiceItemInactive):
		response.Conflict(c, response.CodeConflict, "Service item is not active")
	case errors.Is(err, ErrStaffNotOffering), errors.Is(err, ErrScheduleConflict):
		response.Conflict(c, response.CodeScheduleConflict, err.Error())
	case errors.Is(err, ErrNoStaffAvailable):
		response.Conflict(c, response.CodeNoStaffAvailable, "No staff member is available at the requested time")
	case errors.Is(err, ErrInvalidTransition):
		response.Conflict(c, response.CodeInvalidTransition, err.Error())
	default:
		response.Internal(c, err)
	}
}
