package serviceitem

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

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	g := v1.Group("/service-items")
	{
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.GET("/:id/slots", h.Slots)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/service-items", middleware.RequireRole(domain.RoleAdmin))
	{
		g.POST("", h.Create)
		g.PATCH("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}

// List returns the catalog.
// @Summary		List service items
// @Tags		Service items
// @Param		active	query	bool	false	"Filter by active flag"
// @Success		200	{object}	response.Envelope
// @Router		/service-items [GET]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	items, err := h.service.List(c.Request.Context(), q.Active)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", items)
}

// Get returns one catalog entry.
// @Summary		Get service item
// @Tags		Service items
// @Param		id	path	int	true	"Service item ID"
// @Success		200	{object}	response.Envelope
// @Failure		404	{object}	response.Envelope
// @Router		/service-items/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", item)
}

// Slots lists free start times for a date.
// @Summary		Free slots
// @Description	Start times on the given UTC date, in 15 minute steps, with the staff members free for each.
// @Tags		Service items
// @Param		id		path	int		true	"Service item ID"
// @Param		date	query	string	true	"YYYY-MM-DD"
// @Success		200	{object}	response.Envelope
// @Failure		400	{object}	response.Envelope
// @Failure		404	{object}	response.Envelope
// @Router		/service-items/{id}/slots [GET]
func (h *Handler) Slots(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var q SlotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	slots, err := h.service.Slots(c.Request.Context(), id, q.Date)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", slots)
}

// Create adds a catalog entry.
// @Summary		Create service item
// @Tags		Service items
// @Security	BearerAuth
// @Param		request	body	CreateServiceItemRequest	true	"Service item"
// @Success		201	{object}	response.Envelope
// @Failure		400	{object}	response.Envelope
// @Failure		409	{object}	response.Envelope	"Name taken"
// @Router		/service-items [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateServiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Service item created", item)
}

// Update changes a catalog entry.
// @Summary		Update service item
// @Tags		Service items
// @Security	BearerAuth
// @Param		id		path	int							true	"Service item ID"
// @Param		request	body	UpdateServiceItemRequest	true	"Fields to change"
// @Success		200	{object}	response.Envelope
// @Failure		400	{object}	response.Envelope
// @Failure		404	{object}	response.Envelope
// @Failure		409	{object}	response.Envelope
// @Router		/service-items/{id} [PATCH]
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateServiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Service item updated", item)
}

// Delete removes a catalog entry.
// @Summary		Delete service item
// @Tags		Service items
// @Security	BearerAuth
// @Param		id	path	int	true	"Service item ID"
// @Success		204
// @Failure		404	{object}	response.Envelope
// @Failure		409	{object}	response.Envelope	"Referenced by appointments"
// @Router		/service-items/{id} [DELETE]
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
		response.NotFound(c, "Service item not found")
	case errors.Is(err, ErrNameTaken):
		response.Conflict(c, response.CodeConflict, "A service item with this name already exists")
	case errors.Is(err, ErrInUse):
		response.Conflict(c, response.CodeConflict, "Service item is referenced by appointments")
	case errors.Is(err, ErrInvalidPrice):
		response.Validation(c, map[string]string{"base_price": "gte"})
	case errors.Is(err, ErrInvalidDate):
		response.Validation(c, map[string]string{"date": "datetime"})
	default:
		response.Internal(c, err)
	}
}
