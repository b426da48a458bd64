package api

import (
	"net/http"

	reqdto "court-booking/internal/handler/dto/request"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ResourceHandler struct {
	resources    queries.ResourceQueries
	availability queries.AvailabilityQueries
	reservations queries.ReservationQueries
}

func NewResourceHandler(
	resources queries.ResourceQueries,
	availability queries.AvailabilityQueries,
	reservations queries.ReservationQueries,
) *ResourceHandler {
	return &ResourceHandler{
		resources:    resources,
		availability: availability,
		reservations: reservations,
	}
}

// @Summary List resources
// @Tags resources
// @Produce json
// @Success 200 {array} resdto.ResourceResponse
// @Failure 503 {object} httperr.Response
// @Router /resources [get]
func (h *ResourceHandler) ListResources(c *gin.Context) {
	views, err := h.resources.List(c.Request.Context())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromResourceViews(views))
}

// @Summary Get resource
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /resources/{id} [get]
func (h *ResourceHandler) GetResource(c *gin.Context) {
	id, ok := resourceIDParam(c)
	if !ok {
		return
	}

	view, err := h.resources.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromResourceView(view))
}

// @Summary Slot template of a resource
// @Description 60-minute slots, or 90-minute slots for tennis and padel, from 10:00 to 02:00
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} queries.ResourceSlotsView
// @Failure 404 {object} httperr.Response
// @Router /resources/{id}/slots [get]
func (h *ResourceHandler) GetSlots(c *gin.Context) {
	id, ok := resourceIDParam(c)
	if !ok {
		return
	}

	view, err := h.resources.Slots(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Availability of a resource on one day
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Param date query string true "YYYY-MM-DD"
// @Param selected query string false "Candidate slot HH:MM-HH:MM"
// @Success 200 {object} queries.AvailabilityView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /resources/{id}/availability [get]
func (h *ResourceHandler) GetAvailability(c *gin.Context) {
	id, ok := resourceIDParam(c)
	if !ok {
		return
	}

	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	view, err := h.availability.GetAvailability(c.Request.Context(), id, query.Date, query.Selected)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Active reservations of a resource on one day
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Router /resources/{id}/reservations [get]
func (h *ResourceHandler) ListResourceReservations(c *gin.Context) {
	id, ok := resourceIDParam(c)
	if !ok {
		return
	}

	var query reqdto.DateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	views, err := h.reservations.ListByResourceDate(c.Request.Context(), id, query.Date)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

func resourceIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid resource ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}
