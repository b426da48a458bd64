package api

import (
	"net/http"

	reqdto "court-booking/internal/handler/dto/request"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerIdempotencyKey     = "Idempotency-Key"
	headerIdempotentReplayed = "Idempotent-Replayed"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Book one template slot of a resource. end_time may be omitted.
// @Tags reservations
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Success 200 {object} resdto.ReservationResponse "Replayed idempotent request"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Idempotency-Key must be a UUID", nil)
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.CreateReservation(c.Request.Context(), req.ToInput(idempotencyKey))
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	if result.IsReplayed {
		c.Header(headerIdempotentReplayed, "true")
		c.JSON(http.StatusOK, resdto.FromReservationView(result.Reservation))
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReservationView(result.Reservation))
}

// @Summary Get reservation
// @Description Get reservation by ID
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Cancel reservation
// @Description Cancel a reservation. Cancelling twice returns the cancelled reservation.
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return
	}

	result, err := h.cmds.CancelReservation(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(result.Reservation))
}

// @Summary List user reservations
// @Description Newest first, keyset paginated
// @Tags reservations
// @Produce json
// @Param id path string true "User ID"
// @Param limit query int false "Page size (max 200)"
// @Param after query string false "Cursor from the previous page"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Router /users/{id}/reservations [get]
func (h *ReservationHandler) ListUserReservations(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid user ID format", nil)
		return
	}

	var query reqdto.ListReservationsQuery
	if bindErr := c.ShouldBindQuery(&query); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid query parameters", nil)
		return
	}

	var after *queries.Cursor
	if query.After != "" {
		after = &queries.Cursor{After: query.After}
	}

	page, err := h.q.ListByUser(c.Request.Context(), userID, after, query.Limit)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationPage(page))
}

func getIdempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	raw := c.GetHeader(headerIdempotencyKey)
	if raw == "" {
		return nil, nil
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &key, nil
}
