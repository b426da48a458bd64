package api

import (
	"net/http"
	"time"

	"court-booking/internal/handler/httperr"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const transientRetryAfter = time.Second

// abortWithUseCaseError maps the shared sentinels onto HTTP statuses.
func abortWithUseCaseError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrInvalidSlot):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Requested time is not a bookable slot", nil)
	case errs.Is(err, errs.ErrPastDate):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Date is in the past", nil)
	case errs.Is(err, queries.ErrInvalidCursor):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
	case errs.Is(err, errs.ErrResourceNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
	case errs.Is(err, errs.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errs.Is(err, errs.ErrResourceUnavailable):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Resource is not available for booking", nil)
	case errs.Is(err, errs.ErrSlotConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Slot already reserved", gin.H{"hint": errs.Hint(err)})
	case errs.Is(err, errs.ErrIdempotencyKeyReused):
		httperr.AbortWithError(c, http.StatusConflict, err, "Idempotency key was used with a different request", nil)
	case errs.Is(err, errs.ErrIdempotencyInProgress):
		httperr.AbortRetryable(c, http.StatusConflict, err, "Request with this idempotency key is still being processed", transientRetryAfter)
	case errs.Is(err, errs.ErrTransientStore):
		httperr.AbortRetryable(c, http.StatusServiceUnavailable, err, "Service temporarily unavailable", transientRetryAfter)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
