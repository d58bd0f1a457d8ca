package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/groupsix/gymbook/internal/domain"
)

// statusFor maps domain outcomes to HTTP statuses: bad input 400,
// unknown id 404, capacity conflicts 409, anything else is a storage
// failure.
func statusFor(err error) int {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSessionFull), errors.Is(err, domain.ErrCapacityTooLow):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
