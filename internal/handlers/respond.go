package handlers

import (
	"errors"
	"net/http"

	"geddit/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service sentinels to HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrClaimNotFound),
		errors.Is(err, services.ErrReservationNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrItemAlreadyClaimed):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInvalidPrice),
		errors.Is(err, services.ErrUsernameTaken):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrNotificationFailed):
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
