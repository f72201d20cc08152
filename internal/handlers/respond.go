package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safartaxi/trip-match-backend/internal/models"
)

// respondError maps domain errors onto the HTTP surface: field-level
// validation problems are 400, missing records 404, everything else is a
// retryable 503. An empty match list is never routed through here.
func respondError(c *gin.Context, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": verr.Message,
			"field":   verr.Field,
		})
		return
	}

	if errors.Is(err, models.ErrProfileNotFound) || errors.Is(err, models.ErrTripNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status":  "error",
		"message": "Temporary storage problem. Please try again later.",
	})
}
